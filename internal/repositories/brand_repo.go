package repositories

import (
	"context"
	"errors"
	"fmt"

	"brandregistry/internal/common"
	"brandregistry/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BrandRepository interface {
	Create(ctx context.Context, brand *models.Brand) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Brand, error)
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*models.Brand, error)
	Update(ctx context.Context, brand *models.Brand) error
	UpdateLogo(ctx context.Context, ownerID, id uuid.UUID, logoURL, blobName *string) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type brandRepo struct {
	db Database
}

func NewBrandRepo(db Database) BrandRepository {
	return &brandRepo{db: db}
}

const brandColumns = `id, owner_id, full_name, email, phone_number, brand_name, owner_cedula, logo_url, logo_blob_name, created_at, updated_at`

func scanBrand(row pgx.Row) (*models.Brand, error) {
	brand := &models.Brand{}
	err := row.Scan(&brand.ID, &brand.OwnerID, &brand.FullName, &brand.Email, &brand.PhoneNumber,
		&brand.BrandName, &brand.OwnerCedula, &brand.LogoURL, &brand.LogoBlobName,
		&brand.CreatedAt, &brand.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return brand, nil
}

// Create inserts a brand inside one transaction: an owner-scoped name
// check followed by the insert. A concurrent duplicate that slips past
// the check trips the (owner_id, brand_name) unique constraint, which
// is reported the same way.
func (r *brandRepo) Create(ctx context.Context, brand *models.Brand) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create brand: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	checkQuery := `SELECT EXISTS (SELECT 1 FROM brands WHERE owner_id = $1 AND brand_name = $2)`
	if err := tx.QueryRow(ctx, checkQuery, brand.OwnerID, brand.BrandName).Scan(&exists); err != nil {
		return fmt.Errorf("check brand name: %w", err)
	}
	if exists {
		return common.ErrDuplicateBrandName
	}

	insertQuery := `
		INSERT INTO brands (id, owner_id, full_name, email, phone_number, brand_name, owner_cedula, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err = tx.QueryRow(ctx, insertQuery, brand.ID, brand.OwnerID, brand.FullName, brand.Email,
		brand.PhoneNumber, brand.BrandName, brand.OwnerCedula).Scan(&brand.CreatedAt, &brand.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrDuplicateBrandName
		}
		return fmt.Errorf("insert brand: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create brand: %w", err)
	}
	return nil
}

// GetByID looks a brand up scoped by owner. A brand owned by someone
// else is indistinguishable from a missing one.
func (r *brandRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands WHERE owner_id = $1 AND id = $2`
	brand, err := scanBrand(r.db.QueryRow(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return brand, nil
}

func (r *brandRepo) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*models.Brand, error) {
	query := `
		SELECT ` + brandColumns + `
		FROM brands
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var brands []*models.Brand
	for rows.Next() {
		brand, err := scanBrand(rows)
		if err != nil {
			return nil, err
		}
		brands = append(brands, brand)
	}
	return brands, rows.Err()
}

// Update rewrites the mutable text fields inside one transaction, with
// the same owner-scoped name check as Create but excluding the brand's
// own row. The update itself is scoped by owner, so a foreign brand id
// reports ErrNotFound.
func (r *brandRepo) Update(ctx context.Context, brand *models.Brand) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update brand: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	checkQuery := `SELECT EXISTS (SELECT 1 FROM brands WHERE owner_id = $1 AND brand_name = $2 AND id <> $3)`
	if err := tx.QueryRow(ctx, checkQuery, brand.OwnerID, brand.BrandName, brand.ID).Scan(&exists); err != nil {
		return fmt.Errorf("check brand name: %w", err)
	}
	if exists {
		return common.ErrDuplicateBrandName
	}

	updateQuery := `
		UPDATE brands
		SET full_name = $1, email = $2, phone_number = $3, brand_name = $4, owner_cedula = $5, updated_at = NOW()
		WHERE owner_id = $6 AND id = $7
		RETURNING updated_at
	`
	err = tx.QueryRow(ctx, updateQuery, brand.FullName, brand.Email, brand.PhoneNumber,
		brand.BrandName, brand.OwnerCedula, brand.OwnerID, brand.ID).Scan(&brand.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.ErrNotFound
		}
		if isUniqueViolation(err) {
			return common.ErrDuplicateBrandName
		}
		return fmt.Errorf("update brand: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update brand: %w", err)
	}
	return nil
}

// UpdateLogo is the second write attaching an uploaded logo to an
// already-persisted brand.
func (r *brandRepo) UpdateLogo(ctx context.Context, ownerID, id uuid.UUID, logoURL, blobName *string) error {
	query := `
		UPDATE brands
		SET logo_url = $1, logo_blob_name = $2, updated_at = NOW()
		WHERE owner_id = $3 AND id = $4
	`
	tag, err := r.db.Exec(ctx, query, logoURL, blobName, ownerID, id)
	if err != nil {
		return fmt.Errorf("update brand logo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *brandRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM brands WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}
