package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"brandregistry/internal/models"
	"brandregistry/internal/repositories"

	"github.com/google/uuid"
)

// LogoUpload is an image attached to a create or update request.
type LogoUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

// CreateBrandInput carries the fields of a new brand.
type CreateBrandInput struct {
	FullName    string
	Email       string
	PhoneNumber string
	BrandName   string
	OwnerCedula string
}

type BrandService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input *CreateBrandInput, logo *LogoUpload) (*models.Brand, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Brand, error)
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*models.Brand, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, patch *models.BrandPatch, logo *LogoUpload) (*models.Brand, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (string, error)
}

type brandService struct {
	brandRepo repositories.BrandRepository
	storage   StorageService
}

func NewBrandService(brandRepo repositories.BrandRepository, storage StorageService) BrandService {
	return &brandService{brandRepo: brandRepo, storage: storage}
}

// Create persists the brand first and attaches the logo as a second
// write, so the per-owner name check is settled before the upload cost
// is paid. An upload failure leaves the committed record without a
// logo; the error still surfaces.
func (s *brandService) Create(ctx context.Context, ownerID uuid.UUID, input *CreateBrandInput, logo *LogoUpload) (*models.Brand, error) {
	brand := &models.Brand{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		FullName:    strings.TrimSpace(input.FullName),
		Email:       strings.TrimSpace(input.Email),
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		BrandName:   strings.TrimSpace(input.BrandName),
		OwnerCedula: strings.TrimSpace(input.OwnerCedula),
	}

	if err := s.brandRepo.Create(ctx, brand); err != nil {
		return nil, err
	}

	if logo != nil {
		if err := s.attachLogo(ctx, brand, logo); err != nil {
			return nil, err
		}
	}
	return brand, nil
}

func (s *brandService) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Brand, error) {
	return s.brandRepo.GetByID(ctx, ownerID, id)
}

func (s *brandService) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*models.Brand, error) {
	return s.brandRepo.List(ctx, ownerID, limit, offset)
}

// Update mutates only the fields present in the patch. The name
// conflict check runs before any logo work, mirroring Create. A new
// logo replaces the old blob: the old one is deleted best-effort first,
// then the new one is uploaded and attached.
func (s *brandService) Update(ctx context.Context, ownerID, id uuid.UUID, patch *models.BrandPatch, logo *LogoUpload) (*models.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	applyPatch(brand, patch)

	if !patch.Empty() {
		if err := s.brandRepo.Update(ctx, brand); err != nil {
			return nil, err
		}
	}

	if logo != nil {
		if brand.LogoBlobName != nil {
			if err := s.storage.DeleteLogo(ctx, *brand.LogoBlobName); err != nil {
				log.Printf("best-effort delete of old logo %s failed: %v", *brand.LogoBlobName, err)
			}
		}
		if err := s.attachLogo(ctx, brand, logo); err != nil {
			return nil, err
		}
	}
	return brand, nil
}

// Delete removes the brand's blob best-effort, then the record. A blob
// delete failure is logged but never blocks the record deletion.
func (s *brandService) Delete(ctx context.Context, ownerID, id uuid.UUID) (string, error) {
	brand, err := s.brandRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return "", err
	}

	if brand.LogoBlobName != nil {
		if err := s.storage.DeleteLogo(ctx, *brand.LogoBlobName); err != nil {
			log.Printf("best-effort delete of logo %s failed: %v", *brand.LogoBlobName, err)
		}
	}

	if err := s.brandRepo.Delete(ctx, ownerID, id); err != nil {
		return "", err
	}
	return brand.BrandName, nil
}

// attachLogo uploads the image and records the resulting URL and blob
// name as a second write against the already-persisted brand.
func (s *brandService) attachLogo(ctx context.Context, brand *models.Brand, logo *LogoUpload) error {
	url, objectName, err := s.storage.UploadLogo(ctx, brand.ID, logo.Reader, logo.Size, logo.ContentType)
	if err != nil {
		return err
	}

	if err := s.brandRepo.UpdateLogo(ctx, brand.OwnerID, brand.ID, &url, &objectName); err != nil {
		// The blob now outlives its record reference; tolerated, no
		// reconciliation.
		return fmt.Errorf("record logo: %w", err)
	}

	brand.LogoURL = &url
	brand.LogoBlobName = &objectName
	return nil
}

func applyPatch(brand *models.Brand, patch *models.BrandPatch) {
	if patch.FullName != nil {
		brand.FullName = strings.TrimSpace(*patch.FullName)
	}
	if patch.Email != nil {
		brand.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.PhoneNumber != nil {
		brand.PhoneNumber = strings.TrimSpace(*patch.PhoneNumber)
	}
	if patch.BrandName != nil {
		brand.BrandName = strings.TrimSpace(*patch.BrandName)
	}
	if patch.OwnerCedula != nil {
		brand.OwnerCedula = strings.TrimSpace(*patch.OwnerCedula)
	}
}
