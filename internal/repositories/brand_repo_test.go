package repositories

import (
	"context"
	"testing"
	"time"

	"brandregistry/internal/common"
	"brandregistry/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type BrandRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    BrandRepository
	ownerID uuid.UUID
	brandID uuid.UUID
	ctx     context.Context
}

func (suite *BrandRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewBrandRepo(mock)
	suite.ownerID = uuid.New()
	suite.brandID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *BrandRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestBrandRepoTestSuite(t *testing.T) {
	suite.Run(t, new(BrandRepoTestSuite))
}

func (suite *BrandRepoTestSuite) newBrand() *models.Brand {
	return &models.Brand{
		ID:          suite.brandID,
		OwnerID:     suite.ownerID,
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		PhoneNumber: "555-0100",
		BrandName:   "Acme",
		OwnerCedula: "0102030405",
	}
}

func (suite *BrandRepoTestSuite) TestCreate_Success() {
	brand := suite.newBrand()
	now := time.Now()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(brand.OwnerID, brand.BrandName).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	suite.mock.ExpectQuery(`INSERT INTO brands`).
		WithArgs(brand.ID, brand.OwnerID, brand.FullName, brand.Email, brand.PhoneNumber, brand.BrandName, brand.OwnerCedula).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	suite.mock.ExpectCommit()
	suite.mock.ExpectRollback() // deferred rollback after commit is a no-op

	err := suite.repo.Create(suite.ctx, brand)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), now, brand.CreatedAt)
}

func (suite *BrandRepoTestSuite) TestCreate_DuplicateNameForOwner() {
	brand := suite.newBrand()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(brand.OwnerID, brand.BrandName).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	suite.mock.ExpectRollback()

	err := suite.repo.Create(suite.ctx, brand)
	assert.ErrorIs(suite.T(), err, common.ErrDuplicateBrandName)
}

func (suite *BrandRepoTestSuite) TestCreate_ConstraintViolationRace() {
	// The in-transaction check passed but a concurrent insert won the
	// race; the unique constraint reports it and the repo converts it.
	brand := suite.newBrand()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(brand.OwnerID, brand.BrandName).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	suite.mock.ExpectQuery(`INSERT INTO brands`).
		WithArgs(brand.ID, brand.OwnerID, brand.FullName, brand.Email, brand.PhoneNumber, brand.BrandName, brand.OwnerCedula).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_brands_owner_brand_name"})
	suite.mock.ExpectRollback()

	err := suite.repo.Create(suite.ctx, brand)
	assert.ErrorIs(suite.T(), err, common.ErrDuplicateBrandName)
}

func (suite *BrandRepoTestSuite) TestGetByID_NotOwned() {
	otherOwner := uuid.New()

	suite.mock.ExpectQuery(`SELECT .+ FROM brands`).
		WithArgs(otherOwner, suite.brandID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "owner_id", "full_name", "email", "phone_number",
			"brand_name", "owner_cedula", "logo_url", "logo_blob_name",
			"created_at", "updated_at",
		}))

	brand, err := suite.repo.GetByID(suite.ctx, otherOwner, suite.brandID)
	assert.Nil(suite.T(), brand)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *BrandRepoTestSuite) TestGetByID_Success() {
	now := time.Now()
	logoURL := "http://localhost:9000/brand-logos/obj.png"
	blobName := "obj.png"

	suite.mock.ExpectQuery(`SELECT .+ FROM brands`).
		WithArgs(suite.ownerID, suite.brandID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "owner_id", "full_name", "email", "phone_number",
			"brand_name", "owner_cedula", "logo_url", "logo_blob_name",
			"created_at", "updated_at",
		}).AddRow(suite.brandID, suite.ownerID, "Jane Doe", "jane@example.com", "555-0100",
			"Acme", "0102030405", &logoURL, &blobName, now, now))

	brand, err := suite.repo.GetByID(suite.ctx, suite.ownerID, suite.brandID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Acme", brand.BrandName)
	assert.Equal(suite.T(), logoURL, *brand.LogoURL)
	assert.Equal(suite.T(), blobName, *brand.LogoBlobName)
}

func (suite *BrandRepoTestSuite) TestList_OrderedAndPaginated() {
	first := uuid.New()
	second := uuid.New()
	newer := time.Now()
	older := newer.Add(-time.Hour)

	suite.mock.ExpectQuery(`ORDER BY created_at DESC`).
		WithArgs(suite.ownerID, 2, 0).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "owner_id", "full_name", "email", "phone_number",
			"brand_name", "owner_cedula", "logo_url", "logo_blob_name",
			"created_at", "updated_at",
		}).AddRow(first, suite.ownerID, "Jane Doe", "jane@example.com", "555-0100",
			"Newer", "0102030405", nil, nil, newer, newer).
			AddRow(second, suite.ownerID, "Jane Doe", "jane@example.com", "555-0100",
				"Older", "0102030405", nil, nil, older, older))

	brands, err := suite.repo.List(suite.ctx, suite.ownerID, 2, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), brands, 2)
	assert.Equal(suite.T(), "Newer", brands[0].BrandName)
	assert.Equal(suite.T(), "Older", brands[1].BrandName)
}

func (suite *BrandRepoTestSuite) TestUpdate_Success() {
	brand := suite.newBrand()
	now := time.Now()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(brand.OwnerID, brand.BrandName, brand.ID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	suite.mock.ExpectQuery(`UPDATE brands`).
		WithArgs(brand.FullName, brand.Email, brand.PhoneNumber, brand.BrandName, brand.OwnerCedula, brand.OwnerID, brand.ID).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))
	suite.mock.ExpectCommit()
	suite.mock.ExpectRollback()

	err := suite.repo.Update(suite.ctx, brand)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), now, brand.UpdatedAt)
}

func (suite *BrandRepoTestSuite) TestUpdate_NameConflictExcludesOwnRow() {
	brand := suite.newBrand()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(brand.OwnerID, brand.BrandName, brand.ID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	suite.mock.ExpectRollback()

	err := suite.repo.Update(suite.ctx, brand)
	assert.ErrorIs(suite.T(), err, common.ErrDuplicateBrandName)
}

func (suite *BrandRepoTestSuite) TestUpdate_NotFound() {
	brand := suite.newBrand()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(brand.OwnerID, brand.BrandName, brand.ID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	suite.mock.ExpectQuery(`UPDATE brands`).
		WithArgs(brand.FullName, brand.Email, brand.PhoneNumber, brand.BrandName, brand.OwnerCedula, brand.OwnerID, brand.ID).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}))
	suite.mock.ExpectRollback()

	err := suite.repo.Update(suite.ctx, brand)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *BrandRepoTestSuite) TestUpdateLogo_Success() {
	logoURL := "http://localhost:9000/brand-logos/obj.png"
	blobName := "obj.png"

	suite.mock.ExpectExec(`UPDATE brands`).
		WithArgs(&logoURL, &blobName, suite.ownerID, suite.brandID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.UpdateLogo(suite.ctx, suite.ownerID, suite.brandID, &logoURL, &blobName)
	assert.NoError(suite.T(), err)
}

func (suite *BrandRepoTestSuite) TestDelete_Success() {
	suite.mock.ExpectExec(`DELETE FROM brands`).
		WithArgs(suite.ownerID, suite.brandID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.ctx, suite.ownerID, suite.brandID)
	assert.NoError(suite.T(), err)
}

func (suite *BrandRepoTestSuite) TestDelete_NotOwned() {
	otherOwner := uuid.New()

	suite.mock.ExpectExec(`DELETE FROM brands`).
		WithArgs(otherOwner, suite.brandID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := suite.repo.Delete(suite.ctx, otherOwner, suite.brandID)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}
