package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"brandregistry/internal/common"
	"brandregistry/internal/config"
	"brandregistry/internal/models"
	"brandregistry/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// maxLogoSize caps uploaded logo files at 5MB.
const maxLogoSize = 5 * 1024 * 1024

// BrandHandlers handles the brand CRUD endpoints. Every operation is
// scoped to the authenticated caller's own brands.
type BrandHandlers struct {
	brandService    services.BrandService
	defaultPageSize int
	maxPageSize     int
}

func NewBrandHandlers(brandService services.BrandService, cfg *config.Config) *BrandHandlers {
	return &BrandHandlers{
		brandService:    brandService,
		defaultPageSize: cfg.DefaultPageSize,
		maxPageSize:     cfg.MaxPageSize,
	}
}

// CreateBrandRequest is the multipart field set for brand creation.
type CreateBrandRequest struct {
	FullName    string `form:"full_name" validate:"required"`
	Email       string `form:"email" validate:"required,email"`
	PhoneNumber string `form:"phone_number" validate:"required"`
	BrandName   string `form:"brand_name" validate:"required"`
	OwnerCedula string `form:"owner_cedula" validate:"required"`
}

// Create handles POST /brands.
func (h *BrandHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req CreateBrandRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	logo, closeLogo, err := h.readLogo(c)
	if err != nil {
		return err
	}
	defer closeLogo()

	input := &services.CreateBrandInput{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		BrandName:   req.BrandName,
		OwnerCedula: req.OwnerCedula,
	}

	brand, err := h.brandService.Create(ctx, ownerID, input, logo)
	if err != nil {
		return h.mapBrandError(c, err)
	}
	return c.JSON(http.StatusCreated, brand)
}

// List handles GET /brands with skip/limit pagination, most recent
// first. Limits outside the configured window are rejected.
func (h *BrandHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	skip := 0
	if v := c.QueryParam("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return common.SendClientError(c, "skip must be a non-negative integer")
		}
		skip = n
	}

	limit := h.defaultPageSize
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > h.maxPageSize {
			return common.SendClientError(c, fmt.Sprintf("limit must be between 1 and %d", h.maxPageSize))
		}
		limit = n
	}

	brands, err := h.brandService.List(ctx, ownerID, limit, skip)
	if err != nil {
		c.Logger().Errorf("list brands: %v", err)
		return common.SendServerError(c, "failed to list brands")
	}
	if brands == nil {
		brands = []*models.Brand{}
	}
	return c.JSON(http.StatusOK, brands)
}

// Get handles GET /brands/:id.
func (h *BrandHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendClientError(c, "invalid brand id")
	}

	brand, err := h.brandService.Get(ctx, ownerID, brandID)
	if err != nil {
		return h.mapBrandError(c, err)
	}
	return c.JSON(http.StatusOK, brand)
}

// Update handles PATCH /brands/:id. Only fields present in the
// multipart form are touched.
func (h *BrandHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendClientError(c, "invalid brand id")
	}

	patch := readPatch(c)

	logo, closeLogo, err := h.readLogo(c)
	if err != nil {
		return err
	}
	defer closeLogo()

	brand, err := h.brandService.Update(ctx, ownerID, brandID, patch, logo)
	if err != nil {
		return h.mapBrandError(c, err)
	}
	return c.JSON(http.StatusOK, brand)
}

// Delete handles DELETE /brands/:id, answering with a confirmation
// message naming the deleted brand.
func (h *BrandHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendClientError(c, "invalid brand id")
	}

	brandName, err := h.brandService.Delete(ctx, ownerID, brandID)
	if err != nil {
		return h.mapBrandError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"detail": fmt.Sprintf("Brand '%s' deleted", brandName),
	})
}

// readPatch collects the multipart fields that were actually supplied.
func readPatch(c echo.Context) *models.BrandPatch {
	patch := &models.BrandPatch{}
	if form, err := c.MultipartForm(); err == nil {
		field := func(name string) *string {
			if vals, ok := form.Value[name]; ok && len(vals) > 0 {
				return &vals[0]
			}
			return nil
		}
		patch.FullName = field("full_name")
		patch.Email = field("email")
		patch.PhoneNumber = field("phone_number")
		patch.BrandName = field("brand_name")
		patch.OwnerCedula = field("owner_cedula")
	}
	return patch
}

// readLogo pulls an optional "logo" file out of the multipart form and
// sniffs its real content type from the first bytes rather than
// trusting the client's header. Failures come back as echo HTTP errors
// so the caller aborts before touching the service.
func (h *BrandHandlers) readLogo(c echo.Context) (*services.LogoUpload, func(), error) {
	noop := func() {}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, echo.NewHTTPError(http.StatusBadRequest, "invalid logo upload")
	}

	if fileHeader.Size > maxLogoSize {
		return nil, noop, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "logo exceeds the 5MB limit")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, noop, echo.NewHTTPError(http.StatusInternalServerError, "failed to read logo")
	}

	contentType, err := sniffContentType(src)
	if err != nil {
		src.Close()
		return nil, noop, echo.NewHTTPError(http.StatusBadRequest, "logo file is empty or unreadable")
	}

	logo := &services.LogoUpload{
		Reader:      src,
		Size:        fileHeader.Size,
		ContentType: contentType,
	}
	return logo, func() { src.Close() }, nil
}

// sniffContentType detects the MIME type from the first 512 bytes and
// rewinds the file.
func sniffContentType(src multipart.File) (string, error) {
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && n == 0 {
		return "", err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}
	return http.DetectContentType(buffer[:n]), nil
}

// mapBrandError translates domain errors into the boundary statuses.
func (h *BrandHandlers) mapBrandError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return common.SendNotFoundError(c, "brand")
	case errors.Is(err, common.ErrDuplicateBrandName):
		return common.SendClientError(c, common.ErrDuplicateBrandName.Error())
	case errors.Is(err, common.ErrUnsupportedMediaType):
		return common.SendUnsupportedMediaError(c, "logo must be a JPEG, PNG, GIF or WebP image")
	default:
		c.Logger().Errorf("brand operation: %v", err)
		return common.SendServerError(c, "operation could not be completed")
	}
}
