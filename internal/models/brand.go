package models

import (
	"time"

	"github.com/google/uuid"
)

type Brand struct {
	ID           uuid.UUID `json:"id" db:"id"`
	OwnerID      uuid.UUID `json:"owner_id" db:"owner_id"`
	FullName     string    `json:"full_name" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	PhoneNumber  string    `json:"phone_number" db:"phone_number"`
	BrandName    string    `json:"brand_name" db:"brand_name"`
	OwnerCedula  string    `json:"owner_cedula" db:"owner_cedula"`
	LogoURL      *string   `json:"logo_url" db:"logo_url"`
	LogoBlobName *string   `json:"-" db:"logo_blob_name"` // Internal storage key, never exposed
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// BrandPatch carries a partial update. Only non-nil fields overwrite
// stored state.
type BrandPatch struct {
	FullName    *string `json:"full_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	BrandName   *string `json:"brand_name,omitempty"`
	OwnerCedula *string `json:"owner_cedula,omitempty"`
}

// Empty reports whether the patch carries no field changes.
func (p *BrandPatch) Empty() bool {
	return p.FullName == nil && p.Email == nil && p.PhoneNumber == nil &&
		p.BrandName == nil && p.OwnerCedula == nil
}
