package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type Profile struct {
	ID           uuid.UUID
	Email        string
	Role         string
	BrandName    sql.NullString
	Tagline      sql.NullString
	Description  sql.NullString
	ContactEmail sql.NullString
	PhoneNumber  sql.NullString
	BrandAssets  []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NotifyEmail is the address business mail for this profile goes to:
// the brand contact address when set, the account address otherwise.
func (p *Profile) NotifyEmail() string {
	if p.ContactEmail.Valid && p.ContactEmail.String != "" {
		return p.ContactEmail.String
	}
	return p.Email
}
