package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Payment statuses. A payment is created Pending Verification and resolved
// exactly once by an admin.
const (
	PaymentPending  = "Pending Verification"
	PaymentVerified = "Verified"
	PaymentRejected = "Rejected"
)

type Payment struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	ProjectIDs []uuid.UUID
	Amount     float64
	ProofURL   sql.NullString
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
