package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Project categories. The portal runs three service lines behind the same
// intake flow.
const (
	CategoryAIServices  = "AI Services"
	CategoryWebsiteApps = "Websites & Apps"
	CategoryAutomations = "Automations"
)

// Project statuses. Pending → In Progress → Customer Review →
// {Accepted | Rework Requested}; Rework Requested loops back through an
// admin re-dispatch into Customer Review. Completed and Paid are terminal
// and only reached through payment settlement.
const (
	StatusPending         = "Pending"
	StatusInProgress      = "In Progress"
	StatusCustomerReview  = "Customer Review"
	StatusAccepted        = "Accepted"
	StatusReworkRequested = "Rework Requested"
	StatusCompleted       = "Completed"
	StatusPaid            = "Paid"
)

// statusTransitions is the allowed-transition table checked before every
// status write. Settlement bypasses it: verified payments move their
// projects straight to Completed.
var statusTransitions = map[string][]string{
	StatusPending:         {StatusInProgress, StatusCustomerReview},
	StatusInProgress:      {StatusCustomerReview},
	StatusCustomerReview:  {StatusAccepted, StatusReworkRequested},
	StatusReworkRequested: {StatusCustomerReview},
	StatusAccepted:        {StatusCompleted, StatusPaid},
	StatusCompleted:       {},
	StatusPaid:            {},
}

func ValidStatus(status string) bool {
	_, ok := statusTransitions[status]
	return ok
}

func ValidCategory(category string) bool {
	switch category {
	case CategoryAIServices, CategoryWebsiteApps, CategoryAutomations:
		return true
	}
	return false
}

// CanTransition reports whether a status write from -> to is allowed.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SettledStatuses is the terminal status set. Queries filtering the active
// pipeline build their predicate from this list.
var SettledStatuses = []string{StatusCompleted, StatusPaid}

// Settled reports whether a project has left the active pipeline.
func Settled(status string) bool {
	for _, s := range SettledStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Project struct {
	ID             uuid.UUID
	ProjectNumber  int64
	CustomerID     uuid.UUID
	Category       string
	Status         string
	ProjectName    sql.NullString
	Description    string

	// Category-specific spec fields, all optional at intake.
	SpecStyleNumber sql.NullString
	SpecColors      sql.NullString
	SpecSizes       sql.NullString
	SpecApparelType sql.NullString
	SpecGender      sql.NullString
	SpecAgeGroup    sql.NullString

	// Requested deliverable flags.
	WantsNewStyle        bool
	WantsTagCreation     bool
	WantsColorVariations bool
	WantsStyleVariations bool
	WantsMarketingPoster bool

	AdminResponse  sql.NullString
	ReworkFeedback sql.NullString
	BillAmount     float64
	Attachments    []string
	AdminFiles     []string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Owner is the joined customer profile, populated on admin reads.
	Owner *Profile
}
