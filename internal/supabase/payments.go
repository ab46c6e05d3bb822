package supabase

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"nexus-portal-backend/internal/models"
)

const paymentColumns = `id, customer_id, project_ids, amount, proof_url, status, created_at, updated_at`

func scanPayment(row interface{ Scan(...interface{}) error }) (*models.Payment, error) {
	var payment models.Payment
	var projectIDs []string
	err := row.Scan(
		&payment.ID, &payment.CustomerID, pq.Array(&projectIDs),
		&payment.Amount, &payment.ProofURL, &payment.Status,
		&payment.CreatedAt, &payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	payment.ProjectIDs = make([]uuid.UUID, 0, len(projectIDs))
	for _, raw := range projectIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid project id in payment: %w", err)
		}
		payment.ProjectIDs = append(payment.ProjectIDs, id)
	}
	return &payment, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// CreatePayment inserts a settlement claim. At most one unresolved payment
// may cover any given project: the claimed project rows are locked first, so
// concurrent claims on the same project serialize and the overlap count sees
// whatever the earlier claim committed.
func (d *DatabaseClient) CreatePayment(customerID uuid.UUID, projectIDs []uuid.UUID, amount float64, proofPath string) (*models.Payment, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ids := uuidStrings(projectIDs)

	// ORDER BY keeps the lock order stable when claims overlap.
	if _, err := tx.Exec(`
		SELECT id
		FROM projects
		WHERE id = ANY($1::uuid[])
		ORDER BY id
		FOR UPDATE`, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to lock projects: %w", err)
	}

	var overlapping int
	err = tx.QueryRow(`
		SELECT COUNT(*)
		FROM payments
		WHERE status = $1 AND project_ids && $2::uuid[]`,
		models.PaymentPending, pq.Array(ids)).Scan(&overlapping)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending payments: %w", err)
	}
	if overlapping > 0 {
		return nil, ErrDuplicatePendingPayment
	}

	payment, err := scanPayment(tx.QueryRow(`
		INSERT INTO payments (id, customer_id, project_ids, amount, proof_url, status)
		VALUES ($1, $2, $3::uuid[], $4, NULLIF($5, ''), $6)
		RETURNING `+paymentColumns,
		uuid.New(), customerID, pq.Array(ids), amount, proofPath, models.PaymentPending))
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}
	return payment, nil
}

func (d *DatabaseClient) GetPayment(paymentID uuid.UUID) (*models.Payment, error) {
	payment, err := scanPayment(d.db.QueryRow(`
		SELECT `+paymentColumns+`
		FROM payments
		WHERE id = $1`, paymentID))
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

func (d *DatabaseClient) ListPayments(customerID uuid.UUID) ([]models.Payment, error) {
	rows, err := d.db.Query(`
		SELECT `+paymentColumns+`
		FROM payments
		WHERE customer_id = $1
		ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	return collectPayments(rows)
}

// ListAllPayments is the admin review queue: unresolved claims first, then
// newest first.
func (d *DatabaseClient) ListAllPayments() ([]models.Payment, error) {
	rows, err := d.db.Query(`
		SELECT `+paymentColumns+`
		FROM payments
		ORDER BY (status = $1) DESC, created_at DESC`, models.PaymentPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	return collectPayments(rows)
}

// VerifyPayment settles a claim in one transaction: the payment moves to
// Verified and every referenced project moves to Completed. A payment that
// is no longer pending returns ErrPaymentResolved and touches nothing.
func (d *DatabaseClient) VerifyPayment(paymentID uuid.UUID) (*models.Payment, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	payment, err := scanPayment(tx.QueryRow(`
		UPDATE payments
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING `+paymentColumns,
		models.PaymentVerified, paymentID, models.PaymentPending))
	if err == sql.ErrNoRows {
		return nil, ErrPaymentResolved
	}
	if err != nil {
		return nil, fmt.Errorf("failed to verify payment: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE projects
		SET status = $1, updated_at = NOW()
		WHERE id = ANY($2::uuid[])`,
		models.StatusCompleted, pq.Array(uuidStrings(payment.ProjectIDs)))
	if err != nil {
		return nil, fmt.Errorf("failed to complete projects: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit verification: %w", err)
	}
	return payment, nil
}

// RejectPayment resolves a claim with no project side effect.
func (d *DatabaseClient) RejectPayment(paymentID uuid.UUID) (*models.Payment, error) {
	payment, err := scanPayment(d.db.QueryRow(`
		UPDATE payments
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING `+paymentColumns,
		models.PaymentRejected, paymentID, models.PaymentPending))
	if err == sql.ErrNoRows {
		return nil, ErrPaymentResolved
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reject payment: %w", err)
	}
	return payment, nil
}

func collectPayments(rows *sql.Rows) ([]models.Payment, error) {
	var payments []models.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, *payment)
	}
	return payments, rows.Err()
}
