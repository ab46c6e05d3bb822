package supabase_test

import (
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nexus-portal-backend/internal/models"
	"nexus-portal-backend/internal/supabase"
)

func paymentRow(paymentID, customerID, projectID uuid.UUID, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "customer_id", "project_ids", "amount",
		"proof_url", "status", "created_at", "updated_at",
	}).AddRow(
		paymentID.String(), customerID.String(),
		[]byte("{"+projectID.String()+"}"), 120.50,
		"proof-1-receipt.png", status, now, now,
	)
}

func TestCreatePayment_LocksProjectsBeforeOverlapCheck(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	client := supabase.NewDatabaseClientFromConn(db)

	customerID := uuid.New()
	projectID := uuid.New()
	paymentID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("FOR UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("INSERT INTO payments").
		WillReturnRows(paymentRow(paymentID, customerID, projectID, models.PaymentPending))
	mock.ExpectCommit()

	payment, err := client.CreatePayment(customerID, []uuid.UUID{projectID}, 120.50, "proof-1-receipt.png")
	require.NoError(t, err)
	assert.Equal(t, paymentID, payment.ID)
	assert.Equal(t, []uuid.UUID{projectID}, payment.ProjectIDs)
	assert.Equal(t, models.PaymentPending, payment.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePayment_RejectsOverlappingPendingClaim(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	client := supabase.NewDatabaseClientFromConn(db)

	projectID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("FOR UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))
	// A claim committed by a concurrent submission is visible once the row
	// locks are acquired.
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err = client.CreatePayment(uuid.New(), []uuid.UUID{projectID}, 250, "proof-2-receipt.png")
	assert.ErrorIs(t, err, supabase.ErrDuplicatePendingPayment)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyPayment_CompletesProjectsInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	client := supabase.NewDatabaseClientFromConn(db)

	customerID := uuid.New()
	projectID := uuid.New()
	paymentID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE payments").
		WillReturnRows(paymentRow(paymentID, customerID, projectID, models.PaymentVerified))
	mock.ExpectExec("UPDATE projects").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	payment, err := client.VerifyPayment(paymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentVerified, payment.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyPayment_AlreadyResolved(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	client := supabase.NewDatabaseClientFromConn(db)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE payments").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err = client.VerifyPayment(uuid.New())
	assert.ErrorIs(t, err, supabase.ErrPaymentResolved)

	assert.NoError(t, mock.ExpectationsWereMet())
}
