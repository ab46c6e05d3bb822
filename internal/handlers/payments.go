package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"nexus-portal-backend/internal/models"
	"nexus-portal-backend/internal/services"
	"nexus-portal-backend/internal/supabase"
)

type PaymentsHandler struct {
	dbClient       *supabase.DatabaseClient
	storageClient  *supabase.StorageClient
	realtimeClient *supabase.RealtimeClient
	notifier       *services.Notifier
}

func NewPaymentsHandler(dbClient *supabase.DatabaseClient, proofs *supabase.StorageClient, realtimeClient *supabase.RealtimeClient, notifier *services.Notifier) *PaymentsHandler {
	return &PaymentsHandler{
		dbClient:       dbClient,
		storageClient:  proofs,
		realtimeClient: realtimeClient,
		notifier:       notifier,
	}
}

// CreatePayment godoc
// @Summary     Submit a settlement claim
// @Description Multipart form: a proof-of-payment file, the covered project ids and the claimed amount. Every project must belong to the caller and must not already be covered by an unresolved claim.
// @Tags        payments
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       proof formData file true "Proof of payment"
// @Param       project_ids formData string true "Covered project IDs (repeated field)"
// @Param       amount formData number true "Claimed amount"
// @Success     200 {object} models.PaymentResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /payments [post]
func (h *PaymentsHandler) CreatePayment(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "profile not found"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid multipart form", Message: err.Error()})
		return
	}

	rawIDs := form.Value["project_ids"]
	if len(rawIDs) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "at least one project id is required"})
		return
	}
	projectIDs := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id: " + raw})
			return
		}
		projectIDs = append(projectIDs, id)
	}

	amountValues := form.Value["amount"]
	if len(amountValues) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "amount is required"})
		return
	}
	amount, err := strconv.ParseFloat(amountValues[0], 64)
	if err != nil || amount <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "amount must be a positive number"})
		return
	}

	proofs := form.File["proof"]
	if len(proofs) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "proof file is required"})
		return
	}

	// Every referenced project must belong to the claiming customer.
	owned, err := h.dbClient.CountProjectsOwnedBy(projectIDs, profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to validate projects",
			Message: err.Error(),
		})
		return
	}
	if owned != len(projectIDs) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "all projects must belong to the caller"})
		return
	}

	file, err := proofs[0].Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to open proof file", Message: err.Error()})
		return
	}
	data, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read proof file", Message: err.Error()})
		return
	}

	objectName := supabase.ObjectName("proof", proofs[0].Filename)
	proofPath, _, err := h.storageClient.UploadFile(objectName, proofs[0].Header.Get("Content-Type"), data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to upload proof",
			Message: err.Error(),
		})
		return
	}

	payment, err := h.dbClient.CreatePayment(profile.ID, projectIDs, amount, proofPath)
	if err == supabase.ErrDuplicatePendingPayment {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error: "a pending payment already covers one of the selected projects",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create payment",
			Message: err.Error(),
		})
		return
	}

	h.realtimeClient.PublishPaymentEvent(payment.ID, "payment_submitted",
		supabase.PaymentSubmittedPayload(payment.ID, payment.Amount))
	h.notifier.PaymentSubmitted(payment, profile.Email, h.projectNumbers(payment.ProjectIDs))

	c.JSON(http.StatusOK, paymentResponse(payment))
}

// ListPayments godoc
// @Summary     List payments
// @Description Customers see their own claims; admins see the review queue with unresolved claims first.
// @Tags        payments
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.PaymentListResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /payments [get]
func (h *PaymentsHandler) ListPayments(c *gin.Context) {
	var (
		payments []models.Payment
		err      error
	)
	if isAdmin(c) {
		payments, err = h.dbClient.ListAllPayments()
	} else {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
			return
		}
		payments, err = h.dbClient.ListPayments(userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list payments",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = paymentResponse(&payments[i])
	}

	c.JSON(http.StatusOK, models.PaymentListResponse{Payments: responses})
}

// VerifyPayment godoc
// @Summary     Verify a settlement claim (admin)
// @Description One transaction: the payment moves to Verified and every referenced project moves to Completed. Verifying an already-resolved payment is a conflict.
// @Tags        payments
// @Produce     json
// @Security    Bearer
// @Param       payment_id path string true "Payment ID (UUID)"
// @Success     200 {object} models.PaymentResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /payments/{payment_id}/verify [post]
func (h *PaymentsHandler) VerifyPayment(c *gin.Context) {
	h.resolvePayment(c, true)
}

// RejectPayment godoc
// @Summary     Reject a settlement claim (admin)
// @Description The payment moves to Rejected with no project side effect.
// @Tags        payments
// @Produce     json
// @Security    Bearer
// @Param       payment_id path string true "Payment ID (UUID)"
// @Success     200 {object} models.PaymentResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /payments/{payment_id}/reject [post]
func (h *PaymentsHandler) RejectPayment(c *gin.Context) {
	h.resolvePayment(c, false)
}

func (h *PaymentsHandler) resolvePayment(c *gin.Context, verified bool) {
	paymentID, err := uuid.Parse(c.Param("payment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid payment id"})
		return
	}

	var payment *models.Payment
	if verified {
		payment, err = h.dbClient.VerifyPayment(paymentID)
	} else {
		payment, err = h.dbClient.RejectPayment(paymentID)
	}
	if err == supabase.ErrPaymentResolved {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error: "payment has already been resolved",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to resolve payment",
			Message: err.Error(),
		})
		return
	}

	h.realtimeClient.PublishPaymentEvent(payment.ID, "payment_resolved",
		supabase.PaymentResolvedPayload(payment.ID, payment.Status, payment.ProjectIDs))

	c.JSON(http.StatusOK, paymentResponse(payment))
}

// projectNumbers resolves ids to human-facing numbers for notification
// copy. Lookup failures just shorten the list.
func (h *PaymentsHandler) projectNumbers(projectIDs []uuid.UUID) []int64 {
	numbers := make([]int64, 0, len(projectIDs))
	for _, id := range projectIDs {
		if project, err := h.dbClient.GetProject(id); err == nil {
			numbers = append(numbers, project.ProjectNumber)
		}
	}
	return numbers
}
