package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Supabase Go client has no direct Realtime publish. Row mutations
	// trigger Realtime automatically; this is the hook for explicit events
	// via the Realtime REST API if they're ever needed.
	return nil
}

func (r *RealtimeClient) PublishProjectEvent(projectID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("project:%s", projectID.String())
	return r.PublishEvent(channel, event, payload)
}

func (r *RealtimeClient) PublishPaymentEvent(paymentID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("payment:%s", paymentID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads
func ProjectCreatedPayload(projectID uuid.UUID, projectNumber int64) map[string]interface{} {
	return map[string]interface{}{
		"project_id":     projectID.String(),
		"project_number": projectNumber,
		"status":         "Pending",
	}
}

func StatusChangedPayload(projectID uuid.UUID, status string) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"status":     status,
	}
}

func PaymentSubmittedPayload(paymentID uuid.UUID, amount float64) map[string]interface{} {
	return map[string]interface{}{
		"payment_id": paymentID.String(),
		"amount":     amount,
		"status":     "Pending Verification",
	}
}

func PaymentResolvedPayload(paymentID uuid.UUID, status string, projectIDs []uuid.UUID) map[string]interface{} {
	ids := make([]string, len(projectIDs))
	for i, id := range projectIDs {
		ids[i] = id.String()
	}
	return map[string]interface{}{
		"payment_id":  paymentID.String(),
		"status":      status,
		"project_ids": ids,
	}
}
