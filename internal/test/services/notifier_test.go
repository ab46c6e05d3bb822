package services_test

import (
	"bytes"
	"database/sql"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"nexus-portal-backend/internal/models"
	"nexus-portal-backend/internal/services"
)

type recordingSender struct {
	sendErr error

	to      []string
	subject []string
	body    []string
}

func (r *recordingSender) Configured() bool { return true }

func (r *recordingSender) Send(to, subject, body string) (string, error) {
	r.to = append(r.to, to)
	r.subject = append(r.subject, subject)
	r.body = append(r.body, body)
	if r.sendErr != nil {
		return "", r.sendErr
	}
	return "<id@localhost>", nil
}

type staticResolver struct {
	email string
	err   error
}

func (s *staticResolver) AdminEmail() (string, error) { return s.email, s.err }

func newNotifier(sender *recordingSender, resolver *staticResolver) *services.Notifier {
	log := logrus.New()
	log.SetOutput(bytes.NewBuffer(nil))
	return services.NewNotifier(sender, resolver, "fallback@nexushub.co", log)
}

func TestNotifier_ProjectCreatedGoesToOperator(t *testing.T) {
	sender := &recordingSender{}
	n := newNotifier(sender, &staticResolver{email: "owner@nexushub.co"})

	project := &models.Project{
		ProjectNumber: 42,
		Category:      models.CategoryAutomations,
		ProjectName:   sql.NullString{String: "Invoice bot", Valid: true},
		Description:   "Automate invoice intake",
	}
	n.ProjectCreated(project, "client@example.com")

	assert.Equal(t, []string{"owner@nexushub.co"}, sender.to)
	assert.Equal(t, "NEW ORDER: #42 (Automations)", sender.subject[0])
	assert.Contains(t, sender.body[0], "client@example.com")
	assert.Contains(t, sender.body[0], "Invoice bot")
}

func TestNotifier_SolutionDispatchedPrefersContactEmail(t *testing.T) {
	sender := &recordingSender{}
	n := newNotifier(sender, &staticResolver{email: "owner@nexushub.co"})

	project := &models.Project{
		ProjectNumber: 7,
		AdminResponse: sql.NullString{String: "Build attached.", Valid: true},
	}
	owner := &models.Profile{
		Email:        "login@example.com",
		ContactEmail: sql.NullString{String: "billing@example.com", Valid: true},
	}
	n.SolutionDispatched(project, owner)

	assert.Equal(t, []string{"billing@example.com"}, sender.to)
	assert.Equal(t, "Order Update: Build Dispatch #7", sender.subject[0])
	assert.Contains(t, sender.body[0], "Build attached.")
}

func TestNotifier_SolutionDispatchedSkipsMissingOwner(t *testing.T) {
	sender := &recordingSender{}
	n := newNotifier(sender, &staticResolver{})

	n.SolutionDispatched(&models.Project{ProjectNumber: 7}, nil)

	assert.Empty(t, sender.to)
}

func TestNotifier_StatusChangedIncludesReworkFeedback(t *testing.T) {
	sender := &recordingSender{}
	n := newNotifier(sender, &staticResolver{err: errors.New("no rows")})

	project := &models.Project{
		ProjectNumber:  9,
		Status:         models.StatusReworkRequested,
		ReworkFeedback: sql.NullString{String: "Logo is too small", Valid: true},
	}
	n.StatusChanged(project, "client@example.com")

	assert.Equal(t, []string{"fallback@nexushub.co"}, sender.to)
	assert.Equal(t, "UPDATE: Project #9 -> Rework Requested", sender.subject[0])
	assert.Contains(t, sender.body[0], "Logo is too small")
}

func TestNotifier_PaymentSubmittedListsProjects(t *testing.T) {
	sender := &recordingSender{}
	n := newNotifier(sender, &staticResolver{email: "owner@nexushub.co"})

	payment := &models.Payment{
		Amount: 1250.5,
		Status: models.PaymentPending,
	}
	n.PaymentSubmitted(payment, "client@example.com", []int64{3, 4})

	assert.Equal(t, "PAYMENT ALERT: Settlement Proof Uploaded ($1250.50)", sender.subject[0])
	assert.Contains(t, sender.body[0], "#3, #4")
	assert.Contains(t, sender.body[0], "Pending Verification")
}

func TestNotifier_SendFailureDoesNotPanic(t *testing.T) {
	sender := &recordingSender{sendErr: errors.New("connection refused")}
	n := newNotifier(sender, &staticResolver{email: "owner@nexushub.co"})

	assert.NotPanics(t, func() {
		n.ProjectCreated(&models.Project{ProjectNumber: 1, Category: models.CategoryAIServices}, "client@example.com")
	})
	assert.Len(t, sender.to, 1)
}
