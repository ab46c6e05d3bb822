package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"nexus-portal-backend/internal/handlers"
	"nexus-portal-backend/internal/models"
)

type fakeSender struct {
	configured bool
	sendErr    error

	sentTo      string
	sentSubject string
	sentBody    string
	calls       int
}

func (f *fakeSender) Configured() bool { return f.configured }

func (f *fakeSender) Send(to, subject, body string) (string, error) {
	f.calls++
	f.sentTo = to
	f.sentSubject = subject
	f.sentBody = body
	if f.sendErr != nil {
		return "", f.sendErr
	}
	return "<test-message-id@localhost>", nil
}

type fakeResolver struct {
	email string
	err   error
}

func (f *fakeResolver) AdminEmail() (string, error) { return f.email, f.err }

func notifyRouter(sender *fakeSender, resolver *fakeResolver, adminEmail string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(bytes.NewBuffer(nil))

	h := handlers.NewNotifyHandler(sender, resolver, adminEmail, log)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.POST("/api/v1/notify", h.Notify)
	return router
}

func postNotify(router *gin.Engine, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/api/v1/notify", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestNotify_SendsToPlainAddress(t *testing.T) {
	sender := &fakeSender{configured: true}
	router := notifyRouter(sender, &fakeResolver{}, "admin@nexushub.co")

	w := postNotify(router, models.NotifyRequest{
		To:      "client@example.com",
		Subject: "Order Update",
		Body:    "Your build is ready.",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "client@example.com", sender.sentTo)
	assert.Equal(t, "Order Update", sender.sentSubject)

	var resp models.NotifyResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "client@example.com", resp.Recipient)
	assert.NotEmpty(t, resp.MessageID)
}

func TestNotify_AdminTokenResolvesToOperatorAddress(t *testing.T) {
	sender := &fakeSender{configured: true}
	router := notifyRouter(sender, &fakeResolver{email: "owner@nexushub.co"}, "fallback@nexushub.co")

	w := postNotify(router, models.NotifyRequest{
		To:      "admin",
		Subject: "NEW ORDER",
		Body:    "A new project came in.",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "owner@nexushub.co", sender.sentTo)
	assert.NotEqual(t, "admin", sender.sentTo)
}

func TestNotify_AdminTokenFallsBackToConfiguredAddress(t *testing.T) {
	sender := &fakeSender{configured: true}
	router := notifyRouter(sender, &fakeResolver{err: errors.New("no rows")}, "fallback@nexushub.co")

	w := postNotify(router, models.NotifyRequest{
		To:      "admin",
		Subject: "NEW ORDER",
		Body:    "A new project came in.",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fallback@nexushub.co", sender.sentTo)
}

func TestNotify_MissingCredentialsFailsBeforeSend(t *testing.T) {
	sender := &fakeSender{configured: false}
	router := notifyRouter(sender, &fakeResolver{}, "admin@nexushub.co")

	w := postNotify(router, models.NotifyRequest{
		To:      "client@example.com",
		Subject: "Order Update",
		Body:    "Your build is ready.",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "mail server configuration missing")
	assert.Zero(t, sender.calls, "no send attempt without credentials")
}

func TestNotify_InvalidRecipient(t *testing.T) {
	sender := &fakeSender{configured: true}
	router := notifyRouter(sender, &fakeResolver{}, "admin@nexushub.co")

	w := postNotify(router, models.NotifyRequest{
		To:      "not-an-address",
		Subject: "subject",
		Body:    "body",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid recipient")
	assert.Zero(t, sender.calls)
}

func TestNotify_MissingFields(t *testing.T) {
	sender := &fakeSender{configured: true}
	router := notifyRouter(sender, &fakeResolver{}, "admin@nexushub.co")

	w := postNotify(router, map[string]string{"to": "client@example.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, sender.calls)
}

func TestNotify_SMTPFailure(t *testing.T) {
	sender := &fakeSender{configured: true, sendErr: errors.New("dial tcp: connection refused")}
	router := notifyRouter(sender, &fakeResolver{}, "admin@nexushub.co")

	w := postNotify(router, models.NotifyRequest{
		To:      "client@example.com",
		Subject: "subject",
		Body:    "body",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SMTP transmission error")
}

func TestNotify_MethodNotAllowed(t *testing.T) {
	sender := &fakeSender{configured: true}
	router := notifyRouter(sender, &fakeResolver{}, "admin@nexushub.co")

	req, _ := http.NewRequest("GET", "/api/v1/notify", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
