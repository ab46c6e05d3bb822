package services

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"nexus-portal-backend/internal/mailer"
	"nexus-portal-backend/internal/models"
)

// Notifier composes the business notification mails. Every send is
// fire-and-forget from the caller's perspective: the triggering record has
// already committed, so failures are logged and swallowed.
type Notifier struct {
	sender   mailer.Sender
	resolver mailer.AdminResolver
	admin    string
	log      *logrus.Logger
}

func NewNotifier(sender mailer.Sender, resolver mailer.AdminResolver, adminEmail string, log *logrus.Logger) *Notifier {
	return &Notifier{
		sender:   sender,
		resolver: resolver,
		admin:    adminEmail,
		log:      log,
	}
}

func (n *Notifier) send(to, subject, body string) {
	recipient, err := mailer.ResolveRecipient(to, n.resolver, n.admin)
	if err != nil {
		n.log.WithError(err).WithField("to", to).Warn("notification dropped: bad recipient")
		return
	}

	messageID, err := n.sender.Send(recipient, subject, body)
	if err != nil {
		n.log.WithError(err).WithField("recipient", recipient).Warn("notification send failed")
		return
	}

	n.log.WithFields(logrus.Fields{
		"recipient":  recipient,
		"message_id": messageID,
	}).Info("notification sent")
}

// ProjectCreated tells the operator a new order landed.
func (n *Notifier) ProjectCreated(project *models.Project, customerEmail string) {
	n.send(mailer.AdminToken,
		fmt.Sprintf("NEW ORDER: #%d (%s)", project.ProjectNumber, project.Category),
		fmt.Sprintf("Customer %s has launched a %s project.\n\nProject: %s\nBrief: %s",
			customerEmail, project.Category, project.ProjectName.String, project.Description))
}

// SolutionDispatched tells the customer their order is ready for review.
func (n *Notifier) SolutionDispatched(project *models.Project, owner *models.Profile) {
	if owner == nil {
		return
	}
	n.send(owner.NotifyEmail(),
		fmt.Sprintf("Order Update: Build Dispatch #%d", project.ProjectNumber),
		fmt.Sprintf("Hello, your order for project #%d has been finalized and dispatched by our experts.\n\n"+
			"Please log in to your Nexus Dashboard to review the deliverables and settle the invoice.\n\n"+
			"Expert Comments: %s",
			project.ProjectNumber, project.AdminResponse.String))
}

// StatusChanged tells the operator the customer moved a project.
func (n *Notifier) StatusChanged(project *models.Project, customerEmail string) {
	detail := "The customer approved the build."
	if project.Status == models.StatusReworkRequested {
		detail = fmt.Sprintf("Changes: %s", project.ReworkFeedback.String)
	}
	n.send(mailer.AdminToken,
		fmt.Sprintf("UPDATE: Project #%d -> %s", project.ProjectNumber, project.Status),
		fmt.Sprintf("Customer %s updated project #%d to %q.\n\n%s",
			customerEmail, project.ProjectNumber, project.Status, detail))
}

// PaymentSubmitted tells the operator a settlement proof landed.
func (n *Notifier) PaymentSubmitted(payment *models.Payment, customerEmail string, projectNumbers []int64) {
	numbers := make([]string, len(projectNumbers))
	for i, num := range projectNumbers {
		numbers[i] = fmt.Sprintf("#%d", num)
	}
	n.send(mailer.AdminToken,
		fmt.Sprintf("PAYMENT ALERT: Settlement Proof Uploaded ($%.2f)", payment.Amount),
		fmt.Sprintf("Customer %s has uploaded a proof of payment for the following projects: %s.\n\n"+
			"Total Amount: $%.2f\nStatus: %s",
			customerEmail, strings.Join(numbers, ", "), payment.Amount, payment.Status))
}
