package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"event-marketplace/models"
)

// EmailService sends transactional email through SendGrid. With no API key
// configured it logs and skips, so local runs do not need an account.
type EmailService struct {
	client *sendgrid.Client
	sender string
}

// NewEmailService initializes the service from SENDGRID_API_KEY and
// EMAIL_SENDER.
func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	es := &EmailService{sender: os.Getenv("EMAIL_SENDER")}
	if apiKey == "" {
		log.Println("SENDGRID_API_KEY not set, emails will be logged only")
		return es
	}
	es.client = sendgrid.NewSendClient(apiKey)
	return es
}

// SendEmail sends a plain-text email to the given recipient
func (es *EmailService) SendEmail(toEmail, subject, content string) error {
	if es.client == nil {
		log.Printf("email skipped (no API key): to=%s subject=%q", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("Event Marketplace", es.sender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, content, content)

	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: status %d", resp.StatusCode)
	}
	return nil
}

// SendOrderConfirmationEmail sends an order confirmation to the customer
func (es *EmailService) SendOrderConfirmationEmail(toEmail string, order models.Order) error {
	subject := "Order Confirmation - Event Marketplace"
	content := fmt.Sprintf(
		"Dear %s,\n\nYour order (ID: %s) has been placed successfully.\n\nTotal Amount: $%.2f\nPayment Method: %s\nStatus: %s\n\nThank you for shopping with us!\n",
		order.CustomerDetails.Name,
		order.ID.Hex(),
		order.TotalAmount,
		order.PaymentMethod,
		order.Status,
	)
	return es.SendEmail(toEmail, subject, content)
}

// SendMembershipExpiryNotice tells a vendor their membership has expired
func (es *EmailService) SendMembershipExpiryNotice(toEmail, vendorName string) error {
	subject := "Membership Expired - Event Marketplace"
	content := fmt.Sprintf(
		"Dear %s,\n\nYour vendor membership has expired. Please contact the marketplace administrator to renew it.\n",
		vendorName,
	)
	return es.SendEmail(toEmail, subject, content)
}
