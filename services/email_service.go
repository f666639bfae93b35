package services

import (
	"fmt"
	"sync"

	"merchantdesk_server/lib"
	"merchantdesk_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/resend/resend-go/v3"
)

var (
	emailClient     *resend.Client
	emailClientOnce = sync.Once{}
)

// EmailService sends transactional mail. All sends are fire-and-forget from
// the caller's point of view; a mail failure never fails an order.
type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	emailClientOnce.Do(func() {
		emailClient = resend.NewClient(apiKey)
	})
	return emailClient
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendOrderConfirmationEmail tells the customer their order is in.
func (es *EmailService) SendOrderConfirmationEmail(toEmail, name string, orderId uuid.UUID, totalCents int64) error {
	subject := "Your order has been received"
	body := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Thanks for your order! We have received it and it is being prepared.</p>
<p>Order reference: <strong>%s</strong><br>
Order total: <strong>%s</strong></p>`,
		name, orderId, lib.FormatCents(totalCents))

	return es.SendEmail([]string{toEmail}, subject, body)
}

// SendPaymentReceiptEmail confirms a reconciled wallet payment.
func (es *EmailService) SendPaymentReceiptEmail(toEmail, name string, orderId uuid.UUID, amountCents int64) error {
	subject := "Payment received"
	body := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>We have received your payment of <strong>%s</strong> for order <strong>%s</strong>.</p>
<p>Thank you!</p>`,
		name, lib.FormatCents(amountCents), orderId)

	return es.SendEmail([]string{toEmail}, subject, body)
}
