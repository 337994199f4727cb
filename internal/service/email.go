package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/Girthywoody/law-loyalty-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, to, toName, subject, plainText, htmlContent string) error {
	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}

func (s *emailService) SendPasswordSetupEmail(ctx context.Context, email, name, link, restaurantName string) error {
	subject := "Set up your loyalty account password"
	intro := "Your loyalty account has been approved."
	if restaurantName != "" {
		intro = fmt.Sprintf("Your loyalty account for %s has been approved.", restaurantName)
	}
	plainText := fmt.Sprintf("Hello %s,\n\n%s\n\nSet your password here: %s\n\nThe JLaw Group Team", name, intro, link)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Welcome!</h2>
				<p>Hello %s,</p>
				<p>%s</p>
				<p><a href="%s">Set your password</a></p>
			</body>
		</html>
	`, name, intro, link)
	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *emailService) SendPasswordResetEmail(ctx context.Context, email, link string) error {
	subject := "Reset your loyalty account password"
	plainText := fmt.Sprintf("A password reset was requested for this account.\n\nReset it here: %s\n\nIf you did not request this, you can ignore this email.", link)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<p>A password reset was requested for this account.</p>
				<p><a href="%s">Reset your password</a></p>
				<p>If you did not request this, you can ignore this email.</p>
			</body>
		</html>
	`, link)
	return s.send(ctx, email, "", subject, plainText, htmlContent)
}

func (s *emailService) SendStatusNotification(ctx context.Context, email, name, restaurantName, status string) error {
	subject := fmt.Sprintf("Account status update - %s", restaurantName)
	plainText := fmt.Sprintf("Hello %s,\n\nYour loyalty account at %s is now: %s.\n\nThe JLaw Group Team", name, restaurantName, status)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<p>Hello %s,</p>
				<p>Your loyalty account at <strong>%s</strong> is now: <strong>%s</strong>.</p>
			</body>
		</html>
	`, name, restaurantName, status)
	return s.send(ctx, email, name, subject, plainText, htmlContent)
}
