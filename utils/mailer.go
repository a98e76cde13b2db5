package utils

import (
	"fmt"
	"net/smtp"
	"os"

	"github.com/rs/zerolog/log"
)

// SMTPMailer sends transactional mail over plain SMTP. Both sends are
// best-effort: failures are logged and reported as false, never propagated,
// so no state transition depends on mail delivery.
type SMTPMailer struct{}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{}
}

func (m *SMTPMailer) SendOTPEmail(to, code string) bool {
	// Without SMTP configured the code is logged instead, for development.
	if os.Getenv("SMTP_HOST") == "" || os.Getenv("SMTP_USER") == "" {
		log.Info().Str("to", to).Str("otp", code).Msg("SMTP not configured, OTP logged instead of sent")
		return true
	}

	body := fmt.Sprintf("Your OTP code is: %s\n\nThis code will expire in 10 minutes.", code)
	if err := sendEmail(to, "Password Reset OTP", body); err != nil {
		log.Error().Err(err).Str("to", to).Msg("failed to send OTP email")
		return false
	}
	return true
}

func (m *SMTPMailer) SendVerificationOutcome(to string, approved bool, fullName, reason string) bool {
	subject := "Your account has been verified"
	body := fmt.Sprintf("Hi %s,\n\nYour medical professional verification has been approved. You now have full access to your account.", fullName)
	if !approved {
		subject = "Your verification was rejected"
		body = fmt.Sprintf("Hi %s,\n\nYour medical professional verification was rejected.\n\nReason: %s\n\nYou can resubmit your documents at any time.", fullName, reason)
	}

	if os.Getenv("SMTP_HOST") == "" || os.Getenv("SMTP_USER") == "" {
		log.Info().Str("to", to).Bool("approved", approved).Msg("SMTP not configured, verification outcome logged instead of sent")
		return true
	}

	if err := sendEmail(to, subject, body); err != nil {
		log.Error().Err(err).Str("to", to).Msg("failed to send verification outcome email")
		return false
	}
	return true
}

func sendEmail(to, subject, body string) error {
	from := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}

	sender := os.Getenv("SMTP_FROM")
	if sender == "" {
		sender = from
	}

	addr := fmt.Sprintf("%s:%s", host, port)
	msg := []byte(
		"From: " + sender + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body + "\r\n")

	auth := smtp.PlainAuth("", from, pass, host)
	return smtp.SendMail(addr, auth, sender, []string{to}, msg)
}
