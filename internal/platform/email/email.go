// Copyright (c) 2026 Contactbook. All rights reserved.
// Author: igor.ivn.olga@gmail.com

/*
Package email delivers transactional mail for the authentication flows.

It carries the confirmation and password-reset links that embed single-purpose
email tokens. Delivery is an asynchronous side effect: the triggering request
never fails because SMTP is down — failures are logged and swallowed.
*/
package email

import (
	"fmt"
	"log/slog"

	mail "github.com/go-mail/mail"
)

// Purpose selects which message template a dispatch renders.
type Purpose int

const (
	// PurposeConfirm carries an email-confirmation link.
	PurposeConfirm Purpose = iota
	// PurposeReset carries a password-reset link.
	PurposeReset
)

// Sender dispatches a single transactional message.
//
// Implementations must be safe for concurrent use; the auth service calls
// Send from per-request goroutines.
type Sender interface {
	Send(to, displayName, host, token string, purpose Purpose) error
}

// # SMTP Implementation

// SMTPConfig holds the immutable dialer settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPSender implements [Sender] over SMTP with STARTTLS negotiation.
type SMTPSender struct {
	cfg    SMTPConfig
	logger *slog.Logger
}

// NewSMTPSender constructs an [SMTPSender].
func NewSMTPSender(cfg SMTPConfig, logger *slog.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, logger: logger}
}

/*
Send composes and dispatches a confirmation or reset message.

Description: Builds a multipart (text + HTML) message whose action link embeds
the email-scoped token, then dials SMTP synchronously. Callers wrap this in a
goroutine; see [Service].

Parameters:
  - to: string (recipient address)
  - displayName: string (recipient's username, used in the greeting)
  - host: string (origin host used to build the action link)
  - token: string (email-scoped JWT)
  - purpose: Purpose

Returns:
  - error: Dial or delivery failures
*/
func (sender *SMTPSender) Send(to, displayName, host, token string, purpose Purpose) error {
	subject := "Confirm your email"
	action := "confirm your email address"
	link := fmt.Sprintf("%s/api/auth/confirmed_email/%s", host, token)

	if purpose == PurposeReset {
		subject = "Reset your password"
		action = "reset your password"
		link = fmt.Sprintf("%s/api/auth/reset_password/%s", host, token)
	}

	textBody := fmt.Sprintf("Hi %s,\n\nFollow this link to %s:\n\n%s\n\nThe link expires in one hour.\n", displayName, action, link)
	htmlBody := fmt.Sprintf(
		`<p>Hi %s,</p><p>Follow this link to %s:</p><p><a href=%q>%s</a></p><p>The link expires in one hour.</p>`,
		displayName, action, link, link,
	)

	message := mail.NewMessage()
	message.SetAddressHeader("From", sender.cfg.From, sender.cfg.FromName)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", textBody)
	message.AddAlternative("text/html", htmlBody)

	dialer := mail.NewDialer(sender.cfg.Host, sender.cfg.Port, sender.cfg.Username, sender.cfg.Password)

	if err := dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("email: smtp send failed: %w", err)
	}

	sender.logger.Info("email_sent",
		slog.String("to", to),
		slog.String("subject", subject),
	)

	return nil
}
