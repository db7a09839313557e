// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mailer

import (
	"fmt"
	"strings"

	"github.com/olegiv/leadpoint-go/internal/model"
)

// Shared email layout. Header/content wrappers match the site's branding.
const (
	emailStyle = `body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: linear-gradient(135deg, #1e3a5f 0%, #4a9a9e 100%); color: white; padding: 20px; border-radius: 8px 8px 0 0; }
.content { background: #f8f9fa; padding: 20px; border-radius: 0 0 8px 8px; }
.field { margin-bottom: 15px; }
.label { font-weight: bold; color: #1e3a5f; }
.message-box { background: white; padding: 15px; border-left: 4px solid #d4a52e; margin-top: 10px; }`

	emailShell = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>%s</style></head>
<body><div class="container"><div class="header"><h2>%s</h2></div><div class="content">%s</div></div></body>
</html>`
)

func wrapEmail(title, content string) string {
	return fmt.Sprintf(emailShell, emailStyle, title, content)
}

func field(label, value string) string {
	return fmt.Sprintf(`<div class="field"><div class="label">%s:</div><div>%s</div></div>`, label, value)
}

// ContactNotification builds the admin notification for a new contact
// form submission. The reply-to is set to the submitter so the admin can
// answer directly.
func ContactNotification(to string, c model.Contact) Message {
	var b strings.Builder
	b.WriteString(field("Name", EscapeHTML(c.Name)))
	b.WriteString(field("Email", EscapeHTML(c.Email)))
	if c.Phone != "" {
		b.WriteString(field("Phone", EscapeHTML(c.Phone)))
	}
	b.WriteString(field("Subject", EscapeHTML(c.Subject)))
	b.WriteString(fmt.Sprintf(`<div class="field"><div class="label">Message:</div><div class="message-box">%s</div></div>`,
		FormatMessage(c.Message)))

	return Message{
		To:      []string{to},
		Subject: "New Contact: " + c.Subject,
		HTML:    wrapEmail("New Contact Form Submission", b.String()),
		ReplyTo: c.Email,
	}
}

// BookingNotification builds the admin notification for a new booking
// request.
func BookingNotification(to string, bk model.Booking) Message {
	var b strings.Builder
	b.WriteString(field("Client Name", EscapeHTML(bk.FirstName)+" "+EscapeHTML(bk.LastName)))
	b.WriteString(field("Email", EscapeHTML(bk.Email)))
	b.WriteString(field("Phone", EscapeHTML(bk.Phone)))
	b.WriteString(field("Service Type", EscapeHTML(model.ServiceTypeLabel(bk.ServiceType))))
	if bk.Message != "" {
		b.WriteString(fmt.Sprintf(`<div class="field"><div class="label">Message:</div><div class="message-box">%s</div></div>`,
			FormatMessage(bk.Message)))
	}

	return Message{
		To:      []string{to},
		Subject: "New Booking: " + model.ServiceTypeLabel(bk.ServiceType),
		HTML:    wrapEmail("New Booking Request", b.String()),
		ReplyTo: bk.Email,
	}
}

// BookingConfirmation builds the confirmation sent to the customer after
// a booking request is received.
func BookingConfirmation(bk model.Booking) Message {
	content := fmt.Sprintf(`<p>Dear %s,</p>
<p>Thank you for requesting a consultation for <strong>%s</strong>.</p>
<p>We've received your request and one of our experienced agents will contact you within 24 hours to schedule your free consultation.</p>`,
		EscapeHTML(bk.FirstName), EscapeHTML(model.ServiceTypeLabel(bk.ServiceType)))

	return Message{
		To:      []string{bk.Email},
		Subject: "Thank You for Your Consultation Request",
		HTML:    wrapEmail("Thank You for Your Interest!", content),
	}
}
