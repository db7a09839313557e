// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mailer

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime/multipart"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strings"
)

// sendSMTP delivers a message through the configured SMTP relay. Port 465
// uses implicit TLS; any other port goes through smtp.SendMail, which
// upgrades with STARTTLS when the server offers it.
func (d *Dispatcher) sendSMTP(msg Message) error {
	addr := fmt.Sprintf("%s:%d", d.cfg.SMTPHost, d.cfg.SMTPPort)
	auth := smtp.PlainAuth("", d.cfg.SMTPUser, d.cfg.SMTPPassword, d.cfg.SMTPHost)

	from, err := envelopeAddress(d.cfg.From)
	if err != nil {
		return fmt.Errorf("parsing sender address: %w", err)
	}

	rcpts := make([]string, 0, len(msg.To)+len(msg.CC)+len(msg.BCC))
	rcpts = append(rcpts, msg.To...)
	rcpts = append(rcpts, msg.CC...)
	rcpts = append(rcpts, msg.BCC...)

	body, err := buildMIME(d.cfg.From, msg)
	if err != nil {
		return fmt.Errorf("building message: %w", err)
	}

	if d.cfg.SMTPPort == 465 {
		return d.sendImplicitTLS(addr, auth, from, rcpts, body)
	}
	if err := smtp.SendMail(addr, auth, from, rcpts, body); err != nil {
		return fmt.Errorf("smtp relay: %w", err)
	}
	return nil
}

// sendImplicitTLS handles SMTPS delivery, where the TLS handshake happens
// before any SMTP traffic.
func (d *Dispatcher) sendImplicitTLS(addr string, auth smtp.Auth, from string, rcpts []string, body []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: d.cfg.SMTPHost})
	if err != nil {
		return fmt.Errorf("tls dial: %w", err)
	}

	client, err := smtp.NewClient(conn, d.cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("smtp mail: %w", err)
	}
	for _, rcpt := range rcpts {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}

	return client.Quit()
}

// envelopeAddress extracts the bare address from a "Name <addr>" sender.
func envelopeAddress(from string) (string, error) {
	parsed, err := mail.ParseAddress(from)
	if err != nil {
		return "", err
	}
	return parsed.Address, nil
}

// headerValue strips CR and LF from a header value. Header text comes
// from user input in places (the contact form subject), so a raw newline
// here would let a submitter inject additional SMTP headers.
func headerValue(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

// buildMIME assembles a multipart/alternative message with text and HTML
// parts.
func buildMIME(from string, msg Message) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", headerValue(from))
	fmt.Fprintf(&buf, "To: %s\r\n", headerValue(strings.Join(msg.To, ", ")))
	if len(msg.CC) > 0 {
		fmt.Fprintf(&buf, "Cc: %s\r\n", headerValue(strings.Join(msg.CC, ", ")))
	}
	if msg.ReplyTo != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", headerValue(msg.ReplyTo))
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", headerValue(msg.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")

	mw := multipart.NewWriter(&buf)
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", mw.Boundary())

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=utf-8")
	part, err := mw.CreatePart(textHeader)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(msg.Text)); err != nil {
		return nil, err
	}

	htmlHeader := textproto.MIMEHeader{}
	htmlHeader.Set("Content-Type", "text/html; charset=utf-8")
	part, err = mw.CreatePart(htmlHeader)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(msg.HTML)); err != nil {
		return nil, err
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
