// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// resendRequest is the JSON payload for POST /emails.
type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
	ReplyTo string   `json:"reply_to,omitempty"`
	CC      []string `json:"cc,omitempty"`
	BCC     []string `json:"bcc,omitempty"`
}

// resendResponse is the subset of the API response we consume.
type resendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"` // set on error responses
}

// sendResend delivers a message through the Resend HTTP API and returns
// the provider message id.
func (d *Dispatcher) sendResend(ctx context.Context, msg Message) (string, error) {
	payload := resendRequest{
		From:    d.cfg.From,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
		CC:      msg.CC,
		BCC:     msg.BCC,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding resend payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.ResendBaseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.cfg.ResendAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("resend send: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var result resendResponse
	_ = json.Unmarshal(respBody, &result)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if result.Message != "" {
			return "", fmt.Errorf("resend returned %d: %s", resp.StatusCode, result.Message)
		}
		return "", fmt.Errorf("resend returned %d", resp.StatusCode)
	}

	return result.ID, nil
}
