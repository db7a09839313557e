// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Email send statuses.
const (
	EmailSent    = "SENT"
	EmailFailed  = "FAILED"
	EmailPending = "PENDING"
)

// Email is an audit record of an outbound send attempt. A record is
// written after every attempt, success or failure, and never mutated.
type Email struct {
	ID        string    `json:"id"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	HTML      string    `json:"html"`
	Text      string    `json:"text,omitempty"`
	SentBy    string    `json:"sentBy"`
	Status    string    `json:"status"`
	MessageID string    `json:"messageId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
