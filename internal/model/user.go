// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application: User, Booking, Contact and the outbound Email log.
package model

import "time"

// User roles.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User represents an admin console account. Users are provisioned by
// seeding or direct store access; there is no public signup endpoint.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
