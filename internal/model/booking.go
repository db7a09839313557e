// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Service types offered through the booking form.
const (
	ServiceTermLife           = "TERM_LIFE"
	ServicePermanentLife      = "PERMANENT_LIFE"
	ServiceIndexUniversalLife = "INDEX_UNIVERSAL_LIFE"
	ServiceIndexAnnuity       = "INDEX_ANNUITY"
)

// Booking statuses.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCompleted = "COMPLETED"
	BookingCancelled = "CANCELLED"
)

// Booking is a consultation request submitted through the public booking
// form. New bookings always start in PENDING status.
type Booking struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	ServiceType string    `json:"serviceType"`
	Message     string    `json:"message,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidServiceType reports whether s is one of the fixed service types.
func ValidServiceType(s string) bool {
	switch s {
	case ServiceTermLife, ServicePermanentLife, ServiceIndexUniversalLife, ServiceIndexAnnuity:
		return true
	}
	return false
}

// ValidBookingStatus reports whether s is a known booking status. Any
// status may transition to any other; no ordering is enforced.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// ServiceTypeLabel returns the human-readable label for a service type.
// Unknown values are returned unchanged.
func ServiceTypeLabel(s string) string {
	switch s {
	case ServiceTermLife:
		return "Term Life Insurance"
	case ServicePermanentLife:
		return "Permanent Life Insurance"
	case ServiceIndexUniversalLife:
		return "Index Universal Life"
	case ServiceIndexAnnuity:
		return "Index Annuity"
	}
	return s
}
