// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"regexp"
	"strings"
)

// Field length caps applied during sanitization.
const (
	maxNameLen    = 100
	maxEmailLen   = 255
	maxPhoneLen   = 50
	maxSubjectLen = 200
	maxMessageLen = 2000
)

// Outbound email limits.
const (
	maxRecipients = 50
	minContentLen = 10
	maxContentLen = 100000
)

// emailPattern is a deliberately simple local@domain.tld check. Stricter
// RFC 5322 parsing rejects addresses real users type.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validEmailAddress reports whether addr looks like an email address and
// is free of header-injection sequences.
func validEmailAddress(addr string) bool {
	if addr == "" || len(addr) > maxEmailLen {
		return false
	}
	if containsHeaderInjection(addr) {
		return false
	}
	return emailPattern.MatchString(addr)
}

// containsHeaderInjection checks for CR/LF characters and the encoded
// %0a sequence used in SMTP header-injection attacks.
func containsHeaderInjection(s string) bool {
	if strings.ContainsAny(s, "\r\n") {
		return true
	}
	return strings.Contains(strings.ToLower(s), "%0a")
}

// truncate caps s at max characters.
func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// sanitizeText trims whitespace and caps length.
func sanitizeText(s string, max int) string {
	return truncate(strings.TrimSpace(s), max)
}

// normalizeEmail trims, lowercases and caps an email address.
func normalizeEmail(s string) string {
	return truncate(strings.ToLower(strings.TrimSpace(s)), maxEmailLen)
}
