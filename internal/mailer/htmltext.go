// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mailer

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// stripPolicy removes all markup, leaving only text content.
var stripPolicy = bluemonday.StrictPolicy()

// HTMLToText derives a plain-text body from an HTML one. Used when a
// message supplies no explicit text part.
func HTMLToText(s string) string {
	text := stripPolicy.Sanitize(s)
	text = html.UnescapeString(text)
	return strings.TrimSpace(text)
}

// EscapeHTML escapes user-supplied text for interpolation into an HTML
// email template.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// FormatMessage escapes a message body and preserves its line breaks.
func FormatMessage(s string) string {
	return strings.ReplaceAll(EscapeHTML(s), "\n", "<br>")
}
