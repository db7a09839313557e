// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON {message} error response. The underlying
// error detail is exposed only outside production.
func (h *Handler) writeError(w http.ResponseWriter, statusCode int, message string, err error) {
	body := map[string]any{"message": message}
	if err != nil && !h.cfg.IsProduction() {
		body["error"] = err.Error()
	}
	writeJSON(w, statusCode, body)
}

// decodeJSON decodes the request body into v. Writes a 400 response and
// returns false when the body is not valid JSON.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}
