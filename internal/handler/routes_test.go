// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/leadpoint-go/internal/model"
)

func TestRoutes_AdminProtection(t *testing.T) {
	h, db, _ := testHandler(t)
	router := h.Routes()

	admin := createTestUser(t, db, "admin@example.com", model.RoleAdmin, "password123")
	viewer := createTestUser(t, db, "viewer@example.com", model.RoleUser, "password123")

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"non-admin token", authToken(t, viewer), http.StatusForbidden},
		{"admin token", authToken(t, admin), http.StatusOK},
	}

	paths := []string{"/bookings", "/contact", "/email"}
	for _, tt := range tests {
		for _, path := range paths {
			t.Run(tt.name+" "+path, func(t *testing.T) {
				req := httptest.NewRequest(http.MethodGet, path, nil)
				if tt.token != "" {
					req.Header.Set("Authorization", "Bearer "+tt.token)
				}
				rr := httptest.NewRecorder()
				router.ServeHTTP(rr, req)
				assertStatus(t, rr.Code, tt.wantStatus)
			})
		}
	}
}

func TestRoutes_PublicEndpoints(t *testing.T) {
	h, _, m := testHandler(t)
	router := h.Routes()

	req := httptest.NewRequest(http.MethodPost, "/contact", postJSON(t, validContactRequest()))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assertStatus(t, rr.Code, http.StatusCreated)
	m.waitForSends(t, 1)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assertStatus(t, rr.Code, http.StatusOK)
}

func TestRoutes_LoginThroughRouter(t *testing.T) {
	h, db, _ := testHandler(t)
	router := h.Routes()
	createTestUser(t, db, "admin@example.com", model.RoleAdmin, "password123")

	req := httptest.NewRequest(http.MethodPost, "/auth/login", postJSON(t, map[string]string{
		"email":    "admin@example.com",
		"password": "password123",
	}))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assertStatus(t, rr.Code, http.StatusOK)

	var resp struct {
		Token string     `json:"token"`
		User  model.User `json:"user"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("empty token")
	}

	// The issued token works against a protected route
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assertStatus(t, rr.Code, http.StatusOK)
}

func TestRoutes_Preflight(t *testing.T) {
	h, _, _ := testHandler(t)
	h.cfg.CORSOrigins = []string{"https://example.com"}
	router := h.Routes()

	req := httptest.NewRequest(http.MethodOptions, "/contact", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assertStatus(t, rr.Code, http.StatusNoContent)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q, want https://example.com", got)
	}
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	h, _, _ := testHandler(t)
	router := h.Routes()

	req := httptest.NewRequest(http.MethodPut, "/contact", postJSON(t, validContactRequest()))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assertStatus(t, rr.Code, http.StatusMethodNotAllowed)
}
