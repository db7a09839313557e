// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olegiv/leadpoint-go/internal/model"
	"github.com/olegiv/leadpoint-go/internal/store"
)

func validContactRequest() CreateContactRequest {
	return CreateContactRequest{
		Name:    "Jane Doe",
		Email:   "jane@x.com",
		Subject: "Question",
		Message: "Hi",
	}
}

func TestCreateContact(t *testing.T) {
	h, _, m := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", postJSON(t, validContactRequest()))
	rr := httptest.NewRecorder()
	h.CreateContact(rr, req)

	assertStatus(t, rr.Code, http.StatusCreated)

	var resp struct {
		Contact model.Contact `json:"contact"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Contact.ID == "" {
		t.Error("contact has no id")
	}
	if resp.Contact.CreatedAt.IsZero() {
		t.Error("contact has no createdAt")
	}

	m.waitForSends(t, 1)
	sent := m.sentMessages()
	if sent[0].To[0] != "leads@example.com" {
		t.Errorf("notification to = %q, want leads@example.com", sent[0].To[0])
	}
	if sent[0].ReplyTo != "jane@x.com" {
		t.Errorf("notification replyTo = %q, want submitter address", sent[0].ReplyTo)
	}
}

func TestCreateContact_RejectsSubjectHeaderInjection(t *testing.T) {
	h, db, m := testHandler(t)

	// The subject is interpolated into the notification's Subject header,
	// so newline sequences would let a submitter add SMTP headers.
	subjects := []string{
		"Q\r\nBcc: victim@evil.example",
		"Q\rBcc: victim@evil.example",
		"Q\nBcc: victim@evil.example",
		"Q%0aBcc: victim@evil.example",
		"Q%0ABcc: victim@evil.example",
	}

	for _, subject := range subjects {
		body := validContactRequest()
		body.Subject = subject

		req := httptest.NewRequest(http.MethodPost, "/api/contact", postJSON(t, body))
		rr := httptest.NewRecorder()
		h.CreateContact(rr, req)
		assertStatus(t, rr.Code, http.StatusBadRequest)
	}

	if m.sentCount() != 0 {
		t.Errorf("rejected submissions triggered %d sends", m.sentCount())
	}
	contacts, err := store.New(db).ListContacts(context.Background())
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if len(contacts) != 0 {
		t.Errorf("rejected submissions stored %d contacts", len(contacts))
	}
}

func TestCreateContact_EmailFailureDoesNotAffect201(t *testing.T) {
	h, _, m := testHandler(t)
	m.err = errors.New("smtp: connection refused")

	req := httptest.NewRequest(http.MethodPost, "/api/contact", postJSON(t, validContactRequest()))
	rr := httptest.NewRecorder()
	h.CreateContact(rr, req)

	assertStatus(t, rr.Code, http.StatusCreated)
}

func TestCreateContact_MissingFields(t *testing.T) {
	h, _, _ := testHandler(t)

	mutations := []struct {
		name string
		mod  func(*CreateContactRequest)
	}{
		{"name", func(r *CreateContactRequest) { r.Name = "" }},
		{"email", func(r *CreateContactRequest) { r.Email = "" }},
		{"subject", func(r *CreateContactRequest) { r.Subject = "  " }},
		{"message", func(r *CreateContactRequest) { r.Message = "" }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			body := validContactRequest()
			tt.mod(&body)

			req := httptest.NewRequest(http.MethodPost, "/api/contact", postJSON(t, body))
			rr := httptest.NewRecorder()
			h.CreateContact(rr, req)
			assertStatus(t, rr.Code, http.StatusBadRequest)
		})
	}
}

func TestCreateContact_PhoneOptional(t *testing.T) {
	h, _, _ := testHandler(t)

	body := validContactRequest()
	body.Phone = ""

	req := httptest.NewRequest(http.MethodPost, "/api/contact", postJSON(t, body))
	rr := httptest.NewRecorder()
	h.CreateContact(rr, req)
	assertStatus(t, rr.Code, http.StatusCreated)
}

func TestCreateContact_InvalidEmail(t *testing.T) {
	h, _, _ := testHandler(t)

	for _, email := range []string{"not-an-email", "no@tld", "a b@example.com"} {
		body := validContactRequest()
		body.Email = email

		req := httptest.NewRequest(http.MethodPost, "/api/contact", postJSON(t, body))
		rr := httptest.NewRecorder()
		h.CreateContact(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("email %q: status = %d, want 400", email, rr.Code)
		}
	}
}

func TestCreateContact_CapsFieldLengths(t *testing.T) {
	h, _, _ := testHandler(t)

	body := validContactRequest()
	body.Name = strings.Repeat("a", 500)
	body.Message = strings.Repeat("b", 5000)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", postJSON(t, body))
	rr := httptest.NewRecorder()
	h.CreateContact(rr, req)
	assertStatus(t, rr.Code, http.StatusCreated)

	var resp struct {
		Contact model.Contact `json:"contact"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Contact.Name) != maxNameLen {
		t.Errorf("len(name) = %d, want %d", len(resp.Contact.Name), maxNameLen)
	}
	if len(resp.Contact.Message) != maxMessageLen {
		t.Errorf("len(message) = %d, want %d", len(resp.Contact.Message), maxMessageLen)
	}
}

func TestListContacts(t *testing.T) {
	h, db, _ := testHandler(t)
	q := store.New(db)

	for _, name := range []string{"First", "Second"} {
		if _, err := q.CreateContact(context.Background(), store.CreateContactParams{
			Name: name, Email: "x@example.com", Subject: "s", Message: "m",
		}); err != nil {
			t.Fatalf("CreateContact: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	rr := httptest.NewRecorder()
	h.ListContacts(rr, req)
	assertStatus(t, rr.Code, http.StatusOK)

	var resp struct {
		Contacts []model.Contact `json:"contacts"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Contacts) != 2 {
		t.Errorf("len(contacts) = %d, want 2", len(resp.Contacts))
	}
}

func TestDeleteContact(t *testing.T) {
	h, db, _ := testHandler(t)

	contact, err := store.New(db).CreateContact(context.Background(), store.CreateContactParams{
		Name: "Jane", Email: "jane@x.com", Subject: "s", Message: "m",
	})
	if err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/contact/"+contact.ID, nil)
	req = requestWithURLParams(req, map[string]string{"id": contact.ID})
	rr := httptest.NewRecorder()
	h.DeleteContact(rr, req)
	assertStatus(t, rr.Code, http.StatusOK)

	req = httptest.NewRequest(http.MethodDelete, "/api/contact/"+contact.ID, nil)
	req = requestWithURLParams(req, map[string]string{"id": contact.ID})
	rr = httptest.NewRecorder()
	h.DeleteContact(rr, req)
	assertStatus(t, rr.Code, http.StatusNotFound)
}
