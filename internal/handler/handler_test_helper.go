package handler

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/mattn/go-sqlite3"

	"github.com/olegiv/leadpoint-go/internal/auth"
	"github.com/olegiv/leadpoint-go/internal/config"
	"github.com/olegiv/leadpoint-go/internal/mailer"
	"github.com/olegiv/leadpoint-go/internal/middleware"
	"github.com/olegiv/leadpoint-go/internal/model"
	"github.com/olegiv/leadpoint-go/internal/store"
)

const testJWTSecret = "handler-test-secret-0123456789abcdef"

// testDB creates an in-memory SQLite database with the required schema for testing.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'USER',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX idx_users_email ON users(email);

		CREATE TABLE bookings (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL,
			service_type TEXT NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'PENDING',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX idx_bookings_created_at ON bookings(created_at DESC);

		CREATE TABLE contacts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			subject TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX idx_contacts_created_at ON contacts(created_at DESC);

		CREATE TABLE emails (
			id TEXT PRIMARY KEY,
			to_addr TEXT NOT NULL,
			subject TEXT NOT NULL,
			html TEXT NOT NULL,
			text TEXT NOT NULL DEFAULT '',
			sent_by TEXT REFERENCES users(id),
			status TEXT NOT NULL DEFAULT 'PENDING',
			message_id TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX idx_emails_created_at ON emails(created_at DESC);

		CREATE TABLE events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL DEFAULT 'info',
			category TEXT NOT NULL DEFAULT 'system',
			message TEXT NOT NULL,
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// testConfig returns a config suitable for handler tests.
func testConfig() *config.Config {
	return &config.Config{
		Env:          "test",
		JWTSecret:    testJWTSecret,
		EmailFrom:    "Test Sender <sender@example.com>",
		EmailReplyTo: "sender@example.com",
		AdminEmail:   "leads@example.com",
	}
}

// stubMailer records sent messages for assertions.
type stubMailer struct {
	mu     sync.Mutex
	sent   []mailer.Message
	result mailer.Result
	err    error
}

func (m *stubMailer) Send(_ context.Context, msg mailer.Message) (mailer.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.result, m.err
}

func (m *stubMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *stubMailer) sentMessages() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mailer.Message, len(m.sent))
	copy(out, m.sent)
	return out
}

// waitForSends polls until the stub has recorded at least n messages.
// Needed because notification emails are dispatched off the request path.
func (m *stubMailer) waitForSends(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if m.sentCount() >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d sent messages, got %d", n, m.sentCount())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// requestWithClaims injects verified claims, simulating the auth middleware.
func requestWithClaims(r *http.Request, user model.User) *http.Request {
	claims := &auth.Claims{UserID: user.ID, Email: user.Email, Role: user.Role}
	return r.WithContext(context.WithValue(r.Context(), middleware.ContextKeyClaims, claims))
}

// testHandler creates a handler backed by an in-memory DB and a stub mailer.
func testHandler(t *testing.T) (*Handler, *sql.DB, *stubMailer) {
	t.Helper()
	db := testDB(t)
	m := &stubMailer{result: mailer.Result{MessageID: "msg-123", Transport: "resend"}}
	h := New(db, testConfig(), m, testLogger(), nil)
	return h, db, m
}

// createTestUser creates a user with a bcrypt hash of the given password.
func createTestUser(t *testing.T, db *sql.DB, email, role, password string) model.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

// authToken issues a bearer token for the given user.
func authToken(t *testing.T, user model.User) string {
	t.Helper()
	token, err := auth.IssueToken(user.ID, user.Email, user.Role, []byte(testJWTSecret))
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	return token
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// assertStatus checks if the response status code matches the expected value.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}
