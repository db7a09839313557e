package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/olegiv/leadpoint-go/internal/model"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "leadpoint-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	return db
}

func TestCreateUser(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	user, err := q.CreateUser(ctx, CreateUserParams{
		Email:        "test@example.com",
		PasswordHash: "hashed-password",
		Role:         model.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if user.ID == "" {
		t.Error("user.ID should not be empty")
	}
	if user.Email != "test@example.com" {
		t.Errorf("Email = %q, want %q", user.Email, "test@example.com")
	}

	got, err := q.GetUserByEmail(ctx, "test@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("GetUserByEmail ID = %q, want %q", got.ID, user.ID)
	}

	// Duplicate email violates the unique constraint
	if _, err := q.CreateUser(ctx, CreateUserParams{
		Email:        "test@example.com",
		PasswordHash: "other",
		Role:         model.RoleUser,
	}); err == nil {
		t.Error("CreateUser with duplicate email should fail")
	}
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db := testDB(t)
	q := New(db)

	_, err := q.GetUserByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestBookingLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	booking, err := q.CreateBooking(ctx, CreateBookingParams{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@example.com",
		Phone:       "555-0100",
		ServiceType: model.ServiceTermLife,
		Message:     "Looking for a quote",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if booking.Status != model.BookingPending {
		t.Errorf("Status = %q, want %q", booking.Status, model.BookingPending)
	}

	got, err := q.GetBookingByID(ctx, booking.ID)
	if err != nil {
		t.Fatalf("GetBookingByID: %v", err)
	}
	if got.FirstName != "Jane" || got.ServiceType != model.ServiceTermLife {
		t.Errorf("round-trip mismatch: %+v", got)
	}

	// Any status transition is allowed, in any order
	for _, status := range []string{model.BookingCancelled, model.BookingConfirmed, model.BookingCompleted, model.BookingPending} {
		updated, err := q.UpdateBookingStatus(ctx, booking.ID, status)
		if err != nil {
			t.Fatalf("UpdateBookingStatus(%s): %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("Status = %q, want %q", updated.Status, status)
		}
	}

	if err := q.DeleteBooking(ctx, booking.ID); err != nil {
		t.Fatalf("DeleteBooking: %v", err)
	}
	if _, err := q.GetBookingByID(ctx, booking.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("after delete err = %v, want sql.ErrNoRows", err)
	}
}

func TestUpdateBookingStatus_NotFound(t *testing.T) {
	db := testDB(t)
	q := New(db)

	_, err := q.UpdateBookingStatus(context.Background(), "missing-id", model.BookingConfirmed)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestListBookings_NewestFirst(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		booking, err := q.CreateBooking(ctx, CreateBookingParams{
			FirstName:   "Lead",
			LastName:    "N",
			Email:       email,
			Phone:       "555-0100",
			ServiceType: model.ServiceIndexAnnuity,
		})
		if err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
		// Space out created_at so ordering is deterministic
		createdAt := time.Now().UTC().Add(time.Duration(i) * time.Second)
		if _, err := db.Exec(`UPDATE bookings SET created_at = ? WHERE id = ?`, createdAt, booking.ID); err != nil {
			t.Fatalf("backdating booking: %v", err)
		}
	}

	bookings, err := q.ListBookings(ctx)
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	if len(bookings) != 3 {
		t.Fatalf("len = %d, want 3", len(bookings))
	}
	if bookings[0].Email != "c@example.com" || bookings[2].Email != "a@example.com" {
		t.Errorf("ordering wrong: %s, %s, %s", bookings[0].Email, bookings[1].Email, bookings[2].Email)
	}

	// Idempotence: repeated listing with no writes is identical
	again, err := q.ListBookings(ctx)
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	for i := range bookings {
		if again[i].ID != bookings[i].ID {
			t.Errorf("listing not stable at index %d", i)
		}
	}
}

func TestContactLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	contact, err := q.CreateContact(ctx, CreateContactParams{
		Name:    "Jane Doe",
		Email:   "jane@x.com",
		Subject: "Question",
		Message: "Hi",
	})
	if err != nil {
		t.Fatalf("CreateContact: %v", err)
	}
	if contact.ID == "" || contact.CreatedAt.IsZero() {
		t.Errorf("missing generated fields: %+v", contact)
	}

	contacts, err := q.ListContacts(ctx)
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("len = %d, want 1", len(contacts))
	}

	if err := q.DeleteContact(ctx, contact.ID); err != nil {
		t.Fatalf("DeleteContact: %v", err)
	}
	if err := q.DeleteContact(ctx, contact.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("second delete err = %v, want sql.ErrNoRows", err)
	}
}

func TestEmailLog(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	user, err := q.CreateUser(ctx, CreateUserParams{
		Email:        "admin@example.com",
		PasswordHash: "hash",
		Role:         model.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	for _, status := range []string{model.EmailSent, model.EmailFailed} {
		if _, err := q.CreateEmail(ctx, CreateEmailParams{
			To:      "client@example.com",
			Subject: "Your consultation",
			HTML:    "<p>Hello</p>",
			Text:    "Hello",
			SentBy:  user.ID,
			Status:  status,
		}); err != nil {
			t.Fatalf("CreateEmail(%s): %v", status, err)
		}
	}

	emails, err := q.ListEmails(ctx, 0)
	if err != nil {
		t.Fatalf("ListEmails: %v", err)
	}
	if len(emails) != 2 {
		t.Fatalf("len = %d, want 2", len(emails))
	}
}

func TestListEmails_Limit(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	user, err := q.CreateUser(ctx, CreateUserParams{
		Email:        "admin@example.com",
		PasswordHash: "hash",
		Role:         model.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	for i := 0; i < 5; i++ {
		if _, err := q.CreateEmail(ctx, CreateEmailParams{
			To:      "client@example.com",
			Subject: "n",
			HTML:    "<p>n</p>",
			SentBy:  user.ID,
			Status:  model.EmailSent,
		}); err != nil {
			t.Fatalf("CreateEmail: %v", err)
		}
	}

	emails, err := q.ListEmails(ctx, 3)
	if err != nil {
		t.Fatalf("ListEmails: %v", err)
	}
	if len(emails) != 3 {
		t.Errorf("len = %d, want 3", len(emails))
	}
}

func TestSeed(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := Seed(ctx, db, "admin@example.com", "changeme"); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	q := New(db)
	user, err := q.GetUserByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if user.Role != model.RoleAdmin {
		t.Errorf("Role = %q, want %q", user.Role, model.RoleAdmin)
	}

	// Seeding twice is a no-op
	if err := Seed(ctx, db, "admin@example.com", "changeme"); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	n, err := q.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if n != 1 {
		t.Errorf("CountUsers = %d, want 1", n)
	}
}

func TestEventLog(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	old := time.Now().UTC().Add(-100 * 24 * time.Hour)
	if _, err := q.CreateEvent(ctx, CreateEventParams{
		Level:     model.EventLevelWarning,
		Category:  model.EventCategorySystem,
		Message:   "old event",
		CreatedAt: old,
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if _, err := q.CreateEvent(ctx, CreateEventParams{
		Level:    model.EventLevelError,
		Category: model.EventCategoryEmail,
		Message:  "recent event",
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	deleted, err := q.DeleteEventsBefore(ctx, time.Now().UTC().Add(-90*24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteEventsBefore: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
}
