package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/space-booking/internal/persistence"
	"github.com/example/space-booking/internal/testfixtures"
)

func TestBookingRepository_CreateAndGet(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	booking := testfixtures.NewBookingFixture()
	if err := harness.Bookings.CreateBookingIfAvailable(ctx, booking.Persistence()); err != nil {
		t.Fatalf("CreateBookingIfAvailable failed: %v", err)
	}

	retrieved, err := harness.Bookings.GetBooking(ctx, booking.ID)
	if err != nil {
		t.Fatalf("GetBooking failed: %v", err)
	}
	if retrieved.ClientID != booking.ClientID {
		t.Errorf("Expected client id '%s', got '%s'", booking.ClientID, retrieved.ClientID)
	}
	if retrieved.BookingStartDate != booking.BookingStartDate {
		t.Errorf("Expected start date '%s', got '%s'", booking.BookingStartDate, retrieved.BookingStartDate)
	}
	if retrieved.CreatedAt.IsZero() || retrieved.UpdatedAt.IsZero() {
		t.Errorf("Expected creation to stamp timestamps, got %v / %v", retrieved.CreatedAt, retrieved.UpdatedAt)
	}
}

func TestBookingRepository_CreateRejectsIncompleteRecord(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	incomplete := testfixtures.NewBookingFixture().Persistence()
	incomplete.ClientID = ""
	if err := harness.Bookings.CreateBookingIfAvailable(ctx, incomplete); !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("Expected ErrConstraintViolation for missing client id, got %v", err)
	}
}

func TestBookingRepository_CreateDetectsOverlap(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	existing := testfixtures.NewBookingFixture(
		testfixtures.WithBookingInterval("2030-04-01", "09:00", "2030-04-01", "12:00"),
	)
	if err := harness.Bookings.CreateBookingIfAvailable(ctx, existing.Persistence()); err != nil {
		t.Fatalf("CreateBookingIfAvailable failed: %v", err)
	}

	overlapping := testfixtures.NewBookingFixture(
		testfixtures.WithBookingInterval("2030-04-01", "11:00", "2030-04-01", "14:00"),
	)
	if err := harness.Bookings.CreateBookingIfAvailable(ctx, overlapping.Persistence()); !errors.Is(err, persistence.ErrOverlap) {
		t.Fatalf("Expected ErrOverlap for an overlapping booking, got %v", err)
	}

	contained := testfixtures.NewBookingFixture(
		testfixtures.WithBookingInterval("2030-04-01", "10:00", "2030-04-01", "11:00"),
	)
	if err := harness.Bookings.CreateBookingIfAvailable(ctx, contained.Persistence()); !errors.Is(err, persistence.ErrOverlap) {
		t.Fatalf("Expected ErrOverlap for a contained booking, got %v", err)
	}
}

func TestBookingRepository_CreateAllowsTouchingEndpoints(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	morning := testfixtures.NewBookingFixture(
		testfixtures.WithBookingInterval("2030-04-02", "09:00", "2030-04-02", "12:00"),
	)
	if err := harness.Bookings.CreateBookingIfAvailable(ctx, morning.Persistence()); err != nil {
		t.Fatalf("CreateBookingIfAvailable failed: %v", err)
	}

	afternoon := testfixtures.NewBookingFixture(
		testfixtures.WithBookingInterval("2030-04-02", "12:00", "2030-04-02", "15:00"),
	)
	if err := harness.Bookings.CreateBookingIfAvailable(ctx, afternoon.Persistence()); err != nil {
		t.Fatalf("Expected a booking starting at the previous end to succeed, got %v", err)
	}
}

func TestBookingRepository_CreateZeroLengthCandidate(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	existing := testfixtures.NewBookingFixture(
		testfixtures.WithBookingInterval("2030-04-03", "09:00", "2030-04-03", "12:00"),
	)
	if err := harness.Bookings.CreateBookingIfAvailable(ctx, existing.Persistence()); err != nil {
		t.Fatalf("CreateBookingIfAvailable failed: %v", err)
	}

	// A zero-length booking inside an occupied interval still collides.
	inside := testfixtures.NewBookingFixture(
		testfixtures.WithBookingInterval("2030-04-03", "10:00", "2030-04-03", "10:00"),
	)
	if err := harness.Bookings.CreateBookingIfAvailable(ctx, inside.Persistence()); !errors.Is(err, persistence.ErrOverlap) {
		t.Fatalf("Expected ErrOverlap for a zero-length booking inside an occupied slot, got %v", err)
	}

	// At the boundary it does not.
	boundary := testfixtures.NewBookingFixture(
		testfixtures.WithBookingInterval("2030-04-03", "12:00", "2030-04-03", "12:00"),
	)
	if err := harness.Bookings.CreateBookingIfAvailable(ctx, boundary.Persistence()); err != nil {
		t.Fatalf("Expected a zero-length booking at the boundary to succeed, got %v", err)
	}
}

func TestBookingRepository_Update(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	booking := testfixtures.NewBookingFixture(
		testfixtures.WithBookingInterval("2030-04-04", "09:00", "2030-04-04", "12:00"),
	)
	if err := harness.Bookings.CreateBookingIfAvailable(ctx, booking.Persistence()); err != nil {
		t.Fatalf("CreateBookingIfAvailable failed: %v", err)
	}

	// Shifting a booking within its own slot must not conflict with itself.
	updated := testfixtures.NewBookingFixture(
		testfixtures.WithBookingID(booking.ID),
		testfixtures.WithBookingInterval("2030-04-04", "10:00", "2030-04-04", "13:00"),
	).Persistence()
	updated.Company = "Moved Corp"
	if err := harness.Bookings.UpdateBookingIfAvailable(ctx, updated); err != nil {
		t.Fatalf("UpdateBookingIfAvailable failed: %v", err)
	}

	retrieved, err := harness.Bookings.GetBooking(ctx, booking.ID)
	if err != nil {
		t.Fatalf("GetBooking failed: %v", err)
	}
	if retrieved.Company != "Moved Corp" {
		t.Errorf("Expected company 'Moved Corp', got '%s'", retrieved.Company)
	}
	if retrieved.BookingStartTime != "10:00" {
		t.Errorf("Expected start time '10:00', got '%s'", retrieved.BookingStartTime)
	}
	if retrieved.ClientID != booking.ClientID {
		t.Errorf("Expected client id to be preserved, got '%s'", retrieved.ClientID)
	}
}

func TestBookingRepository_UpdateDetectsOverlap(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	first := testfixtures.NewBookingFixture(
		testfixtures.WithBookingInterval("2030-04-05", "09:00", "2030-04-05", "12:00"),
	)
	second := testfixtures.NewBookingFixture(
		testfixtures.WithBookingInterval("2030-04-05", "13:00", "2030-04-05", "15:00"),
	)
	for _, fixture := range []testfixtures.BookingFixture{first, second} {
		if err := harness.Bookings.CreateBookingIfAvailable(ctx, fixture.Persistence()); err != nil {
			t.Fatalf("CreateBookingIfAvailable failed: %v", err)
		}
	}

	moved := testfixtures.NewBookingFixture(
		testfixtures.WithBookingID(second.ID),
		testfixtures.WithBookingInterval("2030-04-05", "11:00", "2030-04-05", "14:00"),
	).Persistence()
	if err := harness.Bookings.UpdateBookingIfAvailable(ctx, moved); !errors.Is(err, persistence.ErrOverlap) {
		t.Fatalf("Expected ErrOverlap when moving onto another booking, got %v", err)
	}
}

func TestBookingRepository_UpdateMissing(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	missing := testfixtures.NewBookingFixture().Persistence()
	if err := harness.Bookings.UpdateBookingIfAvailable(ctx, missing); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for missing booking, got %v", err)
	}
}

func TestBookingRepository_DeleteFreesSlot(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	booking := testfixtures.NewBookingFixture(
		testfixtures.WithBookingInterval("2030-04-06", "09:00", "2030-04-06", "12:00"),
	)
	if err := harness.Bookings.CreateBookingIfAvailable(ctx, booking.Persistence()); err != nil {
		t.Fatalf("CreateBookingIfAvailable failed: %v", err)
	}

	if err := harness.Bookings.DeleteBooking(ctx, booking.ID); err != nil {
		t.Fatalf("DeleteBooking failed: %v", err)
	}
	if _, err := harness.Bookings.GetBooking(ctx, booking.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := harness.Bookings.DeleteBooking(ctx, booking.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for repeated delete, got %v", err)
	}

	replacement := testfixtures.NewBookingFixture(
		testfixtures.WithBookingInterval("2030-04-06", "09:00", "2030-04-06", "12:00"),
	)
	if err := harness.Bookings.CreateBookingIfAvailable(ctx, replacement.Persistence()); err != nil {
		t.Fatalf("Expected the freed slot to be bookable again, got %v", err)
	}
}

func TestBookingRepository_ListOrdering(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	late := testfixtures.NewBookingFixture(
		testfixtures.WithBookingInterval("2030-04-07", "14:00", "2030-04-07", "16:00"),
	)
	early := testfixtures.NewBookingFixture(
		testfixtures.WithBookingInterval("2030-04-07", "08:00", "2030-04-07", "10:00"),
	)
	for _, fixture := range []testfixtures.BookingFixture{late, early} {
		if err := harness.Bookings.CreateBookingIfAvailable(ctx, fixture.Persistence()); err != nil {
			t.Fatalf("CreateBookingIfAvailable failed: %v", err)
		}
	}

	bookings, err := harness.Bookings.ListBookings(ctx)
	if err != nil {
		t.Fatalf("ListBookings failed: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("Expected 2 bookings, got %d", len(bookings))
	}
	if bookings[0].ID != early.ID {
		t.Errorf("Expected bookings ordered by start, got '%s' first", bookings[0].ID)
	}
}

func TestBookingRepository_ListByClient(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	owner := testfixtures.NewClientFixture()
	mine := testfixtures.NewBookingFixture(testfixtures.WithBookingClient(owner))
	other := testfixtures.NewBookingFixture()
	for _, fixture := range []testfixtures.BookingFixture{mine, other} {
		if err := harness.Bookings.CreateBookingIfAvailable(ctx, fixture.Persistence()); err != nil {
			t.Fatalf("CreateBookingIfAvailable failed: %v", err)
		}
	}

	bookings, err := harness.Bookings.ListBookingsByClient(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListBookingsByClient failed: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("Expected 1 booking for the client, got %d", len(bookings))
	}
	if bookings[0].ID != mine.ID {
		t.Errorf("Expected booking '%s', got '%s'", mine.ID, bookings[0].ID)
	}
}
