package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/space-booking/internal/persistence"
)

// BookingRepository implements persistence.BookingRepository using SQLite.
//
// Interval instants are stored as RFC3339 UTC strings, which compare
// lexicographically in the same order as the instants themselves, so overlap
// predicates run directly in SQL.
type BookingRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewBookingRepository creates a new SQLite booking repository.
func NewBookingRepository(pool *ConnectionPool) *BookingRepository {
	return &BookingRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

const bookingColumns = `id, client_id, client_name, client_email, company, type_of_space_needed,
	booking_start_date, booking_start_time, booking_end_date, booking_end_time,
	start_at, end_at, attendees, reminder, created_at, updated_at`

// CreateBookingIfAvailable inserts the booking only if its interval does not
// overlap any stored booking. The check and the insert share one transaction,
// closing the check-then-act race between concurrent requests.
func (r *BookingRepository) CreateBookingIfAvailable(ctx context.Context, booking persistence.Booking) error {
	if booking.ID == "" || booking.ClientID == "" {
		return persistence.ErrConstraintViolation
	}
	if booking.StartAt.IsZero() || booking.EndAt.IsZero() {
		return persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := r.ensureNoOverlapTx(ctx, tx, booking, ""); err != nil {
			return err
		}

		query := `
			INSERT INTO bookings (` + bookingColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err := r.helper.ExecTx(ctx, tx, query, bookingArgs(booking)...)
		return err
	})
	if err != nil {
		if errors.Is(err, persistence.ErrOverlap) {
			return persistence.ErrOverlap
		}
		return r.mapper.MapError(err)
	}

	return nil
}

// GetBooking retrieves a booking by id.
func (r *BookingRepository) GetBooking(ctx context.Context, id string) (persistence.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	booking, err := scanBookingFields(r.helper.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Booking{}, persistence.ErrNotFound
		}
		return persistence.Booking{}, r.mapper.MapError(err)
	}
	return booking, nil
}

// ListBookings returns every stored booking ordered by start instant.
func (r *BookingRepository) ListBookings(ctx context.Context) ([]persistence.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY start_at, id`
	return r.queryBookings(ctx, query)
}

// ListBookingsByClient returns the bookings owned by the given client.
func (r *BookingRepository) ListBookingsByClient(ctx context.Context, clientID string) ([]persistence.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE client_id = ? ORDER BY start_at, id`
	return r.queryBookings(ctx, query, clientID)
}

// UpdateBookingIfAvailable replaces the editable fields of a stored booking,
// re-checking the overlap invariant against every other booking inside the
// same transaction. The owner reference is preserved from the stored record.
func (r *BookingRepository) UpdateBookingIfAvailable(ctx context.Context, booking persistence.Booking) error {
	if booking.ID == "" {
		return persistence.ErrConstraintViolation
	}
	if booking.StartAt.IsZero() || booking.EndAt.IsZero() {
		return persistence.ErrConstraintViolation
	}

	booking.UpdatedAt = time.Now().UTC()

	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		var clientID string
		row := r.helper.QueryRowTx(ctx, tx, `SELECT client_id FROM bookings WHERE id = ?`, booking.ID)
		if err := row.Scan(&clientID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return persistence.ErrNotFound
			}
			return err
		}

		if err := r.ensureNoOverlapTx(ctx, tx, booking, booking.ID); err != nil {
			return err
		}

		query := `
			UPDATE bookings
			SET company = ?, type_of_space_needed = ?,
				booking_start_date = ?, booking_start_time = ?,
				booking_end_date = ?, booking_end_time = ?,
				start_at = ?, end_at = ?, attendees = ?, reminder = ?, updated_at = ?
			WHERE id = ?
		`
		_, err := r.helper.ExecTx(ctx, tx, query,
			booking.Company,
			booking.TypeOfSpaceNeeded,
			booking.BookingStartDate,
			booking.BookingStartTime,
			booking.BookingEndDate,
			booking.BookingEndTime,
			booking.StartAt.UTC().Format(time.RFC3339),
			booking.EndAt.UTC().Format(time.RFC3339),
			booking.Attendees,
			booking.Reminder,
			booking.UpdatedAt.Format(time.RFC3339),
			booking.ID,
		)
		return err
	})
	if err != nil {
		if errors.Is(err, persistence.ErrOverlap) || errors.Is(err, persistence.ErrNotFound) {
			return err
		}
		return r.mapper.MapError(err)
	}

	return nil
}

// DeleteBooking removes a booking by id.
func (r *BookingRepository) DeleteBooking(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return r.mapper.MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// ensureNoOverlapTx fails with ErrOverlap when any stored booking other than
// excludeID intersects the candidate's half-open interval.
func (r *BookingRepository) ensureNoOverlapTx(ctx context.Context, tx *sql.Tx, booking persistence.Booking, excludeID string) error {
	query := `SELECT COUNT(1) FROM bookings WHERE start_at < ? AND ? < end_at`
	args := []any{
		booking.EndAt.UTC().Format(time.RFC3339),
		booking.StartAt.UTC().Format(time.RFC3339),
	}
	if excludeID != "" {
		query += ` AND id <> ?`
		args = append(args, excludeID)
	}

	var count int
	if err := r.helper.QueryRowTx(ctx, tx, query, args...).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return persistence.ErrOverlap
	}
	return nil
}

func (r *BookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]persistence.Booking, error) {
	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var bookings []persistence.Booking
	for rows.Next() {
		booking, err := scanBookingFields(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return bookings, nil
}

func bookingArgs(booking persistence.Booking) []any {
	return []any{
		booking.ID,
		booking.ClientID,
		booking.ClientName,
		strings.ToLower(strings.TrimSpace(booking.ClientEmail)),
		booking.Company,
		booking.TypeOfSpaceNeeded,
		booking.BookingStartDate,
		booking.BookingStartTime,
		booking.BookingEndDate,
		booking.BookingEndTime,
		booking.StartAt.UTC().Format(time.RFC3339),
		booking.EndAt.UTC().Format(time.RFC3339),
		booking.Attendees,
		booking.Reminder,
		booking.CreatedAt.Format(time.RFC3339),
		booking.UpdatedAt.Format(time.RFC3339),
	}
}

func scanBookingFields(scanner rowScanner) (persistence.Booking, error) {
	var booking persistence.Booking
	var startAt, endAt, createdAt, updatedAt string

	if err := scanner.Scan(
		&booking.ID,
		&booking.ClientID,
		&booking.ClientName,
		&booking.ClientEmail,
		&booking.Company,
		&booking.TypeOfSpaceNeeded,
		&booking.BookingStartDate,
		&booking.BookingStartTime,
		&booking.BookingEndDate,
		&booking.BookingEndTime,
		&startAt,
		&endAt,
		&booking.Attendees,
		&booking.Reminder,
		&createdAt,
		&updatedAt,
	); err != nil {
		return persistence.Booking{}, err
	}

	var err error
	if booking.StartAt, err = time.Parse(time.RFC3339, startAt); err != nil {
		return persistence.Booking{}, fmt.Errorf("failed to parse start_at: %w", err)
	}
	if booking.EndAt, err = time.Parse(time.RFC3339, endAt); err != nil {
		return persistence.Booking{}, fmt.Errorf("failed to parse end_at: %w", err)
	}
	if booking.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return persistence.Booking{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if booking.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return persistence.Booking{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return booking, nil
}
