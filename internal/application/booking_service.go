package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/space-booking/internal/booking"
	"github.com/google/uuid"
)

// BookingStore captures the persistence interactions for bookings. The
// conditional writes are atomic: the overlap check and the write cannot be
// separated by a concurrent request.
type BookingStore interface {
	CreateBookingIfAvailable(ctx context.Context, b Booking, interval booking.Interval) (Booking, error)
	GetBooking(ctx context.Context, id string) (Booking, error)
	ListBookings(ctx context.Context) ([]Booking, error)
	ListBookingsByClient(ctx context.Context, clientID string) ([]Booking, error)
	UpdateBookingIfAvailable(ctx context.Context, b Booking, interval booking.Interval) (Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

// BookingService coordinates booking creation, queries, and the calendar
// projection of unavailable date ranges.
type BookingService struct {
	bookings    BookingStore
	idGenerator func() string
	logger      *slog.Logger
}

// NewBookingService constructs a BookingService.
func NewBookingService(bookings BookingStore, idGenerator func() string) *BookingService {
	return NewBookingServiceWithLogger(bookings, idGenerator, nil)
}

// NewBookingServiceWithLogger constructs a BookingService with a logger.
func NewBookingServiceWithLogger(bookings BookingStore, idGenerator func() string, logger *slog.Logger) *BookingService {
	if idGenerator == nil {
		idGenerator = func() string { return uuid.NewString() }
	}
	return &BookingService{
		bookings:    bookings,
		idGenerator: idGenerator,
		logger:      defaultLogger(logger),
	}
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BookingService", operation, attrs...)
}

// CreateBooking validates the candidate interval and persists the booking
// when no stored booking overlaps it. The owner reference is taken from the
// authenticated principal, never from the request body.
func (s *BookingService) CreateBooking(ctx context.Context, params CreateBookingParams) (result Booking, err error) {
	if s == nil || s.bookings == nil {
		err = fmt.Errorf("booking store not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateBooking", "principal_id", params.Principal.ID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "booking creation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("booking_id", result.ID).InfoContext(ctx, "booking created")
	}()

	interval, vErr := validateBookingInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	candidate := Booking{
		ID:                s.idGenerator(),
		ClientID:          params.Principal.ID,
		ClientName:        params.Principal.Name,
		ClientEmail:       params.Principal.Email,
		Company:           params.Input.Company,
		TypeOfSpaceNeeded: params.Input.TypeOfSpaceNeeded,
		BookingStartDate:  params.Input.BookingStartDate,
		BookingStartTime:  params.Input.BookingStartTime,
		BookingEndDate:    params.Input.BookingEndDate,
		BookingEndTime:    params.Input.BookingEndTime,
		Attendees:         params.Input.Attendees,
		Reminder:          params.Input.Reminder,
	}

	result, err = s.bookings.CreateBookingIfAvailable(ctx, candidate, interval)
	if errors.Is(err, ErrConflict) {
		err = fmt.Errorf("%w: the desired time slot is already booked", ErrConflict)
	}
	return
}

// GetBooking retrieves a booking by id.
func (s *BookingService) GetBooking(ctx context.Context, id string) (result Booking, err error) {
	if s == nil || s.bookings == nil {
		err = fmt.Errorf("booking store not configured")
		return
	}

	logger := s.loggerWith(ctx, "GetBooking", "booking_id", id)

	if err = validateBookingID(id); err != nil {
		logger.ErrorContext(ctx, "booking lookup rejected", "error", err, "error_kind", ErrorKind(err))
		return
	}

	result, err = s.bookings.GetBooking(ctx, id)
	if err != nil {
		logger.ErrorContext(ctx, "booking lookup failed", "error", err, "error_kind", ErrorKind(err))
	}
	return
}

// ListBookings returns every stored booking.
func (s *BookingService) ListBookings(ctx context.Context) ([]Booking, error) {
	if s == nil || s.bookings == nil {
		return nil, fmt.Errorf("booking store not configured")
	}

	logger := s.loggerWith(ctx, "ListBookings")
	bookings, err := s.bookings.ListBookings(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "booking list failed", "error", err, "error_kind", ErrorKind(err))
		return nil, err
	}
	logger.With("result_count", len(bookings)).InfoContext(ctx, "bookings listed")
	return bookings, nil
}

// ListClientBookings returns the bookings owned by the authenticated
// principal.
func (s *BookingService) ListClientBookings(ctx context.Context, principal Principal) ([]Booking, error) {
	if s == nil || s.bookings == nil {
		return nil, fmt.Errorf("booking store not configured")
	}

	logger := s.loggerWith(ctx, "ListClientBookings", "principal_id", principal.ID)
	bookings, err := s.bookings.ListBookingsByClient(ctx, principal.ID)
	if err != nil {
		logger.ErrorContext(ctx, "client booking list failed", "error", err, "error_kind", ErrorKind(err))
		return nil, err
	}
	logger.With("result_count", len(bookings)).InfoContext(ctx, "client bookings listed")
	return bookings, nil
}

// UpdateBooking replaces the editable fields of a stored booking after
// re-validating the interval. The owner reference is immutable.
func (s *BookingService) UpdateBooking(ctx context.Context, params UpdateBookingParams) (result Booking, err error) {
	if s == nil || s.bookings == nil {
		err = fmt.Errorf("booking store not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateBooking", "principal_id", params.Principal.ID, "booking_id", params.BookingID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "booking update failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "booking updated")
	}()

	if err = validateBookingID(params.BookingID); err != nil {
		return
	}

	interval, vErr := validateBookingInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := Booking{
		ID:                params.BookingID,
		Company:           params.Input.Company,
		TypeOfSpaceNeeded: params.Input.TypeOfSpaceNeeded,
		BookingStartDate:  params.Input.BookingStartDate,
		BookingStartTime:  params.Input.BookingStartTime,
		BookingEndDate:    params.Input.BookingEndDate,
		BookingEndTime:    params.Input.BookingEndTime,
		Attendees:         params.Input.Attendees,
		Reminder:          params.Input.Reminder,
	}

	result, err = s.bookings.UpdateBookingIfAvailable(ctx, updated, interval)
	if errors.Is(err, ErrConflict) {
		err = fmt.Errorf("%w: the desired time slot is already booked", ErrConflict)
	}
	return
}

// DeleteBooking removes a booking by id, returning the deleted record.
func (s *BookingService) DeleteBooking(ctx context.Context, id string) (result Booking, err error) {
	if s == nil || s.bookings == nil {
		err = fmt.Errorf("booking store not configured")
		return
	}

	logger := s.loggerWith(ctx, "DeleteBooking", "booking_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "booking delete failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "booking deleted")
	}()

	if err = validateBookingID(id); err != nil {
		return
	}

	result, err = s.bookings.GetBooking(ctx, id)
	if err != nil {
		return
	}

	err = s.bookings.DeleteBooking(ctx, id)
	return
}

// UnavailableDates projects the stored booking set into the date ranges the
// calendar should disable. The projection is recomputed from scratch on
// every call and emits one range per booking without merging.
func (s *BookingService) UnavailableDates(ctx context.Context) ([]DateRange, error) {
	if s == nil || s.bookings == nil {
		return nil, fmt.Errorf("booking store not configured")
	}

	logger := s.loggerWith(ctx, "UnavailableDates")
	bookings, err := s.bookings.ListBookings(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "unavailable date projection failed", "error", err, "error_kind", ErrorKind(err))
		return nil, err
	}

	spans := make([]booking.DateRange, 0, len(bookings))
	for _, b := range bookings {
		spans = append(spans, booking.DateRange{StartDate: b.BookingStartDate, EndDate: b.BookingEndDate})
	}

	ranges := booking.UnavailableRanges(spans)
	out := make([]DateRange, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, DateRange{StartDate: r.StartDate, EndDate: r.EndDate})
	}

	logger.With("result_count", len(out)).InfoContext(ctx, "unavailable dates computed")
	return out, nil
}

func validateBookingID(id string) error {
	if _, parseErr := uuid.Parse(id); parseErr != nil {
		vErr := &ValidationError{}
		vErr.add("id", "please enter a correct id")
		return vErr
	}
	return nil
}

// validateBookingInput checks required fields and parses the candidate
// interval. A malformed boundary is reported as a field error, never treated
// as always-available or always-unavailable.
func validateBookingInput(input BookingInput) (booking.Interval, *ValidationError) {
	vErr := &ValidationError{}

	if input.TypeOfSpaceNeeded == "" {
		vErr.add("typeOfSpaceNeeded", "type of space is required")
	} else if !IsValidSpaceType(input.TypeOfSpaceNeeded) {
		vErr.add("typeOfSpaceNeeded", "please enter valid option")
	}

	required := []struct {
		field string
		value string
	}{
		{"bookingStartDate", input.BookingStartDate},
		{"bookingStartTime", input.BookingStartTime},
		{"bookingEndDate", input.BookingEndDate},
		{"bookingEndTime", input.BookingEndTime},
	}
	for _, r := range required {
		if r.value == "" {
			vErr.add(r.field, r.field+" is required")
		}
	}
	if vErr.HasErrors() {
		return booking.Interval{}, vErr
	}

	start, err := booking.ParseInstant(input.BookingStartDate, input.BookingStartTime)
	if err != nil {
		vErr.add("bookingStartDate", "start must be a valid date and time")
	}
	end, err := booking.ParseInstant(input.BookingEndDate, input.BookingEndTime)
	if err != nil {
		vErr.add("bookingEndDate", "end must be a valid date and time")
	}
	if vErr.HasErrors() {
		return booking.Interval{}, vErr
	}

	interval := booking.Interval{Start: start, End: end}
	if end.Before(start) {
		vErr.add("bookingEndDate", "end must not precede start")
		return booking.Interval{}, vErr
	}

	return interval, vErr
}
