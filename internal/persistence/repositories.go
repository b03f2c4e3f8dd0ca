package persistence

import "context"

// ClientFilter narrows client listings.
type ClientFilter struct {
	// EmailKeyword filters on a case-insensitive email substring when set.
	EmailKeyword string
	// Limit caps the number of returned records; zero means no cap.
	Limit int
	// Offset skips the first N matching records.
	Offset int
}

// ClientRepository exposes CRUD operations for client accounts.
type ClientRepository interface {
	CreateClient(ctx context.Context, client Client) error
	GetClient(ctx context.Context, id string) (Client, error)
	GetClientByEmail(ctx context.Context, email string) (Client, error)
	UpdateClient(ctx context.Context, client Client) error
	DeleteClient(ctx context.Context, id string) error
	ListClients(ctx context.Context, filter ClientFilter) ([]Client, error)
}

// BookingRepository stores booking records.
//
// CreateBookingIfAvailable and UpdateBookingIfAvailable perform the overlap
// check and the write inside a single transaction so two concurrent requests
// for intersecting intervals cannot both succeed. They return ErrOverlap when
// the candidate interval intersects any other stored booking.
type BookingRepository interface {
	CreateBookingIfAvailable(ctx context.Context, booking Booking) error
	GetBooking(ctx context.Context, id string) (Booking, error)
	ListBookings(ctx context.Context) ([]Booking, error)
	ListBookingsByClient(ctx context.Context, clientID string) ([]Booking, error)
	UpdateBookingIfAvailable(ctx context.Context, booking Booking) error
	DeleteBooking(ctx context.Context, id string) error
}
