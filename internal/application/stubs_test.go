package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/space-booking/internal/booking"
)

// clientStoreStub is an in-memory ClientStore shared by the service tests.
type clientStoreStub struct {
	clients map[string]Client
	hashes  map[string]string

	createErr error
	listCalls []ClientFilter
}

func newClientStoreStub() *clientStoreStub {
	return &clientStoreStub{
		clients: make(map[string]Client),
		hashes:  make(map[string]string),
	}
}

func (s *clientStoreStub) CreateClient(_ context.Context, client Client, passwordHash string) (Client, error) {
	if s.createErr != nil {
		return Client{}, s.createErr
	}
	for _, existing := range s.clients {
		if strings.EqualFold(existing.Email, client.Email) {
			return Client{}, ErrConflict
		}
	}
	s.clients[client.ID] = client
	s.hashes[client.ID] = passwordHash
	return client, nil
}

func (s *clientStoreStub) GetClient(_ context.Context, id string) (Client, error) {
	client, ok := s.clients[id]
	if !ok {
		return Client{}, ErrNotFound
	}
	return client, nil
}

func (s *clientStoreStub) GetClientCredentialsByEmail(_ context.Context, email string) (ClientCredentials, error) {
	for id, client := range s.clients {
		if strings.EqualFold(client.Email, email) {
			return ClientCredentials{Client: client, PasswordHash: s.hashes[id]}, nil
		}
	}
	return ClientCredentials{}, ErrNotFound
}

func (s *clientStoreStub) UpdateClient(_ context.Context, client Client, passwordHash string) (Client, error) {
	current, ok := s.clients[client.ID]
	if !ok {
		return Client{}, ErrNotFound
	}
	current.Name = client.Name
	current.Email = client.Email
	current.Role = client.Role
	s.clients[client.ID] = current
	if passwordHash != "" {
		s.hashes[client.ID] = passwordHash
	}
	return current, nil
}

func (s *clientStoreStub) DeleteClient(_ context.Context, id string) error {
	if _, ok := s.clients[id]; !ok {
		return ErrNotFound
	}
	delete(s.clients, id)
	delete(s.hashes, id)
	return nil
}

func (s *clientStoreStub) ListClients(_ context.Context, filter ClientFilter) ([]Client, error) {
	s.listCalls = append(s.listCalls, filter)

	var matched []Client
	for _, client := range s.clients {
		if filter.EmailKeyword != "" && !strings.Contains(strings.ToLower(client.Email), strings.ToLower(filter.EmailKeyword)) {
			continue
		}
		matched = append(matched, client)
	}
	if filter.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// signerStub issues deterministic tokens and honours a movable clock for
// expiry checks.
type signerStub struct {
	now    func() time.Time
	ttl    time.Duration
	seq    int
	issued map[string]TokenClaims

	signErr error
}

func newSignerStub(now func() time.Time, ttl time.Duration) *signerStub {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &signerStub{now: now, ttl: ttl, issued: make(map[string]TokenClaims)}
}

func (s *signerStub) Sign(clientID, name, email string) (string, error) {
	if s.signErr != nil {
		return "", s.signErr
	}
	s.seq++
	tok := fmt.Sprintf("token-%s-%d", clientID, s.seq)
	s.issued[tok] = TokenClaims{
		ClientID:  clientID,
		Name:      name,
		Email:     email,
		ExpiresAt: s.now().Add(s.ttl),
	}
	return tok, nil
}

func (s *signerStub) Verify(tokenString string) (TokenClaims, error) {
	claims, ok := s.issued[tokenString]
	if !ok {
		return TokenClaims{}, ErrUnauthenticated
	}
	if !claims.ExpiresAt.After(s.now()) {
		return TokenClaims{}, ErrTokenExpired
	}
	return claims, nil
}

// bookingStoreStub mirrors the repository's atomic conditional writes using
// the interval kernel.
type bookingStoreStub struct {
	bookings  map[string]Booking
	intervals map[string]booking.Interval
	order     []string

	createErr error
}

func newBookingStoreStub() *bookingStoreStub {
	return &bookingStoreStub{
		bookings:  make(map[string]Booking),
		intervals: make(map[string]booking.Interval),
	}
}

func (s *bookingStoreStub) slots(exclude string) []booking.Slot {
	var slots []booking.Slot
	for _, id := range s.order {
		if id == exclude {
			continue
		}
		slots = append(slots, booking.Slot{ID: id, Interval: s.intervals[id]})
	}
	return slots
}

func (s *bookingStoreStub) CreateBookingIfAvailable(_ context.Context, b Booking, interval booking.Interval) (Booking, error) {
	if s.createErr != nil {
		return Booking{}, s.createErr
	}
	if !booking.Available(s.slots(""), interval) {
		return Booking{}, ErrConflict
	}
	s.bookings[b.ID] = b
	s.intervals[b.ID] = interval
	s.order = append(s.order, b.ID)
	return b, nil
}

func (s *bookingStoreStub) GetBooking(_ context.Context, id string) (Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return Booking{}, ErrNotFound
	}
	return b, nil
}

func (s *bookingStoreStub) ListBookings(context.Context) ([]Booking, error) {
	var out []Booking
	for _, id := range s.order {
		out = append(out, s.bookings[id])
	}
	return out, nil
}

func (s *bookingStoreStub) ListBookingsByClient(_ context.Context, clientID string) ([]Booking, error) {
	var out []Booking
	for _, id := range s.order {
		if s.bookings[id].ClientID == clientID {
			out = append(out, s.bookings[id])
		}
	}
	return out, nil
}

func (s *bookingStoreStub) UpdateBookingIfAvailable(_ context.Context, b Booking, interval booking.Interval) (Booking, error) {
	current, ok := s.bookings[b.ID]
	if !ok {
		return Booking{}, ErrNotFound
	}
	if !booking.Available(s.slots(b.ID), interval) {
		return Booking{}, ErrConflict
	}
	current.Company = b.Company
	current.TypeOfSpaceNeeded = b.TypeOfSpaceNeeded
	current.BookingStartDate = b.BookingStartDate
	current.BookingStartTime = b.BookingStartTime
	current.BookingEndDate = b.BookingEndDate
	current.BookingEndTime = b.BookingEndTime
	current.Attendees = b.Attendees
	current.Reminder = b.Reminder
	s.bookings[b.ID] = current
	s.intervals[b.ID] = interval
	return current, nil
}

func (s *bookingStoreStub) DeleteBooking(_ context.Context, id string) error {
	if _, ok := s.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(s.bookings, id)
	delete(s.intervals, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
