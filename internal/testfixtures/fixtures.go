// Package testfixtures provides deterministic fixtures and harnesses shared
// by the persistence and application tests.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/space-booking/internal/application"
	"github.com/example/space-booking/internal/booking"
	"github.com/example/space-booking/internal/persistence"
)

var (
	clientCounter  uint64
	bookingCounter uint64
)

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ---------------------------- Client fixtures ----------------------------

// ClientFixture represents a deterministic client account record.
type ClientFixture struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ClientOption configures the generated client fixture.
type ClientOption func(*ClientFixture)

// NewClientFixture returns a deterministic client fixture with optional
// overrides.
func NewClientFixture(opts ...ClientOption) ClientFixture {
	idx := atomic.AddUint64(&clientCounter, 1)
	id := fmt.Sprintf("00000000-0000-4000-9000-%012d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := ClientFixture{
		ID:           id,
		Name:         fmt.Sprintf("Client %03d", idx),
		Email:        fmt.Sprintf("client-%03d@example.com", idx),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
		Role:         application.RoleUser,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithClientID overrides the generated client ID.
func WithClientID(id string) ClientOption {
	return func(f *ClientFixture) {
		f.ID = id
	}
}

// WithClientName overrides the generated name.
func WithClientName(name string) ClientOption {
	return func(f *ClientFixture) {
		f.Name = name
	}
}

// WithClientEmail overrides the generated email address.
func WithClientEmail(email string) ClientOption {
	return func(f *ClientFixture) {
		f.Email = email
	}
}

// WithClientPasswordHash overrides the generated password hash.
func WithClientPasswordHash(hash string) ClientOption {
	return func(f *ClientFixture) {
		f.PasswordHash = hash
	}
}

// WithClientRole sets the role on the generated fixture.
func WithClientRole(role string) ClientOption {
	return func(f *ClientFixture) {
		f.Role = role
	}
}

// WithClientTimestamps sets both created and updated timestamps.
func WithClientTimestamps(created, updated time.Time) ClientOption {
	return func(f *ClientFixture) {
		f.CreatedAt = created
		f.UpdatedAt = updated
	}
}

// Application returns the fixture as an application.Client value.
func (f ClientFixture) Application() application.Client {
	return application.Client{
		ID:        f.ID,
		Name:      f.Name,
		Email:     f.Email,
		Role:      f.Role,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// Credentials returns the fixture as application.ClientCredentials.
func (f ClientFixture) Credentials() application.ClientCredentials {
	return application.ClientCredentials{
		Client:       f.Application(),
		PasswordHash: f.PasswordHash,
	}
}

// Principal returns an application.Principal derived from the fixture.
func (f ClientFixture) Principal() application.Principal {
	return application.Principal{ID: f.ID, Name: f.Name, Email: f.Email, Role: f.Role}
}

// Persistence returns the fixture as a persistence.Client value.
func (f ClientFixture) Persistence() persistence.Client {
	return persistence.Client{
		ID:           f.ID,
		Name:         f.Name,
		Email:        f.Email,
		PasswordHash: f.PasswordHash,
		Role:         f.Role,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// --------------------------- Booking fixtures ----------------------------

// BookingFixture represents a deterministic booking record. Successive
// fixtures occupy consecutive non-overlapping days.
type BookingFixture struct {
	ID                string
	ClientID          string
	ClientName        string
	ClientEmail       string
	Company           string
	TypeOfSpaceNeeded string
	BookingStartDate  string
	BookingStartTime  string
	BookingEndDate    string
	BookingEndTime    string
	Attendees         string
	Reminder          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// BookingOption configures the generated booking fixture.
type BookingOption func(*BookingFixture)

// NewBookingFixture returns a deterministic booking fixture with optional
// overrides.
func NewBookingFixture(opts ...BookingOption) BookingFixture {
	idx := atomic.AddUint64(&bookingCounter, 1)
	id := fmt.Sprintf("00000000-0000-4000-a000-%012d", idx)
	day := referenceTime.AddDate(0, 0, int(idx)).Format("2006-01-02")
	fixture := BookingFixture{
		ID:                id,
		ClientID:          fmt.Sprintf("00000000-0000-4000-9000-%012d", idx),
		ClientName:        fmt.Sprintf("Client %03d", idx),
		ClientEmail:       fmt.Sprintf("client-%03d@example.com", idx),
		Company:           fmt.Sprintf("Company %03d", idx),
		TypeOfSpaceNeeded: application.SpaceTypeRoom,
		BookingStartDate:  day,
		BookingStartTime:  "09:00",
		BookingEndDate:    day,
		BookingEndTime:    "12:00",
		Attendees:         "4",
		CreatedAt:         referenceTime,
		UpdatedAt:         referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithBookingID overrides the generated booking ID.
func WithBookingID(id string) BookingOption {
	return func(f *BookingFixture) {
		f.ID = id
	}
}

// WithBookingClient sets the owning client reference.
func WithBookingClient(client ClientFixture) BookingOption {
	return func(f *BookingFixture) {
		f.ClientID = client.ID
		f.ClientName = client.Name
		f.ClientEmail = client.Email
	}
}

// WithBookingSpaceType overrides the space type.
func WithBookingSpaceType(spaceType string) BookingOption {
	return func(f *BookingFixture) {
		f.TypeOfSpaceNeeded = spaceType
	}
}

// WithBookingInterval sets all four boundary fields at once.
func WithBookingInterval(startDate, startTime, endDate, endTime string) BookingOption {
	return func(f *BookingFixture) {
		f.BookingStartDate = startDate
		f.BookingStartTime = startTime
		f.BookingEndDate = endDate
		f.BookingEndTime = endTime
	}
}

// WithBookingAttendees sets the attendee note.
func WithBookingAttendees(attendees string) BookingOption {
	return func(f *BookingFixture) {
		f.Attendees = attendees
	}
}

// WithBookingReminder sets the reminder flag.
func WithBookingReminder(reminder bool) BookingOption {
	return func(f *BookingFixture) {
		f.Reminder = reminder
	}
}

// Interval parses the fixture's boundary fields into the interval kernel
// representation, panicking on malformed fixtures so tests fail loudly.
func (f BookingFixture) Interval() booking.Interval {
	iv, err := booking.ParseInterval(f.BookingStartDate, f.BookingStartTime, f.BookingEndDate, f.BookingEndTime)
	if err != nil {
		panic(fmt.Sprintf("testfixtures: malformed booking fixture interval: %v", err))
	}
	return iv
}

// Application returns the fixture as an application.Booking value.
func (f BookingFixture) Application() application.Booking {
	return application.Booking{
		ID:                f.ID,
		ClientID:          f.ClientID,
		ClientName:        f.ClientName,
		ClientEmail:       f.ClientEmail,
		Company:           f.Company,
		TypeOfSpaceNeeded: f.TypeOfSpaceNeeded,
		BookingStartDate:  f.BookingStartDate,
		BookingStartTime:  f.BookingStartTime,
		BookingEndDate:    f.BookingEndDate,
		BookingEndTime:    f.BookingEndTime,
		Attendees:         f.Attendees,
		Reminder:          f.Reminder,
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         f.UpdatedAt,
	}
}

// Input returns the fixture as an application.BookingInput.
func (f BookingFixture) Input() application.BookingInput {
	return application.BookingInput{
		Company:           f.Company,
		TypeOfSpaceNeeded: f.TypeOfSpaceNeeded,
		BookingStartDate:  f.BookingStartDate,
		BookingStartTime:  f.BookingStartTime,
		BookingEndDate:    f.BookingEndDate,
		BookingEndTime:    f.BookingEndTime,
		Attendees:         f.Attendees,
		Reminder:          f.Reminder,
	}
}

// Persistence returns the fixture as a persistence.Booking value, with the
// derived interval instants populated.
func (f BookingFixture) Persistence() persistence.Booking {
	iv := f.Interval()
	return persistence.Booking{
		ID:                f.ID,
		ClientID:          f.ClientID,
		ClientName:        f.ClientName,
		ClientEmail:       f.ClientEmail,
		Company:           f.Company,
		TypeOfSpaceNeeded: f.TypeOfSpaceNeeded,
		BookingStartDate:  f.BookingStartDate,
		BookingStartTime:  f.BookingStartTime,
		BookingEndDate:    f.BookingEndDate,
		BookingEndTime:    f.BookingEndTime,
		StartAt:           iv.Start,
		EndAt:             iv.End,
		Attendees:         f.Attendees,
		Reminder:          f.Reminder,
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         f.UpdatedAt,
	}
}
