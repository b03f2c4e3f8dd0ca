package persistence

import "time"

// Client represents an account that owns bookings.
type Client struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Booking represents a reservation of a space for a date+time interval.
//
// The boundary fields are stored as the caller supplied them (string-encoded
// dates and times of day); StartAt/EndAt carry the derived UTC instants used
// for range queries and overlap checks.
type Booking struct {
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
	StartAt           time.Time
	EndAt             time.Time
	Attendees         string
	Reminder          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
