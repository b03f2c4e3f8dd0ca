package application

import "time"

// Client roles.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// Space types a booking can reserve. The wire values are preserved from the
// original deployment for frontend compatibility.
const (
	SpaceTypeRoom  = "Rent A Room"
	SpaceTypeDesk  = "Rent A Desk"
	SpaceTypeFloor = "Rent A Floor"
)

// SpaceTypes lists every accepted typeOfSpaceNeeded value.
var SpaceTypes = []string{SpaceTypeRoom, SpaceTypeDesk, SpaceTypeFloor}

// IsValidSpaceType reports whether the value is an accepted space type.
func IsValidSpaceType(value string) bool {
	for _, t := range SpaceTypes {
		if t == value {
			return true
		}
	}
	return false
}

// Principal represents the authenticated client invoking a service method.
// It never carries the password hash.
type Principal struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// Client represents an account exposed by the application services.
type Client struct {
	ID        string
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClientCredentials models the authentication attributes stored for a client.
type ClientCredentials struct {
	Client       Client
	PasswordHash string
}

// ClientInput captures caller provided client attributes for the admin
// endpoints. Password is optional on update; when empty the stored hash is
// kept.
type ClientInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// BookingInput captures the caller provided booking fields. All boundary
// values arrive string-encoded, matching the calendar frontend.
type BookingInput struct {
	Company           string
	TypeOfSpaceNeeded string
	BookingStartDate  string
	BookingStartTime  string
	BookingEndDate    string
	BookingEndTime    string
	Attendees         string
	Reminder          bool
}

// Booking represents a stored reservation.
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
	Attendees         string
	Reminder          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DateRange is an inclusive calendar span reported as unavailable.
type DateRange struct {
	StartDate string
	EndDate   string
}

// TokenClaims is the validated claim view handed back by the credential
// signer.
type TokenClaims struct {
	ClientID  string
	Name      string
	Email     string
	ExpiresAt time.Time
}

// SignUpParams captures the data required to register a client.
type SignUpParams struct {
	Name     string
	Email    string
	Password string
}

// SignInParams captures the data required to authenticate a client.
type SignInParams struct {
	Email    string
	Password string
}

// AuthResult captures the outcome of a successful sign-up or sign-in.
type AuthResult struct {
	Token    string
	Username string
	Email    string
}

// CreateBookingParams wraps the data required to create a booking.
type CreateBookingParams struct {
	Principal Principal
	Input     BookingInput
}

// UpdateBookingParams wraps the data required to update an existing booking.
type UpdateBookingParams struct {
	Principal Principal
	BookingID string
	Input     BookingInput
}

// CreateClientParams wraps the data required to create a client account.
type CreateClientParams struct {
	Principal Principal
	Input     ClientInput
}

// UpdateClientParams wraps the data required to update a client account.
type UpdateClientParams struct {
	Principal Principal
	ClientID  string
	Input     ClientInput
}

// ListClientsParams wraps the paging options of the client listing.
type ListClientsParams struct {
	Principal Principal
	Page      int
	Keyword   string
}
