// Package token signs and verifies the stateless bearer credentials issued
// at sign-in. Claims carry the client id as subject plus the name and email
// surfaced to the frontend.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token fails structural decoding,
	// signature verification, or expiry checks.
	ErrInvalidToken = errors.New("token: invalid token")
	// ErrMissingSubject is returned when a verified token lacks the client id.
	ErrMissingSubject = errors.New("token: missing subject claim")
)

// Claims is the validated claim set embedded in every issued credential.
type Claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// ClientID returns the subject the token was issued for.
func (c Claims) ClientID() string {
	return c.Subject
}

// Manager issues and verifies HMAC-SHA256 signed credentials using a shared
// secret. The time source is injected so expiry behaviour is testable.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager constructs a Manager. A nil now falls back to time.Now and a
// non-positive ttl defaults to 24 hours.
func NewManager(secret []byte, ttl time.Duration, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{secret: secret, ttl: ttl, now: now}
}

// TTL reports the validity window applied to issued tokens.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Sign issues a credential for the given client.
func (m *Manager) Sign(clientID, name, email string) (string, error) {
	if clientID == "" {
		return "", ErrMissingSubject
	}

	issued := m.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(m.ttl)),
		},
		Name:  name,
		Email: email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify decodes and validates a credential, returning its claim set. Any
// failure (malformed token, bad signature, expiry) maps to ErrInvalidToken
// so callers cannot distinguish the sub-cases.
func (m *Manager) Verify(tokenString string) (Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Claims{}, ErrMissingSubject
	}

	return *claims, nil
}
