package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ClientDirectory exposes the account lookup and registration operations the
// auth service requires.
type ClientDirectory interface {
	CreateClient(ctx context.Context, client Client, passwordHash string) (Client, error)
	GetClient(ctx context.Context, id string) (Client, error)
	GetClientCredentialsByEmail(ctx context.Context, email string) (ClientCredentials, error)
}

// CredentialSigner signs and verifies the stateless bearer credentials.
type CredentialSigner interface {
	Sign(clientID, name, email string) (string, error)
	Verify(tokenString string) (TokenClaims, error)
}

// AuthService coordinates registration, sign-in, sign-out, and session
// validation.
type AuthService struct {
	clients        ClientDirectory
	tokens         CredentialSigner
	revocations    RevocationStore
	hashPassword   PasswordHasher
	verifyPassword PasswordVerifier
	idGenerator    func() string
	logger         *slog.Logger
}

// NewAuthService constructs an AuthService with the provided dependencies.
func NewAuthService(clients ClientDirectory, tokens CredentialSigner, revocations RevocationStore, idGenerator func() string) *AuthService {
	return NewAuthServiceWithLogger(clients, tokens, revocations, nil, nil, idGenerator, nil)
}

// NewAuthServiceWithLogger constructs an AuthService with explicit hashing
// hooks and a logger. Nil hooks fall back to the bcrypt defaults.
func NewAuthServiceWithLogger(clients ClientDirectory, tokens CredentialSigner, revocations RevocationStore, hash PasswordHasher, verify PasswordVerifier, idGenerator func() string, logger *slog.Logger) *AuthService {
	if hash == nil {
		hash = NewPasswordHasher(0)
	}
	if verify == nil {
		verify = VerifyPassword
	}
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	return &AuthService{
		clients:        clients,
		tokens:         tokens,
		revocations:    revocations,
		hashPassword:   hash,
		verifyPassword: verify,
		idGenerator:    idGenerator,
		logger:         defaultLogger(logger),
	}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// SignUp registers a new client and issues its first credential.
func (s *AuthService) SignUp(ctx context.Context, params SignUpParams) (result AuthResult, err error) {
	if s == nil || s.clients == nil || s.tokens == nil {
		err = fmt.Errorf("auth service not configured")
		return
	}

	name := strings.TrimSpace(params.Name)
	email := strings.TrimSpace(strings.ToLower(params.Email))

	logger := s.loggerWith(ctx, "SignUp", "email", email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "sign-up failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "client registered")
	}()

	vErr := &ValidationError{}
	if name == "" {
		vErr.add("name", "name is required")
	}
	if email == "" {
		vErr.add("email", "email is required")
	} else if !strings.Contains(email, "@") {
		vErr.add("email", "email is invalid")
	}
	if params.Password == "" {
		vErr.add("password", "password is required")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if _, lookupErr := s.clients.GetClientCredentialsByEmail(ctx, email); lookupErr == nil {
		err = fmt.Errorf("%w: user already exists", ErrConflict)
		return
	} else if !errors.Is(lookupErr, ErrNotFound) {
		err = lookupErr
		return
	}

	var hash string
	hash, err = s.hashPassword(params.Password)
	if err != nil {
		return
	}

	client := Client{
		ID:    s.idGenerator(),
		Name:  name,
		Email: email,
		Role:  RoleUser,
	}
	client, err = s.clients.CreateClient(ctx, client, hash)
	if err != nil {
		return
	}

	var signed string
	signed, err = s.tokens.Sign(client.ID, client.Name, client.Email)
	if err != nil {
		return
	}

	logger = logger.With("client_id", client.ID)
	result = AuthResult{Token: signed, Username: client.Name, Email: client.Email}
	return
}

// SignIn validates credentials and issues a fresh credential.
func (s *AuthService) SignIn(ctx context.Context, params SignInParams) (result AuthResult, err error) {
	if s == nil || s.clients == nil || s.tokens == nil {
		err = fmt.Errorf("auth service not configured")
		return
	}

	email := strings.TrimSpace(strings.ToLower(params.Email))

	logger := s.loggerWith(ctx, "SignIn", "email", email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "sign-in failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "client signed in")
	}()

	if email == "" || params.Password == "" {
		err = ErrInvalidCredentials
		return
	}

	var creds ClientCredentials
	creds, err = s.clients.GetClientCredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			err = ErrInvalidCredentials
		}
		return
	}

	if err = s.verifyPassword(creds.PasswordHash, params.Password); err != nil {
		err = ErrInvalidCredentials
		return
	}

	var signed string
	signed, err = s.tokens.Sign(creds.Client.ID, creds.Client.Name, creds.Client.Email)
	if err != nil {
		return
	}

	logger = logger.With("client_id", creds.Client.ID)
	result = AuthResult{Token: signed, Username: creds.Client.Name, Email: creds.Client.Email}
	return
}

// SignOut inserts the credential into the revocation store, keyed by the raw
// token so a client's other sessions stay valid. The insertion is effective
// for every subsequent validation.
func (s *AuthService) SignOut(ctx context.Context, rawToken string) error {
	if s == nil || s.tokens == nil || s.revocations == nil {
		return fmt.Errorf("auth service not configured")
	}

	trimmed := strings.TrimSpace(rawToken)
	logger := s.loggerWith(ctx, "SignOut", "token_provided", trimmed != "")

	if trimmed == "" {
		vErr := &ValidationError{}
		vErr.add("token", "token is required")
		logger.ErrorContext(ctx, "sign-out rejected", "error", vErr, "error_kind", ErrorKind(vErr))
		return vErr
	}

	claims, err := s.tokens.Verify(trimmed)
	if err != nil {
		logger.ErrorContext(ctx, "sign-out rejected", "error", err, "error_kind", ErrorKind(err))
		return ErrUnauthenticated
	}

	s.revocations.Revoke(trimmed, claims.ExpiresAt)
	logger.With("client_id", claims.ClientID).InfoContext(ctx, "credential revoked")
	return nil
}

// ValidateSession resolves a bearer credential to its principal. Every
// failure surfaces as ErrUnauthenticated; the log line distinguishes the
// sub-cases for operability.
func (s *AuthService) ValidateSession(ctx context.Context, rawToken string) (principal Principal, err error) {
	if s == nil || s.tokens == nil || s.clients == nil {
		err = fmt.Errorf("auth service not configured")
		return
	}

	trimmed := strings.TrimSpace(rawToken)
	logger := s.loggerWith(ctx, "ValidateSession", "token_provided", trimmed != "")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "session validation failed", "error", err, "error_kind", ErrorKind(err))
			err = validationFailure(err)
			return
		}
		logger.With("principal_id", principal.ID).InfoContext(ctx, "session validated")
	}()

	if trimmed == "" {
		err = ErrUnauthenticated
		return
	}

	var claims TokenClaims
	claims, err = s.tokens.Verify(trimmed)
	if err != nil {
		return
	}

	if s.revocations != nil && s.revocations.IsRevoked(trimmed) {
		err = ErrTokenRevoked
		return
	}

	var client Client
	client, err = s.clients.GetClient(ctx, claims.ClientID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			err = fmt.Errorf("%w: login first to access", ErrUnauthenticated)
		}
		return
	}

	principal = Principal{ID: client.ID, Name: client.Name, Email: client.Email, Role: client.Role}
	return
}

// validationFailure collapses internal distinctions (expiry, revocation,
// missing principal) into the uniform caller-visible outcome.
func validationFailure(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenRevoked),
		errors.Is(err, ErrInvalidCredentials):
		return ErrUnauthenticated
	}
	return err
}
