package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// ClientsPerPage is the page size of the client listing, preserved from the
// original deployment.
const ClientsPerPage = 2

// ClientFilter narrows client listings at the store level.
type ClientFilter struct {
	EmailKeyword string
	Limit        int
	Offset       int
}

// ClientStore captures the persistence interactions for client accounts.
// UpdateClient keeps the stored password hash when passwordHash is empty.
type ClientStore interface {
	ClientDirectory
	UpdateClient(ctx context.Context, client Client, passwordHash string) (Client, error)
	DeleteClient(ctx context.Context, id string) error
	ListClients(ctx context.Context, filter ClientFilter) ([]Client, error)
}

// ClientService provides the administrative account management operations.
type ClientService struct {
	clients      ClientStore
	hashPassword PasswordHasher
	idGenerator  func() string
	logger       *slog.Logger
}

// NewClientService constructs a ClientService.
func NewClientService(clients ClientStore, idGenerator func() string) *ClientService {
	return NewClientServiceWithLogger(clients, nil, idGenerator, nil)
}

// NewClientServiceWithLogger constructs a ClientService with an explicit
// hasher and logger. A nil hasher falls back to the bcrypt default.
func NewClientServiceWithLogger(clients ClientStore, hash PasswordHasher, idGenerator func() string, logger *slog.Logger) *ClientService {
	if hash == nil {
		hash = NewPasswordHasher(0)
	}
	if idGenerator == nil {
		idGenerator = func() string { return uuid.NewString() }
	}
	return &ClientService{
		clients:      clients,
		hashPassword: hash,
		idGenerator:  idGenerator,
		logger:       defaultLogger(logger),
	}
}

func (s *ClientService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ClientService", operation, attrs...)
}

// ListClients returns one page of accounts, optionally filtered by an email
// keyword.
func (s *ClientService) ListClients(ctx context.Context, params ListClientsParams) ([]Client, error) {
	if s == nil || s.clients == nil {
		return nil, fmt.Errorf("client store not configured")
	}

	page := params.Page
	if page < 1 {
		page = 1
	}

	logger := s.loggerWith(ctx, "ListClients", "principal_id", params.Principal.ID, "page", page)

	clients, err := s.clients.ListClients(ctx, ClientFilter{
		EmailKeyword: strings.TrimSpace(params.Keyword),
		Limit:        ClientsPerPage,
		Offset:       ClientsPerPage * (page - 1),
	})
	if err != nil {
		logger.ErrorContext(ctx, "client list failed", "error", err, "error_kind", ErrorKind(err))
		return nil, err
	}

	logger.With("result_count", len(clients)).InfoContext(ctx, "clients listed")
	return clients, nil
}

// GetClient retrieves an account by id.
func (s *ClientService) GetClient(ctx context.Context, id string) (result Client, err error) {
	if s == nil || s.clients == nil {
		err = fmt.Errorf("client store not configured")
		return
	}

	logger := s.loggerWith(ctx, "GetClient", "client_id", id)

	if err = validateClientID(id); err != nil {
		logger.ErrorContext(ctx, "client lookup rejected", "error", err, "error_kind", ErrorKind(err))
		return
	}

	result, err = s.clients.GetClient(ctx, id)
	if err != nil {
		logger.ErrorContext(ctx, "client lookup failed", "error", err, "error_kind", ErrorKind(err))
	}
	return
}

// CreateClient registers an account on behalf of an administrator.
func (s *ClientService) CreateClient(ctx context.Context, params CreateClientParams) (result Client, err error) {
	if s == nil || s.clients == nil {
		err = fmt.Errorf("client store not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateClient", "principal_id", params.Principal.ID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "client creation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("client_id", result.ID).InfoContext(ctx, "client created")
	}()

	input, vErr := normalizeClientInput(params.Input, true)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var hash string
	hash, err = s.hashPassword(input.Password)
	if err != nil {
		return
	}

	result, err = s.clients.CreateClient(ctx, Client{
		ID:    s.idGenerator(),
		Name:  input.Name,
		Email: input.Email,
		Role:  input.Role,
	}, hash)
	return
}

// UpdateClient replaces an account's editable fields. The password is only
// rehashed when a new one is supplied.
func (s *ClientService) UpdateClient(ctx context.Context, params UpdateClientParams) (result Client, err error) {
	if s == nil || s.clients == nil {
		err = fmt.Errorf("client store not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateClient", "principal_id", params.Principal.ID, "client_id", params.ClientID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "client update failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "client updated")
	}()

	if err = validateClientID(params.ClientID); err != nil {
		return
	}

	input, vErr := normalizeClientInput(params.Input, false)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	hash := ""
	if input.Password != "" {
		hash, err = s.hashPassword(input.Password)
		if err != nil {
			return
		}
	}

	result, err = s.clients.UpdateClient(ctx, Client{
		ID:    params.ClientID,
		Name:  input.Name,
		Email: input.Email,
		Role:  input.Role,
	}, hash)
	return
}

// DeleteClient removes an account. Bookings owned by the account are left in
// place.
func (s *ClientService) DeleteClient(ctx context.Context, principal Principal, id string) error {
	if s == nil || s.clients == nil {
		return fmt.Errorf("client store not configured")
	}

	logger := s.loggerWith(ctx, "DeleteClient", "principal_id", principal.ID, "client_id", id)

	if err := validateClientID(id); err != nil {
		logger.ErrorContext(ctx, "client delete rejected", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	if err := s.clients.DeleteClient(ctx, id); err != nil {
		logger.ErrorContext(ctx, "client delete failed", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "client deleted")
	return nil
}

func validateClientID(id string) error {
	if _, parseErr := uuid.Parse(id); parseErr != nil {
		vErr := &ValidationError{}
		vErr.add("id", "please enter a correct id")
		return vErr
	}
	return nil
}

func normalizeClientInput(input ClientInput, passwordRequired bool) (ClientInput, *ValidationError) {
	vErr := &ValidationError{}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Role = strings.TrimSpace(input.Role)

	if input.Name == "" {
		vErr.add("name", "name is required")
	}
	if input.Email == "" {
		vErr.add("email", "email is required")
	} else if !strings.Contains(input.Email, "@") {
		vErr.add("email", "email is invalid")
	}
	if passwordRequired && input.Password == "" {
		vErr.add("password", "password is required")
	}

	switch input.Role {
	case "":
		input.Role = RoleUser
	case RoleAdmin, RoleUser:
	default:
		vErr.add("role", "please enter valid option")
	}

	return input, vErr
}
