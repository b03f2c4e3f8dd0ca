package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/example/space-booking/internal/application"
	"github.com/example/space-booking/internal/booking"
	"github.com/example/space-booking/internal/config"
	httptransport "github.com/example/space-booking/internal/http"
	"github.com/example/space-booking/internal/persistence"
	"github.com/example/space-booking/internal/persistence/sqlite"
	"github.com/example/space-booking/internal/token"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	tokens := newCredentialSignerAdapter(token.NewManager([]byte(cfg.JWTSecret), cfg.TokenTTL, nil))
	revocations := application.NewTokenRevocations(nil)
	hasher := application.NewPasswordHasher(cfg.BcryptCost)

	clientStore := newClientStoreAdapter(storage.Clients)
	bookingStore := newBookingStoreAdapter(storage.Bookings)

	authService := application.NewAuthServiceWithLogger(clientStore, tokens, revocations, hasher, application.VerifyPassword, idGenerator, logger)
	bookingService := application.NewBookingServiceWithLogger(bookingStore, idGenerator, logger)
	clientService := application.NewClientServiceWithLogger(clientStore, hasher, idGenerator, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:     httptransport.NewAuthHandler(authService, logger),
		Bookings: httptransport.NewBookingHandler(bookingService, logger),
		Users:    httptransport.NewUserHandler(clientService, logger),
		Session:  httptransport.RequireSession(authService, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("booking API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// mapStorageError translates persistence sentinels into the application
// error taxonomy.
func mapStorageError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return application.ErrNotFound
	case errors.Is(err, persistence.ErrOverlap):
		return application.ErrConflict
	case errors.Is(err, persistence.ErrDuplicate):
		return fmt.Errorf("%w: user already exists", application.ErrConflict)
	}
	return err
}

type credentialSignerAdapter struct {
	manager *token.Manager
}

func newCredentialSignerAdapter(manager *token.Manager) *credentialSignerAdapter {
	return &credentialSignerAdapter{manager: manager}
}

func (a *credentialSignerAdapter) Sign(clientID, name, email string) (string, error) {
	return a.manager.Sign(clientID, name, email)
}

func (a *credentialSignerAdapter) Verify(tokenString string) (application.TokenClaims, error) {
	claims, err := a.manager.Verify(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return application.TokenClaims{}, application.ErrTokenExpired
		}
		return application.TokenClaims{}, application.ErrUnauthenticated
	}

	result := application.TokenClaims{
		ClientID: claims.ClientID(),
		Name:     claims.Name,
		Email:    claims.Email,
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}
	return result, nil
}

type clientStoreAdapter struct {
	repo persistence.ClientRepository
}

func newClientStoreAdapter(repo persistence.ClientRepository) *clientStoreAdapter {
	return &clientStoreAdapter{repo: repo}
}

func (a *clientStoreAdapter) CreateClient(ctx context.Context, client application.Client, passwordHash string) (application.Client, error) {
	record := persistence.Client{
		ID:           client.ID,
		Name:         client.Name,
		Email:        client.Email,
		PasswordHash: passwordHash,
		Role:         client.Role,
	}
	if err := a.repo.CreateClient(ctx, record); err != nil {
		return application.Client{}, mapStorageError(err)
	}
	stored, err := a.repo.GetClient(ctx, client.ID)
	if err != nil {
		return application.Client{}, mapStorageError(err)
	}
	return toApplicationClient(stored), nil
}

func (a *clientStoreAdapter) GetClient(ctx context.Context, id string) (application.Client, error) {
	stored, err := a.repo.GetClient(ctx, id)
	if err != nil {
		return application.Client{}, mapStorageError(err)
	}
	return toApplicationClient(stored), nil
}

func (a *clientStoreAdapter) GetClientCredentialsByEmail(ctx context.Context, email string) (application.ClientCredentials, error) {
	stored, err := a.repo.GetClientByEmail(ctx, email)
	if err != nil {
		return application.ClientCredentials{}, mapStorageError(err)
	}
	return application.ClientCredentials{
		Client:       toApplicationClient(stored),
		PasswordHash: stored.PasswordHash,
	}, nil
}

func (a *clientStoreAdapter) UpdateClient(ctx context.Context, client application.Client, passwordHash string) (application.Client, error) {
	current, err := a.repo.GetClient(ctx, client.ID)
	if err != nil {
		return application.Client{}, mapStorageError(err)
	}
	if passwordHash == "" {
		passwordHash = current.PasswordHash
	}

	record := persistence.Client{
		ID:           client.ID,
		Name:         client.Name,
		Email:        client.Email,
		PasswordHash: passwordHash,
		Role:         client.Role,
	}
	if err := a.repo.UpdateClient(ctx, record); err != nil {
		return application.Client{}, mapStorageError(err)
	}
	stored, err := a.repo.GetClient(ctx, client.ID)
	if err != nil {
		return application.Client{}, mapStorageError(err)
	}
	return toApplicationClient(stored), nil
}

func (a *clientStoreAdapter) DeleteClient(ctx context.Context, id string) error {
	return mapStorageError(a.repo.DeleteClient(ctx, id))
}

func (a *clientStoreAdapter) ListClients(ctx context.Context, filter application.ClientFilter) ([]application.Client, error) {
	models, err := a.repo.ListClients(ctx, persistence.ClientFilter{
		EmailKeyword: filter.EmailKeyword,
		Limit:        filter.Limit,
		Offset:       filter.Offset,
	})
	if err != nil {
		return nil, mapStorageError(err)
	}
	if len(models) == 0 {
		return nil, nil
	}
	clients := make([]application.Client, 0, len(models))
	for _, model := range models {
		clients = append(clients, toApplicationClient(model))
	}
	return clients, nil
}

type bookingStoreAdapter struct {
	repo persistence.BookingRepository
}

func newBookingStoreAdapter(repo persistence.BookingRepository) *bookingStoreAdapter {
	return &bookingStoreAdapter{repo: repo}
}

func (a *bookingStoreAdapter) CreateBookingIfAvailable(ctx context.Context, b application.Booking, interval booking.Interval) (application.Booking, error) {
	if err := a.repo.CreateBookingIfAvailable(ctx, toPersistenceBooking(b, interval)); err != nil {
		return application.Booking{}, mapStorageError(err)
	}
	stored, err := a.repo.GetBooking(ctx, b.ID)
	if err != nil {
		return application.Booking{}, mapStorageError(err)
	}
	return toApplicationBooking(stored), nil
}

func (a *bookingStoreAdapter) GetBooking(ctx context.Context, id string) (application.Booking, error) {
	stored, err := a.repo.GetBooking(ctx, id)
	if err != nil {
		return application.Booking{}, mapStorageError(err)
	}
	return toApplicationBooking(stored), nil
}

func (a *bookingStoreAdapter) ListBookings(ctx context.Context) ([]application.Booking, error) {
	models, err := a.repo.ListBookings(ctx)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return toApplicationBookings(models), nil
}

func (a *bookingStoreAdapter) ListBookingsByClient(ctx context.Context, clientID string) ([]application.Booking, error) {
	models, err := a.repo.ListBookingsByClient(ctx, clientID)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return toApplicationBookings(models), nil
}

func (a *bookingStoreAdapter) UpdateBookingIfAvailable(ctx context.Context, b application.Booking, interval booking.Interval) (application.Booking, error) {
	if err := a.repo.UpdateBookingIfAvailable(ctx, toPersistenceBooking(b, interval)); err != nil {
		return application.Booking{}, mapStorageError(err)
	}
	stored, err := a.repo.GetBooking(ctx, b.ID)
	if err != nil {
		return application.Booking{}, mapStorageError(err)
	}
	return toApplicationBooking(stored), nil
}

func (a *bookingStoreAdapter) DeleteBooking(ctx context.Context, id string) error {
	return mapStorageError(a.repo.DeleteBooking(ctx, id))
}

func toApplicationClient(model persistence.Client) application.Client {
	return application.Client{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Role:      model.Role,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func toPersistenceBooking(b application.Booking, interval booking.Interval) persistence.Booking {
	return persistence.Booking{
		ID:                b.ID,
		ClientID:          b.ClientID,
		ClientName:        b.ClientName,
		ClientEmail:       b.ClientEmail,
		Company:           b.Company,
		TypeOfSpaceNeeded: b.TypeOfSpaceNeeded,
		BookingStartDate:  b.BookingStartDate,
		BookingStartTime:  b.BookingStartTime,
		BookingEndDate:    b.BookingEndDate,
		BookingEndTime:    b.BookingEndTime,
		StartAt:           interval.Start,
		EndAt:             interval.End,
		Attendees:         b.Attendees,
		Reminder:          b.Reminder,
	}
}

func toApplicationBooking(model persistence.Booking) application.Booking {
	return application.Booking{
		ID:                model.ID,
		ClientID:          model.ClientID,
		ClientName:        model.ClientName,
		ClientEmail:       model.ClientEmail,
		Company:           model.Company,
		TypeOfSpaceNeeded: model.TypeOfSpaceNeeded,
		BookingStartDate:  model.BookingStartDate,
		BookingStartTime:  model.BookingStartTime,
		BookingEndDate:    model.BookingEndDate,
		BookingEndTime:    model.BookingEndTime,
		Attendees:         model.Attendees,
		Reminder:          model.Reminder,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

func toApplicationBookings(models []persistence.Booking) []application.Booking {
	if len(models) == 0 {
		return nil
	}
	bookings := make([]application.Booking, 0, len(models))
	for _, model := range models {
		bookings = append(bookings, toApplicationBooking(model))
	}
	return bookings
}
