// Package sqlite implements the persistence repositories on top of a SQLite
// database using the modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"fmt"
)

// Storage bundles the SQLite-backed repositories behind a single open/close
// lifecycle.
type Storage struct {
	pool     *ConnectionPool
	Clients  *ClientRepository
	Bookings *BookingRepository
}

// Open connects to the SQLite database identified by dsn.
func Open(dsn string) (*Storage, error) {
	pool, err := NewConnectionPool(dsn)
	if err != nil {
		return nil, err
	}

	return &Storage{
		pool:     pool,
		Clients:  NewClientRepository(pool),
		Bookings: NewBookingRepository(pool),
	}, nil
}

// Close releases the underlying connection pool.
func (s *Storage) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	return s.pool.Close()
}

// Pool exposes the underlying connection pool.
func (s *Storage) Pool() *ConnectionPool {
	return s.pool
}

// Migrate applies the schema. Statements are idempotent so Migrate is safe to
// run on every startup.
func (s *Storage) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'User',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,
	// client_id is a plain reference: deleting a client must not cascade to
	// its bookings, matching the document-store origin of the data model.
	`CREATE TABLE IF NOT EXISTS bookings (
		id                   TEXT PRIMARY KEY,
		client_id            TEXT NOT NULL,
		client_name          TEXT NOT NULL DEFAULT '',
		client_email         TEXT NOT NULL DEFAULT '',
		company              TEXT NOT NULL DEFAULT '',
		type_of_space_needed TEXT NOT NULL,
		booking_start_date   TEXT NOT NULL,
		booking_start_time   TEXT NOT NULL,
		booking_end_date     TEXT NOT NULL,
		booking_end_time     TEXT NOT NULL,
		start_at             TEXT NOT NULL,
		end_at               TEXT NOT NULL,
		attendees            TEXT NOT NULL DEFAULT '',
		reminder             INTEGER NOT NULL DEFAULT 0,
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_interval ON bookings (start_at, end_at)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_client ON bookings (client_id)`,
}
