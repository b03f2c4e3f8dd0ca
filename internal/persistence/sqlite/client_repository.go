package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/space-booking/internal/persistence"
)

// ClientRepository implements persistence.ClientRepository using SQLite.
type ClientRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewClientRepository creates a new SQLite client repository.
func NewClientRepository(pool *ConnectionPool) *ClientRepository {
	return &ClientRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

const clientColumns = `id, name, email, password_hash, role, created_at, updated_at`

// CreateClient inserts a new client account.
func (r *ClientRepository) CreateClient(ctx context.Context, client persistence.Client) error {
	if client.ID == "" || client.PasswordHash == "" {
		return persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now

	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		client.ID,
		client.Name,
		normalizeEmail(client.Email),
		client.PasswordHash,
		client.Role,
		client.CreatedAt.Format(time.RFC3339),
		client.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return r.mapper.MapError(err)
	}

	return nil
}

// GetClient retrieves a client by id.
func (r *ClientRepository) GetClient(ctx context.Context, id string) (persistence.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`
	return r.scanClient(r.helper.QueryRow(ctx, query, id))
}

// GetClientByEmail retrieves a client by its unique email address.
func (r *ClientRepository) GetClientByEmail(ctx context.Context, email string) (persistence.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE email = ?`
	return r.scanClient(r.helper.QueryRow(ctx, query, normalizeEmail(email)))
}

// UpdateClient updates an existing client account.
func (r *ClientRepository) UpdateClient(ctx context.Context, client persistence.Client) error {
	if client.ID == "" || client.PasswordHash == "" {
		return persistence.ErrConstraintViolation
	}

	client.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE clients
		SET name = ?, email = ?, password_hash = ?, role = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.helper.Exec(ctx, query,
		client.Name,
		normalizeEmail(client.Email),
		client.PasswordHash,
		client.Role,
		client.UpdatedAt.Format(time.RFC3339),
		client.ID,
	)
	if err != nil {
		return r.mapper.MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// DeleteClient removes a client account. Its bookings are intentionally left
// in place.
func (r *ClientRepository) DeleteClient(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return r.mapper.MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// ListClients returns clients ordered by creation time, optionally filtered
// by an email substring and paginated via limit/offset.
func (r *ClientRepository) ListClients(ctx context.Context, filter persistence.ClientFilter) ([]persistence.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients`
	args := make([]any, 0, 3)

	if keyword := strings.TrimSpace(filter.EmailKeyword); keyword != "" {
		query += ` WHERE email LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(strings.ToLower(keyword))+"%")
	}

	query += ` ORDER BY created_at, id`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var clients []persistence.Client
	for rows.Next() {
		client, err := r.scanClientRow(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return clients, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ClientRepository) scanClient(row *sql.Row) (persistence.Client, error) {
	client, err := scanClientFields(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Client{}, persistence.ErrNotFound
		}
		return persistence.Client{}, r.mapper.MapError(err)
	}
	return client, nil
}

func (r *ClientRepository) scanClientRow(rows *sql.Rows) (persistence.Client, error) {
	client, err := scanClientFields(rows)
	if err != nil {
		return persistence.Client{}, r.mapper.MapError(err)
	}
	return client, nil
}

func scanClientFields(scanner rowScanner) (persistence.Client, error) {
	var client persistence.Client
	var createdAt, updatedAt string

	if err := scanner.Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&client.PasswordHash,
		&client.Role,
		&createdAt,
		&updatedAt,
	); err != nil {
		return persistence.Client{}, err
	}

	var err error
	if client.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return persistence.Client{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if client.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return persistence.Client{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return client, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
