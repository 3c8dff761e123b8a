package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"shiftwrite/models"
)

const uniqueViolation = "23505"

// PostgresUserStore implements UserStore on a pgx pool.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

func (s *PostgresUserStore) CreateUser(ctx context.Context, email, passwordHash string) (models.User, error) {
	query := `
        INSERT INTO users (email, password_hash)
        VALUES ($1, $2)
        RETURNING id, email, created_at
    `

	var user models.User
	err := s.pool.QueryRow(ctx, query, email, passwordHash).Scan(
		&user.ID,
		&user.Email,
		&user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

func (s *PostgresUserStore) GetUserByEmail(ctx context.Context, email string) (models.User, string, error) {
	query := `
        SELECT id, email, password_hash, created_at
        FROM users
        WHERE email = $1
    `

	var user models.User
	var passwordHash string
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&passwordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, "", ErrNotFound
		}
		return models.User{}, "", fmt.Errorf("fetching user: %w", err)
	}

	return user, passwordHash, nil
}

// PostgresHistoryStore implements HistoryStore on a pgx pool, keeping the
// shift record snapshot as jsonb.
type PostgresHistoryStore struct {
	pool *pgxpool.Pool
}

func NewPostgresHistoryStore(pool *pgxpool.Pool) *PostgresHistoryStore {
	return &PostgresHistoryStore{pool: pool}
}

func (s *PostgresHistoryStore) Append(ctx context.Context, ownerID string, rec models.ShiftRecord, rawText string, createdAt time.Time) (models.HistoryEntry, error) {
	snapshot, err := json.Marshal(rec)
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("encoding record: %w", err)
	}

	query := `
        INSERT INTO reports (owner_id, record, raw_text, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `

	entry := models.HistoryEntry{
		OwnerID:   ownerID,
		Record:    rec,
		RawText:   rawText,
		CreatedAt: createdAt,
	}
	err = s.pool.QueryRow(ctx, query, ownerID, string(snapshot), rawText, createdAt).Scan(&entry.ID)
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("appending report: %w", err)
	}

	return entry, nil
}

func (s *PostgresHistoryStore) ListFor(ctx context.Context, ownerID string) ([]models.HistoryEntry, error) {
	query := `
        SELECT id, owner_id, record, raw_text, created_at
        FROM reports
        WHERE owner_id = $1
        ORDER BY created_at DESC
    `

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}

	return entries, nil
}

func (s *PostgresHistoryStore) GetFor(ctx context.Context, ownerID, id string) (models.HistoryEntry, error) {
	query := `
        SELECT id, owner_id, record, raw_text, created_at
        FROM reports
        WHERE owner_id = $1 AND id = $2
    `

	row := s.pool.QueryRow(ctx, query, ownerID, id)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.HistoryEntry{}, ErrNotFound
		}
		return models.HistoryEntry{}, err
	}

	return entry, nil
}

func scanEntry(row pgx.Row) (models.HistoryEntry, error) {
	var entry models.HistoryEntry
	var snapshot []byte
	err := row.Scan(
		&entry.ID,
		&entry.OwnerID,
		&snapshot,
		&entry.RawText,
		&entry.CreatedAt,
	)
	if err != nil {
		return models.HistoryEntry{}, err
	}
	if err := json.Unmarshal(snapshot, &entry.Record); err != nil {
		return models.HistoryEntry{}, fmt.Errorf("decoding record: %w", err)
	}
	return entry, nil
}
