// Package storage persists users and report history. The Postgres
// implementations back the running service; the in-memory ones back tests.
package storage

import (
	"context"
	"errors"
	"time"

	"shiftwrite/models"
)

var (
	// ErrEmailTaken signals a register attempt with an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNotFound signals a missing user or history entry.
	ErrNotFound = errors.New("not found")
)

// UserStore holds identity records.
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash string) (models.User, error)
	// GetUserByEmail returns the user and its password hash for credential
	// verification.
	GetUserByEmail(ctx context.Context, email string) (models.User, string, error)
}

// HistoryStore is the append-only per-owner report log. Entries are never
// updated or deleted; listings come back newest first.
type HistoryStore interface {
	Append(ctx context.Context, ownerID string, rec models.ShiftRecord, rawText string, createdAt time.Time) (models.HistoryEntry, error)
	ListFor(ctx context.Context, ownerID string) ([]models.HistoryEntry, error)
	// GetFor returns one entry, scoped to its owner; an entry belonging to
	// another owner is ErrNotFound, never exposed.
	GetFor(ctx context.Context, ownerID, id string) (models.HistoryEntry, error)
}
