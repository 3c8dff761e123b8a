package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"shiftwrite/models"
)

// MemoryUserStore keeps users in-process. Safe for concurrent use.
type MemoryUserStore struct {
	mu     sync.RWMutex
	users  map[string]models.User // key: user ID
	hashes map[string]string      // key: user ID
	email  map[string]string      // email -> user ID
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:  make(map[string]models.User),
		hashes: make(map[string]string),
		email:  make(map[string]string),
	}
}

func (m *MemoryUserStore) CreateUser(_ context.Context, email, passwordHash string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(email)
	if _, exists := m.email[key]; exists {
		return models.User{}, ErrEmailTaken
	}

	user := models.User{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	m.users[user.ID] = user
	m.hashes[user.ID] = passwordHash
	m.email[key] = user.ID

	return user, nil
}

func (m *MemoryUserStore) GetUserByEmail(_ context.Context, email string) (models.User, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.email[strings.ToLower(email)]
	if !ok {
		return models.User{}, "", ErrNotFound
	}
	return m.users[id], m.hashes[id], nil
}

// MemoryHistoryStore keeps report history in-process. Safe for concurrent
// use.
type MemoryHistoryStore struct {
	mu      sync.RWMutex
	entries map[string][]models.HistoryEntry // key: owner ID
}

func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{
		entries: make(map[string][]models.HistoryEntry),
	}
}

func (m *MemoryHistoryStore) Append(_ context.Context, ownerID string, rec models.ShiftRecord, rawText string, createdAt time.Time) (models.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := models.HistoryEntry{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Record:    rec,
		RawText:   rawText,
		CreatedAt: createdAt,
	}
	m.entries[ownerID] = append(m.entries[ownerID], entry)

	return entry, nil
}

func (m *MemoryHistoryStore) ListFor(_ context.Context, ownerID string) ([]models.HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owned := m.entries[ownerID]
	out := make([]models.HistoryEntry, len(owned))
	copy(out, owned)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (m *MemoryHistoryStore) GetFor(_ context.Context, ownerID, id string) (models.HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, entry := range m.entries[ownerID] {
		if entry.ID == id {
			return entry, nil
		}
	}
	return models.HistoryEntry{}, ErrNotFound
}
