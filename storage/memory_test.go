package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftwrite/models"
)

func TestMemoryUserStoreCreateAndFetch(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "owner@restaurant.com", "hash")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID, "expected an assigned user ID")

	got, hash, err := s.GetUserByEmail(ctx, "owner@restaurant.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "hash", hash)
}

func TestMemoryUserStoreRejectsDuplicateEmail(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "owner@restaurant.com", "hash")
	require.NoError(t, err)

	// Case-insensitive duplicate.
	_, err = s.CreateUser(ctx, "Owner@Restaurant.com", "hash")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestMemoryUserStoreUnknownEmail(t *testing.T) {
	s := NewMemoryUserStore()
	_, _, err := s.GetUserByEmail(context.Background(), "nobody@restaurant.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryHistoryStoreListsNewestFirst(t *testing.T) {
	s := NewMemoryHistoryStore()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 22, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := s.Append(ctx, "user-1", models.ShiftRecord{Date: "2024-05-01"}, "report", base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}

	entries, err := s.ListFor(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].CreatedAt.After(entries[i-1].CreatedAt), "entries not in descending order")
	}
}

func TestMemoryHistoryStoreIsolatesOwners(t *testing.T) {
	s := NewMemoryHistoryStore()
	ctx := context.Background()
	now := time.Now().UTC()

	mine, err := s.Append(ctx, "user-1", models.ShiftRecord{}, "mine", now)
	require.NoError(t, err)
	_, err = s.Append(ctx, "user-2", models.ShiftRecord{}, "theirs", now)
	require.NoError(t, err)

	entries, err := s.ListFor(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "mine", entries[0].RawText)

	// A foreign ID reads as missing, never as someone else's report.
	_, err = s.GetFor(ctx, "user-2", mine.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetFor(ctx, "user-1", mine.ID)
	assert.NoError(t, err)
}

func TestMemoryHistoryStoreEmptyList(t *testing.T) {
	s := NewMemoryHistoryStore()
	entries, err := s.ListFor(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
