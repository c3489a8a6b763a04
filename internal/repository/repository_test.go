package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faqbot-backend/internal/database"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	// Migrate is idempotent
	require.NoError(t, database.Migrate(db))

	return db
}

func strPtr(s string) *string { return &s }

func TestConversationRepo_LogAssignsIncreasingIDs(t *testing.T) {
	repo := NewConversationRepo(newTestDB(t))
	ctx := context.Background()

	first, err := repo.Log(ctx, "q1", "a1", "model", nil)
	require.NoError(t, err)

	second, err := repo.Log(ctx, "q2", "a2", "fallback", strPtr("sess-1"))
	require.NoError(t, err)

	assert.Greater(t, second, first)
}

func TestConversationRepo_ListAllNewestFirst(t *testing.T) {
	repo := NewConversationRepo(newTestDB(t))
	ctx := context.Background()

	for _, q := range []string{"first", "second", "third"} {
		_, err := repo.Log(ctx, q, "answer to "+q, "model", nil)
		require.NoError(t, err)
	}

	logs, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 3)

	assert.Equal(t, "third", logs[0].Question)
	assert.Equal(t, "second", logs[1].Question)
	assert.Equal(t, "first", logs[2].Question)
	assert.Nil(t, logs[0].SessionID)
}

func TestConversationRepo_RoundTripsFields(t *testing.T) {
	repo := NewConversationRepo(newTestDB(t))
	ctx := context.Background()

	id, err := repo.Log(ctx, "What are your hours?", "9-5 Mon-Fri", "model", strPtr("sess-42"))
	require.NoError(t, err)

	logs, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)

	assert.Equal(t, id, logs[0].ID)
	assert.Equal(t, "What are your hours?", logs[0].Question)
	assert.Equal(t, "9-5 Mon-Fri", logs[0].Answer)
	assert.Equal(t, "model", logs[0].Source)
	require.NotNil(t, logs[0].SessionID)
	assert.Equal(t, "sess-42", *logs[0].SessionID)
	assert.NotEmpty(t, logs[0].Timestamp)
}

func TestConversationRepo_RecentLimits(t *testing.T) {
	repo := NewConversationRepo(newTestDB(t))
	ctx := context.Background()

	for _, q := range []string{"one", "two", "three", "four"} {
		_, err := repo.Log(ctx, q, "a", "model", nil)
		require.NoError(t, err)
	}

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	assert.Equal(t, "four", recent[0].Question)
	assert.Equal(t, "three", recent[1].Question)
}

func TestConversationRepo_EmptyListIsNotNil(t *testing.T) {
	repo := NewConversationRepo(newTestDB(t))

	logs, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
}

func TestTrainingRepo_AddAndListNewestFirst(t *testing.T) {
	repo := NewTrainingRepo(newTestDB(t))
	ctx := context.Background()

	firstID, err := repo.Add(ctx, "What are your hours?", "9-5 Mon-Fri")
	require.NoError(t, err)

	secondID, err := repo.Add(ctx, "Where are you located?", "Downtown")
	require.NoError(t, err)
	assert.Greater(t, secondID, firstID)

	examples, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, examples, 2)

	assert.Equal(t, "Where are you located?", examples[0].Question)
	assert.Equal(t, "What are your hours?", examples[1].Question)
	assert.NotEmpty(t, examples[0].CreatedAt)
}

func TestTrainingRepo_RecentLimits(t *testing.T) {
	repo := NewTrainingRepo(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := repo.Add(ctx, "question", "answer")
		require.NoError(t, err)
	}

	recent, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 10)
}
