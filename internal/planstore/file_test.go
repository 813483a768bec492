package planstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mapleplan/mapleplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id, clientID string) domain.PlanRecord {
	return domain.PlanRecord{
		ID:        id,
		ClientID:  clientID,
		CreatedAt: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		Plan:      &domain.Plan{FinancialLevel: 2, FinancialLevelLabel: "Stability"},
	}
}

func TestFileStoreSaveAndGet(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, record("plan-1", "client-a")))

	got, err := store.GetByID(ctx, "plan-1")
	require.NoError(t, err)
	assert.Equal(t, "plan-1", got.ID)
	require.NotNil(t, got.Plan)
	assert.Equal(t, "Stability", got.Plan.FinancialLevelLabel)
}

func TestFileStoreGetByIDNotFound(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreLatestByClient(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, record("plan-1", "client-a")))
	require.NoError(t, store.Save(ctx, record("plan-2", "client-b")))
	require.NoError(t, store.Save(ctx, record("plan-3", "client-a")))

	got, err := store.GetLatestByClientID(ctx, "client-a")
	require.NoError(t, err)
	assert.Equal(t, "plan-3", got.ID, "the latest save wins")

	_, err = store.GetLatestByClientID(ctx, "client-c")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.GetLatestByClientID(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreCapsRecords(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < MaxRecords+5; i++ {
		require.NoError(t, store.Save(ctx, record(fmt.Sprintf("plan-%d", i), "client-a")))
	}

	// The oldest records are gone, the newest survive.
	_, err = store.GetByID(ctx, "plan-0")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := store.GetByID(ctx, fmt.Sprintf("plan-%d", MaxRecords+4))
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, record("plan-1", "client-a")))

	second, err := NewFileStore(dir)
	require.NoError(t, err)
	got, err := second.GetByID(ctx, "plan-1")
	require.NoError(t, err)
	assert.Equal(t, "plan-1", got.ID)
}
