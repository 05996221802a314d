package repositories_test

import (
	"context"
	"io"
	"testing"

	"github.com/smarthealthquote/smarthealthquote/internal/repositories"
	"github.com/smarthealthquote/smarthealthquote/internal/sqlite"
	"github.com/smarthealthquote/smarthealthquote/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

// newTestDB creates a new in-memory database for testing purposes.
func newTestDB(t *testing.T) *sqlite.Database {
	t.Helper()
	db, err := sqlite.NewDatabase(context.Background(), ":memory:", testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func TestProviderRepository_List(t *testing.T) {
	t.Parallel()
	repo := repositories.NewProviderRepository(newTestDB(t), testhelpers.NewLogger(io.Discard))

	providers, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 5)

	// Directory order is fixed by sort_order.
	require.Equal(t, "HealthCorp", providers[0].Name)
	require.Equal(t, "Horizon Mutual", providers[4].Name)
	for _, p := range providers {
		require.NotEmpty(t, p.Description)
		require.NotEmpty(t, p.Link)
		require.NotEmpty(t, p.Icon)
		require.GreaterOrEqual(t, p.Rating, 0.0)
		require.LessOrEqual(t, p.Rating, 5.0)
	}
}

func TestProviderRepository_Get(t *testing.T) {
	t.Parallel()
	repo := repositories.NewProviderRepository(newTestDB(t), testhelpers.NewLogger(io.Discard))

	provider, err := repo.Get(context.Background(), "healthcorp")
	require.NoError(t, err)
	require.Equal(t, "HealthCorp", provider.Name)

	_, err = repo.Get(context.Background(), "does-not-exist")
	require.Error(t, err)
}
