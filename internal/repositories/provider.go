package repositories

import (
	"context"
	"log/slog"

	"github.com/smarthealthquote/smarthealthquote/internal/errors"
	"github.com/smarthealthquote/smarthealthquote/internal/models"
	"github.com/smarthealthquote/smarthealthquote/internal/sqlite"
)

type ProviderRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewProviderRepository(db *sqlite.Database, logger *slog.Logger) *ProviderRepository {
	return &ProviderRepository{
		db:     db,
		logger: logger.With("source", "ProviderRepository"),
	}
}

// List returns the full provider directory in display order.
func (r *ProviderRepository) List(ctx context.Context) ([]models.Provider, error) {
	var providers []models.Provider
	stmt := `SELECT id, name, description, link, icon, rating FROM providers ORDER BY sort_order`
	if err := r.db.ReadOnly.SelectContext(ctx, &providers, stmt); err != nil {
		return nil, errors.Wrap(err, "select providers")
	}
	return providers, nil
}

// Get returns a single provider by ID.
func (r *ProviderRepository) Get(ctx context.Context, id string) (*models.Provider, error) {
	var provider models.Provider
	stmt := `SELECT id, name, description, link, icon, rating FROM providers WHERE id = ?`
	if err := r.db.ReadOnly.GetContext(ctx, &provider, stmt, id); err != nil {
		return nil, errors.Wrap(err, "get provider", slog.String("provider_id", id))
	}
	return &provider, nil
}
