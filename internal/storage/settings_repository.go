package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/arupbarman82/ft-chromebook-app/internal/models"
)

// SettingsRepository is the data access layer for the saved OpenAI
// settings. The table holds at most one row.
type SettingsRepository struct {
	db *DB
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the saved settings, or nil when nothing has been saved yet.
func (r *SettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT api_key, model, fallback_models, reasoning_effort FROM settings WHERE id = 1`)

	var s models.Settings
	err := row.Scan(&s.APIKey, &s.Model, &s.FallbackModels, &s.ReasoningEffort)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Save stores the settings, replacing any previous row.
func (r *SettingsRepository) Save(ctx context.Context, s models.Settings) error {
	s.ReasoningEffort = models.NormalizeEffort(s.ReasoningEffort)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (id, api_key, model, fallback_models, reasoning_effort, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			api_key = excluded.api_key,
			model = excluded.model,
			fallback_models = excluded.fallback_models,
			reasoning_effort = excluded.reasoning_effort,
			updated_at = excluded.updated_at`,
		s.APIKey, s.Model, s.FallbackModels, s.ReasoningEffort, time.Now())
	return err
}
