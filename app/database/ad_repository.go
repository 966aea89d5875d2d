package database

import (
	"database/sql"
	"fmt"
)

// DefaultAdConfig is returned before an admin has saved any configuration.
var DefaultAdConfig = AdConfig{
	Enabled:    false,
	Placement:  "before_footer",
	Dimensions: "728x90",
}

type adConfigRepository struct {
	db *DB
}

func NewAdConfigRepository(db *DB) AdConfigRepository {
	return &adConfigRepository{db: db}
}

func (r *adConfigRepository) Get() (AdConfig, error) {
	var config AdConfig
	err := r.db.QueryRow(`
		SELECT script, enabled, placement, dimensions, start_at, end_at
		FROM ad_config WHERE id = 1
	`).Scan(&config.Script, &config.Enabled, &config.Placement, &config.Dimensions,
		&config.StartAt, &config.EndAt)

	if err == sql.ErrNoRows {
		return DefaultAdConfig, nil
	}
	if err != nil {
		return AdConfig{}, fmt.Errorf("failed to get ad config: %w", err)
	}

	return config, nil
}

func (r *adConfigRepository) Put(config AdConfig) error {
	_, err := r.db.Exec(`
		INSERT INTO ad_config (id, script, enabled, placement, dimensions, start_at, end_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			script = excluded.script,
			enabled = excluded.enabled,
			placement = excluded.placement,
			dimensions = excluded.dimensions,
			start_at = excluded.start_at,
			end_at = excluded.end_at
	`, config.Script, config.Enabled, config.Placement, config.Dimensions,
		config.StartAt, config.EndAt)

	if err != nil {
		return fmt.Errorf("failed to save ad config: %w", err)
	}

	return nil
}
