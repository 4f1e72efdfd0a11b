// Package sqlite provides a SQLite implementation of the CatalogStore
// interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/hexfield/rulecore/internal/domain/catalog"
	"github.com/hexfield/rulecore/internal/infrastructure/config"
)

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.CatalogStore using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.CatalogConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{db: db, path: cfg.Path}, nil
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the catalog schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS rulesets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		path TEXT NOT NULL,
		version TEXT NOT NULL DEFAULT '',
		checksum TEXT NOT NULL DEFAULT '',
		installed_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS option_changes (
		id TEXT PRIMARY KEY,
		option_id TEXT NOT NULL,
		old_value TEXT NOT NULL,
		new_value TEXT NOT NULL,
		changed_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_option_changes_option
		ON option_changes(option_id, changed_at DESC);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// SaveRuleset saves or updates an installed ruleset by name.
func (r *Repository) SaveRuleset(ctx context.Context, info *catalog.RulesetInfo) error {
	if info.ID == "" {
		info.ID = generateUUID()
	}
	if info.InstalledAt.IsZero() {
		info.InstalledAt = timeNow()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO rulesets (id, name, path, version, checksum, installed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			path = excluded.path,
			version = excluded.version,
			checksum = excluded.checksum,
			installed_at = excluded.installed_at`,
		info.ID, info.Name, info.Path, info.Version, info.Checksum, info.InstalledAt)
	if err != nil {
		return fmt.Errorf("saving ruleset %q: %w", info.Name, err)
	}
	return nil
}

// FindRuleset finds an installed ruleset by name, nil when absent.
func (r *Repository) FindRuleset(ctx context.Context, name string) (*catalog.RulesetInfo, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, path, version, checksum, installed_at
		FROM rulesets WHERE name = ?`, name)

	var info catalog.RulesetInfo
	err := row.Scan(&info.ID, &info.Name, &info.Path, &info.Version,
		&info.Checksum, &info.InstalledAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding ruleset %q: %w", name, err)
	}
	return &info, nil
}

// ListRulesets lists installed rulesets ordered by name.
func (r *Repository) ListRulesets(ctx context.Context) ([]catalog.RulesetInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, path, version, checksum, installed_at
		FROM rulesets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing rulesets: %w", err)
	}
	defer rows.Close()

	var result []catalog.RulesetInfo
	for rows.Next() {
		var info catalog.RulesetInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Path, &info.Version,
			&info.Checksum, &info.InstalledAt); err != nil {
			return nil, fmt.Errorf("scanning ruleset: %w", err)
		}
		result = append(result, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing rulesets: %w", err)
	}
	return result, nil
}

// DeleteRuleset removes an installed ruleset by name.
func (r *Repository) DeleteRuleset(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM rulesets WHERE name = ?`, name); err != nil {
		return fmt.Errorf("deleting ruleset %q: %w", name, err)
	}
	return nil
}

// LogOptionChange appends one option mutation to the change log.
func (r *Repository) LogOptionChange(ctx context.Context, change *catalog.OptionChange) error {
	if change.ID == "" {
		change.ID = generateUUID()
	}
	if change.ChangedAt.IsZero() {
		change.ChangedAt = timeNow()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO option_changes (id, option_id, old_value, new_value, changed_at)
		VALUES (?, ?, ?, ?, ?)`,
		change.ID, change.OptionID, change.OldValue, change.NewValue, change.ChangedAt)
	if err != nil {
		return fmt.Errorf("logging change for option %q: %w", change.OptionID, err)
	}
	return nil
}

// FindOptionChanges returns the most recent changes for an option, newest
// first.
func (r *Repository) FindOptionChanges(ctx context.Context, optionID string, limit int) ([]catalog.OptionChange, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, option_id, old_value, new_value, changed_at
		FROM option_changes WHERE option_id = ?
		ORDER BY changed_at DESC LIMIT ?`, optionID, limit)
	if err != nil {
		return nil, fmt.Errorf("finding changes for option %q: %w", optionID, err)
	}
	defer rows.Close()

	var result []catalog.OptionChange
	for rows.Next() {
		var change catalog.OptionChange
		if err := rows.Scan(&change.ID, &change.OptionID, &change.OldValue,
			&change.NewValue, &change.ChangedAt); err != nil {
			return nil, fmt.Errorf("scanning option change: %w", err)
		}
		result = append(result, change)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("finding changes for option %q: %w", optionID, err)
	}
	return result, nil
}
