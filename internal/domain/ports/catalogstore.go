package ports

import (
	"context"

	"github.com/hexfield/rulecore/internal/domain/catalog"
)

// CatalogStore persists the local ruleset catalog and the option-change
// log. The SQLite implementation lives in infrastructure.
type CatalogStore interface {
	// EnsureSchema creates the store schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the store.
	Close() error

	// SaveRuleset saves or updates an installed ruleset by name.
	SaveRuleset(ctx context.Context, info *catalog.RulesetInfo) error

	// FindRuleset finds an installed ruleset by name, nil when absent.
	FindRuleset(ctx context.Context, name string) (*catalog.RulesetInfo, error)

	// ListRulesets lists installed rulesets ordered by name.
	ListRulesets(ctx context.Context) ([]catalog.RulesetInfo, error)

	// DeleteRuleset removes an installed ruleset by name.
	DeleteRuleset(ctx context.Context, name string) error

	// LogOptionChange appends one option mutation to the change log.
	LogOptionChange(ctx context.Context, change *catalog.OptionChange) error

	// FindOptionChanges returns the most recent changes for an option,
	// newest first.
	FindOptionChanges(ctx context.Context, optionID string, limit int) ([]catalog.OptionChange, error)
}
