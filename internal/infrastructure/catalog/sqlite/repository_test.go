package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexfield/rulecore/internal/domain/catalog"
	"github.com/hexfield/rulecore/internal/infrastructure/config"
)

// setupTestRepo creates an in-memory SQLite repository for testing.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(config.CatalogConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	err = repo.EnsureSchema(context.Background())
	require.NoError(t, err)

	return repo
}

func TestNewRepository(t *testing.T) {
	t.Run("success with memory database", func(t *testing.T) {
		repo, err := NewRepository(config.CatalogConfig{Path: ":memory:"})
		require.NoError(t, err)
		defer repo.Close()
		assert.NotNil(t, repo)
	})

	t.Run("error with empty path", func(t *testing.T) {
		_, err := NewRepository(config.CatalogConfig{Path: ""})
		require.Error(t, err)
	})
}

func TestRepository_EnsureSchema(t *testing.T) {
	repo := setupTestRepo(t)

	tables := []string{"rulesets", "option_changes"}
	for _, table := range tables {
		var count int
		err := repo.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s should exist", table)
	}
}

func TestRepository_EnsureSchema_Idempotent(t *testing.T) {
	repo := setupTestRepo(t)

	err := repo.EnsureSchema(context.Background())
	require.NoError(t, err)
}

func TestRepository_SaveRuleset(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	info := &catalog.RulesetInfo{
		Name:     "rules.test",
		Path:     "/rulesets/test.xml",
		Version:  "0.2.0",
		Checksum: "abc123",
	}
	require.NoError(t, repo.SaveRuleset(ctx, info))
	assert.NotEmpty(t, info.ID, "id should be generated")
	assert.False(t, info.InstalledAt.IsZero(), "install time should be set")

	found, err := repo.FindRuleset(ctx, "rules.test")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, info.ID, found.ID)
	assert.Equal(t, "/rulesets/test.xml", found.Path)
	assert.Equal(t, "0.2.0", found.Version)
	assert.Equal(t, "abc123", found.Checksum)
}

func TestRepository_SaveRuleset_UpsertByName(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	first := &catalog.RulesetInfo{Name: "rules.test", Path: "/a.xml", Version: "0.1.0"}
	require.NoError(t, repo.SaveRuleset(ctx, first))

	second := &catalog.RulesetInfo{Name: "rules.test", Path: "/b.xml", Version: "0.2.0"}
	require.NoError(t, repo.SaveRuleset(ctx, second))

	list, err := repo.ListRulesets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1, "same name updates in place")
	assert.Equal(t, "/b.xml", list[0].Path)
	assert.Equal(t, "0.2.0", list[0].Version)
}

func TestRepository_FindRuleset_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	found, err := repo.FindRuleset(context.Background(), "rules.missing")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepository_ListRulesets(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"rules.beta", "rules.alpha"} {
		require.NoError(t, repo.SaveRuleset(ctx, &catalog.RulesetInfo{Name: name, Path: "/x.xml"}))
	}

	list, err := repo.ListRulesets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "rules.alpha", list[0].Name, "ordered by name")
	assert.Equal(t, "rules.beta", list[1].Name)
}

func TestRepository_DeleteRuleset(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveRuleset(ctx, &catalog.RulesetInfo{Name: "rules.test", Path: "/x.xml"}))
	require.NoError(t, repo.DeleteRuleset(ctx, "rules.test"))

	found, err := repo.FindRuleset(ctx, "rules.test")
	require.NoError(t, err)
	assert.Nil(t, found)

	// Deleting a missing ruleset is not an error.
	require.NoError(t, repo.DeleteRuleset(ctx, "rules.test"))
}

func TestRepository_LogOptionChange(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	fixed := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = time.Now })

	change := &catalog.OptionChange{OptionID: "model.option.speed", OldValue: "20", NewValue: "30"}
	require.NoError(t, repo.LogOptionChange(ctx, change))
	assert.NotEmpty(t, change.ID)
	assert.Equal(t, fixed, change.ChangedAt)

	found, err := repo.FindOptionChanges(ctx, "model.option.speed", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "20", found[0].OldValue)
	assert.Equal(t, "30", found[0].NewValue)
}

func TestRepository_FindOptionChanges_NewestFirstWithLimit(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	for i, v := range []string{"10", "20", "30"} {
		change := &catalog.OptionChange{
			OptionID:  "model.option.speed",
			OldValue:  "0",
			NewValue:  v,
			ChangedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.LogOptionChange(ctx, change))
	}
	require.NoError(t, repo.LogOptionChange(ctx, &catalog.OptionChange{
		OptionID: "model.option.size", OldValue: "1", NewValue: "2",
	}))

	found, err := repo.FindOptionChanges(ctx, "model.option.speed", 2)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "30", found[0].NewValue)
	assert.Equal(t, "20", found[1].NewValue)
}

func TestRepository_FindOptionChanges_DefaultLimit(t *testing.T) {
	repo := setupTestRepo(t)

	found, err := repo.FindOptionChanges(context.Background(), "model.option.speed", 0)
	require.NoError(t, err)
	assert.Empty(t, found)
}
