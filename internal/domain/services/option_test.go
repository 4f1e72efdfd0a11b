package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexfield/rulecore/internal/domain/catalog"
)

// mockCatalogStore is an in-memory ports.CatalogStore for service tests.
type mockCatalogStore struct {
	rulesets map[string]*catalog.RulesetInfo
	changes  []catalog.OptionChange
	logErr   error
}

func newMockCatalogStore() *mockCatalogStore {
	return &mockCatalogStore{rulesets: make(map[string]*catalog.RulesetInfo)}
}

func (m *mockCatalogStore) EnsureSchema(ctx context.Context) error { return nil }
func (m *mockCatalogStore) Close() error                           { return nil }

func (m *mockCatalogStore) SaveRuleset(ctx context.Context, info *catalog.RulesetInfo) error {
	m.rulesets[info.Name] = info
	return nil
}

func (m *mockCatalogStore) FindRuleset(ctx context.Context, name string) (*catalog.RulesetInfo, error) {
	return m.rulesets[name], nil
}

func (m *mockCatalogStore) ListRulesets(ctx context.Context) ([]catalog.RulesetInfo, error) {
	var out []catalog.RulesetInfo
	for _, info := range m.rulesets {
		out = append(out, *info)
	}
	return out, nil
}

func (m *mockCatalogStore) DeleteRuleset(ctx context.Context, name string) error {
	delete(m.rulesets, name)
	return nil
}

func (m *mockCatalogStore) LogOptionChange(ctx context.Context, change *catalog.OptionChange) error {
	if m.logErr != nil {
		return m.logErr
	}
	m.changes = append(m.changes, *change)
	return nil
}

func (m *mockCatalogStore) FindOptionChanges(ctx context.Context, optionID string, limit int) ([]catalog.OptionChange, error) {
	var out []catalog.OptionChange
	for i := len(m.changes) - 1; i >= 0 && len(out) < limit; i-- {
		if m.changes[i].OptionID == optionID {
			out = append(out, m.changes[i])
		}
	}
	return out, nil
}

func TestOptionService_SetAndFlush(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = time.Now })

	store := newMockCatalogStore()
	svc := NewOptionService(store)
	rs, _ := loadTestRuleset(t)
	svc.Watch(rs)

	require.NoError(t, svc.Set(rs, "model.option.speed", "30"))
	assert.Equal(t, 30, rs.Option("model.option.speed").Value())

	n, err := svc.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.Len(t, store.changes, 1)
	change := store.changes[0]
	assert.Equal(t, "model.option.speed", change.OptionID)
	assert.Equal(t, "20", change.OldValue)
	assert.Equal(t, "30", change.NewValue)
	assert.Equal(t, fixed, change.ChangedAt)

	// A second flush has nothing left to write.
	n, err = svc.Flush(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOptionService_SetSameValueLogsNothing(t *testing.T) {
	store := newMockCatalogStore()
	svc := NewOptionService(store)
	rs, _ := loadTestRuleset(t)
	svc.Watch(rs)

	require.NoError(t, svc.Set(rs, "model.option.speed", "20"))

	n, err := svc.Flush(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, store.changes)
}

func TestOptionService_SetUnknownOption(t *testing.T) {
	svc := NewOptionService(newMockCatalogStore())
	rs, _ := loadTestRuleset(t)

	err := svc.Set(rs, "model.option.size", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model.option.size")
}

func TestOptionService_SetMalformedValue(t *testing.T) {
	store := newMockCatalogStore()
	svc := NewOptionService(store)
	rs, _ := loadTestRuleset(t)
	svc.Watch(rs)

	assert.Error(t, svc.Set(rs, "model.option.speed", "fast"))
	assert.Empty(t, store.changes)
}

func TestOptionService_FlushKeepsUnwrittenChanges(t *testing.T) {
	store := newMockCatalogStore()
	store.logErr = errors.New("disk full")
	svc := NewOptionService(store)
	rs, _ := loadTestRuleset(t)
	svc.Watch(rs)

	require.NoError(t, svc.Set(rs, "model.option.speed", "30"))

	_, err := svc.Flush(context.Background())
	require.Error(t, err)

	// The failed change is retried on the next flush.
	store.logErr = nil
	n, err := svc.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestOptionService_History(t *testing.T) {
	store := newMockCatalogStore()
	svc := NewOptionService(store)
	rs, _ := loadTestRuleset(t)
	svc.Watch(rs)

	for _, v := range []string{"30", "10", "20"} {
		require.NoError(t, svc.Set(rs, "model.option.speed", v))
	}
	_, err := svc.Flush(context.Background())
	require.NoError(t, err)

	history, err := svc.History(context.Background(), "model.option.speed", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "20", history[0].NewValue, "newest first")
	assert.Equal(t, "10", history[1].NewValue)
}

func TestOptionService_WatchCapturesDirectSets(t *testing.T) {
	store := newMockCatalogStore()
	svc := NewOptionService(store)
	rs, _ := loadTestRuleset(t)
	svc.Watch(rs)

	rs.Option("model.option.speed").SetValue(30)

	n, err := svc.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestOptionService_WatchBeforeAnyChange(t *testing.T) {
	// Watching a freshly loaded ruleset records nothing until a value
	// actually changes.
	store := newMockCatalogStore()
	svc := NewOptionService(store)
	rs, _ := loadTestRuleset(t)
	svc.Watch(rs)

	n, err := svc.Flush(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.True(t, rs.Option("model.option.speed").Defined())
}
