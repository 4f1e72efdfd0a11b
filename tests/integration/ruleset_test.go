package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexfield/rulecore/internal/application/handlers"
	"github.com/hexfield/rulecore/internal/domain/services"
	"github.com/hexfield/rulecore/internal/infrastructure/catalog/sqlite"
	"github.com/hexfield/rulecore/internal/infrastructure/config"
)

// A base ruleset using the legacy single-goods production tags, plus an
// override layer, exercising the full load, mutate, and save cycle.
const baseRulesetDoc = `<ruleset id="rules.classic" version="1.0.0">
  <goods-types>
    <goods-type id="model.goods.grain"/>
    <goods-type id="model.goods.furs"/>
  </goods-types>
  <resource-types>
    <resource-type id="model.resource.game"/>
  </resource-types>
  <disasters>
    <disaster id="model.disaster.fire"/>
  </disasters>
  <tile-types>
    <tile-type id="model.tile.grassland">
      <gen humidityMin="30"/>
      <primary-production goods-type="model.goods.grain" value="3"/>
      <secondary-production goods-type="model.goods.furs" value="1"/>
      <resource type="model.resource.game" probability="15"/>
      <disaster id="model.disaster.fire" probability="2"/>
    </tile-type>
    <tile-type id="model.tile.ocean" is-water="true"/>
  </tile-types>
  <options>
    <rangeOption id="model.option.climate" defaultValue="1">
      <rangeValue label="cold" value="0"/>
      <rangeValue label="temperate" value="1"/>
      <rangeValue label="hot" value="2"/>
    </rangeOption>
  </options>
</ruleset>`

const overrideRulesetDoc = `<ruleset id="rules.mod">
  <tile-types>
    <tile-type id="model.tile.grassland">
      <production unattended="true">
        <output goods-type="model.goods.grain" value="5"/>
      </production>
    </tile-type>
  </tile-types>
</ruleset>`

func writeDoc(t *testing.T, dir, name, doc string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestRulesetWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tmpDir := t.TempDir()
	basePath := writeDoc(t, tmpDir, "classic.xml", baseRulesetDoc)

	svc := services.NewRulesetService(nil)

	// Load the legacy-form base document.
	rs, report, err := svc.LoadFile(basePath)
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)

	grassland := rs.TileType("model.tile.grassland")
	require.NotNil(t, grassland)
	productions := grassland.ProductionTypes()
	require.Len(t, productions, 1, "primary and secondary merge into one entry")
	assert.Len(t, productions[0].Outputs(), 2)

	// Layer the override: production entries are replaced, everything
	// else on the record is re-read from the override document.
	_, err = svc.LoadOverride(rs, strings.NewReader(overrideRulesetDoc))
	require.NoError(t, err)
	productions = grassland.ProductionTypes()
	require.Len(t, productions, 1)
	require.Len(t, productions[0].Outputs(), 1)
	assert.Equal(t, 5, productions[0].Outputs()[0].Amount)
	assert.Empty(t, grassland.WeightedResources(), "override cleared the tables")

	// Save the normalized form and reload it.
	savedPath := filepath.Join(tmpDir, "classic.norm.xml")
	require.NoError(t, svc.SaveFile(savedPath, rs))

	data, err := os.ReadFile(savedPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "primary-production")

	reloaded, report, err := svc.LoadFile(savedPath)
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, "rules.classic", reloaded.ID())
	assert.Equal(t, 5, reloaded.TileType("model.tile.grassland").ProductionTypes()[0].Outputs()[0].Amount)
}

func TestCatalogWorkflow_FileDatabase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "catalog.db")

	store, err := sqlite.NewRepository(config.CatalogConfig{Path: dbPath})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.EnsureSchema(ctx))

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "database file should exist")

	svc := services.NewRulesetService(nil)
	docPath := writeDoc(t, tmpDir, "classic.xml", baseRulesetDoc)

	// Install the document in the catalog.
	catalogHandler := handlers.NewCatalogHandler(store, svc)
	info, err := catalogHandler.HandleAdd(ctx, docPath)
	require.NoError(t, err)
	assert.Equal(t, "rules.classic", info.Name)
	assert.NotEmpty(t, info.Checksum)

	list, err := catalogHandler.HandleList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// Mutate an option and check the audit trail survives a reopen.
	rs, _, err := svc.LoadFile(docPath)
	require.NoError(t, err)
	optService := services.NewOptionService(store)
	optService.Watch(rs)
	optionHandler := handlers.NewOptionHandler(optService)
	require.NoError(t, optionHandler.HandleSet(ctx, rs, "model.option.climate", "2"))

	require.NoError(t, store.Close())
	reopened, err := sqlite.NewRepository(config.CatalogConfig{Path: dbPath})
	require.NoError(t, err)
	defer reopened.Close()

	history, err := reopened.FindOptionChanges(ctx, "model.option.climate", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "1", history[0].OldValue)
	assert.Equal(t, "2", history[0].NewValue)

	require.NoError(t, reopened.DeleteRuleset(ctx, "rules.classic"))
	found, err := reopened.FindRuleset(ctx, "rules.classic")
	require.NoError(t, err)
	assert.Nil(t, found)
}
