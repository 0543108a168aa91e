package migration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visa-flow/internal/builder"
	"visa-flow/internal/datastore"
	"visa-flow/internal/visa"
)

func memoryStore(t *testing.T) datastore.DataStore {
	t.Helper()
	ds, err := datastore.NewDataStore(datastore.Config{Type: datastore.MockStore})
	require.NoError(t, err)
	return ds
}

func saveVersion(t *testing.T, ds datastore.DataStore, typeID string, version int) {
	t.Helper()
	ts := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	_, err := ds.SaveVisaConfiguration(context.Background(), visa.Configuration{
		Name: typeID, TypeID: typeID, Code: "CD", Version: version, CreatedAt: ts, UpdatedAt: ts,
	})
	require.NoError(t, err)
}

func TestRunFullMigration_CopiesMissingVersions(t *testing.T) {
	ctx := context.Background()
	source, target := memoryStore(t), memoryStore(t)
	saveVersion(t, source, "work", 1)
	saveVersion(t, source, "work", 2)
	saveVersion(t, source, "tourist", 1)
	saveVersion(t, target, "work", 1)
	require.NoError(t, source.SetValue(ctx, builder.CodeKey, "WK"))

	res, err := NewMockToDBMigrator(source, target, false, nil).RunFullMigration(ctx)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.ConfigurationsCopied)
	assert.Equal(t, 1, res.ConfigurationsExisting)
	assert.True(t, res.CodeCopied)

	history, err := target.GetVisaConfigurationHistory(ctx, "work")
	require.NoError(t, err)
	assert.Len(t, history, 2)
	code, found, err := target.GetValue(ctx, builder.CodeKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "WK", code)

	again, err := NewMockToDBMigrator(source, target, false, nil).RunFullMigration(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again.ConfigurationsCopied)
	assert.Equal(t, 3, again.ConfigurationsExisting)
	assert.False(t, again.CodeCopied)
}

func TestRunFullMigration_KeepsTargetCode(t *testing.T) {
	ctx := context.Background()
	source, target := memoryStore(t), memoryStore(t)
	require.NoError(t, source.SetValue(ctx, builder.CodeKey, "OLD"))
	require.NoError(t, target.SetValue(ctx, builder.CodeKey, "NEW"))

	res, err := NewMockToDBMigrator(source, target, false, nil).RunFullMigration(ctx)
	require.NoError(t, err)
	assert.False(t, res.CodeCopied)

	code, found, err := target.GetValue(ctx, builder.CodeKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "NEW", code)
}

func TestRunFullMigration_DryRunWritesNothing(t *testing.T) {
	ctx := context.Background()
	source, target := memoryStore(t), memoryStore(t)
	saveVersion(t, source, "student", 1)
	require.NoError(t, source.SetValue(ctx, builder.CodeKey, "ST"))

	res, err := NewMockToDBMigrator(source, target, true, nil).RunFullMigration(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ConfigurationsCopied)

	list, err := target.ListVisaConfigurations(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	_, found, _ := target.GetValue(ctx, builder.CodeKey)
	assert.False(t, found)
}
