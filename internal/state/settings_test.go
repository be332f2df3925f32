package state_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/model"
	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/state"
	"github.com/kongxiangyu0727-debug/Carmen-ai/tests/testutil"
)

func TestSettingsDefaultsWithoutRecord(t *testing.T) {
	s := testutil.NewTestStore(t)
	settings := state.NewSettings(s)
	settings.Load(context.Background())

	assert.Equal(t, model.DefaultPreferredModel, settings.PreferredModel())
	assert.Equal(t, model.DefaultAutoSaveInterval, settings.AutoSaveInterval())
	assert.Empty(t, settings.APIKey())
}

func TestSettingsUpdateMergesAndPersists(t *testing.T) {
	s := testutil.NewTestStore(t)
	settings := state.NewSettings(s)
	ctx := context.Background()

	require.NoError(t, settings.SetAPIKey(ctx, "sk-test"))
	require.NoError(t, settings.SetPreferredModel(ctx, "openai/gpt-4"))

	// Each partial update must leave the other fields alone.
	assert.Equal(t, "sk-test", settings.APIKey())
	assert.Equal(t, "openai/gpt-4", settings.PreferredModel())
	assert.Equal(t, model.DefaultAutoSaveInterval, settings.AutoSaveInterval())

	// A fresh container sees the same state, and only one row exists.
	reloaded := state.NewSettings(s)
	reloaded.Load(ctx)
	assert.Equal(t, settings.Current(), reloaded.Current())

	saved, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.SettingsID, saved.ID)
}

func TestSettingsIntervalFallback(t *testing.T) {
	s := testutil.NewTestStore(t)
	settings := state.NewSettings(s)
	ctx := context.Background()

	require.NoError(t, settings.SetAutoSaveInterval(ctx, -5))
	assert.Equal(t, model.DefaultAutoSaveInterval, settings.AutoSaveInterval())

	require.NoError(t, settings.SetAutoSaveInterval(ctx, 5000))
	assert.Equal(t, 5000, settings.AutoSaveInterval())
}

func TestSettingsResetToDefaults(t *testing.T) {
	s := testutil.NewTestStore(t)
	settings := state.NewSettings(s)
	ctx := context.Background()

	require.NoError(t, settings.SetAPIKey(ctx, "sk-test"))
	require.NoError(t, settings.ResetToDefaults(ctx))

	assert.Equal(t, model.DefaultSettings(), settings.Current())
}
