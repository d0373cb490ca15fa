//go:build unit

package config_test

import (
	"os"
	"testing"
	"time"

	"tillpoint/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadConfigStoreSection(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATA_DIR", "/var/lib/tillpoint")
	t.Setenv("SNAPSHOT_FILE", "till.json")
	t.Setenv("WAL_FILE", "till.log")
	t.Setenv("SNAPSHOT_INTERVAL", "5m")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/tillpoint", cfg.Store.DataDir)
	assert.Equal(t, "till.json", cfg.Store.SnapshotFile)
	assert.Equal(t, "till.log", cfg.Store.WALFile)
	assert.Equal(t, 5*time.Minute, cfg.Store.SnapshotInterval)
}

func TestLoadConfigStoreDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "state.json", cfg.Store.SnapshotFile)
	assert.Equal(t, "journal.log", cfg.Store.WALFile)
	assert.Equal(t, time.Minute, cfg.Store.SnapshotInterval)
}

func TestLoadConfigRequiresDataDir(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "test-secret")

	// t.Setenv restores the original value on cleanup; unset for this test.
	t.Setenv("DATA_DIR", "placeholder")
	os.Unsetenv("DATA_DIR")

	_, err := config.LoadConfig()
	require.Error(t, err)
}
