package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInitWritesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smsgrab.toml")

	rootCmd.SetArgs([]string{"config", "init", path})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[vendor]")
	assert.Contains(t, string(data), "api_key")
	assert.Contains(t, string(data), "refresh_interval")
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smsgrab.toml")
	require.NoError(t, os.WriteFile(path, []byte("# mine"), 0o644))

	rootCmd.SetArgs([]string{"config", "init", path})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// The existing file is untouched.
	data, _ := os.ReadFile(path)
	assert.Equal(t, "# mine", string(data))
}

func TestRunFailsWithoutRequiredConfig(t *testing.T) {
	// Point at an empty config dir so no smsgrab.toml is found.
	path := filepath.Join(t.TempDir(), "missing.toml")

	rootCmd.SetArgs([]string{"run", "--config", path})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required configuration")
}
