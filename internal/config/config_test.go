package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := &Config{
		Username:  "jdoe",
		Password:  "hunter2",
		OTPMethod: "text",
		Ledger:    "ledger.yaml",
		AuditLog:  "logs/audit.csv",
	}

	path := filepath.Join(t.TempDir(), "banksh.yaml")
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banksh.yaml")
	require.NoError(t, os.WriteFile(path, []byte("username: [oops\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}
