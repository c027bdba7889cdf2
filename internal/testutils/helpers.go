package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/glint/pkg/adapters/memory"
	"github.com/aretw0/glint/pkg/session"
	"github.com/stretchr/testify/require"
)

// NewBridge creates a bridge over a fresh in-memory adapter.
// cfg.Adapter is replaced. It fails the test immediately on error.
func NewBridge(t *testing.T, cfg session.Config, opts ...session.Option) (*session.Bridge, *memory.Store) {
	t.Helper()

	adapter := memory.NewStore()
	cfg.Adapter = adapter
	b, err := session.New(cfg, opts...)
	require.NoError(t, err, "Failed to create bridge")

	return b, adapter
}

// WriteFile writes content to a file called name in a new temporary directory
// and returns its absolute path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join(t.TempDir(), name))
	require.NoError(t, err, "Failed to get absolute path for temp file")

	require.NoError(t, os.WriteFile(absPath, []byte(content), 0o644), "Failed to write temp file")
	return absPath
}
