package testutils_test

import (
	"context"
	"os"
	"testing"

	"github.com/aretw0/glint/internal/testutils"
	"github.com/aretw0/glint/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBridge(t *testing.T) {
	b, adapter := testutils.NewBridge(t, session.Config{Prefix: "t:"})
	require.NoError(t, b.Set(context.Background(), "abc", nil))
	assert.Equal(t, 1, adapter.Len())
}

func TestWriteFile(t *testing.T) {
	path := testutils.WriteFile(t, "glint.yaml", "prefix: x\n")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "prefix: x\n", string(data))
}
