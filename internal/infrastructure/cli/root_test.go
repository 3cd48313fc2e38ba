package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("audit:\n  enabled: false\n"), 0o600))

	root, cleanup, err := NewRootCmd(context.Background(), Options{ConfigPath: cfgPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"validate", "domains", "session", "audit", "config", "doctor", "version"} {
		assert.Contains(t, names, want)
	}

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"validate", "vacuum", "clean"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "OK vacuum.start (resolved from clean)")
}

func TestNewRootCmdAuditDisabled(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("audit:\n  enabled: false\n"), 0o600))

	root, cleanup, err := NewRootCmd(context.Background(), Options{ConfigPath: cfgPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"audit", "list"})
	assert.ErrorContains(t, root.ExecuteContext(context.Background()), "audit journal disabled")
}
