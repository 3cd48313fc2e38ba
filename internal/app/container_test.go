package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/assist-core/internal/domain"
)

func TestBuildContainerWiresSession(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	auditPath := filepath.Join(dir, "audit.jsonl")
	require.NoError(t, os.WriteFile(cfgPath, []byte("audit:\n  enabled: true\n  backend: jsonl\n  path: "+auditPath+"\n"), 0o600))

	var out bytes.Buffer
	container, err := BuildContainer(context.Background(), Options{ConfigPath: cfgPath, Out: &out, LogOut: &bytes.Buffer{}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	resp, err := container.SessionService.Handle(context.Background(), domain.SessionRequest{
		ConversationID: "c1",
		Utterance:      "clean the floor",
		Domain:         "vacuum",
		Action:         "clean",
		EntityIDs:      []string{"vacuum.downstairs"},
	})
	require.NoError(t, err)
	assert.Equal(t, "start", resp.Service)
	assert.Equal(t, "would call vacuum.start on vacuum.downstairs\n", out.String())

	records, err := container.AuditStore.Records(0, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, auditPath, container.AuditStore.Path())
	assert.Equal(t, 1, container.Telemetry.Snapshot().FastPathHits)
}

func TestBuildContainerWithoutAudit(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("audit:\n  enabled: false\n"), 0o600))

	container, err := BuildContainer(context.Background(), Options{ConfigPath: cfgPath, Out: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.Nil(t, container.AuditStore)
	assert.Nil(t, container.SessionService.Audit)
	assert.NoError(t, container.Close())
}
