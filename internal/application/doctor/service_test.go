package doctor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/assist-core/internal/application/registry"
	"github.com/doeshing/assist-core/internal/domain"
)

type stubConfigProvider struct {
	cfg domain.Config
	err error
}

func (s stubConfigProvider) Load(context.Context) (domain.Config, error) {
	return s.cfg, s.err
}

type stubAudit struct {
	err      error
	degraded bool
}

func (s stubAudit) Save(domain.AuditRecord) error                     { return nil }
func (s stubAudit) Records(int, string) ([]domain.AuditRecord, error) { return nil, s.err }
func (s stubAudit) Clear() error                                      { return nil }
func (s stubAudit) ExportJSON(string) error                           { return nil }
func (s stubAudit) PruneOlderThan(int) error                          { return nil }
func (s stubAudit) Path() string                                      { return "/tmp/audit.db" }
func (s stubAudit) Degraded() bool                                    { return s.degraded }

func healthyConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		History:             domain.HistorySettings{MaxAge: 24 * time.Hour, MaxTurns: 20, ContextTurns: 3},
		Telemetry:           domain.TelemetrySettings{WindowSize: 100, InitialStatus: "online"},
		Audit:               domain.AuditSettings{Enabled: true, Backend: "sqlite", Path: "/tmp/audit.db", RetainDays: 30},
	}
}

func statuses(report domain.HealthReport) map[string]domain.HealthStatus {
	out := make(map[string]domain.HealthStatus, len(report.Checks))
	for _, check := range report.Checks {
		out[check.Name] = check.Status
	}
	return out
}

func TestRunHealthy(t *testing.T) {
	t.Parallel()

	svc := &Service{
		ConfigProvider: stubConfigProvider{cfg: healthyConfig()},
		Registry:       registry.Default(),
		Audit:          stubAudit{},
	}
	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.HealthStatus{
		"Config file":    domain.HealthOK,
		"Config values":  domain.HealthOK,
		"Domain catalog": domain.HealthOK,
		"Alias table":    domain.HealthOK,
		"Audit journal":  domain.HealthOK,
	}, statuses(report))
	assert.Equal(t, "45 domains (38 controllable, 4 read-only, 3 service-only)", report.Checks[2].Details)
}

func TestRunReportsProblems(t *testing.T) {
	t.Parallel()

	cfg := healthyConfig()
	cfg.Telemetry.WindowSize = 0
	svc := &Service{
		ConfigProvider: stubConfigProvider{cfg: cfg},
		Registry:       registry.Default(),
		Audit:          stubAudit{degraded: true},
	}
	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	got := statuses(report)
	assert.Equal(t, domain.HealthError, got["Config values"])
	assert.Equal(t, domain.HealthWarn, got["Audit journal"])

	svc.Audit = stubAudit{err: errors.New("locked")}
	report, _ = svc.Run(context.Background())
	assert.Equal(t, domain.HealthError, statuses(report)["Audit journal"])

	cfg.Audit.Enabled = false
	svc.ConfigProvider = stubConfigProvider{cfg: cfg}
	svc.Registry = nil
	report, _ = svc.Run(context.Background())
	got = statuses(report)
	assert.Equal(t, domain.HealthWarn, got["Audit journal"])
	assert.Equal(t, domain.HealthWarn, got["Action registry"])
}

func TestRunConfigLoadFailure(t *testing.T) {
	t.Parallel()

	svc := &Service{ConfigProvider: stubConfigProvider{err: errors.New("permission denied")}}
	report, err := svc.Run(context.Background())
	assert.Error(t, err)
	require.Len(t, report.Checks, 1)
	assert.Equal(t, domain.HealthError, report.Checks[0].Status)
}
