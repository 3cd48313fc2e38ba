package doctor

import (
	"context"
	"fmt"
	"strings"

	configapp "github.com/doeshing/assist-core/internal/application/config"
	"github.com/doeshing/assist-core/internal/application/registry"
	"github.com/doeshing/assist-core/internal/domain"
	"github.com/doeshing/assist-core/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Registry       *registry.Registry
	Audit          ports.AuditRepository
}

type degradable interface {
	Degraded() bool
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded format %s", cfg.ConfigFormatVersion)))

	if err := configapp.Validate(cfg); err != nil {
		checks = append(checks, fail("Config values", err.Error()))
	} else {
		checks = append(checks, ok("Config values", fmt.Sprintf("history %s / %d turns, window %d",
			cfg.History.MaxAge, cfg.History.MaxTurns, cfg.Telemetry.WindowSize)))
	}

	checks = append(checks, s.registryChecks()...)
	checks = append(checks, s.auditCheck(cfg.Audit))

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) registryChecks() []domain.HealthCheck {
	if s.Registry == nil {
		return []domain.HealthCheck{warn("Action registry", "registry not initialized")}
	}

	var checks []domain.HealthCheck
	if _, err := registry.New(registry.Catalog()); err != nil {
		checks = append(checks, fail("Domain catalog", err.Error()))
	} else {
		stats := s.Registry.Statistics()
		checks = append(checks, ok("Domain catalog", fmt.Sprintf("%d domains (%d controllable, %d read-only, %d service-only)",
			stats.Total,
			stats.ByKind[domain.KindControllable],
			stats.ByKind[domain.KindReadOnly],
			stats.ByKind[domain.KindServiceOnly])))
	}

	if problems := s.Registry.CheckAliases(); len(problems) > 0 {
		checks = append(checks, fail("Alias table", strings.Join(problems, "; ")))
	} else {
		checks = append(checks, ok("Alias table", fmt.Sprintf("%d global aliases", len(registry.GlobalAliases()))))
	}
	return checks
}

func (s *Service) auditCheck(settings domain.AuditSettings) domain.HealthCheck {
	if !settings.Enabled {
		return warn("Audit journal", "disabled")
	}
	if s.Audit == nil {
		return warn("Audit journal", "store not initialized")
	}
	if _, err := s.Audit.Records(1, ""); err != nil {
		return fail("Audit journal", fmt.Sprintf("read failed: %v", err))
	}
	if d, isDegradable := s.Audit.(degradable); isDegradable && d.Degraded() {
		return warn("Audit journal", fmt.Sprintf("sqlite unavailable, using %s", s.Audit.Path()))
	}
	return ok("Audit journal", s.Audit.Path())
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
