package app

import (
	"context"
	"io"
	"os"

	"github.com/doeshing/assist-core/internal/application/doctor"
	"github.com/doeshing/assist-core/internal/application/history"
	"github.com/doeshing/assist-core/internal/application/registry"
	"github.com/doeshing/assist-core/internal/application/session"
	"github.com/doeshing/assist-core/internal/application/telemetry"
	"github.com/doeshing/assist-core/internal/domain"
	"github.com/doeshing/assist-core/internal/infrastructure/audit"
	"github.com/doeshing/assist-core/internal/infrastructure/config"
	"github.com/doeshing/assist-core/internal/infrastructure/executor"
	"github.com/doeshing/assist-core/internal/pkg/logger"
	"github.com/doeshing/assist-core/internal/ports"
)

// Options controls how the container is assembled.
type Options struct {
	Verbose    bool
	ConfigPath string
	// Out receives dry-run executor output; defaults to stdout.
	Out io.Writer
	// LogOut receives log lines; defaults to stderr.
	LogOut io.Writer
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         ports.Logger
	Registry       *registry.Registry
	History        *history.Manager
	Telemetry      *telemetry.Aggregator
	AuditStore     ports.AuditRepository
	SessionService *session.Service
	DoctorService  *doctor.Service
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	logOut := opts.LogOut
	if logOut == nil {
		logOut = os.Stderr
	}
	log := logger.New(logOut, opts.Verbose || cfg.Logging.Verbose, cfg.Logging.MaxFieldLength)
	clock := ports.SystemClock{}

	var auditStore ports.AuditRepository
	if cfg.Audit.Enabled {
		auditStore, err = audit.Open(cfg.Audit)
		if err != nil {
			return nil, err
		}
		if err := auditStore.PruneOlderThan(cfg.Audit.RetainDays); err != nil {
			log.Warn("audit prune failed", map[string]interface{}{"error": err.Error(), "path": auditStore.Path()})
		}
	}

	reg := registry.Default()
	historyManager := history.NewManager(history.Options{
		MaxAge:   cfg.History.MaxAge,
		MaxTurns: cfg.History.MaxTurns,
		Clock:    clock,
		Logger:   log,
	})
	aggregator := telemetry.New(telemetry.Options{
		WindowSize:    cfg.Telemetry.WindowSize,
		InitialStatus: cfg.Telemetry.InitialStatus,
		Clock:         clock,
		Logger:        log,
	})

	sessionService := &session.Service{
		Registry:     reg,
		History:      historyManager,
		Telemetry:    aggregator,
		Executor:     executor.NewDryRunExecutor(opts.Out),
		Audit:        auditStore,
		Logger:       log,
		Clock:        clock,
		ContextTurns: cfg.History.ContextTurns,
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Registry:       reg,
		Audit:          auditStore,
	}

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Registry:       reg,
		History:        historyManager,
		Telemetry:      aggregator,
		AuditStore:     auditStore,
		SessionService: sessionService,
		DoctorService:  doctorService,
	}, nil
}

// Close releases resources held by adapters.
func (c *Container) Close() error {
	if closer, ok := c.AuditStore.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
