package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/assist-core/internal/app"
	"github.com/doeshing/assist-core/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// NewRootCmd wires the cobra root command. The returned cleanup releases the
// container's adapters and must be called once the command has run.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, func() error, error) {
	container, err := app.BuildContainer(ctx, app.Options{
		Verbose:    opts.Verbose,
		ConfigPath: opts.ConfigPath,
	})
	if err != nil {
		return nil, nil, err
	}

	root := &cobra.Command{
		Use:           "assist",
		Short:         "assist - action governance for a smart-home voice assistant",
		Long:          "assist validates requested smart-home actions against a fixed domain catalog, keeps short-lived conversation history and aggregates session telemetry.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		commands.NewValidateCommand(container),
		commands.NewDomainsCommand(container),
		commands.NewSessionCommand(container),
		commands.NewAuditCommand(container),
		commands.NewConfigCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewVersionCommand(),
	)
	return root, container.Close, nil
}
