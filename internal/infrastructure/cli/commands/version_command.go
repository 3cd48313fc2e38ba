package commands

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/doeshing/assist-core/internal/application/registry"
	"github.com/doeshing/assist-core/internal/version"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show assist version and catalog information",
		RunE: func(cmd *cobra.Command, args []string) error {
			displayVersionInformation(cmd.OutOrStdout())
			return nil
		},
	}
}

// displayVersionInformation prints build metadata and the size of the built-in catalog
func displayVersionInformation(out io.Writer) {
	fmt.Fprintf(out, "assist version %s\n", version.Version)
	if version.Commit != "" {
		fmt.Fprintf(out, "Commit: %s\n", version.Commit)
	}
	if version.BuildDate != "" {
		fmt.Fprintf(out, "Built: %s\n", version.BuildDate)
	}

	stats := registry.Default().Statistics()
	fmt.Fprintf(out, "Domain catalog: %d domains, %d global aliases\n", stats.Total, len(registry.GlobalAliases()))
	fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
}
