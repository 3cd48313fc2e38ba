package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/assist-core/internal/app"
	"github.com/doeshing/assist-core/internal/application/registry"
	"github.com/doeshing/assist-core/internal/domain"
	"github.com/doeshing/assist-core/internal/infrastructure/cli/helpers"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	var showAliases bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, catalog and audit journal health",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.DoctorService == nil {
				return fmt.Errorf(ErrDoctorServiceUnavailable)
			}
			out := cmd.OutOrStdout()

			report, err := container.DoctorService.Run(cmd.Context())
			failed := displayDoctorReport(out, report)
			if showAliases {
				displayAliasTable(out)
			}

			if err != nil {
				return fmt.Errorf("diagnostics completed with errors: %w", err)
			}
			if failed > 0 {
				return fmt.Errorf("%d doctor checks failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showAliases, "aliases", false, "Also print the global alias table")
	return cmd
}

// displayDoctorReport prints each check and a summary, returning the number of failures
func displayDoctorReport(out io.Writer, report domain.HealthReport) int {
	counts := map[domain.HealthStatus]int{}
	for _, check := range report.Checks {
		counts[check.Status]++
		fmt.Fprintf(out, "[%s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
	}
	fmt.Fprintf(out, "%d ok, %d warn, %d failed\n",
		counts[domain.HealthOK], counts[domain.HealthWarn], counts[domain.HealthError])
	return counts[domain.HealthError]
}

// displayAliasTable prints every global alias as verb -> service
func displayAliasTable(out io.Writer) {
	aliases := registry.GlobalAliases()
	fmt.Fprintf(out, "Global aliases (%d):\n", len(aliases))
	for _, verb := range helpers.SortedKeys(aliases) {
		fmt.Fprintf(out, "  %-10s -> %s\n", verb, aliases[verb])
	}
}
