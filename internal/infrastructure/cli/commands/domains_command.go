package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/assist-core/internal/app"
	"github.com/doeshing/assist-core/internal/application/registry"
	"github.com/doeshing/assist-core/internal/domain"
)

// NewDomainsCommand creates the domains command with all subcommands
func NewDomainsCommand(container *app.Container) *cobra.Command {
	domainsCmd := &cobra.Command{
		Use:   "domains",
		Short: "Inspect the supported domain catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listDomains(cmd.OutOrStdout(), container, 0, "")
		},
	}

	domainsCmd.AddCommand(
		newDomainsListCommand(container),
		newDomainsShowCommand(container),
		newDomainsStatsCommand(container),
	)

	return domainsCmd
}

// newDomainsListCommand creates the 'domains list' subcommand
func newDomainsListCommand(container *app.Container) *cobra.Command {
	var priority int
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List domains, optionally filtered by priority or kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			if priority < 0 || priority > len(domain.Priorities) {
				return fmt.Errorf(ErrInvalidPriority)
			}
			return listDomains(cmd.OutOrStdout(), container, priority, kind)
		},
	}

	cmd.Flags().IntVar(&priority, "priority", 0, "Only show domains of this priority tier (1-5)")
	cmd.Flags().StringVar(&kind, "kind", "", "Only show domains of this kind (controllable|read_only|service_only)")
	return cmd
}

// newDomainsShowCommand creates the 'domains show' subcommand
func newDomainsShowCommand(container *app.Container) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "show <domain>",
		Short: "Show services and parameters for a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showDomain(cmd.OutOrStdout(), container, args[0], asYAML)
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the descriptor as YAML")
	return cmd
}

// newDomainsStatsCommand creates the 'domains stats' subcommand
func newDomainsStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show domain counts by kind and priority",
		RunE: func(cmd *cobra.Command, args []string) error {
			displayDomainStatistics(cmd.OutOrStdout(), container.Registry.Statistics())
			return nil
		},
	}
}

// listDomains prints domain names with their kind and description
func listDomains(out io.Writer, container *app.Container, priority int, kind string) error {
	var names []string
	switch {
	case kind != "":
		names = container.Registry.DomainsByKind(domain.DomainKind(kind))
	case priority > 0:
		p := domain.Priority(priority)
		names = container.Registry.ListDomains(&p)
	default:
		names = container.Registry.ListDomains(nil)
	}

	for _, name := range names {
		d, _ := container.Registry.Domain(name)
		if priority > 0 && int(d.Priority) != priority {
			continue
		}
		fmt.Fprintf(out, "%-26s %-13s P%d  %s\n", d.Name, d.Kind, d.Priority, d.Description)
	}
	return nil
}

// showDomain prints one descriptor
func showDomain(out io.Writer, container *app.Container, name string, asYAML bool) error {
	d, ok := container.Registry.Domain(name)
	if !ok {
		_, err := container.Registry.ValidateAction(name, "")
		return err
	}

	if asYAML {
		data, err := yaml.Marshal(d)
		if err != nil {
			return fmt.Errorf("failed to marshal domain: %w", err)
		}
		fmt.Fprint(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "%s (%s, priority %d)\n", d.Name, d.Kind, d.Priority)
	if d.Description != "" {
		fmt.Fprintf(out, "  %s\n", d.Description)
	}
	if d.Kind == domain.KindReadOnly {
		fmt.Fprintf(out, "  read-only: %s\n", d.ReadOnlyMsg)
		return nil
	}
	for _, service := range d.Services {
		spec := d.ParametersFor(service)
		line := "  - " + service
		if len(spec.Required) > 0 {
			line += " required=" + strings.Join(spec.Required, ",")
		}
		if len(spec.Optional) > 0 {
			line += " optional=" + strings.Join(spec.Optional, ",")
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

// displayDomainStatistics prints catalog counts
func displayDomainStatistics(out io.Writer, stats domain.DomainStatistics) {
	flat := registry.Flatten(stats)
	fmt.Fprintf(out, "Total domains: %d\n", flat["total"])
	for _, kind := range []domain.DomainKind{domain.KindControllable, domain.KindReadOnly, domain.KindServiceOnly} {
		fmt.Fprintf(out, "  %-13s %d\n", kind, flat[string(kind)])
	}
	for _, p := range domain.Priorities {
		fmt.Fprintf(out, "  priority %d     %d\n", p, flat[fmt.Sprintf("priority_%d", p)])
	}
}
