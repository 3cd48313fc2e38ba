package commands

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/assist-core/internal/app"
	"github.com/doeshing/assist-core/internal/domain"
	"github.com/doeshing/assist-core/internal/infrastructure/cli/helpers"
	"github.com/doeshing/assist-core/internal/ports"
)

// NewAuditCommand creates the audit command with all subcommands
func NewAuditCommand(container *app.Container) *cobra.Command {
	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the action audit journal",
	}

	auditCmd.AddCommand(
		newAuditListCommand(container),
		newAuditSearchCommand(container),
		newAuditClearCommand(container),
		newAuditExportCommand(container),
		newAuditRetainCommand(container),
	)

	return auditCmd
}

// newAuditListCommand creates the 'audit list' subcommand
func newAuditListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent audit records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listAuditRecords(cmd.OutOrStdout(), container, limit, "")
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultAuditLimit, "Max records to show")
	return cmd
}

// newAuditSearchCommand creates the 'audit search' subcommand
func newAuditSearchCommand(container *app.Container) *cobra.Command {
	var query string
	var searchLimit int

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search audit records for a keyword",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				return fmt.Errorf(ErrQueryRequired)
			}
			return listAuditRecords(cmd.OutOrStdout(), container, searchLimit, query)
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Search keyword")
	cmd.Flags().IntVar(&searchLimit, "limit", DefaultAuditSearchLimit, "Limit search results")
	return cmd
}

// newAuditClearCommand creates the 'audit clear' subcommand
func newAuditClearCommand(container *app.Container) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every audit record",
		RunE: func(cmd *cobra.Command, args []string) error {
			return clearAudit(cmd.OutOrStdout(), cmd.InOrStdin(), container, assumeYes)
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip confirmation")
	return cmd
}

// newAuditExportCommand creates the 'audit export' subcommand
func newAuditExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export audit records to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportAudit(cmd.OutOrStdout(), container, args[0])
		},
	}
}

// newAuditRetainCommand creates the 'audit retain' subcommand
func newAuditRetainCommand(container *app.Container) *cobra.Command {
	var retainDays int

	cmd := &cobra.Command{
		Use:   "retain",
		Short: "Prune audit records older than N days",
		RunE: func(cmd *cobra.Command, args []string) error {
			if retainDays <= 0 {
				return fmt.Errorf(ErrInvalidRetainDays)
			}
			return pruneAudit(cmd.OutOrStdout(), container, retainDays)
		},
	}

	cmd.Flags().IntVar(&retainDays, "days", DefaultAuditRetainDays, "Days to retain audit records")
	return cmd
}

func auditStore(container *app.Container) (ports.AuditRepository, error) {
	if container.AuditStore == nil {
		return nil, fmt.Errorf(ErrAuditStoreUnavailable)
	}
	return container.AuditStore, nil
}

// listAuditRecords prints records newest first, optionally filtered
func listAuditRecords(out io.Writer, container *app.Container, limit int, query string) error {
	store, err := auditStore(container)
	if err != nil {
		return err
	}

	records, err := store.Records(limit, query)
	if err != nil {
		return fmt.Errorf("failed to read audit records: %w", err)
	}

	if len(records) == 0 && query == "" {
		fmt.Fprintln(out, MsgNoAuditRecorded)
		return nil
	}

	for _, rec := range records {
		displayAuditRecord(out, rec)
	}
	return nil
}

func displayAuditRecord(out io.Writer, rec domain.AuditRecord) {
	target := "-"
	if rec.Domain != "" {
		target = rec.Domain + "." + rec.Action
		if rec.Service != "" && rec.Service != rec.Action {
			target += " -> " + rec.Service
		}
	}
	fmt.Fprintf(out, "%s | %-8s | %s | %s",
		rec.Timestamp.Local().Format(TimestampFormat),
		rec.Outcome,
		target,
		rec.Utterance)
	if rec.Reason != "" {
		fmt.Fprintf(out, " | %s", rec.Reason)
	}
	fmt.Fprintln(out)
}

// clearAudit removes every record, asking first unless assumeYes is set
func clearAudit(out io.Writer, in io.Reader, container *app.Container, assumeYes bool) error {
	store, err := auditStore(container)
	if err != nil {
		return err
	}

	records, err := store.Records(0, "")
	if err != nil {
		return fmt.Errorf("failed to read audit records: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoAuditRecorded)
		return nil
	}
	if !assumeYes && !helpers.ConfirmAuditClear(out, bufio.NewReader(in), store.Path(), len(records)) {
		fmt.Fprintln(out, MsgClearCancelled)
		return nil
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear audit journal: %w", err)
	}

	fmt.Fprintf(out, "Cleared %s records from %s\n", helpers.FormatCount(len(records)), store.Path())
	return nil
}

// exportAudit writes every record to path
func exportAudit(out io.Writer, container *app.Container, path string) error {
	store, err := auditStore(container)
	if err != nil {
		return err
	}

	if err := store.ExportJSON(path); err != nil {
		return fmt.Errorf("failed to export audit journal to %s: %w", path, err)
	}

	fmt.Fprintf(out, "Exported to %s\n", path)
	return nil
}

// pruneAudit drops records older than days
func pruneAudit(out io.Writer, container *app.Container, days int) error {
	store, err := auditStore(container)
	if err != nil {
		return err
	}

	if err := store.PruneOlderThan(days); err != nil {
		return fmt.Errorf("failed to prune audit journal: %w", err)
	}

	fmt.Fprintf(out, "Pruned records older than %d days\n", days)
	return nil
}
