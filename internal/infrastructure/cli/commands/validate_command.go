package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/assist-core/internal/app"
	"github.com/doeshing/assist-core/internal/domain"
	"github.com/doeshing/assist-core/internal/infrastructure/cli/helpers"
)

// NewValidateCommand creates the validate command
func NewValidateCommand(container *app.Container) *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "validate <domain> <action>",
		Short: "Check whether an action is allowed for a domain",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateAction(cmd.OutOrStdout(), container, args[0], args[1], params)
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Service parameter as key=value (repeatable)")
	return cmd
}

// validateAction resolves and validates an action, printing the canonical service
func validateAction(out io.Writer, container *app.Container, domainName, action string, pairs []string) error {
	provided, err := helpers.ParseParams(pairs)
	if err != nil {
		return err
	}

	service, err := container.Registry.ValidateAction(domainName, action)
	if err == nil {
		err = container.Registry.ValidateParameters(domainName, service, provided)
	}

	var rejection *domain.ValidationError
	if errors.As(err, &rejection) {
		helpers.DisplayRejection(out, rejection)
		return fmt.Errorf("%s.%s rejected", domainName, action)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "OK %s.%s", domainName, service)
	if service != action {
		fmt.Fprintf(out, " (resolved from %s)", action)
	}
	fmt.Fprintln(out)

	spec := container.Registry.ServiceParameters(domainName, service)
	if len(spec.Required) > 0 || len(spec.Optional) > 0 {
		fmt.Fprintf(out, "  required: %v\n  optional: %v\n", spec.Required, spec.Optional)
	}
	return nil
}
