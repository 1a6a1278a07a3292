package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sitefleet.dev/cli/internal/config"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(container *Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved configuration",
	}
	cmd.AddCommand(newConfigShowCommand(container))
	return cmd
}

func newConfigShowCommand(container *Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(container)
		},
	}
}

func runConfigShow(container *Container) error {
	cfg := container.Config

	configPath, err := config.Path()
	if err != nil {
		return err
	}

	fmt.Fprintf(container.Out, "Config file:       %s\n", configPath)
	fmt.Fprintf(container.Out, "API base:          %s\n", cfg.APIBase)
	fmt.Fprintf(container.Out, "Token:             %s\n", maskToken(cfg.Token))
	fmt.Fprintf(container.Out, "Timeout:           %s\n", cfg.Timeout())
	fmt.Fprintf(container.Out, "Excluded domains:  %s\n", strings.Join(cfg.ExcludedDomains, ", "))
	return nil
}

// maskToken hides all but a short prefix of the token.
func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 4 {
		return "****"
	}
	return token[:4] + strings.Repeat("*", len(token)-4)
}
