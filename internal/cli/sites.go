package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sitefleet.dev/cli/internal/fleet"
	"sitefleet.dev/cli/internal/report"
)

// NewSitesCommand creates the sites command group.
func NewSitesCommand(container *Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sites",
		Short: "Inspect the site fleet",
	}
	cmd.AddCommand(newSitesListCommand(container))
	return cmd
}

func newSitesListCommand(container *Container) *cobra.Command {
	var includeExcluded bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List manageable sites",
		Long: `List every site reachable through the site-management API.

Staging and development hosts (matching the configured excluded-domain
substrings) are hidden unless --include-excluded is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSitesList(cmd.Context(), container, includeExcluded)
		},
	}

	cmd.Flags().BoolVar(&includeExcluded, "include-excluded", false, "Include staging and development sites")
	return cmd
}

func runSitesList(ctx context.Context, container *Container, includeExcluded bool) error {
	if err := container.requireToken(); err != nil {
		return err
	}

	sites, err := container.fetchSites(ctx)
	if err != nil {
		return err
	}
	if !includeExcluded {
		sites = fleet.ExcludeDomains(sites, container.Config.ExcludedDomains)
	}

	report.RenderSites(container.Out, sites)
	fmt.Fprintf(container.Out, "\n%d site(s)\n", len(sites))
	return nil
}
