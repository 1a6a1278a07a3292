package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sitefleet.dev/cli/internal/fleet"
	"sitefleet.dev/cli/internal/prompt"
	"sitefleet.dev/cli/internal/report"
)

// NewPluginsCommand creates the plugins command group.
func NewPluginsCommand(container *Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Work with installed plugins across the fleet",
	}
	cmd.AddCommand(newPluginsExportCommand(container))
	return cmd
}

func newPluginsExportCommand(container *Container) *cobra.Command {
	var multiple string
	var destination string

	cmd := &cobra.Command{
		Use:   "export [site]",
		Short: "Export installed plugins to a CSV report",
		Long: `Export the installed plugins of one site, or of the whole fleet, to a
CSV file with one row per (site, plugin) pair.

With --multiple all, every non-staging site is exported in a single
batch request and no site prompt is shown. Sites whose payload comes
back as an error are listed separately and excluded from the report.

Examples:
  sitefleet plugins export example.com
  sitefleet plugins export --multiple all
  sitefleet plugins export --multiple all --destination /tmp/fleet-plugins`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			siteArg := ""
			if len(args) > 0 {
				siteArg = args[0]
			}
			return runPluginsExport(cmd.Context(), container, siteArg, multiple, destination)
		},
	}

	cmd.Flags().StringVar(&multiple, "multiple", "", "Set to \"all\" to export the whole fleet")
	cmd.Flags().StringVar(&destination, "destination", "", "Report file path (.csv appended if missing)")
	return cmd
}

func runPluginsExport(ctx context.Context, container *Container, siteArg, multiple, destination string) error {
	if multiple != "" && multiple != "all" {
		return &prompt.InvalidInputError{Name: "multiple", Value: multiple, Allowed: []string{"all"}}
	}
	if err := container.requireToken(); err != nil {
		return err
	}

	sites, err := container.fetchSites(ctx)
	if err != nil {
		return err
	}

	var targets []fleet.Site
	if multiple == "all" {
		targets = fleet.ExcludeDomains(sites, container.Config.ExcludedDomains)
		if destination == "" {
			destination = "plugins-on-all-sites"
		}
	} else {
		site, err := resolveSite(container, prompt.ArgSet{}, siteArg, sites)
		if err != nil {
			return err
		}
		targets = []fleet.Site{site}
		if destination == "" {
			destination = "plugins-on-" + site.Domain()
		}
	}
	destination = report.NormalizeDestination(destination)

	siteIDs := make([]int64, len(targets))
	for i, s := range targets {
		siteIDs[i] = s.ID
	}

	stop := container.startSpinner(fmt.Sprintf("Fetching plugins for %d site(s)...", len(targets)))
	results, err := container.Client.BatchPlugins(ctx, siteIDs)
	stop()
	if err != nil {
		return fmt.Errorf("failed to fetch plugins: %w", err)
	}

	var records []fleet.PluginRecord
	var failed []report.FailedSite
	for _, site := range targets {
		result, ok := results[site.ID]
		switch {
		case !ok:
			failed = append(failed, report.FailedSite{Site: site, Reason: "missing from batch response"})
		case result.OK():
			records = append(records, fleet.FlattenPlugins(site, result.Plugins)...)
		default:
			failed = append(failed, report.FailedSite{Site: site, Reason: result.Reason})
		}
	}

	report.RenderFailedSites(container.ErrOut, failed)

	if err := report.WriteCSV(destination, records); err != nil {
		return err
	}

	fmt.Fprintf(container.Out, "%s Exported %d plugin row(s) from %d site(s) to %s\n",
		color.GreenString("✅"), len(records), len(targets)-len(failed), destination)
	return nil
}

// resolveSite resolves the site parameter against the fetched fleet,
// prompting with the fleet's domains as completion candidates.
func resolveSite(container *Container, args prompt.ArgSet, explicit string, sites []fleet.Site) (fleet.Site, error) {
	domains := make([]string, len(sites))
	for i, s := range sites {
		domains[i] = s.Domain()
	}

	value, err := container.Resolver.Resolve(args, "site", explicit, prompt.Options{
		Question:    "Which site? (domain or numeric ID)",
		Suggestions: domains,
	})
	if err != nil {
		return fleet.Site{}, err
	}
	return fleet.FindSite(sites, value.Str)
}
