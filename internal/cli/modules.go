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

var moduleStates = []string{"on", "off"}

// NewModulesCommand creates the modules command group.
func NewModulesCommand(container *Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "Inspect and toggle site modules",
	}
	cmd.AddCommand(newModulesListCommand(container))
	cmd.AddCommand(newModulesToggleCommand(container))
	return cmd
}

func newModulesListCommand(container *Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list [site]",
		Short: "List the modules of one site",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			siteArg := ""
			if len(args) > 0 {
				siteArg = args[0]
			}
			return runModulesList(cmd.Context(), container, siteArg)
		},
	}
}

func runModulesList(ctx context.Context, container *Container, siteArg string) error {
	if err := container.requireToken(); err != nil {
		return err
	}

	sites, err := container.fetchSites(ctx)
	if err != nil {
		return err
	}
	site, err := resolveSite(container, prompt.ArgSet{}, siteArg, sites)
	if err != nil {
		return err
	}

	modules, err := fetchModules(ctx, container, site)
	if err != nil {
		return err
	}

	fmt.Fprintf(container.Out, "Modules on %s:\n\n", site.Domain())
	report.RenderModules(container.Out, modules)
	return nil
}

func newModulesToggleCommand(container *Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "toggle [site] [module] [status]",
		Short: "Turn a site module on or off",
		Long: `Turn a module on or off for one site.

Any value not given on the command line is prompted for: the site with
the fleet's domains as completion candidates, the module with that
site's module set, and the status with on/off (default on). The change
is confirmed before the update call; declining exits with code 2.

Examples:
  sitefleet modules toggle example.com photon off
  sitefleet modules toggle example.com          # prompts for module and status
  sitefleet modules toggle --yes example.com photon on`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			padded := make([]string, 3)
			copy(padded, args)
			return runModulesToggle(cmd.Context(), container, padded[0], padded[1], padded[2], yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func runModulesToggle(ctx context.Context, container *Container, siteArg, moduleArg, statusArg string, yes bool) error {
	argSet := prompt.ArgSet{}

	// An explicit status is validated before anything goes over the
	// wire, so a typo fails fast with zero remote calls.
	var status prompt.Value
	statusResolved := false
	if statusArg != "" {
		var err error
		status, err = container.Resolver.ResolveEnum(argSet, "status", statusArg, moduleStates, "on")
		if err != nil {
			return err
		}
		statusResolved = true
	}

	if err := container.requireToken(); err != nil {
		return err
	}

	sites, err := container.fetchSites(ctx)
	if err != nil {
		return err
	}
	site, err := resolveSite(container, argSet, siteArg, sites)
	if err != nil {
		return err
	}

	modules, err := fetchModules(ctx, container, site)
	if err != nil {
		return err
	}
	slugs := fleet.ModuleSlugs(modules)

	module, err := container.Resolver.Resolve(argSet, "module", moduleArg, prompt.Options{
		Question:    fmt.Sprintf("Which module on %s?", site.Domain()),
		Allowed:     slugs,
		Suggestions: slugs,
	})
	if err != nil {
		return err
	}

	if !statusResolved {
		status, err = container.Resolver.ResolveEnum(argSet, "status", "", moduleStates, "on")
		if err != nil {
			return err
		}
	}

	question := fmt.Sprintf("Turn module %q %s on %s?", module.Str, status.Str, site.Domain())
	confirmed, err := prompt.Confirm(prompt.ConfirmOptions{
		Question:   question,
		SkipPrompt: yes,
		Input:      container.In,
		Output:     container.Out,
	})
	if err != nil {
		return err
	}
	if !confirmed {
		return prompt.ErrAborted
	}

	if err := container.Client.UpdateModule(ctx, site.ID, module.Str, status.Str == "on"); err != nil {
		return fmt.Errorf("failed to update module %s: %w", module.Str, err)
	}

	fmt.Fprintf(container.Out, "%s Module %s is now %s on %s\n",
		color.GreenString("✅"), module.Str, status.Str, site.Domain())
	return nil
}

func fetchModules(ctx context.Context, container *Container, site fleet.Site) ([]fleet.Module, error) {
	stop := container.startSpinner(fmt.Sprintf("Fetching modules for %s...", site.Domain()))
	modules, err := container.Client.SiteModules(ctx, site.ID)
	stop()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch modules for %s: %w", site.Domain(), err)
	}
	return modules, nil
}
