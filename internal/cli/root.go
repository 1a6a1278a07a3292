package cli

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sitefleet.dev/cli/internal/prompt"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// Exit codes. An operator declining a confirmation is not a failure, so
// it gets its own code.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitAborted = 2
)

// NewRootCommand builds the base command with all subcommands attached.
func NewRootCommand(container *Container) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sitefleet",
		Short: "Sitefleet CLI - manage a fleet of hosted sites",
		Long: `Sitefleet CLI is an operator tool for a fleet of hosted sites managed
through the remote site-management API.

It lists sites, exports per-site plugin inventories to CSV, and toggles
site modules, prompting interactively for any value not given on the
command line.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return container.setup(cmd)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().String("api-base", "", "Override the API base URL")
	rootCmd.PersistentFlags().String("token", "", "Override the API token")

	rootCmd.AddCommand(NewSitesCommand(container))
	rootCmd.AddCommand(NewPluginsCommand(container))
	rootCmd.AddCommand(NewModulesCommand(container))
	rootCmd.AddCommand(NewConfigCommand(container))

	return rootCmd
}

// goVersion returns the Go version used to build the binary.
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// Execute runs the root command and maps the outcome to an exit code.
func Execute(container *Container) int {
	rootCmd := NewRootCommand(container)
	return exitCode(container, rootCmd.Execute())
}

func exitCode(container *Container, err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, prompt.ErrAborted) {
		fmt.Fprintln(container.ErrOut, "Aborted.")
		return ExitAborted
	}
	fmt.Fprintf(container.ErrOut, "%s %v\n", color.RedString("Error:"), err)
	return ExitFailure
}
