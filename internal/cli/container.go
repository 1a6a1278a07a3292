package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sitefleet.dev/cli/internal/api"
	"sitefleet.dev/cli/internal/config"
	"sitefleet.dev/cli/internal/fleet"
	"sitefleet.dev/cli/internal/logging"
	"sitefleet.dev/cli/internal/prompt"
)

// Container holds the dependencies shared by all CLI commands.
type Container struct {
	Config   *config.Config
	Client   *api.Client
	Resolver *prompt.Resolver
	Logger   *logging.Logger
	In       io.Reader
	Out      io.Writer
	ErrOut   io.Writer
}

// NewContainer creates a container wired to the real terminal. The
// config and API client are populated later, once flags are parsed.
// The confirmation gate reads through the asker's buffer so piped
// answers survive from one question to the next.
func NewContainer() *Container {
	asker := prompt.NewTerminalAsker()
	return &Container{
		Resolver: prompt.NewResolver(asker),
		Logger:   logging.New(os.Stderr),
		In:       asker.Buffered(),
		Out:      os.Stdout,
		ErrOut:   os.Stderr,
	}
}

// setup loads configuration, applies flag overrides, and builds the API
// client. Runs once per invocation from the root command's
// PersistentPreRunE.
func (c *Container) setup(cmd *cobra.Command) error {
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		c.Logger.SetDebug(true)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Flag overrides apply only when explicitly set.
	if cmd.Flags().Changed("api-base") {
		cfg.APIBase, _ = cmd.Flags().GetString("api-base")
	}
	if cmd.Flags().Changed("token") {
		cfg.Token, _ = cmd.Flags().GetString("token")
	}

	c.Config = cfg
	c.Client = api.NewClient(cfg.APIBase, cfg.Token, cfg.Timeout(), c.Logger)
	return nil
}

// requireToken fails early when no API token is configured.
func (c *Container) requireToken() error {
	if c.Config == nil || c.Config.Token == "" {
		return fmt.Errorf("no API token configured: set SITEFLEET_TOKEN or add \"token\" to the config file")
	}
	return nil
}

// fetchSites loads the site directory with a progress spinner on TTYs.
func (c *Container) fetchSites(ctx context.Context) ([]fleet.Site, error) {
	stop := c.startSpinner("Fetching site list...")
	sites, err := c.Client.ListSites(ctx)
	stop()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch site list: %w", err)
	}
	c.Logger.Debugf("fetched %d sites", len(sites))
	return sites, nil
}

// startSpinner shows a spinner on stderr while a remote call is in
// flight. Off-TTY it prints the message once instead.
func (c *Container) startSpinner(message string) func() {
	f, ok := c.ErrOut.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		fmt.Fprintln(c.ErrOut, message)
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Writer = c.ErrOut
	s.Suffix = " " + message
	s.Start()
	return s.Stop
}
