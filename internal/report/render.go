package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"sitefleet.dev/cli/internal/fleet"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	offStyle    = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// FailedSite is one entry of the failed-sites side table produced by a
// batch fetch with partial failures.
type FailedSite struct {
	Site   fleet.Site
	Reason string
}

// RenderSites writes a site table with ID, domain, and name columns.
func RenderSites(w io.Writer, sites []fleet.Site) {
	idWidth := len("ID")
	domainWidth := len("Domain")
	for _, s := range sites {
		if n := len(strconv.FormatInt(s.ID, 10)); n > idWidth {
			idWidth = n
		}
		if n := len(s.Domain()); n > domainWidth {
			domainWidth = n
		}
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-*s  %-*s  %s", idWidth, "ID", domainWidth, "Domain", "Name")))
	for _, s := range sites {
		fmt.Fprintf(w, "%-*d  %-*s  %s\n", idWidth, s.ID, domainWidth, s.Domain(), s.Name)
	}
}

// RenderModules writes a module table with slug and state columns.
func RenderModules(w io.Writer, modules []fleet.Module) {
	slugWidth := len("Module")
	for _, m := range modules {
		if len(m.Slug) > slugWidth {
			slugWidth = len(m.Slug)
		}
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-*s  %s", slugWidth, "Module", "State")))
	for _, m := range modules {
		state := m.State()
		if !m.Active {
			state = offStyle.Render(state)
		}
		fmt.Fprintf(w, "%-*s  %s\n", slugWidth, m.Slug, state)
	}
}

// RenderFailedSites writes the side table of sites whose batch payload
// came back as an error.
func RenderFailedSites(w io.Writer, failed []FailedSite) {
	if len(failed) == 0 {
		return
	}
	fmt.Fprintln(w, errStyle.Render("Some sites could not be fetched:"))
	for _, f := range failed {
		fmt.Fprintf(w, "  %d  %s  %s\n", f.Site.ID, f.Site.Domain(), f.Reason)
	}
}
