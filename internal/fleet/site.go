package fleet

import (
	"fmt"
	"strings"
)

// Site is a snapshot of one manageable site as reported by the remote
// directory. Sites are fetched fresh per invocation and never persisted.
type Site struct {
	ID   int64  `json:"ID"`
	URL  string `json:"URL"`
	Name string `json:"name"`
}

// Domain returns the host portion of the site URL, without scheme or
// trailing path.
func (s Site) Domain() string {
	domain := s.URL
	if i := strings.Index(domain, "://"); i >= 0 {
		domain = domain[i+3:]
	}
	if i := strings.IndexByte(domain, '/'); i >= 0 {
		domain = domain[:i]
	}
	return domain
}

// Module is a named togglable feature on a site.
type Module struct {
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// State renders the on/off state as the word used on the wire.
func (m Module) State() string {
	if m.Active {
		return "on"
	}
	return "off"
}

// ModuleSlugs returns the slugs of the given modules, preserving order.
func ModuleSlugs(modules []Module) []string {
	slugs := make([]string, len(modules))
	for i, m := range modules {
		slugs[i] = m.Slug
	}
	return slugs
}

// FindSite locates a site by numeric ID or domain within the given set.
// The token matches a site when it equals the ID, equals the domain, or
// is a substring of the URL.
func FindSite(sites []Site, token string) (Site, error) {
	token = strings.TrimSpace(token)
	for _, s := range sites {
		if fmt.Sprintf("%d", s.ID) == token {
			return s, nil
		}
	}
	for _, s := range sites {
		if s.Domain() == token {
			return s, nil
		}
	}
	for _, s := range sites {
		if token != "" && strings.Contains(s.URL, token) {
			return s, nil
		}
	}
	return Site{}, fmt.Errorf("no site matches %q", token)
}
