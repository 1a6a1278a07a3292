package fleet

// Plugin is one installed plugin as reported by a site.
type Plugin struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Version string `json:"version"`
	Active  bool   `json:"active"`
}

// Plugin status strings as they appear in exported reports.
const (
	PluginStatusActive   = "Active"
	PluginStatusInactive = "Inactive"
)

// PluginRecord is one flattened (site, plugin) pair ready for export.
type PluginRecord struct {
	SiteID  int64
	SiteURL string
	Name    string
	Slug    string
	Version string
	Status  string
}

// FlattenPlugins expands a site's plugin list into one record per plugin.
func FlattenPlugins(site Site, plugins []Plugin) []PluginRecord {
	records := make([]PluginRecord, 0, len(plugins))
	for _, p := range plugins {
		status := PluginStatusInactive
		if p.Active {
			status = PluginStatusActive
		}
		records = append(records, PluginRecord{
			SiteID:  site.ID,
			SiteURL: site.URL,
			Name:    p.Name,
			Slug:    p.Slug,
			Version: p.Version,
			Status:  status,
		})
	}
	return records
}
