package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"sitefleet.dev/cli/internal/fleet"
)

// CSVHeader is the fixed header of exported plugin reports.
var CSVHeader = []string{
	"Site ID", "Site URL", "Plugin Name", "Plugin Slug", "Plugin Version", "Plugin Status",
}

// NormalizeDestination appends a .csv suffix to the path unless it
// already has one.
func NormalizeDestination(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		return path
	}
	return path + ".csv"
}

// WriteCSV writes the plugin records to the destination file: one
// header row, then one row per record.
func WriteCSV(path string, records []fleet.PluginRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(CSVHeader); err != nil {
		f.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.FormatInt(r.SiteID, 10),
			r.SiteURL,
			r.Name,
			r.Slug,
			r.Version,
			r.Status,
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("failed to write row for %s: %w", r.Slug, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	// Close errors count: the data may still sit in kernel buffers.
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
