package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenPlugins(t *testing.T) {
	site := Site{ID: 42, URL: "https://example.com"}
	plugins := []Plugin{
		{Name: "Akismet", Slug: "akismet", Version: "5.3", Active: true},
		{Name: "Hello Dolly", Slug: "hello-dolly", Version: "1.7", Active: false},
	}

	records := FlattenPlugins(site, plugins)
	require.Len(t, records, 2)

	assert.Equal(t, PluginRecord{
		SiteID:  42,
		SiteURL: "https://example.com",
		Name:    "Akismet",
		Slug:    "akismet",
		Version: "5.3",
		Status:  PluginStatusActive,
	}, records[0])
	assert.Equal(t, PluginStatusInactive, records[1].Status)
}

func TestFlattenPlugins_EmptyList(t *testing.T) {
	records := FlattenPlugins(Site{ID: 1}, nil)
	assert.Empty(t, records)
}
