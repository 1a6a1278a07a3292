package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitefleet.dev/cli/internal/fleet"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-token", 5*time.Second, nil)
}

func TestListSites(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1.1/me/sites", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sites":[
			{"ID":1,"URL":"https://example.com","name":"Example"},
			{"ID":2,"URL":"https://another.org","name":"Another"}
		]}`))
	})

	sites, err := client.ListSites(context.Background())
	require.NoError(t, err)
	require.Len(t, sites, 2)
	assert.Equal(t, fleet.Site{ID: 1, URL: "https://example.com", Name: "Example"}, sites[0])
}

func TestListSites_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	_, err := client.ListSites(context.Background())

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusBadGateway, remote.Status)
	assert.Contains(t, remote.Message, "upstream exploded")
}

func TestSiteModules_SortedBySlug(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1.1/sites/42/modules", r.URL.Path)
		w.Write([]byte(`{"modules":[
			{"slug":"stats","name":"Stats","active":true},
			{"slug":"photon","name":"Photon","active":false}
		]}`))
	})

	modules, err := client.SiteModules(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.Equal(t, "photon", modules[0].Slug)
	assert.Equal(t, "stats", modules[1].Slug)
}

func TestUpdateModule(t *testing.T) {
	var gotBody map[string]bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1.1/sites/42/modules/photon", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"updated":true}`))
	})

	err := client.UpdateModule(context.Background(), 42, "photon", true)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"active": true}, gotBody)
}

func TestUpdateModule_NotAcknowledged(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"updated":false}`))
	})

	err := client.UpdateModule(context.Background(), 42, "photon", false)

	var remote *RemoteError
	require.ErrorAs(t, err, &remote, "unacknowledged update must be a RemoteError")
	assert.Zero(t, remote.Status, "no HTTP status: the call itself succeeded")
}

func TestBatchPlugins_DiscriminatesByShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1.1/sites/batch/plugins", r.URL.Path)

		var body map[string][]int64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []int64{1, 2}, body["sites"])

		w.Write([]byte(`{"results":{
			"1":[{"name":"Akismet","slug":"akismet","version":"5.3","active":true}],
			"2":{"message":"site unreachable"}
		}}`))
	})

	results, err := client.BatchPlugins(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[1].OK())
	require.Len(t, results[1].Plugins, 1)
	assert.Equal(t, "akismet", results[1].Plugins[0].Slug)

	assert.False(t, results[2].OK())
	assert.Equal(t, "site unreachable", results[2].Reason)
}

func TestDiscriminate(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		ok      bool
		reason  string
	}{
		{"array is success", `[{"slug":"akismet"}]`, true, ""},
		{"empty array is success", `[]`, true, ""},
		{"leading whitespace array", "\n\t []", true, ""},
		{"object with message", `{"message":"nope"}`, false, "nope"},
		{"object with error", `{"error":"denied"}`, false, "denied"},
		{"empty object", `{}`, false, "unknown error"},
		{"malformed array", `[{"slug":}]`, false, ""},
		{"garbage", `zzz`, false, "unrecognized payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := discriminate(json.RawMessage(tt.payload))
			assert.Equal(t, tt.ok, result.OK())
			if tt.reason != "" {
				assert.Equal(t, tt.reason, result.Reason)
			}
		})
	}
}

func TestBatchPlugins_BadSiteKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":{"not-a-number":[]}}`))
	})

	_, err := client.BatchPlugins(context.Background(), []int64{1})
	assert.Error(t, err)
}
