package api

import (
	"bytes"
	"encoding/json"

	"sitefleet.dev/cli/internal/fleet"
)

// PluginsResult is the tagged outcome of one site's slot in a batch
// plugin fetch: either the plugin list, or the failure reason.
type PluginsResult struct {
	Plugins []fleet.Plugin
	Reason  string
}

// OK reports whether the site's payload was a successful plugin list.
func (r PluginsResult) OK() bool {
	return r.Reason == ""
}

// discriminate decides success vs failure for one site's raw payload.
// The API signals success with an array-shaped value and failure with an
// object-shaped one; the decision is made here, once, at the boundary.
// An object-shaped payload is always a failure, even if it carries no
// message, matching the upstream contract.
func discriminate(raw json.RawMessage) PluginsResult {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var plugins []fleet.Plugin
		if err := json.Unmarshal(trimmed, &plugins); err != nil {
			return PluginsResult{Reason: "malformed plugin list: " + err.Error()}
		}
		return PluginsResult{Plugins: plugins}
	}

	var failure struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &failure); err != nil {
		return PluginsResult{Reason: "unrecognized payload"}
	}
	switch {
	case failure.Message != "":
		return PluginsResult{Reason: failure.Message}
	case failure.Error != "":
		return PluginsResult{Reason: failure.Error}
	default:
		return PluginsResult{Reason: "unknown error"}
	}
}
