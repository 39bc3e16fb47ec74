package api

import "encoding/json"

// Extension is an add-on module installed on the host service.
type Extension struct {
	Name      string `json:"name"`
	Desc      string `json:"desc"`
	Author    string `json:"author"`
	Repo      string `json:"repo"`
	Activated bool   `json:"activated"`
	Reserved  bool   `json:"reserved"`
}

// MarketEntry is an extension offered by the remote catalog. Installed is
// derived locally by reconciling against the installed list; it is never
// sent to the host.
type MarketEntry struct {
	Name      string `json:"name"`
	Desc      string `json:"desc"`
	Author    string `json:"author"`
	Repo      string `json:"repo"`
	Installed bool   `json:"-"`
}

// ExtensionConfig is an extension's configuration document. Metadata
// describes the configurable fields and is opaque to the client except
// for presentation; Config is the editable key/value document.
type ExtensionConfig struct {
	Metadata json.RawMessage        `json:"metadata"`
	Config   map[string]interface{} `json:"config"`
}
