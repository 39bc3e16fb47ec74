package model

import "extui/api"

// Reconcile recomputes the Installed flag of every market entry from the
// full current snapshot of the installed list. An entry is installed iff
// some installed extension carries the exact same repo string; the
// comparison is deliberately not normalized (case, trailing slash,
// protocol), so differently-formatted but equivalent URLs do not match.
//
// Both the registry fetch and the market fetch call this when they
// complete. It is idempotent and safe to run redundantly: it operates on
// full snapshots, not deltas, so the last call wins.
func Reconcile(extensions []api.Extension, market []api.MarketEntry) {
	for i := range market {
		market[i].Installed = false
		for j := range extensions {
			if extensions[j].Repo == market[i].Repo {
				market[i].Installed = true
				break
			}
		}
	}
}
