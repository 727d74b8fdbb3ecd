package domain

// Asset is an importable unit discovered within a remote repository. The
// href is an opaque identifier minted by the control plane; assets are
// never mutated locally, only filtered.
type Asset struct {
	Href string `json:"href"`
}

// Outcome is the control plane's verdict on what importing an asset would
// do. The enum is open: outcome strings this version does not know are
// still treated as a change.
type Outcome string

const (
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeCreated   Outcome = "created"
	OutcomeUpdated   Outcome = "updated"
	OutcomeDeleted   Outcome = "deleted"
)

// ImportDecision is the per-asset result of an import preview.
type ImportDecision struct {
	AssetHref string  `json:"asset"`
	Outcome   Outcome `json:"outcome"`
}

// Changed reports whether importing the asset would alter remote state.
func (d ImportDecision) Changed() bool {
	return d.Outcome != OutcomeUnchanged
}
