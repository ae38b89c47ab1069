package entities

// BrandOption is one formulation a brand name can refer to. Immutable, part of
// the static drug directory.
type BrandOption struct {
	DisplayName       string   `json:"display_name"`
	ActiveIngredients []string `json:"active_ingredients"`
}

// DisambiguationCandidate is the transient record kept while an entry is in
// needs_disambiguation: which entry, what the user typed, and the formulations
// to choose from.
type DisambiguationCandidate struct {
	EntryIndex   int           `json:"entry_index"`
	OriginalName string        `json:"original_name"`
	Options      []BrandOption `json:"options"`
	Selected     string        `json:"selected"`
}

// CorrectionCandidate is the transient record kept while an entry is in
// needs_spell_check. Suggestions are ranked by closeness.
type CorrectionCandidate struct {
	EntryIndex   int      `json:"entry_index"`
	OriginalName string   `json:"original_name"`
	Suggestions  []string `json:"suggestions"`
	Selected     string   `json:"selected"`
}
