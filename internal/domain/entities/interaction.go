package entities

import "strings"

// FieldNotAvailable is the knowledge-base sentinel for "field intentionally
// absent". Distinct from an empty string.
const FieldNotAvailable = "Information not available"

// SeverityUnknown marks interactions whose severity was never formally graded.
const SeverityUnknown = "unknown"

// InteractionRecord is read-only reference data about one ingredient pair.
// The pair key is lexicographic: MinDrugName <= MaxDrugName, so (A,B) and
// (B,A) resolve to the same row.
type InteractionRecord struct {
	MinDrugName           string `json:"min_drug_name" db:"min_drug_name"`
	MaxDrugName           string `json:"max_drug_name" db:"max_drug_name"`
	Severity              string `json:"severity" db:"severity"`
	Description           string `json:"description" db:"description"`
	ATCGroupContext       string `json:"atc_group_context" db:"atc_group_context"`
	MinDrugClass          string `json:"min_drug_class" db:"min_drug_class"`
	MaxDrugClass          string `json:"max_drug_class" db:"max_drug_class"`
	MinMechanismOfAction  string `json:"min_mechanism_of_action" db:"min_mechanism_of_action"`
	MaxMechanismOfAction  string `json:"max_mechanism_of_action" db:"max_mechanism_of_action"`
	MinRouteOfElimination string `json:"min_route_of_elimination" db:"min_route_of_elimination"`
	MaxRouteOfElimination string `json:"max_route_of_elimination" db:"max_route_of_elimination"`
	MinToxicity           string `json:"min_toxicity" db:"min_toxicity"`
	MaxToxicity           string `json:"max_toxicity" db:"max_toxicity"`
	EffectsSummary        string `json:"effects_summary" db:"effects_summary"`
}

// PairKey normalizes two ingredient names into the lexicographic (min, max)
// key used to store and look up interaction records.
func PairKey(a, b string) (string, string) {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a > b {
		return b, a
	}
	return a, b
}
