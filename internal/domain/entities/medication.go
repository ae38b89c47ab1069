package entities

import "strings"

// ResolutionStatus tracks where a medication entry is in the resolution lifecycle.
type ResolutionStatus string

const (
	// StatusPending means the entry has not been resolved yet
	StatusPending ResolutionStatus = "pending"

	// StatusNeedsSpellCheck means the typed name matched nothing and the user
	// must confirm a spelling suggestion
	StatusNeedsSpellCheck ResolutionStatus = "needs_spell_check"

	// StatusNeedsDisambiguation means the typed name is a brand with more than
	// one formulation and the user must pick one
	StatusNeedsDisambiguation ResolutionStatus = "needs_disambiguation"

	// StatusResolved means active ingredients have been settled for the entry
	StatusResolved ResolutionStatus = "resolved"
)

// UnknownIngredient is recorded when the user declines every spelling
// suggestion. Entries carrying it are excluded from pairing.
const UnknownIngredient = "UNKNOWN"

// NoSuggestion is the single option offered when fuzzy matching produced
// nothing above the similarity floor.
const NoSuggestion = "Unrecognized medication spelling. Please check and retype this medication."

// MedicationEntry is one row of the user's medication list. It is owned by the
// session analyzing it and mutated only by the resolver and the session.
type MedicationEntry struct {
	Name              string           `json:"name" db:"name"`
	Dosage            string           `json:"dosage" db:"dosage"`
	Frequency         string           `json:"frequency" db:"frequency"`
	ActiveIngredients []string         `json:"active_ingredients" db:"active_ingredients"`
	Status            ResolutionStatus `json:"status"`
}

// Complete reports whether the entry has all required fields for analysis.
func (m *MedicationEntry) Complete() bool {
	return strings.TrimSpace(m.Name) != "" &&
		strings.TrimSpace(m.Dosage) != "" &&
		strings.TrimSpace(m.Frequency) != ""
}

// Reset returns the entry to the pending state and clears its ingredients.
// Called when the user edits a previously resolved entry.
func (m *MedicationEntry) Reset() {
	m.Status = StatusPending
	m.ActiveIngredients = nil
}

// JoinIngredients serializes the ingredient list for persistence.
func JoinIngredients(ingredients []string) string {
	return strings.Join(ingredients, ",")
}

// SplitIngredients reverses JoinIngredients. An empty string maps to an empty
// slice, never [""].
func SplitIngredients(serialized string) []string {
	if serialized == "" {
		return []string{}
	}
	return strings.Split(serialized, ",")
}
