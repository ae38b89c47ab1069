package services

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/rxradar/backend/internal/domain/entities"
	"github.com/rxradar/backend/internal/domain/providers"
)

// OutcomeKind identifies which resolution rule produced an outcome.
type OutcomeKind string

const (
	// OutcomeResolvedDirect: the typed name equals a formulation's display name
	OutcomeResolvedDirect OutcomeKind = "resolved_direct"

	// OutcomeResolvedBrandSingle: the typed name is a brand key with exactly
	// one formulation
	OutcomeResolvedBrandSingle OutcomeKind = "resolved_brand_single"

	// OutcomeResolvedGeneric: the typed name is a known generic name
	OutcomeResolvedGeneric OutcomeKind = "resolved_generic"

	// OutcomeNeedsDisambiguation: the typed name is a brand key with two or
	// more formulations
	OutcomeNeedsDisambiguation OutcomeKind = "needs_disambiguation"

	// OutcomeNeedsCorrection: nothing matched; spelling suggestions offered
	OutcomeNeedsCorrection OutcomeKind = "needs_correction"

	// OutcomeSkipped: the typed name was empty or whitespace-only
	OutcomeSkipped OutcomeKind = "skipped"
)

const (
	maxSuggestions  = 5
	similarityFloor = 0.6
)

// ResolutionOutcome is the result of running one typed name through the
// resolution strategy chain.
type ResolutionOutcome struct {
	Kind              OutcomeKind            `json:"kind"`
	DisplayName       string                 `json:"display_name,omitempty"`
	ActiveIngredients []string               `json:"active_ingredients,omitempty"`
	Options           []entities.BrandOption `json:"options,omitempty"`
	Suggestions       []string               `json:"suggestions,omitempty"`
}

// Resolved reports whether the outcome settled the entry.
func (o *ResolutionOutcome) Resolved() bool {
	switch o.Kind {
	case OutcomeResolvedDirect, OutcomeResolvedBrandSingle, OutcomeResolvedGeneric:
		return true
	}
	return false
}

// resolutionStrategy tries one rule against a typed name. It returns nil when
// the rule does not apply, letting the chain move on.
type resolutionStrategy func(typedRaw, typedLower string) *ResolutionOutcome

// NameResolver turns a free-text medication name into a resolution outcome.
// The strategy order is load-bearing: direct display-name match, then brand
// key, then generic name, then fuzzy suggestion. Exact equality is used
// throughout, so a brand name that is a substring of a generic name is never
// misrouted.
type NameResolver struct {
	directory  providers.DrugDirectory
	strategies []resolutionStrategy
}

// NewNameResolver creates a resolver over the given directory.
func NewNameResolver(directory providers.DrugDirectory) *NameResolver {
	r := &NameResolver{directory: directory}
	r.strategies = []resolutionStrategy{
		r.matchDisplayName,
		r.matchBrandKey,
		r.matchGeneric,
		r.suggestCorrections,
	}
	return r
}

// Resolve runs the typed name through the strategy chain, stopping at the
// first rule that applies. Empty and whitespace-only names are skipped.
func (r *NameResolver) Resolve(typedName string) *ResolutionOutcome {
	typedRaw := strings.TrimSpace(typedName)
	if typedRaw == "" {
		return &ResolutionOutcome{Kind: OutcomeSkipped}
	}
	typedLower := strings.ToLower(typedRaw)

	for _, strategy := range r.strategies {
		if outcome := strategy(typedRaw, typedLower); outcome != nil {
			return outcome
		}
	}

	// The suggestion strategy always applies, so this is unreachable.
	return &ResolutionOutcome{Kind: OutcomeNeedsCorrection, Suggestions: []string{entities.NoSuggestion}}
}

func (r *NameResolver) matchDisplayName(_, typedLower string) *ResolutionOutcome {
	option, ok := r.directory.FindByDisplayName(typedLower)
	if !ok {
		return nil
	}
	return &ResolutionOutcome{
		Kind:              OutcomeResolvedDirect,
		DisplayName:       option.DisplayName,
		ActiveIngredients: option.ActiveIngredients,
	}
}

func (r *NameResolver) matchBrandKey(_, typedLower string) *ResolutionOutcome {
	options := r.directory.BrandOptions(typedLower)
	switch {
	case len(options) == 0:
		return nil
	case len(options) == 1:
		return &ResolutionOutcome{
			Kind:              OutcomeResolvedBrandSingle,
			DisplayName:       options[0].DisplayName,
			ActiveIngredients: options[0].ActiveIngredients,
		}
	default:
		return &ResolutionOutcome{
			Kind:    OutcomeNeedsDisambiguation,
			Options: options,
		}
	}
}

func (r *NameResolver) matchGeneric(typedRaw, typedLower string) *ResolutionOutcome {
	if !r.directory.IsKnownGeneric(typedLower) {
		return nil
	}
	return &ResolutionOutcome{
		Kind:              OutcomeResolvedGeneric,
		DisplayName:       typedRaw,
		ActiveIngredients: []string{typedRaw},
	}
}

func (r *NameResolver) suggestCorrections(_, typedLower string) *ResolutionOutcome {
	type scored struct {
		name  string
		score float64
	}

	var candidates []scored
	for _, known := range r.directory.KnownNames() {
		score := similarity(typedLower, strings.ToLower(known))
		if score >= similarityFloor {
			candidates = append(candidates, scored{name: known, score: score})
		}
	}

	if len(candidates) == 0 {
		return &ResolutionOutcome{
			Kind:        OutcomeNeedsCorrection,
			Suggestions: []string{entities.NoSuggestion},
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}

	suggestions := make([]string, len(candidates))
	for i, c := range candidates {
		suggestions[i] = c.name
	}
	return &ResolutionOutcome{
		Kind:        OutcomeNeedsCorrection,
		Suggestions: suggestions,
	}
}

// similarity is a normalized edit-distance score in [0, 1]: 1 means equal,
// 0 means nothing in common.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if lb := len([]rune(b)); lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}
