package services

import (
	"sort"
	"strings"

	"github.com/rxradar/backend/internal/domain/entities"
)

// Occurrence is one active ingredient inside one named product. The same
// ingredient appears as many times as products carry it.
type Occurrence struct {
	Ingredient string
	EntryName  string
}

// IngredientPair is one distinct interaction candidate. EntryNamesA and
// EntryNamesB list every product contributing each side, in first-seen order.
type IngredientPair struct {
	IngredientA string
	IngredientB string
	EntryNamesA []string
	EntryNamesB []string
}

// DuplicateGroup is one ingredient reached through two or more products.
type DuplicateGroup struct {
	Ingredient string
	EntryNames []string
}

// Classification is the full pairing result for one medication batch.
type Classification struct {
	Duplicates []DuplicateGroup
	Pairs      []IngredientPair
}

// ClassifyPairs walks every 2-combination of ingredient occurrences across a
// resolved batch and splits them into duplicate exposures (same ingredient
// through different products) and interaction candidates (distinct
// ingredients). Distinct pairs are deduplicated on the unordered ingredient
// key, so each pharmacological pair is analyzed once no matter how many
// product combinations produce it. Occurrences carrying the unknown sentinel
// are excluded before pairing.
func ClassifyPairs(entries []*entities.MedicationEntry) Classification {
	var occurrences []Occurrence
	for _, entry := range entries {
		for _, ingredient := range entry.ActiveIngredients {
			if strings.EqualFold(ingredient, entities.UnknownIngredient) {
				continue
			}
			occurrences = append(occurrences, Occurrence{
				Ingredient: ingredient,
				EntryName:  entry.Name,
			})
		}
	}
	return classifyOccurrences(occurrences)
}

func classifyOccurrences(occurrences []Occurrence) Classification {
	duplicateIndex := make(map[string]int)
	pairIndex := make(map[string]int)
	var result Classification

	for i := 0; i < len(occurrences); i++ {
		for j := i + 1; j < len(occurrences); j++ {
			a, b := occurrences[i], occurrences[j]

			if strings.EqualFold(a.Ingredient, b.Ingredient) {
				// An ingredient listed twice inside one product is a quirk of
				// that product's formulation data, not two exposures: the user
				// takes it through a single product, so no duplicate warning.
				// Duplicates require two different products below.
				if a.EntryName == b.EntryName {
					continue
				}
				key := strings.ToLower(a.Ingredient)
				idx, ok := duplicateIndex[key]
				if !ok {
					idx = len(result.Duplicates)
					duplicateIndex[key] = idx
					result.Duplicates = append(result.Duplicates, DuplicateGroup{Ingredient: a.Ingredient})
				}
				group := &result.Duplicates[idx]
				group.EntryNames = appendUnique(group.EntryNames, a.EntryName)
				group.EntryNames = appendUnique(group.EntryNames, b.EntryName)
				continue
			}

			minName, maxName := entities.PairKey(a.Ingredient, b.Ingredient)
			key := minName + "\x00" + maxName
			idx, ok := pairIndex[key]
			if !ok {
				idx = len(result.Pairs)
				pairIndex[key] = idx
				result.Pairs = append(result.Pairs, IngredientPair{
					IngredientA: a.Ingredient,
					IngredientB: b.Ingredient,
				})
			}
			pair := &result.Pairs[idx]
			// The first occurrence fixed which ingredient is side A.
			if strings.EqualFold(pair.IngredientA, a.Ingredient) {
				pair.EntryNamesA = appendUnique(pair.EntryNamesA, a.EntryName)
				pair.EntryNamesB = appendUnique(pair.EntryNamesB, b.EntryName)
			} else {
				pair.EntryNamesA = appendUnique(pair.EntryNamesA, b.EntryName)
				pair.EntryNamesB = appendUnique(pair.EntryNamesB, a.EntryName)
			}
		}
	}

	for i := range result.Duplicates {
		sort.Strings(result.Duplicates[i].EntryNames)
	}
	return result
}

func appendUnique(names []string, name string) []string {
	for _, existing := range names {
		if existing == name {
			return names
		}
	}
	return append(names, name)
}
