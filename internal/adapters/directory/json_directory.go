package directory

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/rxradar/backend/internal/domain/entities"
	"github.com/rxradar/backend/internal/domain/providers"
)

// JSONDirectory implements the drug directory from two static JSON files: a
// flat list of known generic names and a brand → formulations map. Both maps
// are built once in the constructor and never mutated afterwards.
type JSONDirectory struct {
	genericSet map[string]string // lowercased generic → original casing
	brandMap   map[string][]entities.BrandOption
	allNames   []string
}

type rawBrandOption struct {
	DisplayName       string   `json:"display_name"`
	ActiveIngredients []string `json:"active_ingredients"`
}

// NewJSONDirectory loads the directory files. Malformed brand entries (missing
// display name or ingredients) are dropped rather than rejected: missing data
// degrades to "no match", it never fails startup.
func NewJSONDirectory(knownNamesPath, brandMapPath string) (providers.DrugDirectory, error) {
	namesData, err := os.ReadFile(knownNamesPath)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(namesData, &names); err != nil {
		return nil, err
	}

	brandData, err := os.ReadFile(brandMapPath)
	if err != nil {
		return nil, err
	}
	var rawBrands map[string][]rawBrandOption
	if err := json.Unmarshal(brandData, &rawBrands); err != nil {
		return nil, err
	}

	d := &JSONDirectory{
		genericSet: make(map[string]string, len(names)),
		brandMap:   make(map[string][]entities.BrandOption, len(rawBrands)),
	}

	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := d.genericSet[key]; !ok {
			d.genericSet[key] = trimmed
			d.allNames = append(d.allNames, trimmed)
		}
	}

	for brand, rawOptions := range rawBrands {
		brandKey := strings.ToLower(strings.TrimSpace(brand))
		if brandKey == "" {
			continue
		}
		options := make([]entities.BrandOption, 0, len(rawOptions))
		for _, raw := range rawOptions {
			if strings.TrimSpace(raw.DisplayName) == "" || len(raw.ActiveIngredients) == 0 {
				continue
			}
			options = append(options, entities.BrandOption{
				DisplayName:       raw.DisplayName,
				ActiveIngredients: raw.ActiveIngredients,
			})
		}
		if len(options) == 0 {
			continue
		}
		d.brandMap[brandKey] = options
	}

	// Brand keys and formulation display names join the suggestion pool, so a
	// misspelled brand can be corrected to something the resolver will accept.
	seen := make(map[string]struct{}, len(d.allNames))
	for _, name := range d.allNames {
		seen[strings.ToLower(name)] = struct{}{}
	}
	addName := func(name string) {
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		d.allNames = append(d.allNames, name)
	}
	brandKeys := make([]string, 0, len(d.brandMap))
	for brandKey := range d.brandMap {
		brandKeys = append(brandKeys, brandKey)
	}
	sort.Strings(brandKeys)
	for _, brandKey := range brandKeys {
		addName(brandKey)
		for _, option := range d.brandMap[brandKey] {
			addName(option.DisplayName)
		}
	}

	return d, nil
}

// FindByDisplayName matches against every option's display name, any case.
func (d *JSONDirectory) FindByDisplayName(name string) (entities.BrandOption, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return entities.BrandOption{}, false
	}
	for _, options := range d.brandMap {
		for _, option := range options {
			if strings.ToLower(option.DisplayName) == needle {
				return option, true
			}
		}
	}
	return entities.BrandOption{}, false
}

// BrandOptions returns the formulations for a brand key, nil when unknown.
func (d *JSONDirectory) BrandOptions(brandKey string) []entities.BrandOption {
	return d.brandMap[strings.ToLower(strings.TrimSpace(brandKey))]
}

// IsKnownGeneric reports whether the name is in the generic-name set.
func (d *JSONDirectory) IsKnownGeneric(name string) bool {
	_, ok := d.genericSet[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// KnownNames returns every known name for fuzzy ranking.
func (d *JSONDirectory) KnownNames() []string {
	return d.allNames
}
