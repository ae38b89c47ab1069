package providers

import "github.com/rxradar/backend/internal/domain/entities"

// DrugDirectory is the static lookup surface the name resolver works against.
// Loaded once at startup, immutable at runtime. The interface hides the lookup
// strategy so an exact map can later become a trie or fuzzy index without
// touching the resolver's control flow.
type DrugDirectory interface {
	// FindByDisplayName matches a typed name against every brand option's
	// display name, case-insensitively.
	FindByDisplayName(name string) (entities.BrandOption, bool)

	// BrandOptions returns the formulations registered under a brand key, or
	// nil when the key is unknown.
	BrandOptions(brandKey string) []entities.BrandOption

	// IsKnownGeneric reports whether the name is a known generic name.
	IsKnownGeneric(name string) bool

	// KnownNames returns every known name, used for fuzzy suggestion ranking.
	KnownNames() []string
}
