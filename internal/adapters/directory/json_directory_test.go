package directory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDirectoryFiles(t *testing.T, knownNames, brandMap string) (string, string) {
	t.Helper()
	dir := t.TempDir()

	namesPath := filepath.Join(dir, "known_names.json")
	require.NoError(t, os.WriteFile(namesPath, []byte(knownNames), 0o600))

	brandPath := filepath.Join(dir, "brand_disambiguation.json")
	require.NoError(t, os.WriteFile(brandPath, []byte(brandMap), 0o600))

	return namesPath, brandPath
}

func TestNewJSONDirectory_LoadsAndNormalizes(t *testing.T) {
	namesPath, brandPath := writeDirectoryFiles(t,
		`["Aspirin", "ibuprofen", "  ", "aspirin"]`,
		`{
			"Tylenol": [
				{"display_name": "Tylenol", "active_ingredients": ["acetaminophen"]},
				{"display_name": "Tylenol PM", "active_ingredients": ["acetaminophen", "diphenhydramine"]}
			]
		}`,
	)

	dir, err := NewJSONDirectory(namesPath, brandPath)
	require.NoError(t, err)

	assert.True(t, dir.IsKnownGeneric("aspirin"))
	assert.True(t, dir.IsKnownGeneric("ASPIRIN"))
	assert.True(t, dir.IsKnownGeneric("ibuprofen"))
	assert.False(t, dir.IsKnownGeneric(""))

	options := dir.BrandOptions("tylenol")
	require.Len(t, options, 2)

	option, ok := dir.FindByDisplayName("tylenol pm")
	require.True(t, ok)
	assert.Equal(t, "Tylenol PM", option.DisplayName)

	// Blank and duplicate generic names are dropped; brand keys and display
	// names join the suggestion pool.
	names := dir.KnownNames()
	assert.Contains(t, names, "Aspirin")
	assert.Contains(t, names, "tylenol")
	assert.Contains(t, names, "Tylenol PM")
	for i, a := range names {
		for j, b := range names {
			if i != j {
				assert.NotEqual(t, a, b)
			}
		}
	}
}

func TestNewJSONDirectory_MalformedBrandEntriesDropped(t *testing.T) {
	namesPath, brandPath := writeDirectoryFiles(t,
		`[]`,
		`{
			"goodbrand": [
				{"display_name": "Good Brand", "active_ingredients": ["something"]},
				{"display_name": "", "active_ingredients": ["orphaned"]},
				{"display_name": "No Ingredients", "active_ingredients": []}
			],
			"emptybrand": [
				{"display_name": "", "active_ingredients": []}
			]
		}`,
	)

	dir, err := NewJSONDirectory(namesPath, brandPath)
	require.NoError(t, err)

	// Malformed options degrade to "no match" instead of failing startup.
	options := dir.BrandOptions("goodbrand")
	require.Len(t, options, 1)
	assert.Equal(t, "Good Brand", options[0].DisplayName)

	assert.Empty(t, dir.BrandOptions("emptybrand"))

	_, ok := dir.FindByDisplayName("No Ingredients")
	assert.False(t, ok)
}

func TestNewJSONDirectory_MissingFile(t *testing.T) {
	_, err := NewJSONDirectory("does-not-exist.json", "also-missing.json")
	assert.Error(t, err)
}

func TestNewJSONDirectory_InvalidJSON(t *testing.T) {
	namesPath, brandPath := writeDirectoryFiles(t, `not json`, `{}`)

	_, err := NewJSONDirectory(namesPath, brandPath)
	assert.Error(t, err)
}
