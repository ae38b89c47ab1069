package services

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rxradar/backend/internal/domain/entities"
)

var titleCaser = cases.Title(language.English)

// BuildInteractionContext renders the knowledge-base record for one ingredient
// pair into the plain-language context block the alert composer is prompted
// with. A nil record is a lookup miss, not an error: it yields a "no known
// interaction" line that still goes through the composer so phrasing stays
// consistent. Every optional section is gated on its field carrying real data
// rather than the not-available sentinel.
func BuildInteractionContext(record *entities.InteractionRecord, drug1, drug2 string) string {
	if record == nil {
		return fmt.Sprintf("No known interaction found between %s and %s in the system.",
			titleCaser.String(drug1), titleCaser.String(drug2))
	}

	minDrug, maxDrug := record.MinDrugName, record.MaxDrugName
	lines := []string{fmt.Sprintf("Interaction Alert: %s + %s", minDrug, maxDrug)}

	if strings.EqualFold(record.Severity, entities.SeverityUnknown) {
		lines = append(lines, "- Severity: Not formally determined")
	} else {
		lines = append(lines, fmt.Sprintf("- Severity Level: %s", titleCaser.String(record.Severity)))
	}

	if record.Description != entities.FieldNotAvailable {
		lines = append(lines, fmt.Sprintf("\nWhat this means: %s", record.Description))
	}
	if record.ATCGroupContext != entities.FieldNotAvailable {
		lines = append(lines, fmt.Sprintf("\nThese drugs belong to the same treatment group: %s", record.ATCGroupContext))
	}

	lines = append(lines,
		fmt.Sprintf("\n%s is a type of %s", minDrug, record.MinDrugClass),
		fmt.Sprintf("%s is a type of %s", maxDrug, record.MaxDrugClass),
	)

	if record.MinMechanismOfAction != entities.FieldNotAvailable {
		lines = append(lines, fmt.Sprintf("\n%s works by: %s", minDrug, record.MinMechanismOfAction))
	}
	if record.MaxMechanismOfAction != entities.FieldNotAvailable {
		lines = append(lines, fmt.Sprintf("%s works by: %s", maxDrug, record.MaxMechanismOfAction))
	}

	if record.MinRouteOfElimination != entities.FieldNotAvailable {
		lines = append(lines, fmt.Sprintf("\n%s leaves the body through: %s", minDrug, record.MinRouteOfElimination))
	}
	if record.MaxRouteOfElimination != entities.FieldNotAvailable {
		lines = append(lines, fmt.Sprintf("%s leaves the body through: %s", maxDrug, record.MaxRouteOfElimination))
	}

	if record.MinToxicity != entities.FieldNotAvailable {
		lines = append(lines, fmt.Sprintf("\nToxicity concern for %s: %s", minDrug, record.MinToxicity))
	}
	if record.MaxToxicity != entities.FieldNotAvailable {
		lines = append(lines, fmt.Sprintf("Toxicity concern for %s: %s", maxDrug, record.MaxToxicity))
	}

	if record.EffectsSummary != entities.FieldNotAvailable {
		lines = append(lines, fmt.Sprintf("\nReported Side Effects:\n%s", record.EffectsSummary))
	}

	lines = append(lines, "\nPlease consult your doctor or pharmacist before taking these medications together.")

	return strings.Join(lines, "\n")
}
