package services

import (
	"github.com/rxradar/backend/internal/domain/entities"
	apperrors "github.com/rxradar/backend/pkg/errors"
)

// SessionPhase is where a whole analysis session stands after a resolution
// pass. Disambiguation is always collected before spell-check: if any entry
// needs disambiguation the batch enters that phase first, even when other
// entries separately need correction.
type SessionPhase string

const (
	// PhaseEditing: the user is still entering or fixing medications
	PhaseEditing SessionPhase = "editing"

	// PhaseDisambiguating: one or more brand names need a formulation choice
	PhaseDisambiguating SessionPhase = "disambiguating"

	// PhaseSpellChecking: one or more names need a spelling confirmation
	PhaseSpellChecking SessionPhase = "spell_checking"

	// PhaseReady: every complete entry is resolved; analysis may proceed
	PhaseReady SessionPhase = "ready"
)

// AnalysisSession owns one user's medication entries and drives them through
// resolution. Each session holds its own entry and candidate lists; there is
// no shared state between sessions, and a session is mutated by a single
// actor at a time.
type AnalysisSession struct {
	resolver        *NameResolver
	entries         []*entities.MedicationEntry
	disambiguations []*entities.DisambiguationCandidate
	corrections     []*entities.CorrectionCandidate
	phase           SessionPhase
}

// NewAnalysisSession creates a session seeded with the given entries, or a
// single blank entry when none are given.
func NewAnalysisSession(resolver *NameResolver, entries []*entities.MedicationEntry) *AnalysisSession {
	if len(entries) == 0 {
		entries = []*entities.MedicationEntry{{Status: entities.StatusPending, ActiveIngredients: []string{}}}
	}
	return &AnalysisSession{
		resolver: resolver,
		entries:  entries,
		phase:    PhaseEditing,
	}
}

// Entries returns the session's medication entries.
func (s *AnalysisSession) Entries() []*entities.MedicationEntry {
	return s.entries
}

// Phase returns the session phase after the last pass.
func (s *AnalysisSession) Phase() SessionPhase {
	return s.phase
}

// Disambiguations returns the pending disambiguation candidates.
func (s *AnalysisSession) Disambiguations() []*entities.DisambiguationCandidate {
	return s.disambiguations
}

// Corrections returns the pending correction candidates.
func (s *AnalysisSession) Corrections() []*entities.CorrectionCandidate {
	return s.corrections
}

// AddEntry appends a blank entry and resets any in-flight prompts.
func (s *AnalysisSession) AddEntry() {
	s.entries = append(s.entries, &entities.MedicationEntry{
		Status:            entities.StatusPending,
		ActiveIngredients: []string{},
	})
	s.resetPrompts()
}

// RemoveEntry deletes an entry. The session always keeps at least one row.
func (s *AnalysisSession) RemoveEntry(index int) error {
	if index < 0 || index >= len(s.entries) {
		return apperrors.NewValidationError("medication index out of range")
	}
	if len(s.entries) == 1 {
		return apperrors.NewValidationError("at least one medication row is required")
	}
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	s.resetPrompts()
	return nil
}

// EditEntry updates an entry's fields. Editing resets the entry to pending
// and clears its ingredients so resolution is redone on the next pass.
func (s *AnalysisSession) EditEntry(index int, name, dosage, frequency string) error {
	if index < 0 || index >= len(s.entries) {
		return apperrors.NewValidationError("medication index out of range")
	}
	entry := s.entries[index]
	entry.Name = name
	entry.Dosage = dosage
	entry.Frequency = frequency
	entry.Reset()
	s.resetPrompts()
	return nil
}

// RunPass runs every unresolved entry through the resolver and decides the
// next phase. Resolved entries are skipped: resolution is never redone once
// settled. Empty names are left untouched.
func (s *AnalysisSession) RunPass() SessionPhase {
	s.disambiguations = nil
	s.corrections = nil

	for i, entry := range s.entries {
		if entry.Status == entities.StatusResolved {
			continue
		}

		outcome := s.resolver.Resolve(entry.Name)
		switch {
		case outcome.Kind == OutcomeSkipped:
			// Leave the entry untouched.
		case outcome.Resolved():
			entry.Name = outcome.DisplayName
			entry.ActiveIngredients = outcome.ActiveIngredients
			entry.Status = entities.StatusResolved
		case outcome.Kind == OutcomeNeedsDisambiguation:
			s.disambiguations = append(s.disambiguations, &entities.DisambiguationCandidate{
				EntryIndex:   i,
				OriginalName: entry.Name,
				Options:      outcome.Options,
				Selected:     entry.Name,
			})
			entry.Status = entities.StatusNeedsDisambiguation
		case outcome.Kind == OutcomeNeedsCorrection:
			s.corrections = append(s.corrections, &entities.CorrectionCandidate{
				EntryIndex:   i,
				OriginalName: entry.Name,
				Suggestions:  outcome.Suggestions,
				Selected:     entry.Name,
			})
			entry.Status = entities.StatusNeedsSpellCheck
		}
	}

	switch {
	case len(s.disambiguations) > 0:
		s.phase = PhaseDisambiguating
	case len(s.corrections) > 0:
		s.phase = PhaseSpellChecking
	default:
		s.phase = s.settledPhase()
	}
	return s.phase
}

func (s *AnalysisSession) settledPhase() SessionPhase {
	complete, resolved := 0, 0
	for _, entry := range s.entries {
		if !entry.Complete() {
			continue
		}
		complete++
		if entry.Status == entities.StatusResolved {
			resolved++
		}
	}
	if complete > 0 && complete == resolved {
		return PhaseReady
	}
	return PhaseEditing
}

// SelectDisambiguation records the user's choice for one pending candidate.
func (s *AnalysisSession) SelectDisambiguation(candidateIndex int, choice string) error {
	if candidateIndex < 0 || candidateIndex >= len(s.disambiguations) {
		return apperrors.NewValidationError("disambiguation index out of range")
	}
	s.disambiguations[candidateIndex].Selected = choice
	return nil
}

// ConfirmDisambiguations applies the recorded choices. A selection equal to
// the original placeholder reverts the entry to pending; anything else must
// name one of the offered formulations. The pass is re-run afterwards.
func (s *AnalysisSession) ConfirmDisambiguations() SessionPhase {
	for _, candidate := range s.disambiguations {
		entry := s.entries[candidate.EntryIndex]
		if candidate.Selected == candidate.OriginalName {
			entry.Reset()
			continue
		}

		applied := false
		for _, option := range candidate.Options {
			if option.DisplayName == candidate.Selected {
				entry.Name = option.DisplayName
				entry.ActiveIngredients = option.ActiveIngredients
				entry.Status = entities.StatusResolved
				applied = true
				break
			}
		}
		if !applied {
			entry.Reset()
		}
	}

	s.disambiguations = nil
	return s.RunPass()
}

// SelectCorrection records the user's choice for one pending candidate.
func (s *AnalysisSession) SelectCorrection(candidateIndex int, choice string) error {
	if candidateIndex < 0 || candidateIndex >= len(s.corrections) {
		return apperrors.NewValidationError("correction index out of range")
	}
	s.corrections[candidateIndex].Selected = choice
	return nil
}

// ConfirmCorrections applies the recorded spelling choices and re-resolves
// each corrected name. A corrected name may itself be a multi-option brand,
// which queues a new disambiguation; a declined correction records the
// unknown-ingredient sentinel and returns the entry to pending.
func (s *AnalysisSession) ConfirmCorrections() SessionPhase {
	for _, candidate := range s.corrections {
		entry := s.entries[candidate.EntryIndex]

		if candidate.Selected == entities.NoSuggestion {
			entry.Name = candidate.OriginalName
			entry.Reset()
			continue
		}

		entry.Name = candidate.Selected
		entry.Reset()

		outcome := s.resolver.Resolve(candidate.Selected)
		switch {
		case outcome.Resolved():
			entry.Name = outcome.DisplayName
			entry.ActiveIngredients = outcome.ActiveIngredients
			entry.Status = entities.StatusResolved
		case outcome.Kind == OutcomeNeedsDisambiguation:
			s.disambiguations = append(s.disambiguations, &entities.DisambiguationCandidate{
				EntryIndex:   candidate.EntryIndex,
				OriginalName: candidate.Selected,
				Options:      outcome.Options,
				Selected:     candidate.Selected,
			})
			entry.Status = entities.StatusNeedsDisambiguation
		default:
			// Correction declined or still unrecognized: mark unknown so the
			// pair classifier can exclude it.
			entry.ActiveIngredients = []string{entities.UnknownIngredient}
			entry.Status = entities.StatusPending
		}
	}

	s.corrections = nil
	if len(s.disambiguations) > 0 {
		s.phase = PhaseDisambiguating
		return s.phase
	}
	return s.RunPass()
}

func (s *AnalysisSession) resetPrompts() {
	s.disambiguations = nil
	s.corrections = nil
	s.phase = PhaseEditing
}
