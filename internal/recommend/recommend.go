// Package recommend implements the recommendation matching and compliance
// checking at the heart of the triage workflow. Both entry points are pure
// functions over snapshots passed in by the caller: they never touch a store,
// so the intake UI can re-evaluate on every selection change.
package recommend

import (
	"strings"

	"github.com/labassist/labassist/internal/domain/catalog"
	"github.com/labassist/labassist/internal/domain/rules"
)

// NoMatchRationale is the rationale carried by the fallback outcome when no
// rule covers a diagnosis/category pair.
const NoMatchRationale = "Keine spezifische Empfehlung gefunden. Bitte manuelle Auswahl."

// Outcome is the result of matching a case against the rule table. It is
// either a stored rule (Matched true) or a synthesized empty fallback, so
// callers render "no recommendation" without exceptional control flow.
type Outcome struct {
	DiagnosisName    string   `json:"diagnosis_name"`
	MTSCategory      string   `json:"mts_category"`
	RecommendedTests []string `json:"recommended_tests"`
	MandatoryTests   []string `json:"mandatory_tests"`
	OptionalTests    []string `json:"optional_tests"`
	Rationale        string   `json:"rationale"`
	Matched          bool     `json:"matched"`
}

// Compliance is the result of checking a clinician's test selection against
// an outcome.
type Compliance struct {
	MissingTests           []string `json:"missing_tests"`
	UnnecessaryTests       []string `json:"unnecessary_tests"`
	EstimatedTotalDuration int      `json:"estimated_total_duration"`
}

// Match finds the rule for a diagnosis/MTS category pair. Diagnosis
// comparison is case-insensitive, category comparison is exact. The rule
// store guarantees at most one rule per pair; if the snapshot nevertheless
// held duplicates, the first in store order wins. A blank diagnosis matches
// nothing and falls through to the fallback.
func Match(diagnosisName, mtsCategory string, ruleSet []*rules.RecommendationRule) Outcome {
	want := strings.ToLower(strings.TrimSpace(diagnosisName))
	for _, r := range ruleSet {
		if strings.ToLower(strings.TrimSpace(r.DiagnosisName)) == want && r.MTSCategory == mtsCategory {
			return Outcome{
				DiagnosisName:    r.DiagnosisName,
				MTSCategory:      r.MTSCategory,
				RecommendedTests: append([]string{}, r.RecommendedTests...),
				MandatoryTests:   append([]string{}, r.MandatoryTests...),
				OptionalTests:    append([]string{}, r.OptionalTests...),
				Rationale:        r.Rationale,
				Matched:          true,
			}
		}
	}
	return Outcome{
		DiagnosisName:    diagnosisName,
		MTSCategory:      mtsCategory,
		RecommendedTests: []string{},
		MandatoryTests:   []string{},
		OptionalTests:    []string{},
		Rationale:        NoMatchRationale,
		Matched:          false,
	}
}

// Evaluate computes the compliance of a test selection against an outcome.
//
// Missing tests are mandatory tests not selected, in the rule's mandatory
// order. Unnecessary tests are selections outside recommended ∪ optional, in
// selection order. The estimated total duration is the duration of the single
// slowest selected test found in the catalogue — tests run in parallel in the
// lab, so the wait is bounded by the slowest, not the sum. Selected codes
// without a catalogue entry still count in the set arithmetic but contribute
// no duration.
func Evaluate(outcome Outcome, selected []string, catalogTests []*catalog.LabTest) Compliance {
	selectedSet := make(map[string]bool, len(selected))
	for _, code := range selected {
		selectedSet[code] = true
	}

	allowed := make(map[string]bool, len(outcome.RecommendedTests)+len(outcome.OptionalTests))
	for _, code := range outcome.RecommendedTests {
		allowed[code] = true
	}
	for _, code := range outcome.OptionalTests {
		allowed[code] = true
	}

	missing := []string{}
	for _, code := range outcome.MandatoryTests {
		if !selectedSet[code] {
			missing = append(missing, code)
		}
	}

	unnecessary := []string{}
	flagged := make(map[string]bool)
	for _, code := range selected {
		if !allowed[code] && !flagged[code] {
			flagged[code] = true
			unnecessary = append(unnecessary, code)
		}
	}

	maxDuration := 0
	for _, t := range catalogTests {
		if selectedSet[t.Code] && t.DurationMinutes > maxDuration {
			maxDuration = t.DurationMinutes
		}
	}

	return Compliance{
		MissingTests:           missing,
		UnnecessaryTests:       unnecessary,
		EstimatedTotalDuration: maxDuration,
	}
}
