package rules

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MTS (Manchester Triage System) urgency categories, most urgent first.
const (
	MTSRot    = "Rot"
	MTSOrange = "Orange"
	MTSGelb   = "Gelb"
	MTSGruen  = "Grün"
	MTSBlau   = "Blau"
)

// MTSCategories lists the valid MTS categories in severity order.
var MTSCategories = []string{MTSRot, MTSOrange, MTSGelb, MTSGruen, MTSBlau}

var validMTS = map[string]bool{
	MTSRot: true, MTSOrange: true, MTSGelb: true, MTSGruen: true, MTSBlau: true,
}

// ValidMTSCategory reports whether s is a known MTS category spelling.
func ValidMTSCategory(s string) bool {
	return validMTS[s]
}

// RecommendationRule maps a (suspected diagnosis, MTS category) pair to the
// lab tests that should be ordered. At most one rule exists per pair. Rules
// are never updated in place; configuration replaces them by delete+create.
type RecommendationRule struct {
	ID               uuid.UUID `json:"id"`
	DiagnosisName    string    `json:"diagnosis_name"`
	MTSCategory      string    `json:"mts_category"`
	RecommendedTests []string  `json:"recommended_tests"`
	MandatoryTests   []string  `json:"mandatory_tests"`
	OptionalTests    []string  `json:"optional_tests"`
	Rationale        string    `json:"rationale"`
	CreatedAt        time.Time `json:"created_at"`
}

// Key returns the unique rule store key for a diagnosis/category pair.
// Diagnosis matching is case-insensitive, category matching is exact.
func Key(diagnosisName, mtsCategory string) string {
	return strings.ToLower(strings.TrimSpace(diagnosisName)) + "|" + mtsCategory
}
