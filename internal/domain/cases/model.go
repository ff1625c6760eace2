package cases

import (
	"time"

	"github.com/google/uuid"
)

// Gender spellings accepted on intake.
const (
	GenderMale    = "Männlich"
	GenderFemale  = "Weiblich"
	GenderDiverse = "Divers"
)

// Genders lists the accepted gender spellings.
var Genders = []string{GenderMale, GenderFemale, GenderDiverse}

// Vitals holds the vital signs captured at triage. All fields are free-text
// as entered by the nurse; blank means not measured.
type Vitals struct {
	BloodPressure    string `json:"blood_pressure"`
	Temperature      string `json:"temperature"`
	HeartRate        string `json:"heart_rate"`
	RespiratoryRate  string `json:"respiratory_rate"`
	OxygenSaturation string `json:"oxygen_saturation"`
	BloodSugar       string `json:"blood_sugar"`
}

// Case is a completed triage encounter. The recommended/mandatory/optional
// lists are a snapshot of the rule outcome at creation time, so later rule
// edits never change a closed case. Missing, unnecessary and the duration
// estimate are derived on create and on every update.
type Case struct {
	ID                 uuid.UUID `json:"id"`
	CaseNumber         string    `json:"case_number"`
	PatientNumber      string    `json:"patient_number"`
	Age                int       `json:"age"`
	Gender             string    `json:"gender"`
	MTSCategory        string    `json:"mts_category"`
	Symptoms           []string  `json:"symptoms"`
	Vitals             Vitals    `json:"vitals"`
	SuspectedDiagnosis string    `json:"suspected_diagnosis"`

	OrderedTests     []string `json:"ordered_tests"`
	RecommendedTests []string `json:"recommended_tests"`
	MandatoryTests   []string `json:"mandatory_tests"`
	OptionalTests    []string `json:"optional_tests"`
	MissingTests     []string `json:"missing_tests"`
	UnnecessaryTests []string `json:"unnecessary_tests"`

	EstimatedTotalDuration int    `json:"estimated_total_duration"`
	RuleMatched            bool   `json:"rule_matched"`
	Rationale              string `json:"rationale"`

	CreatedAt time.Time `json:"created_at"`
}
