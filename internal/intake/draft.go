// Package intake implements the guided triage wizard. A draft accumulates
// case fields step by step; the flow is strictly linear (next/back only) and
// ends with analyze (recommendation lookup) and submit (case creation).
package intake

import (
	"time"

	"github.com/google/uuid"

	"github.com/labassist/labassist/internal/domain/cases"
	"github.com/labassist/labassist/internal/recommend"
)

// Step identifies a wizard step. Steps form a fixed linear sequence.
type Step string

const (
	StepIdentification Step = "identification"
	StepUrgency        Step = "urgency"
	StepSymptoms       Step = "symptoms"
	StepVitals         Step = "vitals"
	StepDiagnosis      Step = "diagnosis"
	StepTestSelection  Step = "test_selection"
)

// Steps is the wizard sequence in order.
var Steps = []Step{
	StepIdentification,
	StepUrgency,
	StepSymptoms,
	StepVitals,
	StepDiagnosis,
	StepTestSelection,
}

func stepIndex(s Step) int {
	for i, step := range Steps {
		if step == s {
			return i
		}
	}
	return -1
}

// Draft is a wizard session in progress. Outcome is only set once analyze
// has run; Selected starts as the recommended tests and is then edited by
// the clinician.
type Draft struct {
	ID   uuid.UUID `json:"id"`
	Step Step      `json:"step"`

	PatientNumber      string       `json:"patient_number"`
	Age                int          `json:"age"`
	Gender             string       `json:"gender"`
	MTSCategory        string       `json:"mts_category"`
	Symptoms           []string     `json:"symptoms"`
	Vitals             cases.Vitals `json:"vitals"`
	SuspectedDiagnosis string       `json:"suspected_diagnosis"`
	SelectedTests      []string     `json:"selected_tests"`

	Outcome *recommend.Outcome `json:"outcome,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
