package intake

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/labassist/labassist/internal/domain/cases"
	"github.com/labassist/labassist/internal/domain/rules"
	"github.com/labassist/labassist/internal/recommend"
)

// StepInput carries the payload for a wizard step. Only the fields belonging
// to the draft's current step are applied; the rest are ignored.
type StepInput struct {
	PatientNumber      string       `json:"patient_number"`
	Age                int          `json:"age"`
	Gender             string       `json:"gender"`
	MTSCategory        string       `json:"mts_category"`
	Symptoms           []string     `json:"symptoms"`
	Vitals             cases.Vitals `json:"vitals"`
	SuspectedDiagnosis string       `json:"suspected_diagnosis"`
}

// Service drives the wizard. All transitions go through the draft store, so
// a draft can be continued from any client holding its id.
type Service struct {
	drafts DraftStore
	rules  *rules.Service
	cases  *cases.Service
}

func NewService(drafts DraftStore, ruleSvc *rules.Service, caseSvc *cases.Service) *Service {
	return &Service{drafts: drafts, rules: ruleSvc, cases: caseSvc}
}

// StartDraft opens a new wizard session at the identification step.
func (s *Service) StartDraft(ctx context.Context) (*Draft, error) {
	d := &Draft{Step: StepIdentification}
	if err := s.drafts.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) GetDraft(ctx context.Context, id uuid.UUID) (*Draft, error) {
	return s.drafts.Get(ctx, id)
}

// Next applies the payload for the current step and advances the draft.
// The last step has no next; it is completed by Submit.
func (s *Service) Next(ctx context.Context, id uuid.UUID, in StepInput) (*Draft, error) {
	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	idx := stepIndex(d.Step)
	if idx == len(Steps)-1 {
		return nil, fmt.Errorf("test selection is the last step, use submit")
	}
	if err := applyStep(d, in); err != nil {
		return nil, err
	}
	d.Step = Steps[idx+1]
	if err := s.drafts.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Back moves one step towards identification without touching the
// accumulated fields.
func (s *Service) Back(ctx context.Context, id uuid.UUID) (*Draft, error) {
	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	idx := stepIndex(d.Step)
	if idx <= 0 {
		return nil, fmt.Errorf("already at the first step")
	}
	d.Step = Steps[idx-1]
	if err := s.drafts.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Analyze looks up the recommendation for the draft's diagnosis and urgency,
// stores the outcome and jumps to test selection. When the clinician has not
// picked tests yet, the recommended tests are preselected.
func (s *Service) Analyze(ctx context.Context, id uuid.UUID) (*Draft, error) {
	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(d.SuspectedDiagnosis) == "" {
		return nil, fmt.Errorf("suspected_diagnosis is required before analysis")
	}
	if !rules.ValidMTSCategory(d.MTSCategory) {
		return nil, fmt.Errorf("mts_category must be set before analysis")
	}
	ruleSet, err := s.rules.AllRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	outcome := recommend.Match(d.SuspectedDiagnosis, d.MTSCategory, ruleSet)
	d.Outcome = &outcome
	if len(d.SelectedTests) == 0 {
		d.SelectedTests = append([]string{}, outcome.RecommendedTests...)
	}
	d.Step = StepTestSelection
	if err := s.drafts.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Submit turns the draft into a case and discards it. A non-nil selection
// replaces the draft's selected tests first; an empty final selection is
// rejected.
func (s *Service) Submit(ctx context.Context, id uuid.UUID, selected []string) (*cases.Case, error) {
	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if selected != nil {
		d.SelectedTests = selected
	}
	if len(d.SelectedTests) == 0 {
		return nil, fmt.Errorf("at least one test must be selected")
	}

	cs := &cases.Case{
		PatientNumber:      d.PatientNumber,
		Age:                d.Age,
		Gender:             d.Gender,
		MTSCategory:        d.MTSCategory,
		Symptoms:           d.Symptoms,
		Vitals:             d.Vitals,
		SuspectedDiagnosis: d.SuspectedDiagnosis,
		OrderedTests:       d.SelectedTests,
	}
	if err := s.cases.CreateCase(ctx, cs); err != nil {
		return nil, err
	}
	if err := s.drafts.Delete(ctx, id); err != nil {
		return nil, err
	}
	return cs, nil
}

// applyStep validates and applies the payload for the draft's current step.
func applyStep(d *Draft, in StepInput) error {
	switch d.Step {
	case StepIdentification:
		in.PatientNumber = strings.TrimSpace(in.PatientNumber)
		if in.PatientNumber == "" {
			return fmt.Errorf("patient_number is required")
		}
		if in.Age < 0 || in.Age > 130 {
			return fmt.Errorf("age must be between 0 and 130")
		}
		if !validGender(in.Gender) {
			return fmt.Errorf("invalid gender: %s", in.Gender)
		}
		d.PatientNumber = in.PatientNumber
		d.Age = in.Age
		d.Gender = in.Gender
	case StepUrgency:
		if !rules.ValidMTSCategory(in.MTSCategory) {
			return fmt.Errorf("invalid mts_category: %s", in.MTSCategory)
		}
		d.MTSCategory = in.MTSCategory
	case StepSymptoms:
		d.Symptoms = in.Symptoms
	case StepVitals:
		d.Vitals = in.Vitals
	case StepDiagnosis:
		in.SuspectedDiagnosis = strings.TrimSpace(in.SuspectedDiagnosis)
		if in.SuspectedDiagnosis == "" {
			return fmt.Errorf("suspected_diagnosis is required")
		}
		d.SuspectedDiagnosis = in.SuspectedDiagnosis
	default:
		return fmt.Errorf("unknown step: %s", d.Step)
	}
	return nil
}

func validGender(g string) bool {
	for _, known := range cases.Genders {
		if g == known {
			return true
		}
	}
	return false
}
