// Package seed provides a deterministic demo dataset for development and
// demos: a small laboratory catalogue, reference diagnoses and a handful of
// recommendation rules. The dataset is fixed, so restarts always produce the
// same state.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/labassist/labassist/internal/domain/catalog"
	"github.com/labassist/labassist/internal/domain/rules"
)

// Dataset is the demo content applied by Apply. Exposed so the seed CLI
// command can print it for inspection.
type Dataset struct {
	LabTests  []*catalog.LabTest          `json:"lab_tests"`
	Diagnoses []*catalog.Diagnosis        `json:"diagnoses"`
	Rules     []*rules.RecommendationRule `json:"rules"`
}

// DemoDataset returns the demo content. Callers get fresh copies on every
// call, safe to hand to the stores.
func DemoDataset() Dataset {
	return Dataset{
		LabTests: []*catalog.LabTest{
			{Code: "TROP", Name: "Troponin T", Category: "Kardiologie", DurationMinutes: 30, UrgencyLevel: catalog.UrgencyNotfall, Unit: "ng/l", NormalRange: "< 14"},
			{Code: "CK", Name: "Kreatinkinase", Category: "Kardiologie", DurationMinutes: 20, UrgencyLevel: catalog.UrgencyDringend, Unit: "U/l", NormalRange: "< 170"},
			{Code: "BGA", Name: "Blutgasanalyse", Category: "Klinische Chemie", DurationMinutes: 15, UrgencyLevel: catalog.UrgencyNotfall, Unit: "", NormalRange: ""},
			{Code: "CRP", Name: "C-reaktives Protein", Category: "Infektiologie", DurationMinutes: 25, UrgencyLevel: catalog.UrgencyStandard, Unit: "mg/l", NormalRange: "< 5"},
			{Code: "BB", Name: "Kleines Blutbild", Category: "Hämatologie", DurationMinutes: 10, UrgencyLevel: catalog.UrgencyStandard, Unit: "", NormalRange: ""},
			{Code: "DDIM", Name: "D-Dimere", Category: "Gerinnung", DurationMinutes: 35, UrgencyLevel: catalog.UrgencyDringend, Unit: "mg/l", NormalRange: "< 0.5"},
			{Code: "LAC", Name: "Laktat", Category: "Klinische Chemie", DurationMinutes: 15, UrgencyLevel: catalog.UrgencyNotfall, Unit: "mmol/l", NormalRange: "0.5-2.2"},
			{Code: "KREA", Name: "Kreatinin", Category: "Klinische Chemie", DurationMinutes: 20, UrgencyLevel: catalog.UrgencyStandard, Unit: "mg/dl", NormalRange: "0.7-1.2"},
			{Code: "GLUC", Name: "Glukose", Category: "Klinische Chemie", DurationMinutes: 10, UrgencyLevel: catalog.UrgencyStandard, Unit: "mg/dl", NormalRange: "70-100"},
			{Code: "LIP", Name: "Lipase", Category: "Klinische Chemie", DurationMinutes: 25, UrgencyLevel: catalog.UrgencyStandard, Unit: "U/l", NormalRange: "13-60"},
		},
		Diagnoses: []*catalog.Diagnosis{
			{Name: "Akutes Koronarsyndrom", Category: "Kardiologie"},
			{Name: "Lungenembolie", Category: "Pneumologie"},
			{Name: "Sepsis", Category: "Infektiologie"},
			{Name: "Akute Pankreatitis", Category: "Gastroenterologie"},
			{Name: "Hypoglykämie", Category: "Endokrinologie"},
		},
		Rules: []*rules.RecommendationRule{
			{
				DiagnosisName:    "Akutes Koronarsyndrom",
				MTSCategory:      rules.MTSRot,
				RecommendedTests: []string{"TROP", "CK", "BGA"},
				MandatoryTests:   []string{"TROP", "CK"},
				OptionalTests:    []string{"CRP"},
				Rationale:        "Kardiale Marker bei Verdacht auf ACS, BGA zur Beurteilung der Oxygenierung",
			},
			{
				DiagnosisName:    "Akutes Koronarsyndrom",
				MTSCategory:      rules.MTSOrange,
				RecommendedTests: []string{"TROP", "CK"},
				MandatoryTests:   []string{"TROP"},
				OptionalTests:    []string{"BB"},
				Rationale:        "Troponin als Leitparameter bei stabiler Präsentation",
			},
			{
				DiagnosisName:    "Lungenembolie",
				MTSCategory:      rules.MTSOrange,
				RecommendedTests: []string{"DDIM", "BGA", "TROP"},
				MandatoryTests:   []string{"DDIM"},
				OptionalTests:    []string{"BB"},
				Rationale:        "D-Dimere zum Ausschluss, Troponin zur Risikostratifizierung",
			},
			{
				DiagnosisName:    "Sepsis",
				MTSCategory:      rules.MTSRot,
				RecommendedTests: []string{"LAC", "CRP", "BB", "BGA"},
				MandatoryTests:   []string{"LAC", "BB"},
				OptionalTests:    []string{"KREA"},
				Rationale:        "Laktat und Blutbild gemäß Sepsis-Bundle, CRP als Verlaufsparameter",
			},
			{
				DiagnosisName:    "Akute Pankreatitis",
				MTSCategory:      rules.MTSGelb,
				RecommendedTests: []string{"LIP", "BB", "CRP"},
				MandatoryTests:   []string{"LIP"},
				Rationale:        "Lipase ist der spezifische Marker, CRP zur Schweregradabschätzung",
			},
			{
				DiagnosisName:    "Hypoglykämie",
				MTSCategory:      rules.MTSOrange,
				RecommendedTests: []string{"GLUC"},
				MandatoryTests:   []string{"GLUC"},
				OptionalTests:    []string{"KREA", "BB"},
				Rationale:        "Glukose bestätigt die Verdachtsdiagnose vor Substitution",
			},
		},
	}
}

// Apply writes the demo dataset through the services, so the usual
// validation runs. Duplicates are treated as already-seeded and skipped.
func Apply(ctx context.Context, catalogSvc *catalog.Service, ruleSvc *rules.Service, logger zerolog.Logger) error {
	ds := DemoDataset()

	for _, lt := range ds.LabTests {
		if err := catalogSvc.CreateLabTest(ctx, lt); err != nil {
			if isDuplicate(err) {
				continue
			}
			return fmt.Errorf("seed lab test %s: %w", lt.Code, err)
		}
	}
	for _, d := range ds.Diagnoses {
		if err := catalogSvc.CreateDiagnosis(ctx, d); err != nil {
			if isDuplicate(err) {
				continue
			}
			return fmt.Errorf("seed diagnosis %s: %w", d.Name, err)
		}
	}
	for _, r := range ds.Rules {
		if err := ruleSvc.CreateRule(ctx, r); err != nil {
			if isDuplicate(err) {
				continue
			}
			return fmt.Errorf("seed rule %s/%s: %w", r.DiagnosisName, r.MTSCategory, err)
		}
	}

	logger.Info().
		Int("lab_tests", len(ds.LabTests)).
		Int("diagnoses", len(ds.Diagnoses)).
		Int("rules", len(ds.Rules)).
		Msg("demo data seeded")
	return nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, catalog.ErrDuplicate) || errors.Is(err, rules.ErrDuplicateKey)
}
