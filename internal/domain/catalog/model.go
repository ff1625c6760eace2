package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Lab test urgency levels.
const (
	UrgencyStandard = "Standard"
	UrgencyDringend = "Dringend"
	UrgencyNotfall  = "Notfall"
)

// UrgencyLevels lists the valid lab test urgency levels.
var UrgencyLevels = []string{UrgencyStandard, UrgencyDringend, UrgencyNotfall}

// KnownCategories lists the lab test categories offered by configuration UIs.
// The category field itself is not restricted to this list.
var KnownCategories = []string{
	"Hämatologie",
	"Klinische Chemie",
	"Gerinnung",
	"Immunologie",
	"Mikrobiologie",
	"Kardiologie",
	"Infektiologie",
	"Biochemie",
	"Sonstige",
}

// LabTest is a catalogue entry for an orderable laboratory test. Entries are
// immutable after creation; the only lifecycle operation is delete, which
// does not cascade into rules or cases referencing the code.
type LabTest struct {
	ID              uuid.UUID `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	DurationMinutes int       `json:"duration_minutes"`
	UrgencyLevel    string    `json:"urgency_level"`
	Unit            string    `json:"unit,omitempty"`
	NormalRange     string    `json:"normal_range,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Diagnosis is a reference-data entry. Case entry accepts free-text
// diagnoses, so the matcher never requires the entered name to exist here.
type Diagnosis struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}
