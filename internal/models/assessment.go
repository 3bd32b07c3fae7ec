package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"slices"
	"time"

	utils "claim-service/shared/modules/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidWorkflowStep = errors.New("step is not part of this assessment workflow")

// ============================================================================
// DAMAGE ASSESSMENT
// ============================================================================

type DamageAssessment struct {
	ID                             uuid.UUID        `json:"id" db:"id"`
	OwnerID                        string           `json:"owner_id" db:"owner_id"`
	ItemID                         uuid.UUID        `json:"item_id" db:"item_id"`
	ItemName                       string           `json:"item_name" db:"item_name"`
	ItemValue                      *decimal.Decimal `json:"item_value,omitempty" db:"item_value"`
	DamageType                     DamageType       `json:"damage_type" db:"damage_type"`
	Severity                       DamageSeverity   `json:"severity" db:"severity"`
	IncidentDate                   *time.Time       `json:"incident_date,omitempty" db:"incident_date"`
	IncidentLocation               *string          `json:"incident_location,omitempty" db:"incident_location"`
	IncidentDescription            string           `json:"incident_description" db:"incident_description"`
	AssessmentNotes                string           `json:"assessment_notes" db:"assessment_notes"`
	RepairEstimate                 *decimal.Decimal `json:"repair_estimate,omitempty" db:"repair_estimate"`
	ReplacementCost                *decimal.Decimal `json:"replacement_cost,omitempty" db:"replacement_cost"`
	IsRepairable                   bool             `json:"is_repairable" db:"is_repairable"`
	EstimatedRepairTime            *string          `json:"estimated_repair_time,omitempty" db:"estimated_repair_time"`
	ProfessionalAssessmentRequired bool             `json:"professional_assessment_required" db:"professional_assessment_required"`
	ProfessionalContacted          bool             `json:"professional_contacted" db:"professional_contacted"`
	ProfessionalNotes              string           `json:"professional_notes" db:"professional_notes"`
	ClaimNumber                    *string          `json:"claim_number,omitempty" db:"claim_number"`
	AdjustorName                   *string          `json:"adjustor_name,omitempty" db:"adjustor_name"`
	AdjustorContact                *string          `json:"adjustor_contact,omitempty" db:"adjustor_contact"`
	InsuranceNotes                 string           `json:"insurance_notes" db:"insurance_notes"`
	CurrentStep                    AssessmentStep   `json:"current_step" db:"current_step"`
	CompletedSteps                 StepList         `json:"completed_steps" db:"completed_steps"`
	Photos                         PhotoList        `json:"photos" db:"photos"`
	ReportObject                   *string          `json:"report_object,omitempty" db:"report_object"`
	CreatedAt                      time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt                      time.Time        `json:"updated_at" db:"updated_at"`
}

// NewDamageAssessment starts an assessment at the first step of its damage type's workflow.
func NewDamageAssessment(ownerID string, itemID uuid.UUID, damageType DamageType, severity DamageSeverity, description string) *DamageAssessment {
	now := time.Now()
	current := StepInitialDocumentation
	if steps := damageType.AssessmentSteps(); len(steps) > 0 {
		current = steps[0]
	}
	return &DamageAssessment{
		ID:                  uuid.New(),
		OwnerID:             ownerID,
		ItemID:              itemID,
		DamageType:          damageType,
		Severity:            severity,
		IncidentDescription: description,
		IsRepairable:        true,
		CurrentStep:         current,
		CompletedSteps:      StepList{},
		Photos:              PhotoList{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// Progress is the completed fraction of the workflow, 0 when the workflow has no steps.
func (a *DamageAssessment) Progress() float64 {
	total := len(a.DamageType.AssessmentSteps())
	if total == 0 {
		return 0
	}
	return float64(len(a.CompletedSteps)) / float64(total)
}

func (a *DamageAssessment) IsComplete() bool {
	return len(a.CompletedSteps) >= len(a.DamageType.AssessmentSteps())
}

// CompleteStep records step as done and moves the cursor past the current step.
// Completing a step twice changes nothing.
func (a *DamageAssessment) CompleteStep(step AssessmentStep) error {
	steps := a.DamageType.AssessmentSteps()
	if !slices.Contains(steps, step) {
		return fmt.Errorf("%w: %s", ErrInvalidWorkflowStep, step)
	}
	if slices.Contains(a.CompletedSteps, step) {
		return nil
	}

	a.CompletedSteps = append(a.CompletedSteps, step)
	a.UpdatedAt = time.Now()

	if idx := slices.Index(steps, a.CurrentStep); idx >= 0 && idx+1 < len(steps) {
		a.CurrentStep = steps[idx+1]
	}
	return nil
}

func (a *DamageAssessment) HasPhotoDocumentation() bool {
	return len(a.Photos) > 0
}

func (a *DamageAssessment) HasRepairEstimate() bool {
	return a.RepairEstimate != nil
}

// PhotoCount counts attached photos of the given type.
func (a *DamageAssessment) PhotoCount(photoType DamagePhotoType) int {
	count := 0
	for _, p := range a.Photos {
		if p.PhotoType == photoType {
			count++
		}
	}
	return count
}

// Workflow is the read-only workflow view returned to clients.
func (a *DamageAssessment) Workflow() AssessmentWorkflow {
	return AssessmentWorkflow{
		Steps:          a.DamageType.AssessmentSteps(),
		CurrentStep:    a.CurrentStep,
		CompletedSteps: slices.Clone(a.CompletedSteps),
		Progress:       a.Progress(),
		IsComplete:     a.IsComplete(),
	}
}

type AssessmentWorkflow struct {
	Steps          []AssessmentStep `json:"steps"`
	CurrentStep    AssessmentStep   `json:"current_step"`
	CompletedSteps []AssessmentStep `json:"completed_steps"`
	Progress       float64          `json:"progress"`
	IsComplete     bool             `json:"is_complete"`
}

type DamagePhoto struct {
	ID          uuid.UUID       `json:"id"`
	PhotoType   DamagePhotoType `json:"photo_type"`
	Description string          `json:"description"`
	ObjectKey   string          `json:"object_key"`
	ContentType string          `json:"content_type"`
	SizeBytes   int64           `json:"size_bytes"`
	Location    *string         `json:"location,omitempty"`
	CaptureDate time.Time       `json:"capture_date"`
}

// StepList is stored as a JSONB array.
type StepList []AssessmentStep

func (s StepList) Value() (driver.Value, error) {
	return utils.MarshalJSONB(s)
}

func (s *StepList) Scan(value any) error {
	return utils.ScanJSONB(value, s)
}

// PhotoList is stored as a JSONB array.
type PhotoList []DamagePhoto

func (p PhotoList) Value() (driver.Value, error) {
	return utils.MarshalJSONB(p)
}

func (p *PhotoList) Scan(value any) error {
	return utils.ScanJSONB(value, p)
}

// ============================================================================
// ASSESSMENT TEMPLATES
// ============================================================================

type AssessmentTemplate struct {
	DamageType              DamageType         `json:"damage_type"`
	ChecklistItems          []ChecklistItem    `json:"checklist_items"`
	PhotoRequirements       []PhotoRequirement `json:"photo_requirements"`
	RecommendedMeasurements []string           `json:"recommended_measurements"`
}

type ChecklistItem struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	IsRequired  bool    `json:"is_required"`
	HelpText    *string `json:"help_text,omitempty"`
}

type PhotoRequirement struct {
	Description string          `json:"description"`
	PhotoType   DamagePhotoType `json:"photo_type"`
	IsRequired  bool            `json:"is_required"`
	Guidelines  *string         `json:"guidelines,omitempty"`
}
