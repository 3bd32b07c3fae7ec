package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"claim-service/internal/models"
	utils "claim-service/shared/modules/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const assessmentColumns = `
		id, owner_id, item_id, item_name, item_value, damage_type, severity,
		incident_date, incident_location, incident_description, assessment_notes,
		repair_estimate, replacement_cost, is_repairable, estimated_repair_time,
		professional_assessment_required, professional_contacted, professional_notes,
		claim_number, adjustor_name, adjustor_contact, insurance_notes,
		current_step, completed_steps, photos, report_object, created_at, updated_at`

type DamageAssessmentRepository struct {
	db *sqlx.DB
}

func NewDamageAssessmentRepository(db *sqlx.DB) *DamageAssessmentRepository {
	return &DamageAssessmentRepository{db: db}
}

func (r *DamageAssessmentRepository) Create(ctx context.Context, a *models.DamageAssessment) error {
	query := `
		INSERT INTO damage_assessment (` + assessmentColumns + `
		) VALUES (
			:id, :owner_id, :item_id, :item_name, :item_value, :damage_type, :severity,
			:incident_date, :incident_location, :incident_description, :assessment_notes,
			:repair_estimate, :replacement_cost, :is_repairable, :estimated_repair_time,
			:professional_assessment_required, :professional_contacted, :professional_notes,
			:claim_number, :adjustor_name, :adjustor_contact, :insurance_notes,
			:current_step, :completed_steps, :photos, :report_object, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, a); err != nil {
		slog.Error("Failed to create damage assessment", "assessment_id", a.ID, "error", err)
		return fmt.Errorf("failed to create damage assessment: %w", err)
	}
	return nil
}

// GetByID retrieves an assessment by its ID
func (r *DamageAssessmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.DamageAssessment, error) {
	var a models.DamageAssessment
	query := `SELECT ` + assessmentColumns + `
		FROM damage_assessment
		WHERE id = $1`

	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		return nil, fmt.Errorf("failed to get damage assessment by id: %w", err)
	}
	return &a, nil
}

func (r *DamageAssessmentRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.DamageAssessment, error) {
	var list []models.DamageAssessment
	query := `SELECT ` + assessmentColumns + `
		FROM damage_assessment
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &list, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list damage assessments by owner: %w", err)
	}
	return list, nil
}

func (r *DamageAssessmentRepository) ListByItem(ctx context.Context, ownerID string, itemID uuid.UUID) ([]models.DamageAssessment, error) {
	var list []models.DamageAssessment
	query := `SELECT ` + assessmentColumns + `
		FROM damage_assessment
		WHERE owner_id = $1 AND item_id = $2
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &list, query, ownerID, itemID); err != nil {
		return nil, fmt.Errorf("failed to list damage assessments by item: %w", err)
	}
	return list, nil
}

// UpdateLocked loads the assessment with a row lock, applies mutate and writes
// the result back in the same transaction. Concurrent updates of one assessment
// are serialized. Nothing is written when mutate returns an error.
func (r *DamageAssessmentRepository) UpdateLocked(ctx context.Context, id uuid.UUID, mutate func(a *models.DamageAssessment) error) (*models.DamageAssessment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var a models.DamageAssessment
	query := `SELECT ` + assessmentColumns + `
		FROM damage_assessment
		WHERE id = $1
		FOR UPDATE`
	if err := tx.GetContext(ctx, &a, query, id); err != nil {
		return nil, fmt.Errorf("failed to lock damage assessment %s: %w", id, err)
	}

	if err := mutate(&a); err != nil {
		return nil, err
	}
	if err := r.update(ctx, tx, &a); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit damage assessment %s: %w", id, err)
	}
	return &a, nil
}

// update overwrites every mutable column. Fails with utils.ErrNoRowsAffected
// when the assessment does not exist.
func (r *DamageAssessmentRepository) update(ctx context.Context, db sqlx.ExtContext, a *models.DamageAssessment) error {
	query := `
		UPDATE damage_assessment SET
			item_name = $2, item_value = $3, severity = $4,
			incident_date = $5, incident_location = $6, incident_description = $7,
			assessment_notes = $8, repair_estimate = $9, replacement_cost = $10,
			is_repairable = $11, estimated_repair_time = $12,
			professional_assessment_required = $13, professional_contacted = $14,
			professional_notes = $15, claim_number = $16, adjustor_name = $17,
			adjustor_contact = $18, insurance_notes = $19, current_step = $20,
			completed_steps = $21, photos = $22, report_object = $23, updated_at = $24
		WHERE id = $1`

	err := utils.ExecWithCheck(ctx, db, query, utils.ExecUpdate,
		a.ID, a.ItemName, a.ItemValue, a.Severity,
		a.IncidentDate, a.IncidentLocation, a.IncidentDescription,
		a.AssessmentNotes, a.RepairEstimate, a.ReplacementCost,
		a.IsRepairable, a.EstimatedRepairTime,
		a.ProfessionalAssessmentRequired, a.ProfessionalContacted,
		a.ProfessionalNotes, a.ClaimNumber, a.AdjustorName,
		a.AdjustorContact, a.InsuranceNotes, a.CurrentStep,
		a.CompletedSteps, a.Photos, a.ReportObject, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update damage assessment %s: %w", a.ID, err)
	}
	return nil
}

// ListPendingProfessionalFollowUps returns assessments that need a professional,
// have not been followed up by the owner, and were created before createdBefore.
func (r *DamageAssessmentRepository) ListPendingProfessionalFollowUps(ctx context.Context, createdBefore time.Time) ([]models.DamageAssessment, error) {
	var list []models.DamageAssessment
	query := `SELECT ` + assessmentColumns + `
		FROM damage_assessment
		WHERE professional_assessment_required = TRUE
		  AND professional_contacted = FALSE
		  AND created_at < $1
		ORDER BY created_at ASC`

	if err := r.db.SelectContext(ctx, &list, query, createdBefore); err != nil {
		return nil, fmt.Errorf("failed to list pending professional follow-ups: %w", err)
	}
	return list, nil
}
