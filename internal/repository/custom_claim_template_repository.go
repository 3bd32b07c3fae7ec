package repository

import (
	"context"
	"fmt"

	"claim-service/internal/models"
	utils "claim-service/shared/modules/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CustomClaimTemplateRepository struct {
	db *sqlx.DB
}

func NewCustomClaimTemplateRepository(db *sqlx.DB) *CustomClaimTemplateRepository {
	return &CustomClaimTemplateRepository{db: db}
}

func (r *CustomClaimTemplateRepository) Create(ctx context.Context, t *models.CustomClaimTemplate) error {
	query := `
		INSERT INTO custom_claim_template (
			id, owner_id, name, company, claim_type, template, created_at, updated_at
		) VALUES (
			:id, :owner_id, :name, :company, :claim_type, :template, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, t); err != nil {
		return fmt.Errorf("failed to create custom claim template: %w", err)
	}
	return nil
}

func (r *CustomClaimTemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CustomClaimTemplate, error) {
	var t models.CustomClaimTemplate
	query := `
		SELECT id, owner_id, name, company, claim_type, template, created_at, updated_at
		FROM custom_claim_template
		WHERE id = $1`

	if err := r.db.GetContext(ctx, &t, query, id); err != nil {
		return nil, fmt.Errorf("failed to get custom claim template by id: %w", err)
	}
	return &t, nil
}

func (r *CustomClaimTemplateRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.CustomClaimTemplate, error) {
	var list []models.CustomClaimTemplate
	query := `
		SELECT id, owner_id, name, company, claim_type, template, created_at, updated_at
		FROM custom_claim_template
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &list, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list custom claim templates: %w", err)
	}
	return list, nil
}

// Delete removes the owner's template. Deleting another owner's template
// affects no rows and reports utils.ErrNoRowsAffected.
func (r *CustomClaimTemplateRepository) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	query := `DELETE FROM custom_claim_template WHERE id = $1 AND owner_id = $2`
	if err := utils.ExecWithCheck(ctx, r.db, query, utils.ExecDelete, id, ownerID); err != nil {
		return fmt.Errorf("failed to delete custom claim template: %w", err)
	}
	return nil
}
