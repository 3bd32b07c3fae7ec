package services

import (
	"context"
	"time"

	"claim-service/internal/models"
	"claim-service/internal/worker"

	"github.com/google/uuid"
)

// Stores return an error wrapping sql.ErrNoRows for missing records.

type AssessmentStore interface {
	Create(ctx context.Context, a *models.DamageAssessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.DamageAssessment, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.DamageAssessment, error)
	ListByItem(ctx context.Context, ownerID string, itemID uuid.UUID) ([]models.DamageAssessment, error)
	// UpdateLocked applies mutate to the stored assessment while holding it
	// exclusively and persists the result.
	UpdateLocked(ctx context.Context, id uuid.UUID, mutate func(a *models.DamageAssessment) error) (*models.DamageAssessment, error)
}

type CustomTemplateStore interface {
	Create(ctx context.Context, t *models.CustomClaimTemplate) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CustomClaimTemplate, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.CustomClaimTemplate, error)
	Delete(ctx context.Context, id uuid.UUID, ownerID string) error
}

// TemplateCache returns (nil, nil) on a miss.
type TemplateCache interface {
	GetTemplate(ctx context.Context, key string) (*models.ClaimTemplate, error)
	SetTemplate(ctx context.Context, key string, tmpl models.ClaimTemplate, ttl time.Duration) error
}

type ObjectStorage interface {
	UploadBytes(ctx context.Context, bucketName, objectName string, data []byte, contentType string) error
	DeleteFile(ctx context.Context, bucketName, objectName string) error
	GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error)
}

type AssessmentNotifier interface {
	NotifyProfessionalAssessmentRequired(ctx context.Context, userID, assessmentID, reason string) error
}

type DocumentNotifier interface {
	NotifyClaimDocumentReady(ctx context.Context, userID, fileName, url string) error
	NotifyClaimDocumentFailed(ctx context.Context, userID, fileName string) error
}

type JobSubmitter interface {
	SubmitJob(job worker.Job) error
}

// AIGenerator answers a prompt (plus optional images) with a decoded JSON object.
type AIGenerator interface {
	Available() bool
	Generate(ctx context.Context, prompt string, images [][]byte) (map[string]any, error)
}
