package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"claim-service/internal/ai/gemini"
	"claim-service/internal/database/minio"
	"claim-service/internal/models"

	"github.com/google/uuid"
)

type ReportResult struct {
	ObjectKey string `json:"object_key"`
	URL       string `json:"url"`
}

type DamageAssessmentService struct {
	store     AssessmentStore
	storage   ObjectStorage
	notifier  AssessmentNotifier
	suggester *SeveritySuggester
	now       func() time.Time
}

// NewDamageAssessmentService builds the service. notifier may be nil when no
// message broker is available.
func NewDamageAssessmentService(
	store AssessmentStore,
	storage ObjectStorage,
	notifier AssessmentNotifier,
	suggester *SeveritySuggester,
) *DamageAssessmentService {
	return &DamageAssessmentService{
		store:     store,
		storage:   storage,
		notifier:  notifier,
		suggester: suggester,
		now:       time.Now,
	}
}

// CreateAssessment starts a new assessment. When the request carries no severity
// one is suggested from the incident description and returned alongside.
func (s *DamageAssessmentService) CreateAssessment(ctx context.Context, ownerID string, req models.CreateAssessmentRequest) (*models.DamageAssessment, *SeveritySuggestion, error) {
	var suggestion *SeveritySuggestion
	severity := models.SeverityMinor
	if req.Severity != nil {
		severity = *req.Severity
	} else {
		sg := s.suggester.Suggest(ctx, req.DamageType, req.IncidentDescription, nil)
		suggestion = &sg
		severity = sg.Severity
	}

	a := models.NewDamageAssessment(ownerID, req.ItemID, req.DamageType, severity, strings.TrimSpace(req.IncidentDescription))
	now := s.now()
	a.CreatedAt, a.UpdatedAt = now, now
	a.ItemName = strings.TrimSpace(req.ItemName)
	a.ItemValue = req.ItemValue
	a.IncidentDate = req.IncidentDate
	a.IncidentLocation = req.IncidentLocation
	a.ProfessionalAssessmentRequired = ShouldRecommendProfessional(severity, req.DamageType)

	if err := s.store.Create(ctx, a); err != nil {
		return nil, nil, fmt.Errorf("failed to create assessment: %w", err)
	}
	slog.Info("damage assessment created",
		"assessment_id", a.ID, "owner_id", ownerID, "damage_type", a.DamageType, "severity", a.Severity)

	if a.ProfessionalAssessmentRequired {
		s.notifyProfessionalRequired(ctx, a)
	}
	return a, suggestion, nil
}

// GetAssessment returns the assessment if it belongs to ownerID.
func (s *DamageAssessmentService) GetAssessment(ctx context.Context, id uuid.UUID, ownerID string) (*models.DamageAssessment, error) {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	if a.OwnerID != ownerID {
		return nil, ErrUnauthorized
	}
	return a, nil
}

func (s *DamageAssessmentService) ListAssessmentsByOwner(ctx context.Context, ownerID string) ([]models.DamageAssessment, error) {
	list, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	if list == nil {
		list = []models.DamageAssessment{}
	}
	return list, nil
}

func (s *DamageAssessmentService) ListAssessmentsByItem(ctx context.Context, ownerID string, itemID uuid.UUID) ([]models.DamageAssessment, error) {
	list, err := s.store.ListByItem(ctx, ownerID, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments for item %s: %w", itemID, err)
	}
	if list == nil {
		list = []models.DamageAssessment{}
	}
	return list, nil
}

// UpdateSeverity re-rates an assessment and recomputes whether a professional is
// needed. Owners are notified only on the transition to required.
func (s *DamageAssessmentService) UpdateSeverity(ctx context.Context, id uuid.UUID, ownerID string, req models.UpdateSeverityRequest) (*models.DamageAssessment, error) {
	var wasRequired bool
	a, err := s.modify(ctx, id, ownerID, func(a *models.DamageAssessment) error {
		wasRequired = a.ProfessionalAssessmentRequired
		a.Severity = req.Severity
		if req.AssessmentNotes != nil {
			a.AssessmentNotes = strings.TrimSpace(*req.AssessmentNotes)
		}
		if req.IsRepairable != nil {
			a.IsRepairable = *req.IsRepairable
		}
		if req.EstimatedRepairTime != nil {
			a.EstimatedRepairTime = req.EstimatedRepairTime
		}
		if req.RepairEstimate != nil {
			a.RepairEstimate = req.RepairEstimate
		}
		if req.ReplacementCost != nil {
			a.ReplacementCost = req.ReplacementCost
		}
		a.ProfessionalAssessmentRequired = ShouldRecommendProfessional(a.Severity, a.DamageType)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if a.ProfessionalAssessmentRequired && !wasRequired {
		s.notifyProfessionalRequired(ctx, a)
	}
	return a, nil
}

func (s *DamageAssessmentService) CompleteStep(ctx context.Context, id uuid.UUID, ownerID string, step models.AssessmentStep) (*models.DamageAssessment, error) {
	return s.modify(ctx, id, ownerID, func(a *models.DamageAssessment) error {
		return a.CompleteStep(step)
	})
}

// AddPhoto uploads the photo to object storage and attaches it to the assessment.
func (s *DamageAssessmentService) AddPhoto(ctx context.Context, id uuid.UUID, ownerID string, req models.AddPhotoRequest) (*models.DamagePhoto, error) {
	data, err := req.DecodeData()
	if err != nil {
		return nil, err
	}
	a, err := s.GetAssessment(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = gemini.DetectImageMIMEType(data)
	}
	photo := models.DamagePhoto{
		ID:          uuid.New(),
		PhotoType:   req.PhotoType,
		Description: strings.TrimSpace(req.Description),
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		Location:    req.Location,
		CaptureDate: s.now(),
	}
	photo.ObjectKey = fmt.Sprintf("%s/%s/%s", ownerID, a.ID, photo.ID)

	if err := s.storage.UploadBytes(ctx, minio.Storage.DamagePhotos, photo.ObjectKey, data, contentType); err != nil {
		return nil, fmt.Errorf("failed to upload photo: %w", err)
	}

	_, err = s.modify(ctx, id, ownerID, func(a *models.DamageAssessment) error {
		a.Photos = append(a.Photos, photo)
		return nil
	})
	if err != nil {
		if derr := s.storage.DeleteFile(ctx, minio.Storage.DamagePhotos, photo.ObjectKey); derr != nil {
			slog.Warn("failed to remove unattached damage photo", "object", photo.ObjectKey, "error", derr)
		}
		return nil, err
	}
	slog.Info("damage photo added", "assessment_id", a.ID, "photo_id", photo.ID, "size_bytes", photo.SizeBytes)
	return &photo, nil
}

func (s *DamageAssessmentService) MarkProfessionalContacted(ctx context.Context, id uuid.UUID, ownerID string, req models.ProfessionalContactedRequest) (*models.DamageAssessment, error) {
	return s.modify(ctx, id, ownerID, func(a *models.DamageAssessment) error {
		a.ProfessionalContacted = true
		a.ProfessionalNotes = strings.TrimSpace(req.Notes)
		if req.ClaimNumber != nil {
			a.ClaimNumber = req.ClaimNumber
		}
		if req.AdjustorName != nil {
			a.AdjustorName = req.AdjustorName
		}
		if req.AdjustorContact != nil {
			a.AdjustorContact = req.AdjustorContact
		}
		return nil
	})
}

// modify applies mutate to the owner's assessment while the store holds it
// exclusively, so concurrent changes to one assessment are not lost.
func (s *DamageAssessmentService) modify(ctx context.Context, id uuid.UUID, ownerID string, mutate func(a *models.DamageAssessment) error) (*models.DamageAssessment, error) {
	var mutateErr error
	a, err := s.store.UpdateLocked(ctx, id, func(a *models.DamageAssessment) error {
		if a.OwnerID != ownerID {
			mutateErr = ErrUnauthorized
			return mutateErr
		}
		if mutateErr = mutate(a); mutateErr != nil {
			return mutateErr
		}
		a.UpdatedAt = s.now()
		return nil
	})
	switch {
	case mutateErr != nil:
		return nil, mutateErr
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrAssessmentNotFound
	case err != nil:
		return nil, fmt.Errorf("failed to update assessment: %w", err)
	}
	return a, nil
}

func (s *DamageAssessmentService) Valuation(ctx context.Context, id uuid.UUID, ownerID string) (*ValuationResult, error) {
	a, err := s.GetAssessment(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	result := EvaluateDamage(ValuationInput{
		OriginalValue: a.ItemValue,
		Severity:      a.Severity,
		DamageType:    a.DamageType,
	})
	return &result, nil
}

// GenerateReport renders the text report, stores it and returns a download link.
// The previously generated report, if any, is removed.
func (s *DamageAssessmentService) GenerateReport(ctx context.Context, id uuid.UUID, ownerID string) (*ReportResult, error) {
	a, err := s.GetAssessment(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	generatedAt := s.now()
	report := RenderAssessmentReport(a, generatedAt)
	key := fmt.Sprintf("%s/%s/report_%d.txt", ownerID, a.ID, generatedAt.Unix())
	if err := s.storage.UploadBytes(ctx, minio.Storage.AssessmentReports, key, []byte(report), "text/plain; charset=utf-8"); err != nil {
		return nil, fmt.Errorf("failed to upload report: %w", err)
	}

	var previous *string
	_, err = s.modify(ctx, id, ownerID, func(a *models.DamageAssessment) error {
		previous = a.ReportObject
		a.ReportObject = &key
		return nil
	})
	if err != nil {
		if derr := s.storage.DeleteFile(ctx, minio.Storage.AssessmentReports, key); derr != nil {
			slog.Warn("failed to remove unrecorded assessment report", "object", key, "error", derr)
		}
		return nil, err
	}
	// only the latest report is kept
	if previous != nil && *previous != key {
		if err := s.storage.DeleteFile(ctx, minio.Storage.AssessmentReports, *previous); err != nil {
			slog.Warn("failed to delete previous assessment report", "object", *previous, "error", err)
		}
	}

	url, err := s.storage.GetPresignedURL(ctx, minio.Storage.AssessmentReports, key, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to presign report url: %w", err)
	}
	return &ReportResult{ObjectKey: key, URL: url}, nil
}

func (s *DamageAssessmentService) notifyProfessionalRequired(ctx context.Context, a *models.DamageAssessment) {
	if s.notifier == nil {
		return
	}
	reason := ProfessionalRecommendationReason(a.Severity, a.DamageType)
	if err := s.notifier.NotifyProfessionalAssessmentRequired(ctx, a.OwnerID, a.ID.String(), reason); err != nil {
		slog.Error("failed to publish professional assessment notification",
			"assessment_id", a.ID, "error", err)
	}
}
