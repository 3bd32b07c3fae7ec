package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"claim-service/internal/models"
	utils "claim-service/shared/modules/utils"

	"github.com/google/uuid"
)

type ClaimTemplateService struct {
	catalog *TemplateCatalog
	cache   TemplateCache
	store   CustomTemplateStore
	ttl     time.Duration
	now     func() time.Time
}

// NewClaimTemplateService builds the service. cache may be nil, in which case
// every lookup is served from the catalog.
func NewClaimTemplateService(catalog *TemplateCatalog, cache TemplateCache, store CustomTemplateStore, ttl time.Duration) *ClaimTemplateService {
	return &ClaimTemplateService{
		catalog: catalog,
		cache:   cache,
		store:   store,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *ClaimTemplateService) cacheKey(company models.InsuranceCompany, claimType models.ClaimType) string {
	return fmt.Sprintf("claim_template:%s:%s:%s", company, claimType, s.catalog.Version())
}

// GetTemplate returns the catalog template for company and claimType. Cache
// failures are logged and the catalog is used directly.
func (s *ClaimTemplateService) GetTemplate(ctx context.Context, company models.InsuranceCompany, claimType models.ClaimType) (models.ClaimTemplate, error) {
	key := s.cacheKey(company, claimType)
	if s.cache != nil {
		cached, err := s.cache.GetTemplate(ctx, key)
		if err != nil {
			slog.Warn("template cache read failed", "key", key, "error", err)
		} else if cached != nil {
			return *cached, nil
		}
	}

	tmpl, err := s.catalog.Template(company, claimType)
	if err != nil {
		return models.ClaimTemplate{}, err
	}
	slog.Debug("claim template built from catalog",
		"company", company, "claim_type", claimType, "dedicated", s.catalog.HasDedicatedTemplate(company))

	if s.cache != nil {
		if err := s.cache.SetTemplate(ctx, key, tmpl, s.ttl); err != nil {
			slog.Warn("template cache write failed", "key", key, "error", err)
		}
	}
	return tmpl, nil
}

// CreateCustomTemplate applies the customizations to the catalog template and
// saves the result. A template that fails validation is rejected with a
// *TemplateValidationError.
func (s *ClaimTemplateService) CreateCustomTemplate(ctx context.Context, ownerID string, req models.CreateCustomTemplateRequest) (*models.CustomClaimTemplate, error) {
	base, err := s.GetTemplate(ctx, req.Company, req.ClaimType)
	if err != nil {
		return nil, err
	}

	tmpl := CustomizeTemplate(base, req.Customizations)
	if issues := ValidateTemplate(tmpl); len(issues) > 0 {
		return nil, &TemplateValidationError{Issues: issues}
	}

	now := s.now()
	custom := &models.CustomClaimTemplate{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(req.Name),
		Company:   req.Company,
		ClaimType: req.ClaimType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	tmpl.ID = custom.ID
	custom.Template = tmpl

	if err := s.store.Create(ctx, custom); err != nil {
		return nil, fmt.Errorf("failed to save custom template: %w", err)
	}
	slog.Info("custom claim template saved", "template_id", custom.ID, "owner_id", ownerID, "company", req.Company)
	return custom, nil
}

func (s *ClaimTemplateService) GetCustomTemplate(ctx context.Context, id uuid.UUID, ownerID string) (*models.CustomClaimTemplate, error) {
	t, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get custom template: %w", err)
	}
	if t.OwnerID != ownerID {
		return nil, ErrUnauthorized
	}
	return t, nil
}

func (s *ClaimTemplateService) ListCustomTemplates(ctx context.Context, ownerID string) ([]models.CustomClaimTemplate, error) {
	list, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom templates: %w", err)
	}
	if list == nil {
		list = []models.CustomClaimTemplate{}
	}
	return list, nil
}

func (s *ClaimTemplateService) DeleteCustomTemplate(ctx context.Context, id uuid.UUID, ownerID string) error {
	if err := s.store.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, utils.ErrNoRowsAffected) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("failed to delete custom template: %w", err)
	}
	return nil
}
