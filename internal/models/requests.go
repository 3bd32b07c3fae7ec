package models

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	utils "claim-service/shared/modules/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxPhotoBytes = 10 << 20

func trimAndValidateString(str string, fieldName string, minLen, maxLen int) error {
	trimmed := strings.TrimSpace(str)
	if len(trimmed) < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if len(trimmed) > maxLen {
		return fmt.Errorf("%s must be %d characters or less", fieldName, maxLen)
	}
	return nil
}

// maxMoney is the first amount that no longer fits NUMERIC(14, 2).
var maxMoney = decimal.New(1, 12)

func validateMoney(value *decimal.Decimal, fieldName string) error {
	if value == nil {
		return nil
	}
	if value.IsNegative() {
		return fmt.Errorf("%s must not be negative", fieldName)
	}
	if !value.Equal(value.Round(2)) {
		return fmt.Errorf("%s must have at most 2 decimal places", fieldName)
	}
	if value.GreaterThanOrEqual(maxMoney) {
		return fmt.Errorf("%s must be less than %s", fieldName, maxMoney.String())
	}
	return nil
}

// ============================================================================
// VALUATION
// ============================================================================

type EstimateValueRequest struct {
	OriginalValue *decimal.Decimal `json:"original_value,omitempty"`
	Severity      DamageSeverity   `json:"severity"`
	DamageType    DamageType       `json:"damage_type"`
}

func (r EstimateValueRequest) Validate() error {
	if !r.Severity.IsValid() {
		return fmt.Errorf("invalid severity: %q", r.Severity)
	}
	if !r.DamageType.IsValid() {
		return fmt.Errorf("invalid damage_type: %q", r.DamageType)
	}
	return validateMoney(r.OriginalValue, "original_value")
}

// ============================================================================
// ASSESSMENTS
// ============================================================================

type CreateAssessmentRequest struct {
	ItemID              uuid.UUID        `json:"item_id"`
	ItemName            string           `json:"item_name"`
	ItemValue           *decimal.Decimal `json:"item_value,omitempty"`
	DamageType          DamageType       `json:"damage_type"`
	Severity            *DamageSeverity  `json:"severity,omitempty"`
	IncidentDate        *time.Time       `json:"incident_date,omitempty"`
	IncidentLocation    *string          `json:"incident_location,omitempty"`
	IncidentDescription string           `json:"incident_description"`
}

func (r CreateAssessmentRequest) Validate() error {
	if r.ItemID == uuid.Nil {
		return errors.New("item_id is required")
	}
	if err := trimAndValidateString(r.ItemName, "item_name", 1, 200); err != nil {
		return err
	}
	if !r.DamageType.IsValid() {
		return fmt.Errorf("invalid damage_type: %q", r.DamageType)
	}
	if r.Severity != nil && !r.Severity.IsValid() {
		return fmt.Errorf("invalid severity: %q", *r.Severity)
	}
	if r.Severity == nil {
		// the description is what the severity gets inferred from
		if err := trimAndValidateString(r.IncidentDescription, "incident_description", 1, 5000); err != nil {
			return err
		}
	} else if err := trimAndValidateString(r.IncidentDescription, "incident_description", 0, 5000); err != nil {
		return err
	}
	if r.IncidentDate != nil && r.IncidentDate.After(time.Now().Add(time.Minute)) {
		return errors.New("incident_date cannot be in the future")
	}
	return validateMoney(r.ItemValue, "item_value")
}

type UpdateSeverityRequest struct {
	Severity            DamageSeverity   `json:"severity"`
	AssessmentNotes     *string          `json:"assessment_notes,omitempty"`
	IsRepairable        *bool            `json:"is_repairable,omitempty"`
	EstimatedRepairTime *string          `json:"estimated_repair_time,omitempty"`
	RepairEstimate      *decimal.Decimal `json:"repair_estimate,omitempty"`
	ReplacementCost     *decimal.Decimal `json:"replacement_cost,omitempty"`
}

func (r UpdateSeverityRequest) Validate() error {
	if !r.Severity.IsValid() {
		return fmt.Errorf("invalid severity: %q", r.Severity)
	}
	if r.AssessmentNotes != nil {
		if err := trimAndValidateString(*r.AssessmentNotes, "assessment_notes", 0, 5000); err != nil {
			return err
		}
	}
	if err := validateMoney(r.RepairEstimate, "repair_estimate"); err != nil {
		return err
	}
	return validateMoney(r.ReplacementCost, "replacement_cost")
}

type AddPhotoRequest struct {
	PhotoType   DamagePhotoType `json:"photo_type"`
	Description string          `json:"description"`
	ContentType string          `json:"content_type"`
	Data        string          `json:"data"` // base64
	Location    *string         `json:"location,omitempty"`
}

func (r AddPhotoRequest) Validate() error {
	if !r.PhotoType.IsValid() {
		return fmt.Errorf("invalid photo_type: %q", r.PhotoType)
	}
	if err := trimAndValidateString(r.Description, "description", 1, 500); err != nil {
		return err
	}
	if r.ContentType != "" && !strings.HasPrefix(r.ContentType, "image/") {
		return errors.New("content_type must be an image type")
	}
	if strings.TrimSpace(r.Data) == "" {
		return errors.New("data is required")
	}
	_, err := r.DecodeData()
	return err
}

// DecodeData decodes the base64 photo payload.
func (r AddPhotoRequest) DecodeData() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(r.Data))
	if err != nil {
		return nil, fmt.Errorf("data is not valid base64: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("data is empty")
	}
	if len(data) > maxPhotoBytes {
		return nil, fmt.Errorf("photo exceeds %d bytes", maxPhotoBytes)
	}
	return data, nil
}

type ProfessionalContactedRequest struct {
	Notes           string  `json:"notes"`
	ClaimNumber     *string `json:"claim_number,omitempty"`
	AdjustorName    *string `json:"adjustor_name,omitempty"`
	AdjustorContact *string `json:"adjustor_contact,omitempty"`
}

func (r ProfessionalContactedRequest) Validate() error {
	if err := trimAndValidateString(r.Notes, "notes", 0, 5000); err != nil {
		return err
	}
	if r.ClaimNumber != nil {
		if err := trimAndValidateString(*r.ClaimNumber, "claim_number", 1, 100); err != nil {
			return err
		}
	}
	return nil
}

// ============================================================================
// TEMPLATES
// ============================================================================

type CustomizeTemplateRequest struct {
	Template       ClaimTemplate          `json:"template"`
	Customizations TemplateCustomizations `json:"customizations"`
}

func validateCustomizations(c TemplateCustomizations) error {
	if c.Formatting != nil {
		if err := validateFormatting(*c.Formatting); err != nil {
			return err
		}
	}
	for i, f := range c.AdditionalFields {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("additional_fields[%d] must not be empty", i)
		}
	}
	return nil
}

func validateFormatting(f FormattingOptions) error {
	if !utils.ValidateHexColor(f.PrimaryColor) {
		return fmt.Errorf("invalid primary_color: %q", f.PrimaryColor)
	}
	if f.SecondaryColor != "" && !utils.ValidateHexColor(f.SecondaryColor) {
		return fmt.Errorf("invalid secondary_color: %q", f.SecondaryColor)
	}
	if !f.LogoPosition.IsValid() {
		return fmt.Errorf("invalid logo_position: %q", f.LogoPosition)
	}
	if f.PageMargins < 0 || f.PageMargins > 200 {
		return errors.New("page_margins must be between 0 and 200")
	}
	return nil
}

func (r CustomizeTemplateRequest) Validate() error {
	return validateCustomizations(r.Customizations)
}

type CreateCustomTemplateRequest struct {
	Name           string                 `json:"name"`
	Company        InsuranceCompany       `json:"company"`
	ClaimType      ClaimType              `json:"claim_type"`
	Customizations TemplateCustomizations `json:"customizations"`
}

func (r CreateCustomTemplateRequest) Validate() error {
	if err := trimAndValidateString(r.Name, "name", 1, 100); err != nil {
		return err
	}
	if !r.Company.IsValid() {
		return fmt.Errorf("invalid company: %q", r.Company)
	}
	if !r.ClaimType.IsValid() {
		return fmt.Errorf("invalid claim_type: %q", r.ClaimType)
	}
	return validateCustomizations(r.Customizations)
}

// ============================================================================
// CLAIM DOCUMENTS
// ============================================================================

type ClaimItemInput struct {
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	OriginalValue *decimal.Decimal `json:"original_value,omitempty"`
	Severity      DamageSeverity   `json:"severity"`
	DamageType    DamageType       `json:"damage_type"`
}

type ClaimDocumentRequest struct {
	Company          InsuranceCompany        `json:"company"`
	ClaimType        ClaimType               `json:"claim_type"`
	CustomTemplateID *uuid.UUID              `json:"custom_template_id,omitempty"`
	Customizations   *TemplateCustomizations `json:"customizations,omitempty"`
	IncidentDate     time.Time               `json:"incident_date"`
	FieldValues      map[string]string       `json:"field_values,omitempty"`
	Items            []ClaimItemInput        `json:"items"`
	Async            bool                    `json:"async"`
}

func (r ClaimDocumentRequest) Validate() error {
	if r.CustomTemplateID == nil {
		if !r.Company.IsValid() {
			return fmt.Errorf("invalid company: %q", r.Company)
		}
		if !r.ClaimType.IsValid() {
			return fmt.Errorf("invalid claim_type: %q", r.ClaimType)
		}
	}
	if r.IncidentDate.IsZero() {
		return errors.New("incident_date is required")
	}
	if len(r.Items) == 0 {
		return errors.New("at least one item is required")
	}
	for i, item := range r.Items {
		if err := trimAndValidateString(item.Name, fmt.Sprintf("items[%d].name", i), 1, 200); err != nil {
			return err
		}
		if !item.Severity.IsValid() {
			return fmt.Errorf("invalid items[%d].severity: %q", i, item.Severity)
		}
		if !item.DamageType.IsValid() {
			return fmt.Errorf("invalid items[%d].damage_type: %q", i, item.DamageType)
		}
		if err := validateMoney(item.OriginalValue, fmt.Sprintf("items[%d].original_value", i)); err != nil {
			return err
		}
	}
	if r.Customizations != nil {
		return validateCustomizations(*r.Customizations)
	}
	return nil
}
