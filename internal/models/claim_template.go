package models

import (
	"database/sql/driver"
	"time"

	utils "claim-service/shared/modules/utils"

	"github.com/google/uuid"
)

// ============================================================================
// INSURERS AND CLAIM TYPES
// ============================================================================

type InsuranceCompany string

const (
	CompanyStateFarm   InsuranceCompany = "state_farm"
	CompanyAllstate    InsuranceCompany = "allstate"
	CompanyGeico       InsuranceCompany = "geico"
	CompanyProgressive InsuranceCompany = "progressive"
	CompanyNationwide  InsuranceCompany = "nationwide"
	CompanyFarmers     InsuranceCompany = "farmers"
	CompanyUSAA        InsuranceCompany = "usaa"
	CompanyLiberty     InsuranceCompany = "liberty_mutual"
	CompanyTravelers   InsuranceCompany = "travelers"
	CompanyAmica       InsuranceCompany = "amica"
	CompanyGeneric     InsuranceCompany = "generic"
)

func AllInsuranceCompanies() []InsuranceCompany {
	return []InsuranceCompany{
		CompanyStateFarm, CompanyAllstate, CompanyGeico, CompanyProgressive,
		CompanyNationwide, CompanyFarmers, CompanyUSAA, CompanyLiberty,
		CompanyTravelers, CompanyAmica, CompanyGeneric,
	}
}

func (c InsuranceCompany) IsValid() bool {
	_, ok := companyNames[c]
	return ok
}

var companyNames = map[InsuranceCompany]string{
	CompanyStateFarm:   "State Farm",
	CompanyAllstate:    "Allstate",
	CompanyGeico:       "GEICO",
	CompanyProgressive: "Progressive",
	CompanyNationwide:  "Nationwide",
	CompanyFarmers:     "Farmers Insurance",
	CompanyUSAA:        "USAA",
	CompanyLiberty:     "Liberty Mutual",
	CompanyTravelers:   "Travelers",
	CompanyAmica:       "Amica",
	CompanyGeneric:     "Insurance Company",
}

func (c InsuranceCompany) DisplayName() string {
	if name, ok := companyNames[c]; ok {
		return name
	}
	return string(c)
}

type ClaimType string

const (
	ClaimFire            ClaimType = "fire"
	ClaimWater           ClaimType = "water"
	ClaimFlood           ClaimType = "flood"
	ClaimTheft           ClaimType = "theft"
	ClaimBurglary        ClaimType = "burglary"
	ClaimVandalism       ClaimType = "vandalism"
	ClaimNaturalDisaster ClaimType = "natural_disaster"
	ClaimPropertyDamage  ClaimType = "property_damage"
	ClaimGeneralLoss     ClaimType = "general_loss"
	ClaimMultipleItems   ClaimType = "multiple_items"
)

func (t ClaimType) IsValid() bool {
	switch t {
	case ClaimFire, ClaimWater, ClaimFlood, ClaimTheft, ClaimBurglary, ClaimVandalism,
		ClaimNaturalDisaster, ClaimPropertyDamage, ClaimGeneralLoss, ClaimMultipleItems:
		return true
	default:
		return false
	}
}

func (t ClaimType) Label() string {
	switch t {
	case ClaimFire:
		return "Fire Damage"
	case ClaimWater:
		return "Water Damage"
	case ClaimFlood:
		return "Flood"
	case ClaimTheft:
		return "Theft"
	case ClaimBurglary:
		return "Burglary"
	case ClaimVandalism:
		return "Vandalism"
	case ClaimNaturalDisaster:
		return "Natural Disaster"
	case ClaimPropertyDamage:
		return "Property Damage"
	case ClaimGeneralLoss:
		return "General Loss"
	case ClaimMultipleItems:
		return "Multiple Items"
	default:
		return string(t)
	}
}

// ============================================================================
// CLAIM TEMPLATES
// ============================================================================

type LogoPosition string

const (
	LogoTopLeft   LogoPosition = "top_left"
	LogoTopCenter LogoPosition = "top_center"
	LogoTopRight  LogoPosition = "top_right"
)

func (p LogoPosition) IsValid() bool {
	switch p {
	case LogoTopLeft, LogoTopCenter, LogoTopRight:
		return true
	default:
		return false
	}
}

type FormattingOptions struct {
	PrimaryColor     string       `json:"primary_color" yaml:"primary_color"`
	SecondaryColor   string       `json:"secondary_color" yaml:"secondary_color"`
	FontFamily       string       `json:"font_family" yaml:"font_family"`
	LogoPosition     LogoPosition `json:"logo_position" yaml:"logo_position"`
	IncludeWatermark bool         `json:"include_watermark" yaml:"include_watermark"`
	PageMargins      float64      `json:"page_margins" yaml:"page_margins"`
}

type FormSection struct {
	Title  string   `json:"title" yaml:"title"`
	Fields []string `json:"fields" yaml:"fields"`
}

type ClaimTemplate struct {
	ID                     uuid.UUID         `json:"id"`
	CompanyName            string            `json:"company_name"`
	ClaimType              ClaimType         `json:"claim_type"`
	TemplateVersion        string            `json:"template_version"`
	HeaderText             string            `json:"header_text"`
	RequiredFields         []string          `json:"required_fields"`
	FormSections           []FormSection     `json:"form_sections"`
	LegalDisclaimer        string            `json:"legal_disclaimer"`
	SubmissionInstructions string            `json:"submission_instructions"`
	ContactInformation     string            `json:"contact_information"`
	Formatting             FormattingOptions `json:"formatting"`
}

func (t ClaimTemplate) Value() (driver.Value, error) {
	return utils.MarshalJSONB(t)
}

func (t *ClaimTemplate) Scan(value any) error {
	return utils.ScanJSONB(value, t)
}

// TemplateCustomizations overrides parts of a template. Nil fields keep the original.
type TemplateCustomizations struct {
	CustomHeaderText *string            `json:"custom_header_text,omitempty"`
	CustomDisclaimer *string            `json:"custom_disclaimer,omitempty"`
	Formatting       *FormattingOptions `json:"formatting,omitempty"`
	AdditionalFields []string           `json:"additional_fields,omitempty"`
}

// CustomClaimTemplate is a customized template saved by a user.
type CustomClaimTemplate struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	OwnerID   string           `json:"owner_id" db:"owner_id"`
	Name      string           `json:"name" db:"name"`
	Company   InsuranceCompany `json:"company" db:"company"`
	ClaimType ClaimType        `json:"claim_type" db:"claim_type"`
	Template  ClaimTemplate    `json:"template" db:"template"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" db:"updated_at"`
}
