package services

import (
	_ "embed"
	"fmt"
	"slices"

	"claim-service/internal/models"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed catalog/templates.yaml
var catalogYAML []byte

type catalogEntry struct {
	CompanyName            string                        `yaml:"company_name"`
	HeaderText             string                        `yaml:"header_text"`
	RequiredFields         []string                      `yaml:"required_fields"`
	ExtraFields            map[models.ClaimType][]string `yaml:"extra_fields"`
	FormSections           []models.FormSection          `yaml:"form_sections"`
	LegalDisclaimer        string                        `yaml:"legal_disclaimer"`
	SubmissionInstructions string                        `yaml:"submission_instructions"`
	ContactInformation     string                        `yaml:"contact_information"`
	Formatting             models.FormattingOptions      `yaml:"formatting"`
}

type catalogFile struct {
	Version   string                                    `yaml:"version"`
	Companies map[models.InsuranceCompany]catalogEntry `yaml:"companies"`
	Generic   catalogEntry                              `yaml:"generic"`
}

// TemplateCatalog holds the built-in insurer templates.
type TemplateCatalog struct {
	version   string
	companies map[models.InsuranceCompany]catalogEntry
	generic   catalogEntry
}

// NewTemplateCatalog parses the embedded catalog.
func NewTemplateCatalog() (*TemplateCatalog, error) {
	return ParseTemplateCatalog(catalogYAML)
}

func ParseTemplateCatalog(data []byte) (*TemplateCatalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse template catalog: %w", err)
	}
	if file.Version == "" {
		return nil, fmt.Errorf("template catalog has no version")
	}
	if issues := ValidateTemplate(file.Generic.build(models.CompanyGeneric, models.ClaimGeneralLoss, file.Version)); len(issues) > 0 {
		return nil, fmt.Errorf("generic catalog template is invalid: %v", issues)
	}
	return &TemplateCatalog{
		version:   file.Version,
		companies: file.Companies,
		generic:   file.Generic,
	}, nil
}

func (c *TemplateCatalog) Version() string {
	return c.version
}

// HasDedicatedTemplate reports whether company has its own catalog entry
// rather than the generic fallback.
func (c *TemplateCatalog) HasDedicatedTemplate(company models.InsuranceCompany) bool {
	_, ok := c.companies[company]
	return ok
}

// Template builds a fresh template for company and claimType. Companies without a
// dedicated entry get the generic template under their own display name.
func (c *TemplateCatalog) Template(company models.InsuranceCompany, claimType models.ClaimType) (models.ClaimTemplate, error) {
	if !company.IsValid() {
		return models.ClaimTemplate{}, fmt.Errorf("%w: %s", ErrUnsupportedCompany, company)
	}
	if !claimType.IsValid() {
		return models.ClaimTemplate{}, fmt.Errorf("%w: %s", ErrInvalidClaimType, claimType)
	}

	if entry, ok := c.companies[company]; ok {
		return entry.build(company, claimType, c.version), nil
	}

	tmpl := c.generic.build(company, claimType, c.version)
	if company != models.CompanyGeneric {
		name := company.DisplayName()
		tmpl.CompanyName = name
		tmpl.HeaderText = name + "\n" + tmpl.HeaderText
		tmpl.ContactInformation = fmt.Sprintf("Contact %s for specific submission instructions", name)
	}
	return tmpl, nil
}

func (e catalogEntry) build(company models.InsuranceCompany, claimType models.ClaimType, version string) models.ClaimTemplate {
	required := slices.Clone(e.RequiredFields)
	required = append(required, e.ExtraFields[claimType]...)

	sections := make([]models.FormSection, len(e.FormSections))
	for i, s := range e.FormSections {
		sections[i] = models.FormSection{Title: s.Title, Fields: slices.Clone(s.Fields)}
	}

	return models.ClaimTemplate{
		ID:                     catalogTemplateID(company, claimType, version),
		CompanyName:            e.CompanyName,
		ClaimType:              claimType,
		TemplateVersion:        version,
		HeaderText:             e.HeaderText,
		RequiredFields:         required,
		FormSections:           sections,
		LegalDisclaimer:        e.LegalDisclaimer,
		SubmissionInstructions: e.SubmissionInstructions,
		ContactInformation:     e.ContactInformation,
		Formatting:             e.Formatting,
	}
}

// catalogTemplateID is stable for a given company, claim type and catalog version
// so cached and freshly built templates agree.
func catalogTemplateID(company models.InsuranceCompany, claimType models.ClaimType, version string) uuid.UUID {
	name := fmt.Sprintf("nestory:template:%s:%s:%s", company, claimType, version)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name))
}
