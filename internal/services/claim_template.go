package services

import (
	"slices"

	"claim-service/internal/models"
)

const (
	issueCompanyName    = "Company name is required"
	issueRequiredFields = "At least one required field must be specified"
	issueFormSections   = "At least one form section must be defined"
	issueDisclaimer     = "Legal disclaimer is required"
)

// ValidateTemplate reports structural problems in a fixed order.
// An empty result means the template is usable.
func ValidateTemplate(template models.ClaimTemplate) []string {
	issues := []string{}
	if template.CompanyName == "" {
		issues = append(issues, issueCompanyName)
	}
	if len(template.RequiredFields) == 0 {
		issues = append(issues, issueRequiredFields)
	}
	if len(template.FormSections) == 0 {
		issues = append(issues, issueFormSections)
	}
	if template.LegalDisclaimer == "" {
		issues = append(issues, issueDisclaimer)
	}
	return issues
}

// CustomizeTemplate returns a copy of template with the customizations applied.
// The input template is left untouched.
func CustomizeTemplate(template models.ClaimTemplate, c models.TemplateCustomizations) models.ClaimTemplate {
	out := cloneTemplate(template)

	if c.CustomHeaderText != nil {
		out.HeaderText = *c.CustomHeaderText
	}
	if c.CustomDisclaimer != nil {
		out.LegalDisclaimer = *c.CustomDisclaimer
	}
	if c.Formatting != nil {
		out.Formatting = *c.Formatting
	}
	if len(c.AdditionalFields) > 0 {
		out.RequiredFields = append(out.RequiredFields, c.AdditionalFields...)
	}
	return out
}

func cloneTemplate(t models.ClaimTemplate) models.ClaimTemplate {
	out := t
	out.RequiredFields = slices.Clone(t.RequiredFields)
	if t.FormSections != nil {
		out.FormSections = make([]models.FormSection, len(t.FormSections))
		for i, s := range t.FormSections {
			out.FormSections[i] = models.FormSection{Title: s.Title, Fields: slices.Clone(s.Fields)}
		}
	}
	return out
}
