package services

import "errors"

var (
	ErrAssessmentNotFound   = errors.New("assessment not found")
	ErrTemplateNotFound     = errors.New("template not found")
	ErrInvalidTemplate      = errors.New("template is invalid")
	ErrMissingOriginalValue = errors.New("item purchase price is required for damage value calculation")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrUnsupportedCompany   = errors.New("unsupported insurance company")
	ErrInvalidClaimType     = errors.New("unsupported claim type")
)

// TemplateValidationError carries the issues found by ValidateTemplate.
type TemplateValidationError struct {
	Issues []string
}

func (e *TemplateValidationError) Error() string {
	return ErrInvalidTemplate.Error()
}

func (e *TemplateValidationError) Unwrap() error {
	return ErrInvalidTemplate
}
