package services

import (
	"strings"

	"claim-service/internal/models"

	"github.com/shopspring/decimal"
)

const (
	UnknownValue = "Unknown"

	reasonExtensive       = "Extensive damage requires professional evaluation for accurate assessment"
	reasonFire            = "Fire damage often has hidden structural and safety effects requiring professional evaluation"
	reasonNaturalDisaster = "Natural disaster damage may have structural implications requiring specialized assessment"
	reasonComplex         = "Complex damage patterns benefit from professional expertise."
)

// ValuationInput is the transport-facing input of EvaluateDamage.
type ValuationInput struct {
	OriginalValue *decimal.Decimal      `json:"original_value,omitempty"`
	Severity      models.DamageSeverity `json:"severity"`
	DamageType    models.DamageType     `json:"damage_type"`
}

type ValuationResult struct {
	Severity                    models.DamageSeverity `json:"severity"`
	DamageType                  models.DamageType     `json:"damage_type"`
	ValueImpactPercentage       decimal.Decimal       `json:"value_impact_percentage"`
	EstimatedCurrentValue       string                `json:"estimated_current_value"`
	RecommendProfessional       bool                  `json:"recommend_professional"`
	ProfessionalRecommendReason *string               `json:"professional_recommendation_reason,omitempty"`
}

// EstimateCurrentValue returns originalValue reduced by the severity's impact,
// or "Unknown" when no original value is known.
func EstimateCurrentValue(originalValue *decimal.Decimal, severity models.DamageSeverity) string {
	if originalValue == nil {
		return UnknownValue
	}
	remaining := decimal.NewFromInt(1).Sub(severity.ValueImpactPercentage())
	return originalValue.Mul(remaining).String()
}

func ShouldRecommendProfessional(severity models.DamageSeverity, damageType models.DamageType) bool {
	switch severity {
	case models.SeverityMajor, models.SeverityTotal:
		return true
	}
	switch damageType {
	case models.DamageFire, models.DamageNaturalDisaster:
		return true
	}
	return false
}

// ProfessionalRecommendationReason explains a recommendation. Severity wins over
// damage type; a reason is returned even when no recommendation applies.
func ProfessionalRecommendationReason(severity models.DamageSeverity, damageType models.DamageType) string {
	switch severity {
	case models.SeverityMajor, models.SeverityTotal:
		return reasonExtensive
	}
	switch damageType {
	case models.DamageFire:
		return reasonFire
	case models.DamageNaturalDisaster:
		return reasonNaturalDisaster
	default:
		return reasonComplex
	}
}

func EvaluateDamage(in ValuationInput) ValuationResult {
	result := ValuationResult{
		Severity:              in.Severity,
		DamageType:            in.DamageType,
		ValueImpactPercentage: in.Severity.ValueImpactPercentage(),
		EstimatedCurrentValue: EstimateCurrentValue(in.OriginalValue, in.Severity),
		RecommendProfessional: ShouldRecommendProfessional(in.Severity, in.DamageType),
	}
	if result.RecommendProfessional {
		reason := ProfessionalRecommendationReason(in.Severity, in.DamageType)
		result.ProfessionalRecommendReason = &reason
	}
	return result
}

// CalculateDamageValue is the amount lost to damage: purchasePrice * impact.
func CalculateDamageValue(purchasePrice *decimal.Decimal, severity models.DamageSeverity) (decimal.Decimal, error) {
	if purchasePrice == nil {
		return decimal.Zero, ErrMissingOriginalValue
	}
	return purchasePrice.Mul(severity.ValueImpactPercentage()), nil
}

var severityKeywords = []struct {
	severity models.DamageSeverity
	words    []string
}{
	{models.SeverityTotal, []string{"destroyed", "completely", "total", "gone", "missing", "stolen"}},
	{models.SeverityMajor, []string{"major", "extensive", "severe", "significant", "structural"}},
	{models.SeverityModerate, []string{"moderate", "noticeable", "damaged", "broken", "cracked"}},
}

// DetermineSeverity guesses a severity from free text. Defaults to minor.
func DetermineSeverity(description string) models.DamageSeverity {
	text := strings.ToLower(description)
	for _, group := range severityKeywords {
		for _, w := range group.words {
			if strings.Contains(text, w) {
				return group.severity
			}
		}
	}
	return models.SeverityMinor
}
