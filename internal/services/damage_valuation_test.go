package services

import (
	"sync"
	"testing"

	"claim-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestEstimateCurrentValue(t *testing.T) {
	tests := []struct {
		name     string
		value    *decimal.Decimal
		severity models.DamageSeverity
		want     string
	}{
		{"minor keeps ninety percent", dec("1000"), models.SeverityMinor, "900"},
		{"moderate", dec("1000"), models.SeverityModerate, "650"},
		{"major", dec("1000"), models.SeverityMajor, "250"},
		{"severe", dec("1000"), models.SeveritySevere, "100"},
		{"total loss is zero", dec("1000"), models.SeverityTotal, "0"},
		{"fractional amounts stay exact", dec("19.99"), models.SeverityModerate, "12.9935"},
		{"unknown severity has no impact", dec("42.5"), models.DamageSeverity("bogus"), "42.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateCurrentValue(tt.value, tt.severity))
		})
	}
}

func TestEstimateCurrentValue_MissingValueIsUnknown(t *testing.T) {
	for _, s := range models.AllSeverities() {
		assert.Equal(t, "Unknown", EstimateCurrentValue(nil, s), "severity %s", s)
	}
}

func TestEstimateCurrentValue_NeverExceedsOriginal(t *testing.T) {
	original := dec("2500.75")
	for _, s := range models.AllSeverities() {
		got := decimal.RequireFromString(EstimateCurrentValue(original, s))
		assert.True(t, got.LessThanOrEqual(*original), "severity %s", s)
		assert.False(t, got.IsNegative(), "severity %s", s)
	}
}

func TestSeverityImpactIsMonotonic(t *testing.T) {
	severities := models.AllSeverities()
	for i := 1; i < len(severities); i++ {
		prev := severities[i-1].ValueImpactPercentage()
		cur := severities[i].ValueImpactPercentage()
		assert.True(t, cur.GreaterThanOrEqual(prev), "%s < %s", severities[i], severities[i-1])
	}
	assert.True(t, models.SeverityTotal.ValueImpactPercentage().Equal(decimal.NewFromInt(1)))
}

func TestShouldRecommendProfessional(t *testing.T) {
	for _, dt := range models.AllDamageTypes() {
		assert.True(t, ShouldRecommendProfessional(models.SeverityMajor, dt), "major/%s", dt)
		assert.True(t, ShouldRecommendProfessional(models.SeverityTotal, dt), "total/%s", dt)
	}
	for _, s := range models.AllSeverities() {
		assert.True(t, ShouldRecommendProfessional(s, models.DamageFire), "%s/fire", s)
		assert.True(t, ShouldRecommendProfessional(s, models.DamageNaturalDisaster), "%s/natural_disaster", s)
	}

	assert.False(t, ShouldRecommendProfessional(models.SeverityMinor, models.DamageWater))
	assert.False(t, ShouldRecommendProfessional(models.SeverityModerate, models.DamageTheft))
	assert.False(t, ShouldRecommendProfessional(models.SeveritySevere, models.DamageAccidental))
}

func TestProfessionalRecommendationReason(t *testing.T) {
	extensive := "Extensive damage requires professional evaluation for accurate assessment"

	// severity takes precedence over damage type
	assert.Equal(t, extensive, ProfessionalRecommendationReason(models.SeverityMajor, models.DamageFire))
	assert.Equal(t, extensive, ProfessionalRecommendationReason(models.SeverityTotal, models.DamageNaturalDisaster))

	fire := ProfessionalRecommendationReason(models.SeverityMinor, models.DamageFire)
	assert.Contains(t, fire, "Fire damage")
	assert.Contains(t, fire, "hidden")

	disaster := ProfessionalRecommendationReason(models.SeverityModerate, models.DamageNaturalDisaster)
	assert.Contains(t, disaster, "structural implications")

	assert.Equal(t, "Complex damage patterns benefit from professional expertise.",
		ProfessionalRecommendationReason(models.SeverityMinor, models.DamageWater))
}

func TestEvaluateDamage(t *testing.T) {
	res := EvaluateDamage(ValuationInput{
		OriginalValue: dec("1200"),
		Severity:      models.SeverityMajor,
		DamageType:    models.DamageWater,
	})
	assert.Equal(t, "300", res.EstimatedCurrentValue)
	assert.True(t, res.RecommendProfessional)
	require.NotNil(t, res.ProfessionalRecommendReason)
	assert.Contains(t, *res.ProfessionalRecommendReason, "Extensive damage")

	res = EvaluateDamage(ValuationInput{Severity: models.SeverityMinor, DamageType: models.DamageWater})
	assert.Equal(t, "Unknown", res.EstimatedCurrentValue)
	assert.False(t, res.RecommendProfessional)
	assert.Nil(t, res.ProfessionalRecommendReason)
}

func TestCalculateDamageValue(t *testing.T) {
	v, err := CalculateDamageValue(dec("800"), models.SeverityModerate)
	require.NoError(t, err)
	assert.Equal(t, "280", v.String())

	_, err = CalculateDamageValue(nil, models.SeverityMinor)
	assert.ErrorIs(t, err, ErrMissingOriginalValue)
}

func TestDetermineSeverity(t *testing.T) {
	tests := []struct {
		description string
		want        models.DamageSeverity
	}{
		{"The laptop was STOLEN from the car", models.SeverityTotal},
		{"House completely flooded", models.SeverityTotal},
		{"Extensive smoke damage in the kitchen", models.SeverityMajor},
		{"Screen cracked after a fall", models.SeverityModerate},
		{"A small scratch on the lid", models.SeverityMinor},
		{"", models.SeverityMinor},
		// total keywords are checked before moderate ones
		{"broken and destroyed", models.SeverityTotal},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineSeverity(tt.description))
		})
	}
}

func TestEvaluateDamage_Concurrent(t *testing.T) {
	value := dec("1000")
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := EvaluateDamage(ValuationInput{
				OriginalValue: value,
				Severity:      models.SeverityModerate,
				DamageType:    models.DamageFire,
			})
			assert.Equal(t, "650", res.EstimatedCurrentValue)
			assert.True(t, res.RecommendProfessional)
		}()
	}
	wg.Wait()
	assert.Equal(t, "1000", value.String())
}
