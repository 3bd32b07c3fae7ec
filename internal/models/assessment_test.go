package models

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDamageAssessment_StartsAtFirstStep(t *testing.T) {
	a := NewDamageAssessment("owner", uuid.New(), DamageWater, SeverityModerate, "pipe burst")

	assert.Equal(t, StepInitialDocumentation, a.CurrentStep)
	assert.Empty(t, a.CompletedSteps)
	assert.Zero(t, a.Progress())
	assert.False(t, a.IsComplete())
	assert.True(t, a.IsRepairable)
}

func TestDamageAssessment_CompleteStep(t *testing.T) {
	a := NewDamageAssessment("owner", uuid.New(), DamageTheft, SeverityTotal, "stolen")
	steps := DamageTheft.AssessmentSteps()
	require.Len(t, steps, 5)

	require.NoError(t, a.CompleteStep(StepInitialDocumentation))
	assert.Equal(t, StepMissingItemsInventory, a.CurrentStep)
	assert.InDelta(t, 0.2, a.Progress(), 1e-9)

	// completing twice is recorded once and does not move the cursor
	require.NoError(t, a.CompleteStep(StepInitialDocumentation))
	assert.Len(t, a.CompletedSteps, 1)
	assert.Equal(t, StepMissingItemsInventory, a.CurrentStep)

	err := a.CompleteStep(StepMoldRiskEvaluation)
	assert.ErrorIs(t, err, ErrInvalidWorkflowStep)

	for _, s := range steps[1:] {
		require.NoError(t, a.CompleteStep(s))
	}
	assert.True(t, a.IsComplete())
	assert.Equal(t, 1.0, a.Progress())
	assert.Equal(t, StepReportGeneration, a.CurrentStep)

	wf := a.Workflow()
	assert.Equal(t, steps, wf.Steps)
	assert.True(t, wf.IsComplete)
}

func TestDamageType_Workflows(t *testing.T) {
	for _, dt := range AllDamageTypes() {
		steps := dt.AssessmentSteps()
		require.NotEmpty(t, steps, dt)
		assert.Equal(t, StepInitialDocumentation, steps[0], dt)
		assert.Equal(t, StepReportGeneration, steps[len(steps)-1], dt)
		for _, s := range steps {
			assert.NotEmpty(t, s.Description(), s)
		}
	}
	assert.Contains(t, DamageFire.AssessmentSteps(), StepSmokeAssessment)
	assert.Equal(t, DamageVandalism.AssessmentSteps(), DamageOther.AssessmentSteps())
}

func TestDamageAssessment_PhotoHelpers(t *testing.T) {
	a := NewDamageAssessment("owner", uuid.New(), DamageFire, SeverityMajor, "kitchen fire")
	assert.False(t, a.HasPhotoDocumentation())

	a.Photos = append(a.Photos,
		DamagePhoto{ID: uuid.New(), PhotoType: PhotoOverview},
		DamagePhoto{ID: uuid.New(), PhotoType: PhotoDetail},
		DamagePhoto{ID: uuid.New(), PhotoType: PhotoDetail},
	)
	assert.True(t, a.HasPhotoDocumentation())
	assert.Equal(t, 2, a.PhotoCount(PhotoDetail))
	assert.Equal(t, 0, a.PhotoCount(PhotoBefore))
}

func TestStepListScan(t *testing.T) {
	var steps StepList
	require.NoError(t, steps.Scan([]byte(`["initial_documentation","cost_estimation"]`)))
	assert.Equal(t, StepList{StepInitialDocumentation, StepCostEstimation}, steps)

	var empty StepList
	require.NoError(t, empty.Scan(nil))
	assert.Nil(t, empty)

	assert.Error(t, empty.Scan(42))
}

func TestCreateAssessmentRequest_Validate(t *testing.T) {
	sev := SeverityMajor
	valid := CreateAssessmentRequest{
		ItemID:              uuid.New(),
		ItemName:            "Television",
		DamageType:          DamageWater,
		IncidentDescription: "Ceiling leak dripped on the TV",
	}
	assert.NoError(t, valid.Validate())

	withSeverity := valid
	withSeverity.Severity = &sev
	withSeverity.IncidentDescription = ""
	assert.NoError(t, withSeverity.Validate())

	noDescription := valid
	noDescription.IncidentDescription = "  "
	assert.ErrorContains(t, noDescription.Validate(), "incident_description")

	badType := valid
	badType.DamageType = "meteor"
	assert.ErrorContains(t, badType.Validate(), "damage_type")

	future := time.Now().Add(48 * time.Hour)
	inFuture := valid
	inFuture.IncidentDate = &future
	assert.ErrorContains(t, inFuture.Validate(), "future")

	negative := decimal.NewFromInt(-5)
	negValue := valid
	negValue.ItemValue = &negative
	assert.ErrorContains(t, negValue.Validate(), "item_value")
}

func TestValidateMoney(t *testing.T) {
	tests := []struct {
		value string
		err   string
	}{
		{value: "20"},
		{value: "19.99"},
		{value: "19.990"},
		{value: "999999999999.99"},
		{value: "19.999", err: "at most 2 decimal places"},
		{value: "0.001", err: "at most 2 decimal places"},
		{value: "1000000000000", err: "must be less than"},
		{value: "-0.01", err: "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := decimal.RequireFromString(tt.value)
			err := validateMoney(&v, "item_value")
			if tt.err == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.err)
		})
	}
	assert.NoError(t, validateMoney(nil, "item_value"))

	tooPrecise := decimal.RequireFromString("250.125")
	req := UpdateSeverityRequest{Severity: SeverityMinor, RepairEstimate: &tooPrecise}
	assert.ErrorContains(t, req.Validate(), "decimal places")
}

func TestAddPhotoRequest(t *testing.T) {
	req := AddPhotoRequest{
		PhotoType:   PhotoDetail,
		Description: "Water line on the wall",
		ContentType: "image/jpeg",
		Data:        base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0xFF}),
	}
	require.NoError(t, req.Validate())
	data, err := req.DecodeData()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF}, data)

	req.Data = "%%%"
	_, err = req.DecodeData()
	assert.Error(t, err)

	req.PhotoType = "selfie"
	assert.Error(t, req.Validate())
}

func TestCreateCustomTemplateRequest_Validate(t *testing.T) {
	req := CreateCustomTemplateRequest{
		Name:      "My State Farm theft claim",
		Company:   CompanyStateFarm,
		ClaimType: ClaimTheft,
		Customizations: TemplateCustomizations{
			AdditionalFields: []string{"Serial Number"},
			Formatting: &FormattingOptions{
				PrimaryColor: "#FF0000",
				LogoPosition: LogoTopLeft,
				PageMargins:  50,
			},
		},
	}
	assert.NoError(t, req.Validate())

	req.Customizations.Formatting.PrimaryColor = "red"
	assert.ErrorContains(t, req.Validate(), "primary_color")

	req.Customizations.Formatting = nil
	req.Customizations.AdditionalFields = []string{""}
	assert.ErrorContains(t, req.Validate(), "additional_fields[0]")

	req.Customizations.AdditionalFields = nil
	req.Company = "acme"
	assert.ErrorContains(t, req.Validate(), "company")
}

func TestInsuranceCompany_DisplayName(t *testing.T) {
	assert.Equal(t, "State Farm", CompanyStateFarm.DisplayName())
	assert.Equal(t, "Liberty Mutual", CompanyLiberty.DisplayName())
	assert.Equal(t, "acme", InsuranceCompany("acme").DisplayName())
	assert.False(t, InsuranceCompany("acme").IsValid())
	for _, c := range AllInsuranceCompanies() {
		assert.True(t, c.IsValid(), c)
	}
}
