package services

import (
	"strconv"
	"sync"
	"testing"

	"claim-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTemplate() models.ClaimTemplate {
	return models.ClaimTemplate{
		ID:              uuid.New(),
		CompanyName:     "Acme Insurance",
		ClaimType:       models.ClaimTheft,
		TemplateVersion: "2024.1",
		HeaderText:      "ACME PROPERTY CLAIM",
		RequiredFields:  []string{"name", "value"},
		FormSections: []models.FormSection{
			{Title: "Policy Information", Fields: []string{"Policy Number"}},
		},
		LegalDisclaimer:        "Original disclaimer",
		SubmissionInstructions: "Mail it",
		ContactInformation:     "1-800-ACME",
		Formatting: models.FormattingOptions{
			PrimaryColor: "#112233",
			FontFamily:   "Helvetica",
			LogoPosition: models.LogoTopLeft,
			PageMargins:  50,
		},
	}
}

func strPtr(s string) *string { return &s }

func TestValidateTemplate_Valid(t *testing.T) {
	assert.Empty(t, ValidateTemplate(sampleTemplate()))
}

func TestValidateTemplate_ReportsEveryIssueInOrder(t *testing.T) {
	issues := ValidateTemplate(models.ClaimTemplate{})
	assert.Equal(t, []string{
		"Company name is required",
		"At least one required field must be specified",
		"At least one form section must be defined",
		"Legal disclaimer is required",
	}, issues)
}

func TestValidateTemplate_SingleIssue(t *testing.T) {
	tmpl := sampleTemplate()
	tmpl.FormSections = nil
	assert.Equal(t, []string{"At least one form section must be defined"}, ValidateTemplate(tmpl))

	tmpl = sampleTemplate()
	tmpl.LegalDisclaimer = ""
	assert.Equal(t, []string{"Legal disclaimer is required"}, ValidateTemplate(tmpl))
}

func TestCustomizeTemplate_EmptyCustomizationsIsIdentity(t *testing.T) {
	tmpl := sampleTemplate()
	assert.Equal(t, tmpl, CustomizeTemplate(tmpl, models.TemplateCustomizations{}))
}

func TestCustomizeTemplate_AppendsAndOverrides(t *testing.T) {
	tmpl := sampleTemplate()

	out := CustomizeTemplate(tmpl, models.TemplateCustomizations{
		AdditionalFields: []string{"serialNumber"},
		CustomDisclaimer: strPtr("New disclaimer"),
	})

	assert.Equal(t, []string{"name", "value", "serialNumber"}, out.RequiredFields)
	assert.Equal(t, "New disclaimer", out.LegalDisclaimer)
	assert.Equal(t, tmpl.HeaderText, out.HeaderText)
	assert.Equal(t, tmpl.Formatting, out.Formatting)

	assert.Equal(t, []string{"name", "value"}, tmpl.RequiredFields)
	assert.Equal(t, "Original disclaimer", tmpl.LegalDisclaimer)
}

func TestCustomizeTemplate_HeaderAndFormatting(t *testing.T) {
	tmpl := sampleTemplate()
	formatting := models.FormattingOptions{
		PrimaryColor:     "#000000",
		SecondaryColor:   "#FFFFFF",
		FontFamily:       "Times",
		LogoPosition:     models.LogoTopRight,
		IncludeWatermark: true,
		PageMargins:      36,
	}

	out := CustomizeTemplate(tmpl, models.TemplateCustomizations{
		CustomHeaderText: strPtr("MY CLAIM"),
		Formatting:       &formatting,
	})

	assert.Equal(t, "MY CLAIM", out.HeaderText)
	assert.Equal(t, formatting, out.Formatting)
	assert.Equal(t, tmpl.RequiredFields, out.RequiredFields)
	assert.Equal(t, "ACME PROPERTY CLAIM", tmpl.HeaderText)
}

func TestCustomizeTemplate_DoesNotShareBackingArray(t *testing.T) {
	tmpl := sampleTemplate()
	// spare capacity would let a naive append write into the caller's array
	tmpl.RequiredFields = make([]string, 2, 8)
	copy(tmpl.RequiredFields, []string{"name", "value"})

	first := CustomizeTemplate(tmpl, models.TemplateCustomizations{AdditionalFields: []string{"a"}})
	second := CustomizeTemplate(tmpl, models.TemplateCustomizations{AdditionalFields: []string{"b"}})

	assert.Equal(t, []string{"name", "value", "a"}, first.RequiredFields)
	assert.Equal(t, []string{"name", "value", "b"}, second.RequiredFields)
	assert.Len(t, tmpl.RequiredFields, 2)

	first.FormSections[0].Fields[0] = "changed"
	assert.Equal(t, "Policy Number", tmpl.FormSections[0].Fields[0])
}

func TestCustomizeTemplate_KeepsValidity(t *testing.T) {
	out := CustomizeTemplate(sampleTemplate(), models.TemplateCustomizations{
		AdditionalFields: []string{"Receipt"},
	})
	assert.Empty(t, ValidateTemplate(out))
}

func TestCustomizeTemplate_ConcurrentOnSharedTemplate(t *testing.T) {
	shared := sampleTemplate()
	// spare capacity would let an in-place append leak between callers
	shared.RequiredFields = append(make([]string, 0, 32), shared.RequiredFields...)
	before := cloneTemplate(shared)

	const workers = 16
	results := make([]models.ClaimTemplate, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			header := "Header " + strconv.Itoa(i)
			results[i] = CustomizeTemplate(shared, models.TemplateCustomizations{
				CustomHeaderText: &header,
				AdditionalFields: []string{"extra-" + strconv.Itoa(i)},
			})
			assert.Empty(t, ValidateTemplate(results[i]))
		}()
	}
	wg.Wait()

	for i, out := range results {
		require.Len(t, out.RequiredFields, len(before.RequiredFields)+1)
		assert.Equal(t, "extra-"+strconv.Itoa(i), out.RequiredFields[len(out.RequiredFields)-1])
		assert.Equal(t, "Header "+strconv.Itoa(i), out.HeaderText)
	}
	assert.Equal(t, before, shared)
}
