package services

import (
	"fmt"
	"strings"
	"time"

	"claim-service/internal/models"
)

const reportTimeLayout = "Jan 2, 2006 at 3:04 PM MST"

// RenderAssessmentReport renders the plain-text report for an assessment.
func RenderAssessmentReport(a *models.DamageAssessment, generatedAt time.Time) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}
	heading := func(title string) {
		line("")
		line("%s", title)
		line("%s", strings.Repeat("=", len(title)))
	}

	line("DAMAGE ASSESSMENT REPORT")
	line("========================")
	line("")
	line("Assessment ID: %s", a.ID)
	line("Date: %s", a.CreatedAt.Format(reportTimeLayout))
	line("Item: %s", a.ItemName)
	line("Damage Type: %s", a.DamageType.Label())
	line("Severity: %s", a.Severity.Label())

	heading("INCIDENT DETAILS")
	if a.IncidentDate != nil {
		line("Incident Date: %s", a.IncidentDate.Format(reportTimeLayout))
	}
	if a.IncidentLocation != nil && *a.IncidentLocation != "" {
		line("Location: %s", *a.IncidentLocation)
	}
	line("Description: %s", a.IncidentDescription)

	heading("ASSESSMENT PROGRESS")
	line("Progress: %d%% Complete", int(a.Progress()*100))
	line("Completed Steps: %d/%d", len(a.CompletedSteps), len(a.DamageType.AssessmentSteps()))
	line("Current Step: %s", a.CurrentStep.Label())

	heading("DAMAGE EVALUATION")
	line("Severity: %s (%s%% value impact)", a.Severity.Label(), a.Severity.ValueImpactPercentage().Shift(2).String())
	line("Repairable: %s", yesNo(a.IsRepairable))
	if a.EstimatedRepairTime != nil {
		line("Estimated Repair Time: %s", *a.EstimatedRepairTime)
	}
	if a.ItemValue != nil {
		line("Original Value: $%s", a.ItemValue.StringFixed(2))
	}
	line("Estimated Current Value: %s", formatEstimate(EstimateCurrentValue(a.ItemValue, a.Severity)))
	if a.RepairEstimate != nil {
		line("Repair Estimate: $%s", a.RepairEstimate.StringFixed(2))
	}
	if a.ReplacementCost != nil {
		line("Replacement Cost: $%s", a.ReplacementCost.StringFixed(2))
	}
	if ShouldRecommendProfessional(a.Severity, a.DamageType) {
		line("Professional Assessment: Recommended")
		line("Reason: %s", ProfessionalRecommendationReason(a.Severity, a.DamageType))
		line("Professional Contacted: %s", yesNo(a.ProfessionalContacted))
	}

	if strings.TrimSpace(a.AssessmentNotes) != "" {
		heading("NOTES")
		line("%s", a.AssessmentNotes)
	}

	if a.ClaimNumber != nil || a.AdjustorName != nil {
		heading("INSURANCE")
		if a.ClaimNumber != nil {
			line("Claim Number: %s", *a.ClaimNumber)
		}
		if a.AdjustorName != nil {
			line("Adjustor: %s", *a.AdjustorName)
		}
		if a.AdjustorContact != nil {
			line("Adjustor Contact: %s", *a.AdjustorContact)
		}
	}

	heading("DOCUMENTATION")
	line("Before Photos: %d", a.PhotoCount(models.PhotoBefore))
	line("After Photos: %d", a.PhotoCount(models.PhotoAfter))
	line("Detail Photos: %d", len(a.Photos)-a.PhotoCount(models.PhotoBefore)-a.PhotoCount(models.PhotoAfter))
	line("")
	line("Report Generated: %s", generatedAt.Format(reportTimeLayout))

	return b.String()
}

// formatEstimate prefixes a known estimate with a dollar sign.
func formatEstimate(estimate string) string {
	if estimate == UnknownValue {
		return estimate
	}
	return "$" + estimate
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
