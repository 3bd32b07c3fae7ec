package models

import "github.com/shopspring/decimal"

// ============================================================================
// DAMAGE CLASSIFICATION
// ============================================================================

type DamageSeverity string

const (
	SeverityMinor    DamageSeverity = "minor"
	SeverityModerate DamageSeverity = "moderate"
	SeverityMajor    DamageSeverity = "major"
	SeveritySevere   DamageSeverity = "severe"
	SeverityTotal    DamageSeverity = "total_loss"
)

var (
	impactMinor    = decimal.RequireFromString("0.10")
	impactModerate = decimal.RequireFromString("0.35")
	impactMajor    = decimal.RequireFromString("0.75")
	impactSevere   = decimal.RequireFromString("0.90")
	impactTotal    = decimal.RequireFromString("1.00")
)

// AllSeverities lists severities from least to most extensive.
func AllSeverities() []DamageSeverity {
	return []DamageSeverity{
		SeverityMinor,
		SeverityModerate,
		SeverityMajor,
		SeveritySevere,
		SeverityTotal,
	}
}

func (s DamageSeverity) IsValid() bool {
	switch s {
	case SeverityMinor, SeverityModerate, SeverityMajor, SeveritySevere, SeverityTotal:
		return true
	default:
		return false
	}
}

// ValueImpactPercentage is the fraction of value lost at this severity, in [0, 1].
// Unknown severities carry no impact.
func (s DamageSeverity) ValueImpactPercentage() decimal.Decimal {
	switch s {
	case SeverityMinor:
		return impactMinor
	case SeverityModerate:
		return impactModerate
	case SeverityMajor:
		return impactMajor
	case SeveritySevere:
		return impactSevere
	case SeverityTotal:
		return impactTotal
	default:
		return decimal.Zero
	}
}

func (s DamageSeverity) Label() string {
	switch s {
	case SeverityMinor:
		return "Minor"
	case SeverityModerate:
		return "Moderate"
	case SeverityMajor:
		return "Major"
	case SeveritySevere:
		return "Severe"
	case SeverityTotal:
		return "Total Loss"
	default:
		return string(s)
	}
}

func (s DamageSeverity) Description() string {
	switch s {
	case SeverityMinor:
		return "Cosmetic damage, easily repairable"
	case SeverityModerate:
		return "Functional damage, moderate repair needed"
	case SeverityMajor:
		return "Significant damage, extensive repair or replacement needed"
	case SeveritySevere:
		return "Severe damage, near-total loss with minimal salvage value"
	case SeverityTotal:
		return "Complete loss, item cannot be repaired"
	default:
		return ""
	}
}

func (s DamageSeverity) Color() string {
	switch s {
	case SeverityMinor:
		return "#34C759"
	case SeverityModerate:
		return "#FF9500"
	case SeverityMajor:
		return "#FF6B35"
	case SeveritySevere:
		return "#CC0000"
	case SeverityTotal:
		return "#FF3B30"
	default:
		return "#8E8E93"
	}
}

func (s DamageSeverity) Icon() string {
	switch s {
	case SeverityMinor:
		return "checkmark.circle"
	case SeverityModerate:
		return "exclamationmark.triangle"
	case SeverityMajor:
		return "exclamationmark.octagon"
	case SeveritySevere:
		return "flame"
	case SeverityTotal:
		return "xmark.circle"
	default:
		return "questionmark.circle"
	}
}

type DamageType string

const (
	DamageFire            DamageType = "fire"
	DamageWater           DamageType = "water"
	DamageTheft           DamageType = "theft"
	DamageNaturalDisaster DamageType = "natural_disaster"
	DamageVandalism       DamageType = "vandalism"
	DamageAccidental      DamageType = "accidental"
	DamageWear            DamageType = "wear_and_tear"
	DamageOther           DamageType = "other"
)

func AllDamageTypes() []DamageType {
	return []DamageType{
		DamageFire,
		DamageWater,
		DamageTheft,
		DamageNaturalDisaster,
		DamageVandalism,
		DamageAccidental,
		DamageWear,
		DamageOther,
	}
}

func (t DamageType) IsValid() bool {
	switch t {
	case DamageFire, DamageWater, DamageTheft, DamageNaturalDisaster,
		DamageVandalism, DamageAccidental, DamageWear, DamageOther:
		return true
	default:
		return false
	}
}

func (t DamageType) Label() string {
	switch t {
	case DamageFire:
		return "Fire"
	case DamageWater:
		return "Water"
	case DamageTheft:
		return "Theft"
	case DamageNaturalDisaster:
		return "Natural Disaster"
	case DamageVandalism:
		return "Vandalism"
	case DamageAccidental:
		return "Accidental"
	case DamageWear:
		return "Wear & Tear"
	case DamageOther:
		return "Other"
	default:
		return string(t)
	}
}

// AssessmentSteps is the ordered workflow for assessing this kind of damage.
func (t DamageType) AssessmentSteps() []AssessmentStep {
	switch t {
	case DamageFire:
		return []AssessmentStep{StepInitialDocumentation, StepSmokeAssessment, StepHeatDamageEvaluation, StepStructuralCheck, StepCostEstimation, StepReportGeneration}
	case DamageWater:
		return []AssessmentStep{StepInitialDocumentation, StepWaterSourceIdentification, StepMoistureAssessment, StepMoldRiskEvaluation, StepCostEstimation, StepReportGeneration}
	case DamageTheft:
		return []AssessmentStep{StepInitialDocumentation, StepMissingItemsInventory, StepSecurityBreach, StepReplacementCostCalculation, StepReportGeneration}
	case DamageNaturalDisaster:
		return []AssessmentStep{StepInitialDocumentation, StepStructuralAssessment, StepEnvironmentalImpact, StepEmergencyNeeds, StepCostEstimation, StepReportGeneration}
	default:
		return []AssessmentStep{StepInitialDocumentation, StepDamageExtentAssessment, StepRepairabilityEvaluation, StepCostEstimation, StepReportGeneration}
	}
}

type AssessmentStep string

const (
	StepInitialDocumentation       AssessmentStep = "initial_documentation"
	StepSmokeAssessment            AssessmentStep = "smoke_assessment"
	StepHeatDamageEvaluation       AssessmentStep = "heat_damage_evaluation"
	StepStructuralCheck            AssessmentStep = "structural_check"
	StepWaterSourceIdentification  AssessmentStep = "water_source_identification"
	StepMoistureAssessment         AssessmentStep = "moisture_assessment"
	StepMoldRiskEvaluation         AssessmentStep = "mold_risk_evaluation"
	StepMissingItemsInventory      AssessmentStep = "missing_items_inventory"
	StepSecurityBreach             AssessmentStep = "security_breach"
	StepStructuralAssessment       AssessmentStep = "structural_assessment"
	StepEnvironmentalImpact        AssessmentStep = "environmental_impact"
	StepEmergencyNeeds             AssessmentStep = "emergency_needs"
	StepDamageExtentAssessment     AssessmentStep = "damage_extent_assessment"
	StepRepairabilityEvaluation    AssessmentStep = "repairability_evaluation"
	StepReplacementCostCalculation AssessmentStep = "replacement_cost_calculation"
	StepCostEstimation             AssessmentStep = "cost_estimation"
	StepReportGeneration           AssessmentStep = "report_generation"
)

func (s AssessmentStep) Label() string {
	switch s {
	case StepInitialDocumentation:
		return "Initial Documentation"
	case StepSmokeAssessment:
		return "Smoke Damage Assessment"
	case StepHeatDamageEvaluation:
		return "Heat Damage Evaluation"
	case StepStructuralCheck:
		return "Structural Check"
	case StepWaterSourceIdentification:
		return "Water Source Identification"
	case StepMoistureAssessment:
		return "Moisture Assessment"
	case StepMoldRiskEvaluation:
		return "Mold Risk Evaluation"
	case StepMissingItemsInventory:
		return "Missing Items Inventory"
	case StepSecurityBreach:
		return "Security Breach Assessment"
	case StepStructuralAssessment:
		return "Structural Assessment"
	case StepEnvironmentalImpact:
		return "Environmental Impact"
	case StepEmergencyNeeds:
		return "Emergency Needs"
	case StepDamageExtentAssessment:
		return "Damage Extent Assessment"
	case StepRepairabilityEvaluation:
		return "Repairability Evaluation"
	case StepReplacementCostCalculation:
		return "Replacement Cost Calculation"
	case StepCostEstimation:
		return "Cost Estimation"
	case StepReportGeneration:
		return "Report Generation"
	default:
		return string(s)
	}
}

func (s AssessmentStep) Description() string {
	switch s {
	case StepInitialDocumentation:
		return "Document the initial state and take overview photos"
	case StepSmokeAssessment:
		return "Assess smoke damage and odor infiltration"
	case StepHeatDamageEvaluation:
		return "Evaluate heat-related damage to materials"
	case StepStructuralCheck, StepStructuralAssessment:
		return "Check for structural integrity issues"
	case StepWaterSourceIdentification:
		return "Identify the source and type of water damage"
	case StepMoistureAssessment:
		return "Measure moisture levels and affected areas"
	case StepMoldRiskEvaluation:
		return "Assess potential for mold growth"
	case StepMissingItemsInventory:
		return "Document all missing or stolen items"
	case StepSecurityBreach:
		return "Assess how entry was gained and security failures"
	case StepEnvironmentalImpact:
		return "Evaluate environmental effects from disaster"
	case StepEmergencyNeeds:
		return "Identify immediate safety and habitability concerns"
	case StepDamageExtentAssessment:
		return "Thoroughly assess the extent of damage"
	case StepRepairabilityEvaluation:
		return "Determine if items can be repaired or must be replaced"
	case StepReplacementCostCalculation, StepCostEstimation:
		return "Calculate repair or replacement costs"
	case StepReportGeneration:
		return "Generate comprehensive assessment report"
	default:
		return ""
	}
}

type DamagePhotoType string

const (
	PhotoBefore     DamagePhotoType = "before"
	PhotoAfter      DamagePhotoType = "after"
	PhotoDetail     DamagePhotoType = "detail"
	PhotoOverview   DamagePhotoType = "overview"
	PhotoComparison DamagePhotoType = "comparison"
)

func (p DamagePhotoType) IsValid() bool {
	switch p {
	case PhotoBefore, PhotoAfter, PhotoDetail, PhotoOverview, PhotoComparison:
		return true
	default:
		return false
	}
}
