package services

import "claim-service/internal/models"

func check(description, category string, required bool, help string) models.ChecklistItem {
	return models.ChecklistItem{Description: description, Category: category, IsRequired: required, HelpText: &help}
}

func photoReq(description string, photoType models.DamagePhotoType, guidelines string) models.PhotoRequirement {
	return models.PhotoRequirement{Description: description, PhotoType: photoType, IsRequired: true, Guidelines: &guidelines}
}

// AssessmentTemplate returns the checklist and photo guidance for a damage type.
// Types without a dedicated template share the general one.
func AssessmentTemplate(damageType models.DamageType) models.AssessmentTemplate {
	switch damageType {
	case models.DamageFire:
		return models.AssessmentTemplate{
			DamageType: damageType,
			ChecklistItems: []models.ChecklistItem{
				check("Check for heat damage to surface materials", "Heat Damage", true, "Look for warping, melting, or discoloration"),
				check("Assess smoke damage and odor infiltration", "Smoke Damage", true, "Note any soot deposits or persistent smoke odors"),
				check("Document structural integrity", "Structural", true, "Check for compromised joints, supports, or frameworks"),
			},
			PhotoRequirements: []models.PhotoRequirement{
				photoReq("Overall view showing fire damage extent", models.PhotoOverview, "Capture the full scope of fire damage from multiple angles"),
				photoReq("Close-up of heat damage details", models.PhotoDetail, "Focus on specific areas showing heat-related damage"),
				photoReq("Smoke damage documentation", models.PhotoDetail, "Show soot deposits and smoke staining"),
			},
			RecommendedMeasurements: []string{"Affected area dimensions", "Temperature readings if available", "Air quality measurements"},
		}

	case models.DamageWater:
		return models.AssessmentTemplate{
			DamageType: damageType,
			ChecklistItems: []models.ChecklistItem{
				check("Identify water source and type", "Water Source", true, "Determine if clean water, gray water, or black water"),
				check("Measure moisture levels", "Moisture Assessment", true, "Use moisture meter if available or note visible moisture"),
				check("Check for mold risk factors", "Mold Risk", true, "Look for conditions that promote mold growth"),
			},
			PhotoRequirements: []models.PhotoRequirement{
				photoReq("Water damage extent overview", models.PhotoOverview, "Show the full area affected by water damage"),
				photoReq("Water source documentation", models.PhotoDetail, "Photograph the source of water intrusion"),
			},
			RecommendedMeasurements: []string{"Moisture readings", "Affected area dimensions", "Water depth if standing"},
		}

	case models.DamageTheft:
		return models.AssessmentTemplate{
			DamageType: damageType,
			ChecklistItems: []models.ChecklistItem{
				check("Document all missing items", "Missing Items", true, "Create comprehensive list of stolen property"),
				check("Assess point of entry", "Security Breach", true, "Document how access was gained"),
				check("Check for vandalism or additional damage", "Additional Damage", false, "Note any damage beyond the theft itself"),
			},
			PhotoRequirements: []models.PhotoRequirement{
				photoReq("Point of entry documentation", models.PhotoDetail, "Show how entry was gained - damaged doors, windows, etc."),
				photoReq("Area where items were taken", models.PhotoOverview, "Show the spaces where items were removed from"),
			},
			RecommendedMeasurements: []string{"Entry point dimensions", "Affected room/area sizes"},
		}

	case models.DamageNaturalDisaster:
		return models.AssessmentTemplate{
			DamageType: damageType,
			ChecklistItems: []models.ChecklistItem{
				check("Assess structural safety", "Safety", true, "Check for immediate safety hazards"),
				check("Document environmental damage", "Environmental", true, "Note wind, water, debris, or other environmental damage"),
				check("Identify emergency needs", "Emergency Response", true, "Determine immediate habitability and safety requirements"),
			},
			PhotoRequirements: []models.PhotoRequirement{
				photoReq("Overall disaster impact", models.PhotoOverview, "Wide shots showing the scope of damage"),
				photoReq("Specific damage details", models.PhotoDetail, "Close-ups of specific damage to individual items or areas"),
			},
			RecommendedMeasurements: []string{"Affected area dimensions", "Debris measurements", "Water levels if applicable"},
		}

	default:
		return models.AssessmentTemplate{
			DamageType: damageType,
			ChecklistItems: []models.ChecklistItem{
				check("Document damage extent", "General Assessment", true, "Thoroughly document all visible damage"),
				check("Determine repairability", "Repair Assessment", true, "Assess whether item can be repaired or must be replaced"),
			},
			PhotoRequirements: []models.PhotoRequirement{
				photoReq("Before and after comparison", models.PhotoComparison, "Show the item's condition before and after damage if possible"),
				photoReq("Damage detail documentation", models.PhotoDetail, "Close-up photos of specific damage"),
			},
			RecommendedMeasurements: []string{"Damaged area dimensions", "Depth of damage if applicable"},
		}
	}
}
