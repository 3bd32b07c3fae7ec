package handlers

import (
	"net/http"

	"claim-service/internal/models"
	"claim-service/internal/services"
	utils "claim-service/shared/modules/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/shopspring/decimal"
)

// ValuationHandler exposes the stateless valuation engine.
type ValuationHandler struct{}

func NewValuationHandler() *ValuationHandler {
	return &ValuationHandler{}
}

func (h *ValuationHandler) Register(app *fiber.App) {
	protectedGr := app.Group(apiPrefix)

	valuationGroup := protectedGr.Group("/valuation")
	valuationGroup.Post("/estimate", h.Estimate)    // POST /valuation/estimate
	valuationGroup.Get("/severities", h.Severities) // GET /valuation/severities
}

type severityInfo struct {
	Severity              models.DamageSeverity `json:"severity"`
	Label                 string                `json:"label"`
	Description           string                `json:"description"`
	Color                 string                `json:"color"`
	Icon                  string                `json:"icon"`
	ValueImpactPercentage decimal.Decimal       `json:"value_impact_percentage"`
}

func (h *ValuationHandler) Estimate(c fiber.Ctx) error {
	var req models.EstimateValueRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := req.Validate(); err != nil {
		return validationFailed(c, err)
	}

	result := services.EvaluateDamage(services.ValuationInput{
		OriginalValue: req.OriginalValue,
		Severity:      req.Severity,
		DamageType:    req.DamageType,
	})
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(result))
}

func (h *ValuationHandler) Severities(c fiber.Ctx) error {
	all := models.AllSeverities()
	list := make([]severityInfo, 0, len(all))
	for _, s := range all {
		list = append(list, severityInfo{
			Severity:              s,
			Label:                 s.Label(),
			Description:           s.Description(),
			Color:                 s.Color(),
			Icon:                  s.Icon(),
			ValueImpactPercentage: s.ValueImpactPercentage(),
		})
	}
	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(list, len(list)))
}
