package handlers

import (
	"net/http"

	"claim-service/internal/models"
	"claim-service/internal/services"
	utils "claim-service/shared/modules/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type TemplateHandler struct {
	templateService *services.ClaimTemplateService
}

func NewTemplateHandler(templateService *services.ClaimTemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

func (h *TemplateHandler) Register(app *fiber.App) {
	protectedGr := app.Group(apiPrefix)

	templateGroup := protectedGr.Group("/templates")
	templateGroup.Post("/validate", h.ValidateTemplate)
	templateGroup.Post("/customize", h.CustomizeTemplate)

	// saved templates are registered before the catalog route so
	// /templates/custom/:id is not read as a company and claim type
	templateGroup.Post("/custom", h.CreateCustomTemplate)
	templateGroup.Get("/custom", h.ListCustomTemplates)
	templateGroup.Get("/custom/:id", h.GetCustomTemplate)
	templateGroup.Delete("/custom/:id", h.DeleteCustomTemplate)

	templateGroup.Get("/:company/:claim_type", h.GetTemplate)
}

func (h *TemplateHandler) GetTemplate(c fiber.Ctx) error {
	company := models.InsuranceCompany(c.Params("company"))
	claimType := models.ClaimType(c.Params("claim_type"))

	tmpl, err := h.templateService.GetTemplate(c.Context(), company, claimType)
	if err != nil {
		return respondServiceError(c, err, "RETRIEVAL_FAILED", "Failed to retrieve template")
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(tmpl))
}

// ValidateTemplate reports template issues. An invalid template is still a
// successful request.
func (h *TemplateHandler) ValidateTemplate(c fiber.Ctx) error {
	var tmpl models.ClaimTemplate
	if err := c.Bind().Body(&tmpl); err != nil {
		return invalidBody(c, err)
	}

	issues := services.ValidateTemplate(tmpl)
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"valid":  len(issues) == 0,
		"issues": issues,
	}))
}

func (h *TemplateHandler) CustomizeTemplate(c fiber.Ctx) error {
	var req models.CustomizeTemplateRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := req.Validate(); err != nil {
		return validationFailed(c, err)
	}

	customized := services.CustomizeTemplate(req.Template, req.Customizations)
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(customized))
}

func (h *TemplateHandler) CreateCustomTemplate(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return unauthorized(c)
	}

	var req models.CreateCustomTemplateRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := req.Validate(); err != nil {
		return validationFailed(c, err)
	}

	custom, err := h.templateService.CreateCustomTemplate(c.Context(), userID, req)
	if err != nil {
		return respondServiceError(c, err, "CREATION_FAILED", "Failed to save custom template")
	}
	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(custom))
}

func (h *TemplateHandler) ListCustomTemplates(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return unauthorized(c)
	}

	list, err := h.templateService.ListCustomTemplates(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err, "RETRIEVAL_FAILED", "Failed to retrieve custom templates")
	}
	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(list, len(list)))
}

func (h *TemplateHandler) GetCustomTemplate(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_UUID", "Invalid template ID format"))
	}

	custom, err := h.templateService.GetCustomTemplate(c.Context(), id, userID)
	if err != nil {
		return respondServiceError(c, err, "RETRIEVAL_FAILED", "Failed to retrieve custom template")
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(custom))
}

func (h *TemplateHandler) DeleteCustomTemplate(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_UUID", "Invalid template ID format"))
	}

	if err := h.templateService.DeleteCustomTemplate(c.Context(), id, userID); err != nil {
		return respondServiceError(c, err, "DELETE_FAILED", "Failed to delete custom template")
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"deleted": id,
	}))
}
