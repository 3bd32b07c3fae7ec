package handlers

import (
	"net/http"

	"claim-service/internal/models"
	"claim-service/internal/services"
	utils "claim-service/shared/modules/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AssessmentHandler struct {
	assessmentService *services.DamageAssessmentService
}

func NewAssessmentHandler(assessmentService *services.DamageAssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

func (h *AssessmentHandler) Register(app *fiber.App) {
	protectedGr := app.Group(apiPrefix)

	assessmentGroup := protectedGr.Group("/assessments")
	assessmentGroup.Post("/", h.CreateAssessment)
	assessmentGroup.Get("/", h.ListAssessments)
	assessmentGroup.Get("/:id", h.GetAssessment)
	assessmentGroup.Put("/:id/severity", h.UpdateSeverity)
	assessmentGroup.Post("/:id/steps/:step/complete", h.CompleteStep)
	assessmentGroup.Post("/:id/photos", h.AddPhoto)
	assessmentGroup.Post("/:id/professional-contacted", h.MarkProfessionalContacted)
	assessmentGroup.Get("/:id/valuation", h.GetValuation)
	assessmentGroup.Post("/:id/report", h.GenerateReport)

	protectedGr.Get("/assessment-templates/:damage_type", h.GetAssessmentTemplate)
}

func parseAssessmentID(c fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

func invalidAssessmentID(c fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(
		utils.CreateErrorResponse("INVALID_UUID", "Invalid assessment ID format"))
}

func (h *AssessmentHandler) CreateAssessment(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return unauthorized(c)
	}

	var req models.CreateAssessmentRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := req.Validate(); err != nil {
		return validationFailed(c, err)
	}

	assessment, suggestion, err := h.assessmentService.CreateAssessment(c.Context(), userID, req)
	if err != nil {
		return respondServiceError(c, err, "CREATION_FAILED", "Failed to create assessment")
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(map[string]any{
		"assessment":          assessment,
		"workflow":            assessment.Workflow(),
		"severity_suggestion": suggestion,
	}))
}

// ListAssessments lists the caller's assessments, optionally for one item.
func (h *AssessmentHandler) ListAssessments(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return unauthorized(c)
	}

	var (
		list []models.DamageAssessment
		err  error
	)
	if raw := c.Query("item_id"); raw != "" {
		itemID, perr := uuid.Parse(raw)
		if perr != nil {
			return c.Status(http.StatusBadRequest).JSON(
				utils.CreateErrorResponse("INVALID_UUID", "Invalid item ID format"))
		}
		list, err = h.assessmentService.ListAssessmentsByItem(c.Context(), userID, itemID)
	} else {
		list, err = h.assessmentService.ListAssessmentsByOwner(c.Context(), userID)
	}
	if err != nil {
		return respondServiceError(c, err, "RETRIEVAL_FAILED", "Failed to retrieve assessments")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(list, len(list)))
}

func (h *AssessmentHandler) GetAssessment(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return unauthorized(c)
	}
	id, ok := parseAssessmentID(c)
	if !ok {
		return invalidAssessmentID(c)
	}

	assessment, err := h.assessmentService.GetAssessment(c.Context(), id, userID)
	if err != nil {
		return respondServiceError(c, err, "RETRIEVAL_FAILED", "Failed to retrieve assessment")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"assessment": assessment,
		"workflow":   assessment.Workflow(),
	}))
}

func (h *AssessmentHandler) UpdateSeverity(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return unauthorized(c)
	}
	id, ok := parseAssessmentID(c)
	if !ok {
		return invalidAssessmentID(c)
	}

	var req models.UpdateSeverityRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := req.Validate(); err != nil {
		return validationFailed(c, err)
	}

	assessment, err := h.assessmentService.UpdateSeverity(c.Context(), id, userID, req)
	if err != nil {
		return respondServiceError(c, err, "UPDATE_FAILED", "Failed to update assessment severity")
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(assessment))
}

func (h *AssessmentHandler) CompleteStep(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return unauthorized(c)
	}
	id, ok := parseAssessmentID(c)
	if !ok {
		return invalidAssessmentID(c)
	}

	step := models.AssessmentStep(c.Params("step"))
	assessment, err := h.assessmentService.CompleteStep(c.Context(), id, userID, step)
	if err != nil {
		return respondServiceError(c, err, "UPDATE_FAILED", "Failed to complete assessment step")
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(assessment.Workflow()))
}

func (h *AssessmentHandler) AddPhoto(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return unauthorized(c)
	}
	id, ok := parseAssessmentID(c)
	if !ok {
		return invalidAssessmentID(c)
	}

	var req models.AddPhotoRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := req.Validate(); err != nil {
		return validationFailed(c, err)
	}

	photo, err := h.assessmentService.AddPhoto(c.Context(), id, userID, req)
	if err != nil {
		return respondServiceError(c, err, "UPLOAD_FAILED", "Failed to add photo")
	}
	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(photo))
}

func (h *AssessmentHandler) MarkProfessionalContacted(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return unauthorized(c)
	}
	id, ok := parseAssessmentID(c)
	if !ok {
		return invalidAssessmentID(c)
	}

	var req models.ProfessionalContactedRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := req.Validate(); err != nil {
		return validationFailed(c, err)
	}

	assessment, err := h.assessmentService.MarkProfessionalContacted(c.Context(), id, userID, req)
	if err != nil {
		return respondServiceError(c, err, "UPDATE_FAILED", "Failed to update assessment")
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(assessment))
}

func (h *AssessmentHandler) GetValuation(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return unauthorized(c)
	}
	id, ok := parseAssessmentID(c)
	if !ok {
		return invalidAssessmentID(c)
	}

	result, err := h.assessmentService.Valuation(c.Context(), id, userID)
	if err != nil {
		return respondServiceError(c, err, "RETRIEVAL_FAILED", "Failed to value assessment")
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(result))
}

func (h *AssessmentHandler) GenerateReport(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return unauthorized(c)
	}
	id, ok := parseAssessmentID(c)
	if !ok {
		return invalidAssessmentID(c)
	}

	report, err := h.assessmentService.GenerateReport(c.Context(), id, userID)
	if err != nil {
		return respondServiceError(c, err, "REPORT_FAILED", "Failed to generate assessment report")
	}
	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(report))
}

type workflowStepInfo struct {
	Step        models.AssessmentStep `json:"step"`
	Label       string                `json:"label"`
	Description string                `json:"description"`
}

// GetAssessmentTemplate returns the checklist and workflow for a damage type.
func (h *AssessmentHandler) GetAssessmentTemplate(c fiber.Ctx) error {
	damageType := models.DamageType(c.Params("damage_type"))
	if !damageType.IsValid() {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("VALIDATION_FAILED", "Unknown damage type: "+string(damageType)))
	}

	steps := damageType.AssessmentSteps()
	workflow := make([]workflowStepInfo, 0, len(steps))
	for _, s := range steps {
		workflow = append(workflow, workflowStepInfo{Step: s, Label: s.Label(), Description: s.Description()})
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"template": services.AssessmentTemplate(damageType),
		"workflow": workflow,
	}))
}
