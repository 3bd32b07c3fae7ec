package handlers

import (
	"net/http"

	"claim-service/internal/models"
	"claim-service/internal/services"
	utils "claim-service/shared/modules/utils"

	"github.com/gofiber/fiber/v3"
)

type ClaimDocumentHandler struct {
	documentService *services.ClaimDocumentService
}

func NewClaimDocumentHandler(documentService *services.ClaimDocumentService) *ClaimDocumentHandler {
	return &ClaimDocumentHandler{documentService: documentService}
}

func (h *ClaimDocumentHandler) Register(app *fiber.App) {
	protectedGr := app.Group(apiPrefix)
	protectedGr.Post("/claims/documents", h.GenerateDocument) // POST /claims/documents
}

// GenerateDocument renders a claim PDF. With async=true the document is
// queued and 202 is returned; the owner is notified when it is ready.
func (h *ClaimDocumentHandler) GenerateDocument(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return unauthorized(c)
	}

	var req models.ClaimDocumentRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := req.Validate(); err != nil {
		return validationFailed(c, err)
	}

	if req.Async {
		result, err := h.documentService.GenerateAsync(c.Context(), userID, req)
		if err != nil {
			return respondServiceError(c, err, "GENERATION_FAILED", "Failed to queue claim document")
		}
		status := http.StatusAccepted
		if result.Status == services.DocumentReady {
			status = http.StatusCreated
		}
		return c.Status(status).JSON(utils.CreateSuccessResponse(result))
	}

	result, err := h.documentService.Generate(c.Context(), userID, req)
	if err != nil {
		return respondServiceError(c, err, "GENERATION_FAILED", "Failed to generate claim document")
	}
	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(result))
}
