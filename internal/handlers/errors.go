package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"claim-service/internal/models"
	"claim-service/internal/services"
	"claim-service/internal/worker"
	utils "claim-service/shared/modules/utils"

	"github.com/gofiber/fiber/v3"
)

const apiPrefix = "claim/protected/api/v1"

func unauthorized(c fiber.Ctx) error {
	return c.Status(http.StatusUnauthorized).JSON(
		utils.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
}

func invalidBody(c fiber.Ctx, err error) error {
	slog.Error("error parsing request", "error", err)
	return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
}

func validationFailed(c fiber.Ctx, err error) error {
	return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("VALIDATION_FAILED", err.Error()))
}

// respondServiceError maps service sentinels to HTTP statuses. Anything
// unrecognised is logged and reported with code/message.
func respondServiceError(c fiber.Ctx, err error, code, message string) error {
	var validationErr *services.TemplateValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(http.StatusUnprocessableEntity).JSON(
			utils.CreateDetailedErrorResponse("INVALID_TEMPLATE", "Template failed validation", validationErr.Issues))
	case errors.Is(err, services.ErrAssessmentNotFound):
		return c.Status(http.StatusNotFound).JSON(
			utils.CreateErrorResponse("NOT_FOUND", "Assessment not found"))
	case errors.Is(err, services.ErrTemplateNotFound):
		return c.Status(http.StatusNotFound).JSON(
			utils.CreateErrorResponse("NOT_FOUND", "Template not found"))
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(http.StatusForbidden).JSON(
			utils.CreateErrorResponse("FORBIDDEN", "You do not have permission to access this resource"))
	case errors.Is(err, services.ErrUnsupportedCompany), errors.Is(err, services.ErrInvalidClaimType):
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("VALIDATION_FAILED", err.Error()))
	case errors.Is(err, models.ErrInvalidWorkflowStep):
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_STEP", err.Error()))
	case errors.Is(err, worker.ErrQueueFull), errors.Is(err, worker.ErrPoolClosed):
		return c.Status(http.StatusServiceUnavailable).JSON(
			utils.CreateErrorResponse("BUSY", "Document generation is busy, try again later"))
	}

	slog.Error(message, "error", err)
	return c.Status(http.StatusInternalServerError).JSON(utils.CreateErrorResponse(code, message))
}
