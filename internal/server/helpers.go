package server

import (
	"errors"
	"strconv"

	"devlink/internal/models"

	"github.com/gofiber/fiber/v2"
)

// currentUserID reads the authenticated user set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// parseIDParam parses a numeric route parameter. Malformed values map to a
// 400 "Bad request", matching what clients of the original API expect.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Bad request")
	}
	return uint(id), nil
}

// respondServiceError translates a service error into an HTTP response.
// notFoundStatus lets each route keep its historical not-found status;
// the API has always answered 400 on some lookups and 404 on others.
func respondServiceError(c *fiber.Ctx, err error, notFoundStatus int) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeValidation:
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case models.CodeNotFound:
			return models.RespondWithError(c, notFoundStatus, appErr)
		case models.CodeUnauthorized:
			return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
		case models.CodeConflict:
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewInternalError(err))
}
