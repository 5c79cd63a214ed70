package handlers

import (
	"errors"

	"pantry-tracker/domain"
	"pantry-tracker/internal/api/presenters"
	"pantry-tracker/pkg/importer"

	"github.com/gofiber/fiber/v2"
)

type (
	ImportHandler interface {
		ImportSpreadsheet(c *fiber.Ctx) error
	}

	importHandler struct {
		importerService importer.ImporterService
	}
)

func NewImportHandler(importerService importer.ImporterService) ImportHandler {
	return &importHandler{importerService: importerService}
}

func (h *importHandler) ImportSpreadsheet(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.importerService.ImportSpreadsheet(c.Context(), file, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFile) || errors.Is(err, domain.ErrEmptySheet) {
			return presenters.ErrorResponse(c, fiber.StatusUnprocessableEntity, domain.MessageFailedImport, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedImport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessImport)
}
