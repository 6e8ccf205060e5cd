package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"cardapio-digital/domain/dto"
	"cardapio-digital/domain/services"
	"cardapio-digital/pkg/logger"
)

// AdminCatalogHandler exposes the form-encoded catalog mutations
type AdminCatalogHandler struct {
	actionService services.CatalogActionService
}

func NewAdminCatalogHandler(actionService services.CatalogActionService) *AdminCatalogHandler {
	return &AdminCatalogHandler{actionService: actionService}
}

// ========== Categories ==========

func (h *AdminCatalogHandler) CreateCategory(c *fiber.Ctx) error {
	form, err := dto.ParseCategoryForm(formValues(c))
	if err != nil {
		return actionResponse(c, dto.ActionInvalid(err), fiber.StatusCreated)
	}
	return actionResponse(c, h.actionService.CreateCategory(c.UserContext(), form), fiber.StatusCreated)
}

func (h *AdminCatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	form, err := dto.ParseCategoryForm(formValues(c))
	if err != nil {
		return actionResponse(c, dto.ActionInvalid(err), fiber.StatusOK)
	}
	return actionResponse(c, h.actionService.UpdateCategory(c.UserContext(), c.Params("id"), form), fiber.StatusOK)
}

func (h *AdminCatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	return actionResponse(c, h.actionService.DeleteCategory(c.UserContext(), c.Params("id")), fiber.StatusOK)
}

// ========== Menu items ==========

func (h *AdminCatalogHandler) CreateMenuItem(c *fiber.Ctx) error {
	form, err := dto.ParseMenuItemForm(formValues(c))
	if err != nil {
		return actionResponse(c, dto.ActionInvalid(err), fiber.StatusCreated)
	}
	return actionResponse(c, h.actionService.CreateMenuItem(c.UserContext(), form), fiber.StatusCreated)
}

func (h *AdminCatalogHandler) UpdateMenuItem(c *fiber.Ctx) error {
	form, err := dto.ParseMenuItemForm(formValues(c))
	if err != nil {
		return actionResponse(c, dto.ActionInvalid(err), fiber.StatusOK)
	}
	return actionResponse(c, h.actionService.UpdateMenuItem(c.UserContext(), c.Params("id"), form), fiber.StatusOK)
}

func (h *AdminCatalogHandler) DeleteMenuItem(c *fiber.Ctx) error {
	return actionResponse(c, h.actionService.DeleteMenuItem(c.UserContext(), c.Params("id")), fiber.StatusOK)
}

// formValues reads an urlencoded or multipart body into url.Values
func formValues(c *fiber.Ctx) url.Values {
	values := url.Values{}

	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		for key, vs := range mf.Value {
			values[key] = append(values[key], vs...)
		}
		return values
	}

	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return values
}

// actionResponse writes the ActionResult as-is; the status code follows its outcome
func actionResponse(c *fiber.Ctx, result *dto.ActionResult, okStatus int) error {
	status := okStatus
	switch {
	case result.Success:
	case result.IsValidationFailure():
		status = fiber.StatusBadRequest
	case result.Code == dto.CodeNotFound:
		status = fiber.StatusNotFound
	default:
		status = fiber.StatusInternalServerError
	}

	if !result.Success {
		logger.WarnContext(c.UserContext(), "Admin action failed",
			"path", c.Path(),
			"status", status,
			"error", result.Error,
		)
	}
	return c.Status(status).JSON(result)
}
