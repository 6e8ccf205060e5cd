package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cardapio-digital/domain/dto"
	"cardapio-digital/domain/repositories"
	"cardapio-digital/domain/services"
	"cardapio-digital/pkg/envelope"
	"cardapio-digital/pkg/utils"
)

// CatalogHandler serves the public storefront reads
type CatalogHandler struct {
	queryService services.CatalogQueryService
}

func NewCatalogHandler(queryService services.CatalogQueryService) *CatalogHandler {
	return &CatalogHandler{queryService: queryService}
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.queryService.ListCategories(c.UserContext())
	if err != nil {
		return queryError(c, err)
	}
	return utils.SuccessResponse(c, categories)
}

func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	category, err := h.queryService.GetCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return queryError(c, err)
	}
	if category == nil {
		return utils.NotFoundResponse(c, "Categoria não encontrada")
	}
	return utils.SuccessResponse(c, category)
}

func (h *CatalogHandler) GetCategoryBySlug(c *fiber.Ctx) error {
	category, err := h.queryService.GetCategoryBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return queryError(c, err)
	}
	if category == nil {
		return utils.NotFoundResponse(c, "Categoria não encontrada")
	}
	return utils.SuccessResponse(c, category)
}

// ListMenuItems answers with the gzip+base64 envelope when ?encoding=gzip
func (h *CatalogHandler) ListMenuItems(c *fiber.Ctx) error {
	ctx := c.UserContext()
	categoryID := c.Params("id")

	if enc := c.Query("encoding"); enc == "gzip" || enc == envelope.Encoding {
		payload, err := h.queryService.ListMenuItemsCompressed(ctx, categoryID)
		if err != nil {
			return queryError(c, err)
		}
		if payload == nil {
			return utils.NotFoundResponse(c, "Categoria não encontrada")
		}
		return utils.SuccessResponse(c, payload)
	}

	menu, err := h.queryService.ListMenuItems(ctx, categoryID)
	if err != nil {
		return queryError(c, err)
	}
	if menu == nil {
		return utils.NotFoundResponse(c, "Categoria não encontrada")
	}
	return utils.SuccessResponse(c, menu)
}

// ListAllMenuItems accepts ?q= (name or description) and ?categoryId= ("all" for any)
func (h *CatalogHandler) ListAllMenuItems(c *fiber.Ctx) error {
	filter := dto.MenuItemFilter{
		Query:      c.Query("q"),
		CategoryID: c.Query("categoryId"),
	}
	if filter.CategoryID == "all" {
		filter.CategoryID = ""
	}

	var (
		items []dto.MenuItemResponse
		err   error
	)
	if filter.IsEmpty() {
		items, err = h.queryService.ListAllMenuItems(c.UserContext())
	} else {
		items, err = h.queryService.SearchMenuItems(c.UserContext(), filter)
	}
	if err != nil {
		return queryError(c, err)
	}
	return utils.SuccessResponse(c, items)
}

func (h *CatalogHandler) ListPromotions(c *fiber.Ctx) error {
	items, err := h.queryService.ListPromotions(c.UserContext())
	if err != nil {
		return queryError(c, err)
	}
	return utils.SuccessResponse(c, items)
}

// queryError maps a failed read to 503 when the store is down, 500 otherwise
func queryError(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrStoreUnavailable) {
		return utils.ServiceUnavailableResponse(c, "Cardápio indisponível no momento")
	}
	return utils.InternalServerErrorResponse(c)
}
