package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cardapio-digital/domain/cart"
	"cardapio-digital/domain/dto"
	"cardapio-digital/domain/services"
	"cardapio-digital/interfaces/api/middleware"
	"cardapio-digital/pkg/logger"
	"cardapio-digital/pkg/utils"
)

// CartHandler serves the session cart and the order hand-off
type CartHandler struct {
	cartService     services.CartService
	checkoutService services.CheckoutService
}

func NewCartHandler(cartService services.CartService, checkoutService services.CheckoutService) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		checkoutService: checkoutService,
	}
}

func (h *CartHandler) Get(c *fiber.Ctx) error {
	resp, err := h.cartService.Get(c.UserContext(), middleware.GetCartSession(c))
	if err != nil {
		return cartError(c, err)
	}
	return utils.SuccessResponse(c, resp)
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.AddCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	resp, err := h.cartService.AddItem(ctx, middleware.GetCartSession(c), &req)
	if err != nil {
		return cartError(c, err)
	}
	return utils.SuccessResponse(c, resp)
}

func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	var req dto.UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	resp, err := h.cartService.UpdateQuantity(c.UserContext(), middleware.GetCartSession(c), c.Params("uniqueId"), req.Quantity)
	if err != nil {
		return cartError(c, err)
	}
	return utils.SuccessResponse(c, resp)
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	resp, err := h.cartService.RemoveItem(c.UserContext(), middleware.GetCartSession(c), c.Params("uniqueId"))
	if err != nil {
		return cartError(c, err)
	}
	return utils.SuccessResponse(c, resp)
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.cartService.Clear(c.UserContext(), middleware.GetCartSession(c)); err != nil {
		return cartError(c, err)
	}
	return utils.SuccessResponse(c, dto.CartToResponse(nil))
}

func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	resp, err := h.checkoutService.Checkout(ctx, middleware.GetCartSession(c), &req)
	if err != nil {
		return cartError(c, err)
	}
	return utils.SuccessResponse(c, resp)
}

func cartError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrMenuItemNotFound):
		return utils.NotFoundResponse(c, "Item não encontrado")
	case errors.Is(err, services.ErrCartLineNotFound):
		return utils.NotFoundResponse(c, "Item não está no carrinho")
	case errors.Is(err, services.ErrHalfNotSelectable):
		return utils.BadRequestResponse(c, "Meia porção disponível apenas para porções")
	case errors.Is(err, cart.ErrInvalidOption):
		return utils.BadRequestResponse(c, "Opção inválida")
	case errors.Is(err, services.ErrEmptyCart):
		return utils.BadRequestResponse(c, "Carrinho vazio")
	}
	return queryError(c, err)
}
