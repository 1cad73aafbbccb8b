package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"stylora-be/internal/cart"
	"stylora-be/internal/middleware"
)

type CartHandler struct {
	carts cart.Service
}

func NewCartHandler(carts cart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

func (h *CartHandler) Get(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "No token provided"})
	}

	items := h.carts.Get(c.Request().Context(), userID)
	return c.JSON(http.StatusOK, map[string]any{"cart": items})
}

type addItemRequest struct {
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductPrice decimal.Decimal `json:"productPrice"`
	ProductImage string          `json:"productImage"`
	Quantity     int             `json:"quantity"`
	Size         string          `json:"size"`
}

func (h *CartHandler) Add(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "No token provided"})
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	items, err := h.carts.Add(c.Request().Context(), cart.AddParams{
		UserID:       userID,
		ProductID:    req.ProductID,
		ProductName:  req.ProductName,
		ProductPrice: req.ProductPrice,
		ProductImage: req.ProductImage,
		Quantity:     req.Quantity,
		Size:         req.Size,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Item added to cart",
		"cart":    items,
	})
}

type removeItemRequest struct {
	ItemID string `json:"itemId"`
}

func (h *CartHandler) Remove(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "No token provided"})
	}

	var req removeItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.ItemID == "" {
		return badRequest(c, "Item id is required")
	}

	items, err := h.carts.Remove(c.Request().Context(), userID, req.ItemID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Item removed",
		"cart":    items,
	})
}

type updateQuantityRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "No token provided"})
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.ItemID == "" || req.Quantity == 0 {
		return badRequest(c, "Item id and quantity are required")
	}

	items, err := h.carts.SetQuantity(c.Request().Context(), userID, req.ItemID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Quantity updated",
		"cart":    items,
	})
}

func (h *CartHandler) Clear(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "No token provided"})
	}

	items, err := h.carts.Clear(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Cart cleared",
		"cart":    items,
	})
}
