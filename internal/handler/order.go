package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stylora-be/internal/domain"
	"stylora-be/internal/middleware"
	"stylora-be/internal/order"
)

type OrderHandler struct {
	orders order.Service
}

func NewOrderHandler(orders order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type placeOrderRequest struct {
	ShippingAddress       domain.Address       `json:"shippingAddress"`
	BillingAddress        domain.Address       `json:"billingAddress"`
	BillingSameAsShipping bool                 `json:"billingSameAsShipping"`
	PaymentMethod         domain.PaymentMethod `json:"paymentMethod"`
	CardDetails           domain.CardDetails   `json:"cardDetails"`
	SaveAddress           bool                 `json:"saveAddress"`
	SaveCard              bool                 `json:"saveCard"`
}

func (h *OrderHandler) Place(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "No token provided"})
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	placed, err := h.orders.PlaceOrder(c.Request().Context(), userID, order.PlaceOrderInput{
		ShippingAddress:       req.ShippingAddress,
		BillingAddress:        req.BillingAddress,
		BillingSameAsShipping: req.BillingSameAsShipping,
		PaymentMethod:         req.PaymentMethod,
		CardDetails:           req.CardDetails,
		SaveAddress:           req.SaveAddress,
		SaveCard:              req.SaveCard,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Order placed successfully",
		"order":   placed,
	})
}

func (h *OrderHandler) List(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "No token provided"})
	}

	orders := h.orders.ListOrders(c.Request().Context(), userID)
	return c.JSON(http.StatusOK, map[string]any{"orders": orders})
}

func (h *OrderHandler) Get(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "No token provided"})
	}

	o, err := h.orders.GetOrder(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"order": o})
}

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "No token provided"})
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	orderID := c.Param("id")
	if err := h.orders.UpdateStatus(c.Request().Context(), userID, orderID, req.Status); err != nil {
		return writeError(c, err)
	}

	o, err := h.orders.GetOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Order status updated",
		"order":   o,
	})
}

func (h *OrderHandler) SavedCheckout(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "No token provided"})
	}

	saved := h.orders.CheckoutDefaults(c.Request().Context(), userID)
	return c.JSON(http.StatusOK, saved)
}
