package controllers

import (
	"net/http"
	"topup-store/middleware"
	"topup-store/models"
	"topup-store/services"

	"github.com/gin-gonic/gin"
)

// OrderController handles order endpoints.
type OrderController struct {
	orderService services.OrderService
}

// NewOrderController creates a new OrderController.
func NewOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CreateOrder handles POST /orders.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		respondNotAuthorized(c)
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	order, svcErr := oc.orderService.CreateOrder(c.Request.Context(), identity, &req)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondData(c, http.StatusCreated, order)
}

// ListOrders handles GET /orders: all orders for admins, own orders
// otherwise.
func (oc *OrderController) ListOrders(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		respondNotAuthorized(c)
		return
	}

	orders, svcErr := oc.orderService.ListOrders(c.Request.Context(), identity)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondList(c, orders, len(orders))
}

// GetOrder handles GET /orders/:id (owner or admin).
func (oc *OrderController) GetOrder(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		respondNotAuthorized(c)
		return
	}

	order, svcErr := oc.orderService.GetOrder(c.Request.Context(), identity, c.Param("id"))
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondData(c, http.StatusOK, order)
}

// UpdateOrderStatus handles PUT /orders/:id (admin).
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		respondNotAuthorized(c)
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	order, svcErr := oc.orderService.UpdateOrderStatus(c.Request.Context(), identity, c.Param("id"), req.Status)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondData(c, http.StatusOK, order)
}

// ListOrdersByStatus handles GET /orders/status/:status (admin).
func (oc *OrderController) ListOrdersByStatus(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		respondNotAuthorized(c)
		return
	}

	orders, svcErr := oc.orderService.ListOrdersByStatus(c.Request.Context(), identity, c.Param("status"))
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondList(c, orders, len(orders))
}
