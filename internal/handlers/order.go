// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/orbitcart/orbitcart-backend/internal/services"
	"github.com/orbitcart/orbitcart-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// POST /orders/checkout-session
func (h *OrderHandler) CreateCheckoutSession(c *gin.Context) {
	var req services.CheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	resp, err := h.orderService.CreateCheckoutSession(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Checkout session created successfully", resp)
}

// POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.orderService.Create(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Order placed successfully", order)
}

// GET /orders/pending
func (h *OrderHandler) ListPending(c *gin.Context) {
	h.listWith(c, h.orderService.ListPending, "Pending orders fetched successfully")
}

// GET /orders/confirmed
func (h *OrderHandler) ListConfirmed(c *gin.Context) {
	h.listWith(c, h.orderService.ListConfirmed, "Confirmed orders fetched successfully")
}

// GET /orders/delivery
func (h *OrderHandler) ListDelivery(c *gin.Context) {
	h.listWith(c, h.orderService.ListDelivery, "Delivery orders fetched successfully")
}

// GET /orders/returned
func (h *OrderHandler) ListReturned(c *gin.Context) {
	h.listWith(c, h.orderService.ListReturned, "Returned orders fetched successfully")
}

// GET /orders/admin
func (h *OrderHandler) ListForAdmin(c *gin.Context) {
	h.listWith(c, h.orderService.ListForAdmin, "Orders fetched successfully")
}

func (h *OrderHandler) listWith(c *gin.Context, list func(string, utils.PaginationOptions) (*utils.PagedResult, error), message string) {
	opts := utils.GetPaginationOptions(c)

	result, err := list(c.Query("searchTerm"), opts)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.PaginatedResponse(c, message, *result)
}

// GET /orders/:id
//
// A missing order is not an error here; the response carries null data.
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	order, err := h.orderService.GetByID(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Order fetched successfully", order)
}

// PATCH /orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	var req services.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(id, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Order status updated successfully", order)
}

// PATCH /orders/delivery-discount
func (h *OrderHandler) UpdateDeliveryAndDiscount(c *gin.Context) {
	var req services.DeliveryDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.orderService.UpdateDeliveryAndDiscount(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Order updated successfully", order)
}

// PATCH /orders/:id/pdf
func (h *OrderHandler) MarkPdfDownloaded(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	order, err := h.orderService.MarkPdfDownloaded(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Order marked as downloaded", order)
}

// DELETE /orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	if err := h.orderService.Delete(id); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Order deleted successfully", nil)
}
