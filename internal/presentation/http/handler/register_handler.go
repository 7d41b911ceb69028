package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/sypoint-pos/internal/application/service"
	"github.com/sangkips/sypoint-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/sypoint-pos/internal/presentation/http/dto/response"
)

// RegisterHandler exposes the cashier's register: cart, payment and void
type RegisterHandler struct {
	registerService *service.RegisterService
}

// NewRegisterHandler creates a new register handler
func NewRegisterHandler(registerService *service.RegisterService) *RegisterHandler {
	return &RegisterHandler{registerService: registerService}
}

// GetCart returns the current cart
func (h *RegisterHandler) GetCart(c *gin.Context) {
	cashier, ok := GetCashier(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	response.OK(c, "Cart retrieved successfully", h.registerService.Cart(cashier))
}

// AddItem handles adding a product to the cart
// @Summary Add item
// @Tags register
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.AddItemRequest true "Product reference and quantity"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /register/cart/items [post]
func (h *RegisterHandler) AddItem(c *gin.Context) {
	cashier, ok := GetCashier(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cart, err := h.registerService.AddItem(c.Request.Context(), cashier, req.Reference, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added to cart", cart)
}

// RemoveLine handles removing one cart line by its position
func (h *RegisterHandler) RemoveLine(c *gin.Context) {
	cashier, ok := GetCashier(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid line index")
		return
	}

	cart, err := h.registerService.RemoveLine(cashier, index)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed from cart", cart)
}

// Quote opens or refreshes the payment step and returns the breakdown
func (h *RegisterHandler) Quote(c *gin.Context) {
	cashier, ok := GetCashier(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	quote, err := h.registerService.Quote(cashier, paymentInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment quote computed", quote)
}

// CancelPayment closes the payment step and keeps the cart
func (h *RegisterHandler) CancelPayment(c *gin.Context) {
	cashier, ok := GetCashier(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	response.OK(c, "Payment cancelled", h.registerService.CancelPayment(cashier))
}

// Checkout handles completing a sale
// @Summary Checkout
// @Description Price the cart, verify payment, save the sale and emit its receipt
// @Tags register
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Client generated key"
// @Param request body request.PaymentRequest true "Payment"
// @Success 201 {object} response.APIResponse
// @Failure 402 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Router /register/checkout [post]
func (h *RegisterHandler) Checkout(c *gin.Context) {
	cashier, ok := GetCashier(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.registerService.Checkout(c.Request.Context(), cashier, paymentInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Payment successful"
	if result.ReceiptWarning != "" {
		message = "Transaction saved, but receipt failed"
	}
	response.Created(c, message, result)
}

// Void discards the cart once an admin code is accepted
func (h *RegisterHandler) Void(c *gin.Context) {
	cashier, ok := GetCashier(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.VoidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cart, err := h.registerService.Void(c.Request.Context(), cashier, req.AdminCode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction voided successfully", cart)
}

func paymentInput(req request.PaymentRequest) service.PaymentInput {
	return service.PaymentInput{
		Discount:      req.Discount,
		PaymentMethod: req.PaymentMethod,
		Tendered:      req.Tendered,
	}
}
