package handlers

import (
	"io"

	"github.com/sshrey15/car-rental-goa-backend/internal/services"
	"github.com/sshrey15/car-rental-goa-backend/internal/utils"
	"github.com/sshrey15/car-rental-goa-backend/internal/validators"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// GetGatewayKey hands the public key id to the checkout widget. The key
// secret never leaves the server.
func (h *PaymentHandler) GetGatewayKey(c *gin.Context) {
	utils.SuccessResponse(c, "gateway key retrieved", gin.H{
		"key_id": h.paymentService.GatewayKeyID(),
	})
}

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req validators.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}

	order, booking, err := h.paymentService.CreateOrder(
		c.Request.Context(),
		userID,
		req.CarID,
		req.PickupDate,
		req.ReturnDate,
		req.CouponCode,
		req.PayPartial,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "payment order created", gin.H{
		"order":   order,
		"booking": booking,
	})
}

func (h *PaymentHandler) PayRemaining(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req validators.PayRemainingRequest
	if !bindAndValidate(c, &req) {
		return
	}

	order, err := h.paymentService.PayRemaining(c.Request.Context(), req.BookingID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "payment order created", order)
}

func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req validators.VerifyPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	booking, err := h.paymentService.VerifyPayment(
		c.Request.Context(),
		req.BookingID,
		userID,
		req.RazorpayOrderID,
		req.RazorpayPaymentID,
		req.RazorpaySignature,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "payment verified", booking)
}

// Webhook receives gateway notifications. The raw body is needed for
// signature verification, so it is read before any JSON decoding.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.BadRequestResponse(c, utils.ErrInvalidInput)
		return
	}

	signature := c.GetHeader("X-Razorpay-Signature")
	if err := h.paymentService.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "webhook processed", nil)
}

func (h *PaymentHandler) Refund(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req validators.RefundRequest
	if !bindAndValidate(c, &req) {
		return
	}

	booking, err := h.paymentService.RefundBooking(c.Request.Context(), req.BookingID, userID, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "refund processed", booking)
}
