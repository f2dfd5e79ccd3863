package routes

import (
	"github.com/sshrey15/car-rental-goa-backend/internal/handlers"
	"github.com/sshrey15/car-rental-goa-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPaymentRoutes sets up checkout, verification, refund and webhook routes
func SetupPaymentRoutes(r *gin.RouterGroup, paymentHandler *handlers.PaymentHandler, jwtSecret string) {
	// Gateway webhook, authenticated by its own signature
	r.POST("/webhooks/razorpay", paymentHandler.Webhook)

	payments := r.Group("/payments")
	payments.Use(middleware.AuthRequired(jwtSecret))
	{
		payments.GET("/key", paymentHandler.GetGatewayKey)
		payments.POST("/order", paymentHandler.CreateOrder)
		payments.POST("/remaining", paymentHandler.PayRemaining)
		payments.POST("/verify", paymentHandler.VerifyPayment)
	}

	owner := r.Group("/owner/payments")
	owner.Use(middleware.AuthRequired(jwtSecret), middleware.OwnerRequired())
	{
		owner.POST("/refund", paymentHandler.Refund)
	}
}
