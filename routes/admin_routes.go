package routes

import (
	"github.com/sshrey15/car-rental-goa-backend/internal/handlers"
	"github.com/sshrey15/car-rental-goa-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes sets up the admin console routes
func SetupAdminRoutes(r *gin.RouterGroup, adminHandler *handlers.AdminHandler, bookingHandler *handlers.BookingHandler, locationHandler *handlers.LocationHandler, jwtSecret string) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/dashboard", adminHandler.GetDashboardStats)
		admin.GET("/bookings", bookingHandler.GetAllBookings)

		admin.GET("/cars/pending", adminHandler.ListPendingCars)
		admin.PUT("/cars/:id/approval", adminHandler.ApproveCar)

		admin.POST("/coupons", adminHandler.CreateCoupon)
		admin.GET("/coupons", adminHandler.ListCoupons)
		admin.GET("/coupons/:id", adminHandler.GetCoupon)
		admin.PUT("/coupons/:id", adminHandler.UpdateCoupon)
		admin.DELETE("/coupons/:id", adminHandler.DeleteCoupon)

		admin.GET("/locations", locationHandler.ListAllLocations)
		admin.GET("/locations/:id", locationHandler.GetLocation)
		admin.POST("/locations", adminHandler.CreateLocation)
		admin.PUT("/locations/:id", adminHandler.UpdateLocation)
		admin.DELETE("/locations/:id", adminHandler.DeleteLocation)
	}
}
