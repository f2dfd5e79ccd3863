package routes

import (
	"github.com/sshrey15/car-rental-goa-backend/internal/handlers"
	"github.com/sshrey15/car-rental-goa-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes sets up availability search and booking lifecycle routes
func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler, jwtSecret string) {
	// Public availability checks
	r.POST("/availability", bookingHandler.CheckAvailability)
	r.POST("/cars/search", bookingHandler.SearchCars)

	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthRequired(jwtSecret))
	{
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("/me", bookingHandler.GetMyBookings)
		bookings.GET("/:id", bookingHandler.GetBooking)
	}

	owner := r.Group("/owner/bookings")
	owner.Use(middleware.AuthRequired(jwtSecret), middleware.OwnerRequired())
	{
		owner.GET("", bookingHandler.GetOwnerBookings)
		owner.PUT("/:id/status", bookingHandler.ChangeStatus)
	}
}
