package routes

import (
	"github.com/sshrey15/car-rental-goa-backend/internal/handlers"
	"github.com/sshrey15/car-rental-goa-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCarRoutes sets up the public catalog and the owner listing routes
func SetupCarRoutes(r *gin.RouterGroup, carHandler *handlers.CarHandler, locationHandler *handlers.LocationHandler, jwtSecret string) {
	// Public catalog
	cars := r.Group("/cars")
	{
		cars.GET("", carHandler.ListCars)
		cars.GET("/:id", carHandler.GetCar)
	}

	r.GET("/locations", locationHandler.ListActiveLocations)

	// Owner listing management
	owner := r.Group("/owner/cars")
	owner.Use(middleware.AuthRequired(jwtSecret), middleware.OwnerRequired())
	{
		owner.POST("", carHandler.CreateCar)
		owner.GET("", carHandler.ListMyCars)
		owner.PUT("/:id", carHandler.UpdateCar)
		owner.DELETE("/:id", carHandler.DeleteCar)
		owner.PUT("/:id/coupon", carHandler.AttachCoupon)
	}
}
