package handlers

import (
	"github.com/sshrey15/car-rental-goa-backend/internal/services"
	"github.com/sshrey15/car-rental-goa-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	locationService services.LocationService
}

func NewLocationHandler(locationService services.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// ListActiveLocations is the public pickup-point list the search UI shows.
func (h *LocationHandler) ListActiveLocations(c *gin.Context) {
	locations, err := h.locationService.ListActiveLocations(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "locations retrieved", locations)
}

func (h *LocationHandler) ListAllLocations(c *gin.Context) {
	locations, err := h.locationService.ListLocations(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "locations retrieved", locations)
}

func (h *LocationHandler) GetLocation(c *gin.Context) {
	locationID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	location, err := h.locationService.GetLocation(c.Request.Context(), locationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "location retrieved", location)
}
