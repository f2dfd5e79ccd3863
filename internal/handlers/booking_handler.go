package handlers

import (
	"github.com/sshrey15/car-rental-goa-backend/internal/models"
	"github.com/sshrey15/car-rental-goa-backend/internal/services"
	"github.com/sshrey15/car-rental-goa-backend/internal/utils"
	"github.com/sshrey15/car-rental-goa-backend/internal/validators"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var req validators.AvailabilityRequest
	if !bindAndValidate(c, &req) {
		return
	}

	available, err := h.bookingService.CheckAvailability(c.Request.Context(), req.CarID, req.PickupDate, req.ReturnDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "availability checked", gin.H{
		"car_id":       req.CarID,
		"is_available": available,
	})
}

func (h *BookingHandler) SearchCars(c *gin.Context) {
	var req validators.SearchCarsRequest
	if !bindAndValidate(c, &req) {
		return
	}

	results, err := h.bookingService.SearchAvailableCars(c.Request.Context(), req.Location, req.PickupDate, req.ReturnDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "cars retrieved", results)
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req validators.CreateBookingRequest
	if !bindAndValidate(c, &req) {
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), userID, req.CarID, req.PickupDate, req.ReturnDate, req.CouponCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "booking created", booking)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	bookingID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), bookingID, userID, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "booking retrieved", booking)
}

func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	bookings, total, err := h.bookingService.GetUserBookings(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "bookings retrieved", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *BookingHandler) GetOwnerBookings(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	bookings, total, err := h.bookingService.GetOwnerBookings(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "bookings retrieved", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	bookings, total, err := h.bookingService.GetAllBookings(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "bookings retrieved", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	bookingID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req validators.ChangeBookingStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	booking, err := h.bookingService.ChangeStatus(c.Request.Context(), bookingID, userID, role, models.BookingStatus(req.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "booking status updated", booking)
}
