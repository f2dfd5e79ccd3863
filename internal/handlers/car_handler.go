package handlers

import (
	"github.com/sshrey15/car-rental-goa-backend/internal/models"
	"github.com/sshrey15/car-rental-goa-backend/internal/services"
	"github.com/sshrey15/car-rental-goa-backend/internal/utils"
	"github.com/sshrey15/car-rental-goa-backend/internal/validators"

	"github.com/gin-gonic/gin"
)

type CarHandler struct {
	carService services.CarService
}

func NewCarHandler(carService services.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

func (h *CarHandler) CreateCar(c *gin.Context) {
	ownerID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req validators.CreateCarRequest
	if !bindAndValidate(c, &req) {
		return
	}

	car := &models.Car{
		Brand:           req.Brand,
		Model:           req.Model,
		Year:            req.Year,
		Category:        req.Category,
		SeatingCapacity: req.SeatingCapacity,
		FuelType:        req.FuelType,
		Transmission:    req.Transmission,
		PricePerDay:     req.PricePerDay,
		Location:        req.Location,
		Description:     req.Description,
		Image:           req.Image,
	}

	car, err := h.carService.CreateCar(c.Request.Context(), ownerID, car)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "car listed", car)
}

func (h *CarHandler) GetCar(c *gin.Context) {
	carID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	car, err := h.carService.GetCar(c.Request.Context(), carID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "car retrieved", car)
}

func (h *CarHandler) ListCars(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	cars, total, err := h.carService.ListCars(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "cars retrieved", cars, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *CarHandler) ListMyCars(c *gin.Context) {
	ownerID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	cars, total, err := h.carService.ListOwnerCars(c.Request.Context(), ownerID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "cars retrieved", cars, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *CarHandler) UpdateCar(c *gin.Context) {
	actorID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	carID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req validators.UpdateCarRequest
	if !bindAndValidate(c, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.Brand != "" {
		updates["brand"] = req.Brand
	}
	if req.Model != "" {
		updates["model"] = req.Model
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.SeatingCapacity != nil {
		updates["seating_capacity"] = *req.SeatingCapacity
	}
	if req.FuelType != "" {
		updates["fuel_type"] = req.FuelType
	}
	if req.Transmission != "" {
		updates["transmission"] = req.Transmission
	}
	if req.PricePerDay != nil {
		updates["price_per_day"] = *req.PricePerDay
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Image != "" {
		updates["image"] = req.Image
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}

	car, err := h.carService.UpdateCar(c.Request.Context(), carID, actorID, role, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "car updated", car)
}

func (h *CarHandler) DeleteCar(c *gin.Context) {
	actorID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	carID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.carService.DeleteCar(c.Request.Context(), carID, actorID, role); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "car deleted", nil)
}

func (h *CarHandler) AttachCoupon(c *gin.Context) {
	actorID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	carID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req validators.AttachCouponRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.carService.AttachCoupon(c.Request.Context(), carID, actorID, role, req.CouponID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "car coupon updated", nil)
}
