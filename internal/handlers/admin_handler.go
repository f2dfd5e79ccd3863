package handlers

import (
	"github.com/sshrey15/car-rental-goa-backend/internal/models"
	"github.com/sshrey15/car-rental-goa-backend/internal/services"
	"github.com/sshrey15/car-rental-goa-backend/internal/utils"
	"github.com/sshrey15/car-rental-goa-backend/internal/validators"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService    services.AdminService
	carService      services.CarService
	couponService   services.CouponService
	locationService services.LocationService
}

func NewAdminHandler(adminService services.AdminService, carService services.CarService, couponService services.CouponService, locationService services.LocationService) *AdminHandler {
	return &AdminHandler{
		adminService:    adminService,
		carService:      carService,
		couponService:   couponService,
		locationService: locationService,
	}
}

func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "dashboard stats retrieved", stats)
}

// Car moderation

func (h *AdminHandler) ListPendingCars(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	cars, total, err := h.carService.ListPendingCars(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "cars retrieved", cars, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *AdminHandler) ApproveCar(c *gin.Context) {
	carID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req validators.ApproveCarRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.carService.ApproveCar(c.Request.Context(), carID, req.Approved); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "car approval updated", nil)
}

// Coupon administration

func (h *AdminHandler) CreateCoupon(c *gin.Context) {
	var req validators.CreateCouponRequest
	if !bindAndValidate(c, &req) {
		return
	}

	coupon := &models.Coupon{
		Code:             req.Code,
		Description:      req.Description,
		DiscountType:     models.DiscountType(req.DiscountType),
		DiscountValue:    req.DiscountValue,
		MinBookingAmount: req.MinBookingAmount,
		MaxDiscount:      req.MaxDiscount,
		ValidFrom:        req.ValidFrom,
		ValidUntil:       req.ValidUntil,
		UsageLimit:       req.UsageLimit,
		IsActive:         true,
	}

	if err := h.couponService.CreateCoupon(c.Request.Context(), coupon); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "coupon created", coupon)
}

func (h *AdminHandler) ListCoupons(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	coupons, total, err := h.couponService.ListCoupons(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "coupons retrieved", coupons, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *AdminHandler) GetCoupon(c *gin.Context) {
	couponID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	coupon, err := h.couponService.GetCoupon(c.Request.Context(), couponID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "coupon retrieved", coupon)
}

func (h *AdminHandler) UpdateCoupon(c *gin.Context) {
	couponID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req validators.UpdateCouponRequest
	if !bindAndValidate(c, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.DiscountValue != nil {
		updates["discount_value"] = *req.DiscountValue
	}
	if req.MinBookingAmount != nil {
		updates["min_booking_amount"] = *req.MinBookingAmount
	}
	if req.MaxDiscount != nil {
		updates["max_discount"] = *req.MaxDiscount
	}
	if req.ValidFrom != nil {
		updates["valid_from"] = *req.ValidFrom
	}
	if req.ValidUntil != nil {
		updates["valid_until"] = *req.ValidUntil
	}
	if req.UsageLimit != nil {
		updates["usage_limit"] = *req.UsageLimit
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := h.couponService.UpdateCoupon(c.Request.Context(), couponID, updates); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "coupon updated", nil)
}

func (h *AdminHandler) DeleteCoupon(c *gin.Context) {
	couponID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.couponService.DeleteCoupon(c.Request.Context(), couponID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "coupon deleted", nil)
}

// Location administration

func (h *AdminHandler) CreateLocation(c *gin.Context) {
	var req validators.CreateLocationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	location := &models.Location{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.locationService.CreateLocation(c.Request.Context(), location); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "location created", location)
}

func (h *AdminHandler) UpdateLocation(c *gin.Context) {
	locationID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req validators.UpdateLocationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := h.locationService.UpdateLocation(c.Request.Context(), locationID, updates); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "location updated", nil)
}

func (h *AdminHandler) DeleteLocation(c *gin.Context) {
	locationID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.locationService.DeleteLocation(c.Request.Context(), locationID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "location deleted", nil)
}
