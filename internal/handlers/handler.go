package handlers

import (
	"errors"
	"net/http"

	"github.com/sshrey15/car-rental-goa-backend/internal/middleware"
	"github.com/sshrey15/car-rental-goa-backend/internal/models"
	"github.com/sshrey15/car-rental-goa-backend/internal/services"
	"github.com/sshrey15/car-rental-goa-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUser pulls the authenticated identity that AuthRequired stored.
func currentUser(c *gin.Context) (primitive.ObjectID, models.UserRole, bool) {
	idValue, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return primitive.NilObjectID, "", false
	}
	id, ok := idValue.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, "", false
	}

	roleValue, _ := c.Get(middleware.ContextRole)
	role, _ := roleValue.(models.UserRole)

	return id, role, true
}

func parseObjectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "invalid "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognized is a 500 with a generic body.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBookingNotFound):
		utils.NotFoundResponse(c, "booking")
	case errors.Is(err, services.ErrCarNotFound):
		utils.NotFoundResponse(c, "car")
	case errors.Is(err, services.ErrCarUnavailable):
		utils.ConflictResponse(c, services.ErrCarUnavailable.Error())
	case errors.Is(err, services.ErrInvalidDateRange):
		utils.BadRequestResponse(c, services.ErrInvalidDateRange.Error())
	case errors.Is(err, services.ErrCouponLimitReached):
		utils.BadRequestResponse(c, services.ErrCouponLimitReached.Error())
	case errors.Is(err, services.ErrInvalidSignature):
		utils.ErrorResponse(c, http.StatusBadRequest, "SIGNATURE_INVALID", services.ErrInvalidSignature.Error())
	case errors.Is(err, services.ErrAlreadyPaid):
		utils.ConflictResponse(c, services.ErrAlreadyPaid.Error())
	case errors.Is(err, services.ErrPaymentSettled):
		utils.ConflictResponse(c, services.ErrPaymentSettled.Error())
	case errors.Is(err, services.ErrNothingToRefund):
		utils.BadRequestResponse(c, services.ErrNothingToRefund.Error())
	case errors.Is(err, services.ErrAlreadyRefunded):
		utils.ConflictResponse(c, services.ErrAlreadyRefunded.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c)
	case errors.Is(err, services.ErrUserExists):
		utils.ConflictResponse(c, services.ErrUserExists.Error())
	case errors.Is(err, services.ErrUnauthorized):
		utils.ForbiddenResponse(c)
	default:
		utils.InternalServerErrorResponse(c)
	}
}

// bindAndValidate decodes the JSON body and runs struct validation,
// responding on failure.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, utils.ErrInvalidInput)
		return false
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ValidationErrorResponse(c, utils.ValidationErrorsToMap(err))
		return false
	}
	return true
}
