package handlers

import (
	"github.com/sshrey15/car-rental-goa-backend/internal/models"
	"github.com/sshrey15/car-rental-goa-backend/internal/services"
	"github.com/sshrey15/car-rental-goa-backend/internal/utils"
	"github.com/sshrey15/car-rental-goa-backend/internal/validators"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req validators.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user := &models.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  models.UserRole(req.Role),
	}

	user, tokens, err := h.authService.Register(c.Request.Context(), user, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "registration successful", gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req validators.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, tokens, err := h.authService.Login(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "login successful", gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req validators.RefreshTokenRequest
	if !bindAndValidate(c, &req) {
		return
	}

	tokens, err := h.authService.RefreshTokens(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "token refreshed", tokens)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "profile retrieved", user)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req validators.UpdateProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Image != "" {
		updates["image"] = req.Image
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "profile updated", user)
}
