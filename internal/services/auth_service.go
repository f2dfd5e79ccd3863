package services

import (
	"context"

	"github.com/sshrey15/car-rental-goa-backend/internal/models"
	"github.com/sshrey15/car-rental-goa-backend/internal/repositories/interfaces"
	"github.com/sshrey15/car-rental-goa-backend/internal/utils"
	"github.com/sshrey15/car-rental-goa-backend/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, user *models.User, password string) (*models.User, *utils.TokenPair, error)
	Login(ctx context.Context, phone, password string) (*models.User, *utils.TokenPair, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*utils.TokenPair, error)
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, updates map[string]interface{}) (*models.User, error)
}

type authService struct {
	userRepo  interfaces.UserRepository
	jwtSecret string
	logger    *logger.Logger
}

func NewAuthService(userRepo interfaces.UserRepository, jwtSecret string, logger *logger.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

func (s *authService) Register(ctx context.Context, user *models.User, password string) (*models.User, *utils.TokenPair, error) {
	if _, err := s.userRepo.GetByPhone(ctx, user.Phone); err == nil {
		return nil, nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}
	user.Password = string(hash)
	if user.Role == "" {
		user.Role = models.UserRoleUser
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	tokens, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Phone, s.jwtSecret)
	if err != nil {
		return nil, nil, err
	}

	s.logger.WithUserID(user.ID).Info("user registered")

	return user, tokens, nil
}

func (s *authService) Login(ctx context.Context, phone, password string) (*models.User, *utils.TokenPair, error) {
	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Phone, s.jwtSecret)
	if err != nil {
		return nil, nil, err
	}

	s.logger.WithUserID(user.ID).Info("user logged in")

	return user, tokens, nil
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	claims, err := utils.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// The user may have been removed or demoted since the token was issued.
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return utils.GenerateTokenPair(user.ID, string(user.Role), user.Phone, s.jwtSecret)
}

func (s *authService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, updates map[string]interface{}) (*models.User, error) {
	// Credentials and role never change through profile updates.
	delete(updates, "password")
	delete(updates, "role")
	delete(updates, "phone")

	if err := s.userRepo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, userID)
}
