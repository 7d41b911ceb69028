package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/sypoint-pos/internal/domain/entity"
	"github.com/sangkips/sypoint-pos/internal/domain/enum"
	"github.com/sangkips/sypoint-pos/internal/domain/repository"
	"github.com/sangkips/sypoint-pos/pkg/apperror"
	"github.com/sangkips/sypoint-pos/pkg/utils"
)

// AuthService handles sign-in and admin credential checks
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	Logger     *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		Logger:     logger,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User        *entity.User
	AccessToken string
	ExpiresIn   int64
}

// Login authenticates an active user and returns an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetActiveByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.FullName, user.Role.String())
	if err != nil {
		return nil, err
	}

	s.log().Info("user signed in", slog.String("username", user.Username), slog.String("role", user.Role.String()))

	return &LoginOutput{
		User:        user,
		AccessToken: accessToken,
		ExpiresIn:   int64(s.jwtManager.AccessTokenExpiry().Seconds()),
	}, nil
}

// AuthorizeVoid checks an admin code against every active admin's
// credential. Only an exact match held by an active admin is accepted.
func (s *AuthService) AuthorizeVoid(ctx context.Context, code string) (*entity.User, error) {
	if code == "" {
		return nil, apperror.NewValidationError("Please enter admin code",
			apperror.FieldError{Field: "admin_code", Message: "admin code is required"})
	}

	admins, err := s.userRepo.ListActiveByRole(ctx, enum.RoleAdmin)
	if err != nil {
		return nil, err
	}

	for i := range admins {
		admin := &admins[i]
		if admin.IsAdmin() && admin.IsActive && utils.CheckPasswordHash(code, admin.Password) {
			return admin, nil
		}
	}

	return nil, apperror.NewAuthorizationDeniedError()
}

// GetCurrentUser returns the signed-in user
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

func (s *AuthService) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger.With(slog.String("component", "auth"))
	}
	return slog.Default().With(slog.String("component", "auth"))
}
