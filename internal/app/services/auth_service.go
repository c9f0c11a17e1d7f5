package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/mcetin/courseflow/internal/app/models"
	"github.com/mcetin/courseflow/internal/app/models/dto"
	"github.com/mcetin/courseflow/internal/app/repositories"
	"github.com/mcetin/courseflow/internal/pkg/apperrors"
	"github.com/mcetin/courseflow/internal/pkg/auth"
	"github.com/rs/zerolog"
)

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// AuthService handles registration, login and principal resolution
type AuthService struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger

	// dummyHash is compared against when the email lookup misses so the
	// unknown-email and wrong-password paths cost roughly the same.
	dummyHash string
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.IUserRepository, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	dummyHash, err := auth.HashPassword("courseflow-dummy-password")
	if err != nil {
		// bcrypt only fails on invalid cost, which is a compile-time constant
		panic(fmt.Sprintf("failed to prepare dummy hash: %v", err))
	}

	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
		dummyHash:  dummyHash,
	}
}

// validateEmail validates an email address
func (s *AuthService) validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrValidationFailed)
	}

	if !emailRegex.MatchString(strings.ToLower(email)) {
		return apperrors.NewCustomError(apperrors.ErrInvalidEmail, "email format is invalid")
	}

	return nil
}

// ValidatePassword checks if password meets requirements
func (s *AuthService) ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}

	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", apperrors.ErrInvalidPassword)
	}

	hasLetter := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: password must contain at least one letter", apperrors.ErrInvalidPassword)
	}

	return nil
}

// Register creates a new user account. Duplicate emails surface as
// apperrors.ErrEmailAlreadyExists.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := s.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashedPassword,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", req.Email).Int64("userID", id).Msg("User registered")

	return &dto.RegisterResponse{
		UserID: id,
		Email:  req.Email,
	}, nil
}

// Login validates the credentials and issues a bearer token. Unknown email
// and wrong password both fail with apperrors.ErrInvalidCredentials so the
// two cases are indistinguishable to callers.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Burn a hash comparison to keep latency close to the
		// wrong-password path.
		auth.CheckPassword(s.dummyHash, req.Password)
		s.logger.Warn().Str("email", req.Email).Msg("Login attempt for unknown email")
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Warn().Str("email", req.Email).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, expiresIn, err := s.jwtService.GenerateToken(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info().Str("email", user.Email).Msg("User logged in")

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}

// CurrentUser resolves the principal behind a bearer token. Token
// validation failures keep their taxonomy (expired, bad signature,
// malformed); a valid token whose subject no longer exists fails with
// apperrors.ErrUserNotFound.
func (s *AuthService) CurrentUser(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	return user, nil
}
