package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ppe-tracker/internal/dto"
	"ppe-tracker/internal/repositories"
	apperrors "ppe-tracker/pkg/errors"
	"ppe-tracker/pkg/service"
	"ppe-tracker/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context) (*dto.UserDTO, error)
}

type AuthService struct {
	userRepository   repositories.UserRepositoryInterface
	cacheRepo        repositories.CacheRepositoryInterface
	jwtService       service.JWTService
	maxLoginAttempts int
	lockoutDuration  time.Duration
	logger           *zap.Logger
}

func NewAuthService(
	userRepository repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	maxLoginAttempts int,
	lockoutDuration time.Duration,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepository:   userRepository,
		cacheRepo:        cacheRepo,
		jwtService:       jwtService,
		maxLoginAttempts: maxLoginAttempts,
		lockoutDuration:  lockoutDuration,
		logger:           logger,
	}
}

func sessionKey(sessionID string) string { return "session:" + sessionID }

func loginKeys(email string) (attemptsKey, lockoutKey string) {
	email = strings.ToLower(strings.TrimSpace(email))
	return "login_attempts:" + email, "lockout:" + email
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	attemptsKey, lockoutKey := loginKeys(payload.Email)

	if _, err := s.cacheRepo.Get(ctx, lockoutKey); err == nil {
		s.logger.Warn("login attempt on locked account", zap.String("email", payload.Email))
		return nil, apperrors.ErrTooManyAttempts
	}

	user, err := s.userRepository.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.registerFailure(ctx, attemptsKey, lockoutKey)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.registerFailure(ctx, attemptsKey, lockoutKey)
		s.logger.Warn("wrong password", zap.Uint64("userID", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.cacheRepo.Del(ctx, attemptsKey, lockoutKey); err != nil {
		s.logger.Warn("failed to reset login attempts", zap.Error(err))
	}

	return s.issueTokens(ctx, user.ID, user.Role)
}

// registerFailure counts a failed login and locks the account when the
// limit is reached.
func (s *AuthService) registerFailure(ctx context.Context, attemptsKey, lockoutKey string) {
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("failed to count login attempt", zap.Error(err))
		return
	}
	if attempts == 1 {
		_, _ = s.cacheRepo.Expire(ctx, attemptsKey, s.lockoutDuration)
	}
	if attempts >= int64(s.maxLoginAttempts) {
		_ = s.cacheRepo.Set(ctx, lockoutKey, "locked", s.lockoutDuration)
		_ = s.cacheRepo.Del(ctx, attemptsKey)
	}
}

func (s *AuthService) issueTokens(ctx context.Context, userID uint64, role string) (*dto.AuthResponseDTO, error) {
	sessionID := uuid.NewString()
	access, refresh, err := s.jwtService.GenerateTokens(userID, role, sessionID)
	if err != nil {
		return nil, fmt.Errorf("generate tokens: %w", err)
	}

	if err := s.cacheRepo.Set(ctx, sessionKey(sessionID), strconv.FormatUint(userID, 10), s.jwtService.GetRefreshTokenTTL()); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponseDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwtService.GetAccessTokenTTL().Seconds()),
		User:         *userEntityToDTO(user),
	}, nil
}

// RefreshTokens rotates the session: the old refresh token stops working.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	stored, err := s.cacheRepo.Get(ctx, sessionKey(claims.SessionID))
	if err != nil || stored != strconv.FormatUint(claims.UserID, 10) {
		return nil, apperrors.ErrSessionRevoked
	}
	if err := s.cacheRepo.Del(ctx, sessionKey(claims.SessionID)); err != nil {
		return nil, fmt.Errorf("revoke session: %w", err)
	}

	user, err := s.userRepository.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	return s.issueTokens(ctx, user.ID, user.Role)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		// An unusable token has no session to revoke.
		return nil
	}
	if claims.SessionID == "" {
		return nil
	}
	return s.cacheRepo.Del(ctx, sessionKey(claims.SessionID))
}

func (s *AuthService) Me(ctx context.Context) (*dto.UserDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return userEntityToDTO(user), nil
}
