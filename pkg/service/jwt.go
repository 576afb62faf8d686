package service

import (
	"errors"
	"time"

	apperrors "ppe-tracker/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
)

type JwtCustomClaim struct {
	UserID         uint64 `json:"userId"`
	Role           string `json:"role"`
	SessionID      string `json:"sid,omitempty"`
	IsRefreshToken bool   `json:"refresh"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateTokens(userID uint64, role string, sessionID string) (string, string, error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
}

type jwtService struct {
	secretKey       []byte
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
	now             func() time.Time
}

func NewJWTService(secretKey string, accessTokenExp, refreshTokenExp time.Duration) JWTService {
	return &jwtService{
		secretKey:       []byte(secretKey),
		accessTokenExp:  accessTokenExp,
		refreshTokenExp: refreshTokenExp,
		now:             time.Now,
	}
}

// GenerateTokens issues an access token and a refresh token bound to sessionID.
func (s *jwtService) GenerateTokens(userID uint64, role string, sessionID string) (string, string, error) {
	now := s.now()

	accessTokenClaims := &JwtCustomClaim{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenExp)),
		},
	}

	refreshTokenClaims := &JwtCustomClaim{
		UserID:         userID,
		Role:           role,
		SessionID:      sessionID,
		IsRefreshToken: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTokenExp)),
		},
	}

	accessTokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS512, accessTokenClaims).SignedString(s.secretKey)
	if err != nil {
		return "", "", err
	}

	refreshTokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS512, refreshTokenClaims).SignedString(s.secretKey)
	if err != nil {
		return "", "", err
	}

	return accessTokenString, refreshTokenString, nil
}

func (s *jwtService) GetAccessTokenTTL() time.Duration {
	return s.accessTokenExp
}

func (s *jwtService) GetRefreshTokenTTL() time.Duration {
	return s.refreshTokenExp
}

func (s *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaim{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
			return nil, apperrors.ErrTokenNotYetValid
		case errors.Is(err, apperrors.ErrInvalidSigningMethod):
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*JwtCustomClaim)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}
