package service

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/noah-isme/care-record-api/internal/models"
	appErrors "github.com/noah-isme/care-record-api/pkg/errors"
)

// TokenConfig configures token signing.
type TokenConfig struct {
	Secret string
	Issuer string
	Expiry time.Duration
}

// IssueTokenRequest describes the subject of a new access token.
type IssueTokenRequest struct {
	UserID   string          `validate:"required"`
	Role     models.UserRole `validate:"required"`
	FullName string
}

// TokenService signs and validates HS256 access tokens.
type TokenService struct {
	config    TokenConfig
	validator *validator.Validate
	now       func() time.Time
}

// NewTokenService constructs the token service.
func NewTokenService(cfg TokenConfig, validate *validator.Validate) *TokenService {
	if validate == nil {
		validate = validator.New()
	}
	if cfg.Expiry <= 0 {
		cfg.Expiry = 12 * time.Hour
	}
	return &TokenService{config: cfg, validator: validate, now: time.Now}
}

// Issue signs a token for the given subject.
func (s *TokenService) Issue(req IssueTokenRequest) (string, time.Time, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid token request")
	}
	if !req.Role.Valid() {
		return "", time.Time{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown role %q", req.Role))
	}

	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.config.Expiry)
	claims := &models.JWTClaims{
		UserID:   req.UserID,
		Role:     req.Role,
		FullName: req.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   req.UserID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}
	return signed, expiresAt, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *TokenService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Secret), nil
	}, opts...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || !claims.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}
