package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/care-record-api/internal/models"
	appErrors "github.com/noah-isme/care-record-api/pkg/errors"
)

func TestTokenServiceIssueAndValidate(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "s3cret", Issuer: "care-record-api", Expiry: time.Hour}, nil)

	token, expiresAt, err := svc.Issue(IssueTokenRequest{UserID: "nurse-1", Role: models.RoleNurse, FullName: "Nurse One"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "nurse-1", claims.UserID)
	assert.Equal(t, models.RoleNurse, claims.Role)
	assert.Equal(t, "Nurse One", claims.FullName)
}

func TestTokenServiceRejectsUnknownRole(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "s3cret"}, nil)

	_, _, err := svc.Issue(IssueTokenRequest{UserID: "x", Role: "JANITOR"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTokenServiceRejectsForeignTokens(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "s3cret", Issuer: "care-record-api"}, nil)
	other := NewTokenService(TokenConfig{Secret: "other", Issuer: "care-record-api"}, nil)

	token, _, err := other.Issue(IssueTokenRequest{UserID: "x", Role: models.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	wrongIssuer := NewTokenService(TokenConfig{Secret: "s3cret", Issuer: "elsewhere"}, nil)
	token, _, err = wrongIssuer.Issue(IssueTokenRequest{UserID: "x", Role: models.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}

func TestTokenServiceRejectsExpired(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "s3cret", Expiry: time.Minute}, nil)
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, _, err := svc.Issue(IssueTokenRequest{UserID: "x", Role: models.RoleCaregiver})
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}
