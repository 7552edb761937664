package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorKeepsTypedError(t *testing.T) {
	wrapped := fmt.Errorf("load session: %w", ErrSessionNotFound)
	appErr := FromError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrSessionNotFound.Code, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	appErr := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, "internal server error: boom", appErr.Error())
}

func TestCloneOverridesMessageOnly(t *testing.T) {
	clone := Clone(ErrValidation, "patientId is required")
	assert.Equal(t, ErrValidation.Code, clone.Code)
	assert.Equal(t, "patientId is required", clone.Message)
	assert.Equal(t, "validation failed", ErrValidation.Message)
	assert.True(t, errors.Is(clone, clone))
}
