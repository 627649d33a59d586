// internal/apperrors/errors_test.go
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestFromPassesThroughAppError(t *testing.T) {
	original := Conflict("already exists")

	classified := From(original)
	assert.Same(t, original, classified)
}

func TestFromUnwrapsWrappedAppError(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NotFound("missing"))

	classified := From(wrapped)
	assert.Equal(t, http.StatusNotFound, classified.StatusCode)
	assert.Equal(t, "missing", classified.Message)
}

func TestFromTranslatesRecordNotFound(t *testing.T) {
	classified := From(gorm.ErrRecordNotFound)
	assert.Equal(t, http.StatusNotFound, classified.StatusCode)
}

func TestFromDefaultsToInternal(t *testing.T) {
	cause := errors.New("boom")

	classified := From(cause)
	assert.Equal(t, http.StatusInternalServerError, classified.StatusCode)
	assert.Equal(t, cause, classified.Err)
	// Detail never leaks into the client-facing message.
	assert.NotContains(t, classified.Message, "boom")
}

func TestExternalKeepsCause(t *testing.T) {
	cause := errors.New("provider down")

	err := External("Failed to create checkout session", cause)
	assert.Equal(t, http.StatusBadGateway, err.StatusCode)
	assert.True(t, errors.Is(err, cause))
}
