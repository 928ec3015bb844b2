package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	wrapped := fmt.Errorf("get topic: %w", ErrTopicNotFound)

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrConflict))

	var de *Error
	assert.True(t, errors.As(wrapped, &de))
	assert.Equal(t, "Topic not found", de.Message)
}

func TestValidationError(t *testing.T) {
	ve := &ValidationError{}
	assert.NoError(t, ve.OrNil())

	ve.Add("password", "Password must be at least 6 characters long")
	err := ve.OrNil()

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "password")
}

func TestUpstreamError(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("rewrite: %w", &UpstreamError{Service: "openai", Message: "request failed", Err: cause})

	assert.True(t, errors.Is(err, ErrUpstream))
	assert.True(t, errors.Is(err, cause))

	var ue *UpstreamError
	assert.True(t, errors.As(err, &ue))
	assert.Equal(t, "openai", ue.Service)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, ErrValidation, KindOf(fmt.Errorf("update draft: %w", ErrValidation)))
	assert.Equal(t, ErrNotFound, KindOf(fmt.Errorf("get: %w", ErrTopicNotFound)))
	assert.Equal(t, ErrValidation, KindOf(NewValidationError("name", "required")))
	assert.Nil(t, KindOf(errors.New("connection refused")))
	assert.Nil(t, KindOf(nil))
}
