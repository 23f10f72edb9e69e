package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	err := NewUserError("No products match your budget", ErrNoCandidates)
	wrapped := fmt.Errorf("recommend: %w", err)

	assert.ErrorIs(t, wrapped, ErrNoCandidates)
	assert.Equal(t, "No products match your budget", UserMessage(wrapped, "fallback"))
	assert.Equal(t, "fallback", UserMessage(errors.New("plain"), "fallback"))
	assert.Contains(t, err.Error(), ErrNoCandidates.Error())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrRateLimit))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: true}))
	assert.False(t, IsRetryable(Permanent(errors.New("x"))))
	assert.False(t, IsRetryable(errors.New("x")))
}
