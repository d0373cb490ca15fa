//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"tillpoint/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestIsSeesMarkedSentinel(t *testing.T) {
	inner := errs.New("journal append failed")
	marked := errs.Mark(inner, errs.ErrDurabilityFailure)

	assert.True(t, errs.Is(marked, errs.ErrDurabilityFailure))
	assert.False(t, errs.Is(marked, errs.ErrInsufficientStock))

	// The stdlib check does not follow marks, which is why classification
	// goes through errs.Is everywhere.
	assert.False(t, errors.Is(marked, errs.ErrDurabilityFailure))
}

func TestIsSeesWrappedSentinel(t *testing.T) {
	wrapped := errs.Wrap(errs.ErrOrderNotFound, "loading draft")

	assert.True(t, errs.Is(wrapped, errs.ErrOrderNotFound))
	assert.True(t, errors.Is(wrapped, errs.ErrOrderNotFound))
}

func TestMarkNilPassesThroughSentinel(t *testing.T) {
	assert.Equal(t, errs.ErrPaymentMismatch, errs.Mark(nil, errs.ErrPaymentMismatch))
	assert.NoError(t, errs.Wrap(nil, "ignored"))
}
