package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDetails(t *testing.T) {
	err := GeofenceRejected.WithDetails(map[string]interface{}{
		"distance_meters": 812.5,
		"radius_meters":   200.0,
	})

	assert.Equal(t, GeofenceRejected.Code, err.Code)
	assert.Equal(t, GeofenceRejected.Message, err.Error())
	assert.Equal(t, 812.5, err.Details["distance_meters"])
}

func TestGet(t *testing.T) {
	assert.Equal(t, GeofenceRejected, Get("GEOFENCE_REJECTED"))

	unknown := Get("NO_SUCH_CODE")
	assert.Equal(t, "NO_SUCH_CODE", unknown.Code)
	assert.Equal(t, "Unexpected error", unknown.Message)
}

func TestIsSkipMessageError(t *testing.T) {
	assert.True(t, IsSkipMessageError(&SkipMessageError{Reason: "duplicate batch"}))
	assert.False(t, IsSkipMessageError(stderrors.New("boom")))
	assert.False(t, IsSkipMessageError(nil))
}

func TestDefinitionAsError(t *testing.T) {
	var err error = InsufficientBalance
	assert.EqualError(t, err, InsufficientBalance.Message)

	var def Definition
	assert.True(t, stderrors.As(err, &def))
	assert.Equal(t, InsufficientBalance.Code, def.Code)
}
