package errdef_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dhis2-sre/im-events/internal/errdef"

	"github.com/stretchr/testify/assert"
)

func TestIsBadRequest(t *testing.T) {
	assert.False(t, errdef.IsBadRequest(errors.New("some error")))
	assert.True(t, errdef.IsBadRequest(errdef.NewBadRequest("some error")))
}

func TestIsUnsupportedMediaType(t *testing.T) {
	assert.False(t, errdef.IsUnsupportedMediaType(errors.New("some error")))
	assert.True(t, errdef.IsUnsupportedMediaType(errdef.NewUnsupportedMediaType("some error")))
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, errdef.IsNotFound(errors.New("some error")))
	assert.True(t, errdef.IsNotFound(errdef.NewNotFound("some error")))
}

func TestIsConflict(t *testing.T) {
	assert.False(t, errdef.IsConflict(errors.New("some error")))
	assert.True(t, errdef.IsConflict(errdef.NewConflict("some error")))
}

func TestIsNetwork(t *testing.T) {
	assert.False(t, errdef.IsNetwork(errors.New("some error")))
	assert.True(t, errdef.IsNetwork(errdef.NewNetwork("some error")))
}

func TestIsRequestFailed(t *testing.T) {
	assert.False(t, errdef.IsRequestFailed(errors.New("some error")))
	assert.True(t, errdef.IsRequestFailed(errdef.NewRequestFailed(http.StatusNotFound, "some error")))
}

func TestStatusCode(t *testing.T) {
	_, ok := errdef.StatusCode(errors.New("some error"))
	assert.False(t, ok)

	err := fmt.Errorf("wrapped: %w", errdef.NewRequestFailed(http.StatusNotFound, "DELETE %q returned %d", "/events/7", http.StatusNotFound))
	status, ok := errdef.StatusCode(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, `wrapped: DELETE "/events/7" returned 404`, err.Error())
}
