package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInvalidArgument, KindOf(InvalidArgument("bad")))
	assert.Equal(t, KindUnauthenticated, KindOf(Unauthenticated("no token")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("nope")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("gone")))
	assert.Equal(t, KindUnavailable, KindOf(Unavailable("store down", nil)))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))

	// Wrapping preserves the kind.
	wrapped := fmt.Errorf("handler: %w", NotFound("gone"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidArgument("bad")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(Unauthenticated("no token")))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Forbidden("nope")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("gone")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Unavailable("down", nil)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(Unavailable("down", errors.New("timeout"))))
	assert.False(t, Retryable(InvalidArgument("bad")))
	assert.False(t, Retryable(errors.New("plain")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unavailable("store down", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Respond(c, NotFound("shop not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "shop not found"}`, w.Body.String())
}

func TestRespondHidesInternalCause(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Respond(c, errors.New("password hash mismatch for user 42"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "internal server error"}`, w.Body.String())
}
