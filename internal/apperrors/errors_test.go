package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "with detail",
			err:  New(ValidationError, "days must be between 1 and 7", "got 9"),
			want: "VALIDATION_ERROR: days must be between 1 and 7 (got 9)",
		},
		{
			name: "without detail",
			err:  NotFound("No current data available"),
			want: "NOT_FOUND: No current data available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ValidationFailed("bad", "").GetHTTPStatus())
	assert.Equal(t, http.StatusNotFound, NotFound("gone").GetHTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, Upstream(errors.New("boom"), "Failed to fetch tide data").GetHTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, InternalServerError("x").GetHTTPStatus())
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, ServerError, "ignored"))

	raw := errors.New("connection refused")
	wrapped := Wrap(raw, UpstreamError, "Failed to fetch weather data")
	assert.ErrorIs(t, wrapped, raw)
	assert.Equal(t, "connection refused", wrapped.Detail)
}

func TestAs(t *testing.T) {
	inner := NotFound("missing")
	err := fmt.Errorf("handler: %w", inner)

	got, ok := As(err)
	assert.True(t, ok)
	assert.Same(t, inner, got)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestFetchError(t *testing.T) {
	raw := errors.New("dial tcp: refused")
	err := fmt.Errorf("tide: %w", NewFetchError(KindTransport, "/api/tide", "request failed", raw))

	assert.Equal(t, KindTransport, KindOf(err))
	assert.ErrorIs(t, err, raw)
	assert.Equal(t, FetchKind(""), KindOf(errors.New("other")))
	assert.Contains(t, err.Error(), "/api/tide")
}
