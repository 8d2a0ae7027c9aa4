package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"tripbook/internal/repository"
	"tripbook/internal/service"
)

func TestMapErrorToHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", repository.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("user with id 7: %w", repository.ErrNotFound), http.StatusNotFound},
		{"invalid id", service.ErrInvalidID, http.StatusNotFound},
		{"dangling reference", fmt.Errorf("create trip: %w", repository.ErrReferentialIntegrity), http.StatusUnprocessableEntity},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, mapErrorToHTTPStatus(tc.err))
		})
	}
}

func TestRespondError_HidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/users/", nil)

	respondError(c, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"internal server error"}`, rec.Body.String())
	assert.Len(t, c.Errors, 1)
}

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		raw    string
		want   uint
		wantOK bool
	}{
		{"1", 1, true},
		{"4096", 4096, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"1.5", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Params = gin.Params{{Key: "id", Value: tc.raw}}

			id, ok := parseID(c, "user")

			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, id)
			if !ok {
				assert.Equal(t, http.StatusNotFound, rec.Code)
				assert.JSONEq(t, `{"detail":"user not found"}`, rec.Body.String())
			}
		})
	}
}
