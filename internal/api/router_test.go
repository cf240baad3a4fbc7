package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"fridgechef/internal/logging"
)

func TestHealthz(t *testing.T) {
	for name, r := range map[string]http.Handler{
		"recipe": newTestRecipeRouter(t, &mockModel{}),
		"diary":  newTestDiaryRouter(t, &mockModel{}),
	} {
		t.Run(name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, `{"status": "ok"}`, rr.Body.String())
			assert.NotEmpty(t, rr.Header().Get(logging.HeaderRequestID))
		})
	}
}

func TestStaticFrontEnd(t *testing.T) {
	r := newTestRecipeRouter(t, &mockModel{})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "냉장고 레시피")
}

func TestUnknownAPIPath(t *testing.T) {
	r := newTestRecipeRouter(t, &mockModel{})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error": "`+msgRouteNotFound+`"}`, rr.Body.String())
}

func TestRequestIDIsPropagated(t *testing.T) {
	r := newTestDiaryRouter(t, &mockModel{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(logging.HeaderRequestID, "req-123")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, "req-123", rr.Header().Get(logging.HeaderRequestID))
}
