package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"fridgechef/internal/auth"
	"fridgechef/internal/diary"
	"fridgechef/internal/kitchen"
	"fridgechef/internal/llm"
	"fridgechef/internal/recipe"
	"fridgechef/internal/user"
)

const testUploadLimit = 4 << 10

// mockModel is a canned llm.Client that records every request.
type mockModel struct {
	mu     sync.Mutex
	answer string
	err    error
	calls  []llm.Request
}

func (m *mockModel) Complete(_ context.Context, req llm.Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)
	return m.answer, m.err
}

func (m *mockModel) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func testOptions() RouterOptions {
	return RouterOptions{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		UploadMaxBytes: testUploadLimit,
		Static: fstest.MapFS{
			"index.html": {Data: []byte("<h1>냉장고 레시피</h1>")},
		},
	}
}

func newTestRecipeRouter(t *testing.T, model *mockModel) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewRecipeRouter(RecipeServices{
		Auth:      auth.NewService(user.NewMemoryStore(), tokens),
		Book:      recipe.NewBook(recipe.NewMemoryStore()),
		Assistant: kitchen.NewAssistant(model, 4000),
	}, testOptions())
}

func newTestDiaryRouter(t *testing.T, model *mockModel) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewDiaryRouter(diary.NewAnalyzer(model, 0), testOptions())
}

// doJSON sends body as JSON and returns the recorder.
func doJSON(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

// register creates an account and returns its token.
func register(t *testing.T, r http.Handler, email, name string) string {
	t.Helper()
	rr := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": email, "password": "secret-pw", "name": name,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	token, _ := decode(t, rr)["token"].(string)
	require.NotEmpty(t, token)
	return token
}
