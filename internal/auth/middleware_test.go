package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mrlokans/elibrary/internal/entities"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubResolver struct {
	calls int
	user  *entities.User
	err   error
}

func (s *stubResolver) ResolveToken(_ context.Context, raw string) (*entities.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func setupRouter(resolver TokenResolver) (*gin.Engine, *int) {
	reached := 0
	router := gin.New()
	router.GET("/protected", NewMiddleware(resolver, zap.NewNop()).RequireUser(), func(c *gin.Context) {
		reached++
		user := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user_id": user.ID})
	})
	return router, &reached
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func assertUnauthenticated(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Not authenticated", body["error"])
}

func TestMiddleware_MissingHeaderStopsBeforeResolving(t *testing.T) {
	resolver := &stubResolver{user: &entities.User{ID: 1}}
	router, reached := setupRouter(resolver)

	w := doRequest(router, "")

	assertUnauthenticated(t, w)
	assert.Zero(t, resolver.calls)
	assert.Zero(t, *reached)
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	for _, header := range []string{"Basic dXNlcjpwYXNz", "Bearer", "Bearer   ", "Token abc"} {
		t.Run(header, func(t *testing.T) {
			resolver := &stubResolver{user: &entities.User{ID: 1}}
			router, reached := setupRouter(resolver)

			w := doRequest(router, header)

			assertUnauthenticated(t, w)
			assert.Zero(t, resolver.calls)
			assert.Zero(t, *reached)
		})
	}
}

func TestMiddleware_RejectedToken(t *testing.T) {
	resolver := &stubResolver{err: ErrNotAuthenticated.WithCause(ErrTokenExpired)}
	router, reached := setupRouter(resolver)

	w := doRequest(router, "Bearer expired-token")

	assertUnauthenticated(t, w)
	assert.Equal(t, 1, resolver.calls)
	assert.Zero(t, *reached)
}

func TestMiddleware_StoreFailureIsInternal(t *testing.T) {
	resolver := &stubResolver{err: errors.New("database is locked")}
	router, reached := setupRouter(resolver)

	w := doRequest(router, "Bearer some-token")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "database is locked")
	assert.Zero(t, *reached)
}

func TestMiddleware_ValidTokenSetsUser(t *testing.T) {
	resolver := &stubResolver{user: &entities.User{ID: 9}}
	router, reached := setupRouter(resolver)

	// Scheme matching is case-insensitive.
	w := doRequest(router, "bearer good-token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, *reached)
	assert.JSONEq(t, `{"user_id":9}`, w.Body.String())
}

func TestCurrentUser_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, CurrentUser(c))
}
