package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rahat/tastybites-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func authTestRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{Authenticate(testSecret)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := GetUserID(c)
		role, _ := GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})
	r.GET("/protected", handlers...)
	return r
}

func doAuthRequest(t *testing.T, r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	code, _ := body["error"].(string)
	return code
}

func issueToken(t *testing.T, userID uint, role string, expiry time.Duration) string {
	t.Helper()
	pair, err := util.GenerateTokenPair(userID, "user@example.com", role, testSecret, expiry, expiry)
	require.NoError(t, err)
	return pair.AccessToken
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	r := authTestRouter()
	w := doAuthRequest(t, r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_UNAUTHORIZED", errorCode(t, w))
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	r := authTestRouter()
	w := doAuthRequest(t, r, "NotBearer")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_TOKEN_INVALID", errorCode(t, w))
}

func TestAuthenticate_ValidToken(t *testing.T) {
	r := authTestRouter()
	token := issueToken(t, 42, "customer", time.Hour)

	w := doAuthRequest(t, r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(42), body["user_id"])
	assert.Equal(t, "customer", body["role"])
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	r := authTestRouter()
	token := issueToken(t, 42, "customer", -time.Minute)

	w := doAuthRequest(t, r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_TOKEN_EXPIRED", errorCode(t, w))
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	r := authTestRouter()
	w := doAuthRequest(t, r, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_TOKEN_INVALID", errorCode(t, w))
}

func TestRequireRole_Allowed(t *testing.T) {
	r := authTestRouter(RequireRole("manager", "admin"))
	token := issueToken(t, 7, "manager", time.Hour)

	w := doAuthRequest(t, r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_Denied(t *testing.T) {
	r := authTestRouter(RequireRole("manager", "admin"))
	token := issueToken(t, 7, "customer", time.Hour)

	w := doAuthRequest(t, r, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "AUTHZ_FORBIDDEN", errorCode(t, w))
}
