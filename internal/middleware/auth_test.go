package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, claims JWTClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("", JWTAuth(testSecret))
	if len(roles) > 0 {
		group.Use(RequireRole(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	return r
}

func request(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validClaims(role string) JWTClaims {
	return JWTClaims{
		UserID:   "7",
		Username: "alice",
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestJWTAuth(t *testing.T) {
	r := protectedRouter()

	t.Run("valid token", func(t *testing.T) {
		w := request(r, signToken(t, validClaims("ADMIN"), testSecret))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":"7"`)
	})

	t.Run("missing header", func(t *testing.T) {
		w := request(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		w := request(r, signToken(t, validClaims("ADMIN"), "other-secret"))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := validClaims("ADMIN")
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		w := request(r, signToken(t, claims, testSecret))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	r := protectedRouter("ADMIN", "MANAGER")

	t.Run("allowed role", func(t *testing.T) {
		w := request(r, signToken(t, validClaims("MANAGER"), testSecret))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("forbidden role", func(t *testing.T) {
		w := request(r, signToken(t, validClaims("CASHIER"), testSecret))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestUserIDParsesClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(ClaimsKey, &JWTClaims{UserID: "42"})
	assert.Equal(t, uint(42), UserID(c))

	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, uint(0), UserID(c2))
}
