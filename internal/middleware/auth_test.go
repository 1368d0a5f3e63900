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

const testSecret = "segredo-de-teste"

func assinarToken(t *testing.T, secret string, exp time.Duration) string {
	t.Helper()
	claims := JWTClaims{
		UserID: "u-1",
		Nome:   "Garçom Teste",
		Tipo:   "perfil",
		Papel:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(exp)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protegida", JWTAuth(testSecret), func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"nome": claims.Nome})
	})
	return r
}

func TestJWTAuthHeader(t *testing.T) {
	r := authRouter()
	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+assinarToken(t, testSecret, time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Garçom Teste")
}

func TestJWTAuthQueryParam(t *testing.T) {
	// caminho do upgrade de WebSocket: navegador não consegue setar header
	r := authRouter()
	req := httptest.NewRequest("GET", "/protegida?token="+assinarToken(t, testSecret, time.Hour), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Garçom Teste")
}

func TestJWTAuthSemToken(t *testing.T) {
	r := authRouter()
	req := httptest.NewRequest("GET", "/protegida", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthSegredoErrado(t *testing.T) {
	r := authRouter()
	req := httptest.NewRequest("GET", "/protegida?token="+assinarToken(t, "outro-segredo", time.Hour), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthExpirado(t *testing.T) {
	r := authRouter()
	req := httptest.NewRequest("GET", "/protegida?token="+assinarToken(t, testSecret, -time.Minute), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
