package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware(), CORSMiddleware([]string{"https://chat.example.com/"}))
	r.Use(SessionMiddleware("chat_session"))
	r.POST("/echo", func(c *gin.Context) {
		c.String(http.StatusOK, SessionKey(c))
	})
	return r
}

func TestSessionMiddleware_MintsKey(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", nil))

	key := w.Body.String()
	_, err := uuid.Parse(key)
	require.NoError(t, err)
	assert.Equal(t, key, w.Header().Get(SessionHeader))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, key, cookies[0].Value)
}

func TestSessionMiddleware_HeaderWinsOverCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/echo", nil)
	req.Header.Set(SessionHeader, "from-header")
	req.AddCookie(&http.Cookie{Name: "chat_session", Value: "from-cookie"})
	w := httptest.NewRecorder()
	newEngine().ServeHTTP(w, req)

	assert.Equal(t, "from-header", w.Body.String())
}

func TestSessionMiddleware_ReusesCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/echo", nil)
	req.AddCookie(&http.Cookie{Name: "chat_session", Value: "abc"})
	w := httptest.NewRecorder()
	newEngine().ServeHTTP(w, req)

	assert.Equal(t, "abc", w.Body.String())
}

func TestTraceIDMiddleware(t *testing.T) {
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodPost, "/echo", nil)
	req.Header.Set(TraceHeader, id)
	w := httptest.NewRecorder()
	newEngine().ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(TraceHeader))

	req = httptest.NewRequest(http.MethodPost, "/echo", nil)
	req.Header.Set(TraceHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	newEngine().ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(TraceHeader))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/echo", nil)
	req.Header.Set("Origin", "https://chat.example.com")
	w := httptest.NewRecorder()
	newEngine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://chat.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSMiddleware_UnlistedOriginHasNoCredentials(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/echo", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	w := httptest.NewRecorder()
	newEngine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSMiddleware_WildcardEntryGrantsNoCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"*"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://any.example.org")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}
