package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/heart-api/config"
	"github.com/oksasatya/heart-api/internal/container"
	"github.com/oksasatya/heart-api/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func setup(t *testing.T, debugMetrics bool) *gin.Engine {
	t.Helper()
	container.Reset()
	t.Cleanup(container.Reset)
	container.SetConfig(&config.Config{
		AppName:             "heart-api",
		Env:                 "test",
		JWTSecret:           "router-secret",
		JWTTTL:              time.Hour,
		ESContentIndex:      "research_content",
		DebugMetricsEnabled: debugMetrics,
	})
	container.SetLogger(helpers.NewDiscardLogger())

	r := gin.New()
	reg := NewRegistry(r)
	InitModules(reg)
	reg.RegisterAll()
	return r
}

func routeSet(r *gin.Engine) map[string]bool {
	out := map[string]bool{}
	for _, ri := range r.Routes() {
		out[ri.Method+" "+ri.Path] = true
	}
	return out
}

func TestRouteTable(t *testing.T) {
	routes := routeSet(setup(t, true))
	for _, want := range []string{
		"POST /api/auth/signup",
		"POST /api/auth/login",
		"POST /api/auth/logout",
		"GET /api/auth/me",
		"POST /api/topics",
		"GET /api/topics",
		"GET /api/topics/:id",
		"POST /api/topics/entries",
		"PUT /api/topics/:id",
		"DELETE /api/topics/:id",
		"POST /api/topics/:id/entries",
		"GET /api/topics/:id/entries",
		"GET /api/topics/entries/:id",
		"PUT /api/topics/entries/:id",
		"DELETE /api/topics/entries/:id",
		"POST /api/drafts",
		"GET /api/drafts",
		"GET /api/drafts/:id",
		"PUT /api/drafts/:id",
		"DELETE /api/drafts/:id",
		"POST /api/drafts/:id/export",
		"POST /api/tools/rewrite",
		"POST /api/tools/grammar",
		"POST /api/tools/ai-detect",
		"POST /api/tools/citations",
		"POST /api/tools/research",
		"GET /api/search",
		"GET /api/debug/vars",
		"GET /api/debug/metrics",
	} {
		assert.True(t, routes[want], want)
	}
}

func TestDebugModuleToggle(t *testing.T) {
	routes := routeSet(setup(t, false))
	assert.False(t, routes["GET /api/debug/metrics"])
	assert.True(t, routes["GET /api/topics"])
}

func TestWiredRoutes(t *testing.T) {
	r := setup(t, true)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/topics", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/debug/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")

	token, _, err := container.GetJWT().Generate("5f0c2f9e-8d4f-4a7e-9a57-0d6f8f3f0a11", "a@x.io")
	require.NoError(t, err)

	call := func(path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	// no OpenAI key configured
	w = call("/api/tools/rewrite", `{"text":"hello"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "OpenAI API key not configured")

	w = call("/api/tools/ai-detect", `{"text":"hello"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"mock":true`)

	w = call("/api/tools/research", `{"query":"cardiology"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"provider":"placeholder"`)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=heart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":0`)
}

type stubModule struct{ name string }

func (m stubModule) Name() string { return m.name }

func (m stubModule) Register(rg *gin.RouterGroup) {
	rg.GET("/"+m.name, func(c *gin.Context) { c.Status(http.StatusNoContent) })
}

func TestRegistry(t *testing.T) {
	r := gin.New()
	reg := NewRegistry(r)
	reg.Use(func(c *gin.Context) { c.Header("X-Stub", "1"); c.Next() })
	reg.Add(stubModule{"a"})
	reg.Add(stubModule{"b"})
	assert.Equal(t, []string{"a", "b"}, reg.Names())
	assert.Panics(t, func() { reg.Add(stubModule{"a"}) })

	reg.RegisterAll()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/b", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-Stub"))
}

func TestModuleNames(t *testing.T) {
	container.Reset()
	t.Cleanup(container.Reset)
	container.SetConfig(&config.Config{Env: "test", JWTSecret: "s", JWTTTL: time.Hour, DebugMetricsEnabled: true})
	container.SetLogger(helpers.NewDiscardLogger())

	reg := NewRegistry(gin.New())
	InitModules(reg)
	assert.Equal(t, []string{"auth", "topics", "drafts", "tools", "search", "debug"}, reg.Names())
}
