package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/heart-api/internal/interface/http"
	"github.com/oksasatya/heart-api/internal/interface/middleware"
	"github.com/oksasatya/heart-api/pkg/helpers"
)

// ToolModule exposes the text tools. Calls are limited per user since each
// one may hit a paid upstream API.
type ToolModule struct {
	Handler *handlers.ToolHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
	Limit   int
	Allow   middleware.AllowFunc
}

func NewToolModule(h *handlers.ToolHandler, jwt *helpers.JWTManager, rdb *redis.Client) *ToolModule {
	return &ToolModule{Handler: h, JWT: jwt, Redis: rdb, Limit: 30}
}

func (m *ToolModule) Name() string { return "tools" }

func (m *ToolModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/tools")
	g.Use(middleware.Auth(m.JWT))
	g.Use(middleware.RateLimit(m.Redis, m.Limit, time.Minute, middleware.KeyByUserID(), m.Allow))
	{
		g.POST("/rewrite", m.Handler.Rewrite)
		g.POST("/grammar", m.Handler.Grammar)
		g.POST("/ai-detect", m.Handler.DetectAI)
		g.POST("/citations", m.Handler.Citations)
		g.POST("/research", m.Handler.Research)
	}
}
