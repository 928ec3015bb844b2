package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/heart-api/internal/interface/http"
	"github.com/oksasatya/heart-api/internal/interface/middleware"
	"github.com/oksasatya/heart-api/pkg/helpers"
)

type DraftModule struct {
	Handler *handlers.DraftHandler
	JWT     *helpers.JWTManager
}

func NewDraftModule(h *handlers.DraftHandler, jwt *helpers.JWTManager) *DraftModule {
	return &DraftModule{Handler: h, JWT: jwt}
}

func (m *DraftModule) Name() string { return "drafts" }

func (m *DraftModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/drafts")
	g.Use(middleware.Auth(m.JWT))
	{
		g.POST("", m.Handler.Create)
		g.GET("", m.Handler.List)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
		g.POST("/:id/export", m.Handler.ExportDraft)
	}
}
