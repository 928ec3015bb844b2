package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/heart-api/internal/interface/http"
	"github.com/oksasatya/heart-api/internal/interface/middleware"
	"github.com/oksasatya/heart-api/pkg/helpers"
)

// TopicModule serves topics and their research entries.
type TopicModule struct {
	Handler *handlers.TopicHandler
	JWT     *helpers.JWTManager
}

func NewTopicModule(h *handlers.TopicHandler, jwt *helpers.JWTManager) *TopicModule {
	return &TopicModule{Handler: h, JWT: jwt}
}

func (m *TopicModule) Name() string { return "topics" }

func (m *TopicModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/topics")
	g.Use(middleware.Auth(m.JWT))
	{
		g.POST("", m.Handler.Create)
		g.GET("", m.Handler.List)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)

		g.POST("/:id/entries", m.Handler.AddEntry)
		g.POST("/entries", m.Handler.AddEntry)
		g.GET("/:id/entries", m.Handler.ListEntries)
		g.GET("/entries/:id", m.Handler.GetEntry)
		g.PUT("/entries/:id", m.Handler.UpdateEntry)
		g.DELETE("/entries/:id", m.Handler.DeleteEntry)
	}
}
