package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/heart-api/internal/interface/http"
	"github.com/oksasatya/heart-api/internal/interface/middleware"
	"github.com/oksasatya/heart-api/pkg/helpers"
)

type SearchModule struct {
	Handler *handlers.SearchHandler
	JWT     *helpers.JWTManager
}

func NewSearchModule(h *handlers.SearchHandler, jwt *helpers.JWTManager) *SearchModule {
	return &SearchModule{Handler: h, JWT: jwt}
}

func (m *SearchModule) Name() string { return "search" }

func (m *SearchModule) Register(rg *gin.RouterGroup) {
	rg.GET("/search", middleware.Auth(m.JWT), m.Handler.Query)
}
