package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/heart-api/internal/application"
	"github.com/oksasatya/heart-api/internal/domain"
	"github.com/oksasatya/heart-api/pkg/response"
)

type SearchHandler struct {
	base
	Search *application.SearchService
}

func NewSearchHandler(svc *application.SearchService, logger *logrus.Logger, debug bool) *SearchHandler {
	return &SearchHandler{base: base{Logger: logger, Debug: debug}, Search: svc}
}

// Query GET /api/search?q=&size=
func (h *SearchHandler) Query(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		h.fail(c, domain.ErrQueryRequired, "")
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))
	docs, err := h.Search.Search(c.Request.Context(), userID(c), q, size)
	if err != nil {
		h.fail(c, err, "Error searching content")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": docs, "count": len(docs)}, "", nil)
}
