package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/heart-api/internal/application"
	"github.com/oksasatya/heart-api/pkg/citation"
	"github.com/oksasatya/heart-api/pkg/response"
	"github.com/oksasatya/heart-api/pkg/validation"
)

type ToolHandler struct {
	base
	Tools *application.ToolService
}

func NewToolHandler(tools *application.ToolService, logger *logrus.Logger, debug bool) *ToolHandler {
	return &ToolHandler{base: base{Logger: logger, Debug: debug}, Tools: tools}
}

type textRequest struct {
	Text     string `json:"text"`
	Style    string `json:"style"`
	Language string `json:"language"`
}

type citationsRequest struct {
	References []citation.Reference `json:"references"`
}

type researchRequest struct {
	Query string `json:"query"`
}

// bindOptional is bind for bodies whose fields are all optional: an empty
// body decodes to the zero value.
func bindOptional(c *gin.Context, dst any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		response.ValidationFailed(c, validation.ToDetails(err, nil))
		return false
	}
	return true
}

// Rewrite POST /api/tools/rewrite
func (h *ToolHandler) Rewrite(c *gin.Context) {
	var req textRequest
	if !bindOptional(c, &req) {
		return
	}
	res, err := h.Tools.Rewrite(c.Request.Context(), req.Text, req.Style)
	if err != nil {
		h.fail(c, err, "Error rewriting text")
		return
	}
	response.Success(c, http.StatusOK, res, "", nil)
}

// Grammar POST /api/tools/grammar
func (h *ToolHandler) Grammar(c *gin.Context) {
	var req textRequest
	if !bindOptional(c, &req) {
		return
	}
	res, err := h.Tools.CheckGrammar(c.Request.Context(), req.Text, req.Language)
	if err != nil {
		h.fail(c, err, "Error checking grammar")
		return
	}
	response.Success(c, http.StatusOK, res, "", nil)
}

// DetectAI POST /api/tools/ai-detect
func (h *ToolHandler) DetectAI(c *gin.Context) {
	var req textRequest
	if !bindOptional(c, &req) {
		return
	}
	res, err := h.Tools.DetectAI(c.Request.Context(), req.Text)
	if err != nil {
		h.fail(c, err, "Error detecting AI content")
		return
	}
	response.Success(c, http.StatusOK, res, "", nil)
}

// Citations POST /api/tools/citations
func (h *ToolHandler) Citations(c *gin.Context) {
	var req citationsRequest
	if !bindOptional(c, &req) {
		return
	}
	out, err := h.Tools.FormatCitations(req.References)
	if err != nil {
		h.fail(c, err, "Error generating citations")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"citations": out}, "", nil)
}

// Research POST /api/tools/research
func (h *ToolHandler) Research(c *gin.Context) {
	var req researchRequest
	if !bindOptional(c, &req) {
		return
	}
	res, err := h.Tools.Suggest(c.Request.Context(), req.Query)
	if err != nil {
		h.fail(c, err, "Error fetching research suggestions")
		return
	}
	response.Success(c, http.StatusOK, res, "", nil)
}
