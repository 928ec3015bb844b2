package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/heart-api/internal/application"
	"github.com/oksasatya/heart-api/internal/domain/entity"
	"github.com/oksasatya/heart-api/pkg/citation"
	"github.com/oksasatya/heart-api/pkg/response"
	"github.com/oksasatya/heart-api/pkg/validation"
)

type DraftHandler struct {
	base
	Drafts *application.DraftService
	Export *application.ExportService
}

func NewDraftHandler(drafts *application.DraftService, export *application.ExportService, logger *logrus.Logger, debug bool) *DraftHandler {
	return &DraftHandler{base: base{Logger: logger, Debug: debug}, Drafts: drafts, Export: export}
}

var draftMessages = validation.Messages{
	"title.max":                "Title must not exceed 500 characters",
	"originalContent.required": "Original content is required",
	"originalContent.max":      "Content must not exceed 50,000 characters",
}

type createDraftRequest struct {
	Title            *string             `json:"title" binding:"omitempty,max=500"`
	OriginalContent  string              `json:"originalContent" binding:"required,max=50000"`
	RewrittenContent *string             `json:"rewrittenContent"`
	Citations        []citation.Citation `json:"citations"`
	Metadata         map[string]any      `json:"metadata"`
	Status           *string             `json:"status"`
}

type updateDraftRequest struct {
	Title            *string             `json:"title"`
	OriginalContent  *string             `json:"originalContent"`
	RewrittenContent *string             `json:"rewrittenContent"`
	Citations        []citation.Citation `json:"citations"`
	Metadata         map[string]any      `json:"metadata"`
	Status           *string             `json:"status"`
}

type exportRequest struct {
	Format string `json:"format"`
}

func (h *DraftHandler) Create(c *gin.Context) {
	var req createDraftRequest
	if !bind(c, &req, draftMessages) {
		return
	}
	d, err := h.Drafts.Create(c.Request.Context(), userID(c), application.CreateDraftInput{
		Title:            req.Title,
		OriginalContent:  req.OriginalContent,
		RewrittenContent: req.RewrittenContent,
		Citations:        req.Citations,
		Metadata:         req.Metadata,
		Status:           req.Status,
	})
	if err != nil {
		h.fail(c, err, "Error creating draft")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"draft": d}, "Article draft created successfully", nil)
}

func (h *DraftHandler) List(c *gin.Context) {
	drafts, err := h.Drafts.List(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err, "Error fetching drafts")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"drafts": drafts, "count": len(drafts)}, "", nil)
}

func (h *DraftHandler) Get(c *gin.Context) {
	d, err := h.Drafts.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Error fetching draft")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": d}, "", nil)
}

func (h *DraftHandler) Update(c *gin.Context) {
	var req updateDraftRequest
	if !bind(c, &req, nil) {
		return
	}
	d, err := h.Drafts.Update(c.Request.Context(), userID(c), c.Param("id"), entity.DraftPatch{
		Title:            req.Title,
		OriginalContent:  req.OriginalContent,
		RewrittenContent: req.RewrittenContent,
		Citations:        req.Citations,
		Metadata:         req.Metadata,
		Status:           req.Status,
	})
	if err != nil {
		h.fail(c, err, "Error updating draft")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": d}, "Draft updated successfully", nil)
}

func (h *DraftHandler) Delete(c *gin.Context) {
	if err := h.Drafts.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.fail(c, err, "Error deleting draft")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Draft deleted successfully", nil)
}

// ExportDraft POST /api/drafts/:id/export {format: "txt"|"md"}. The format
// may also be given as ?format=.
func (h *DraftHandler) ExportDraft(c *gin.Context) {
	var req exportRequest
	if !bindOptional(c, &req) {
		return
	}
	if req.Format == "" {
		req.Format = c.Query("format")
	}
	res, err := h.Export.Export(c.Request.Context(), userID(c), c.Param("id"), req.Format)
	if err != nil {
		h.fail(c, err, "Error exporting draft")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"export": res}, "Draft exported successfully", nil)
}
