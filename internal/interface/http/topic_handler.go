package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/heart-api/internal/application"
	"github.com/oksasatya/heart-api/internal/domain/entity"
	"github.com/oksasatya/heart-api/pkg/response"
	"github.com/oksasatya/heart-api/pkg/validation"
)

// TopicHandler serves topics and the research entries under them.
type TopicHandler struct {
	base
	Topics  *application.TopicService
	Entries *application.EntryService
}

func NewTopicHandler(topics *application.TopicService, entries *application.EntryService, logger *logrus.Logger, debug bool) *TopicHandler {
	return &TopicHandler{base: base{Logger: logger, Debug: debug}, Topics: topics, Entries: entries}
}

type topicRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (h *TopicHandler) Create(c *gin.Context) {
	var req topicRequest
	if !bind(c, &req, nil) {
		return
	}
	in := application.CreateTopicInput{Description: req.Description}
	if req.Name != nil {
		in.Name = *req.Name
	}
	t, err := h.Topics.Create(c.Request.Context(), userID(c), in)
	if err != nil {
		h.fail(c, err, "Error creating topic")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"topic": t}, "Topic created successfully", nil)
}

func (h *TopicHandler) List(c *gin.Context) {
	topics, err := h.Topics.List(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err, "Error fetching topics")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"topics": topics}, "", nil)
}

func (h *TopicHandler) Get(c *gin.Context) {
	t, err := h.Topics.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Error fetching topic")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"topic": t}, "", nil)
}

func (h *TopicHandler) Update(c *gin.Context) {
	var req topicRequest
	if !bind(c, &req, nil) {
		return
	}
	patch := entity.TopicPatch{Name: req.Name, Description: req.Description, Status: req.Status}
	t, err := h.Topics.Update(c.Request.Context(), userID(c), c.Param("id"), patch)
	if err != nil {
		h.fail(c, err, "Error updating topic")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"topic": t}, "Topic updated successfully", nil)
}

func (h *TopicHandler) Delete(c *gin.Context) {
	if err := h.Topics.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.fail(c, err, "Error deleting topic")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Topic deleted successfully", nil)
}

var entryMessages = validation.Messages{"originalText": "Research text is required"}

type addEntryRequest struct {
	TopicID      string  `json:"topicId"`
	OriginalText string  `json:"originalText" binding:"required"`
	Source       *string `json:"source"`
	Notes        *string `json:"notes"`
}

type updateEntryRequest struct {
	OriginalText  *string `json:"originalText"`
	RewrittenText *string `json:"rewrittenText"`
	Source        *string `json:"source"`
	Notes         *string `json:"notes"`
	IsProcessed   *bool   `json:"isProcessed"`
}

// AddEntry POST /api/topics/:id/entries, or POST /api/topics/entries with
// topicId in the body. The path wins when both are given.
func (h *TopicHandler) AddEntry(c *gin.Context) {
	var req addEntryRequest
	if !bind(c, &req, entryMessages) {
		return
	}
	in := application.AddEntryInput{OriginalText: req.OriginalText, Source: req.Source, Notes: req.Notes}
	topicID := c.Param("id")
	if topicID == "" {
		topicID = req.TopicID
	}
	e, err := h.Entries.Add(c.Request.Context(), userID(c), topicID, in)
	if err != nil {
		h.fail(c, err, "Error adding research entry")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"entry": e}, "Research entry added successfully", nil)
}

// ListEntries GET /api/topics/:id/entries
func (h *TopicHandler) ListEntries(c *gin.Context) {
	entries, err := h.Entries.List(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Error fetching research entries")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entries": entries}, "", nil)
}

func (h *TopicHandler) GetEntry(c *gin.Context) {
	e, err := h.Entries.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Error fetching research entry")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entry": e}, "", nil)
}

func (h *TopicHandler) UpdateEntry(c *gin.Context) {
	var req updateEntryRequest
	if !bind(c, &req, nil) {
		return
	}
	patch := entity.EntryPatch{
		OriginalText:  req.OriginalText,
		RewrittenText: req.RewrittenText,
		Source:        req.Source,
		Notes:         req.Notes,
		IsProcessed:   req.IsProcessed,
	}
	e, err := h.Entries.Update(c.Request.Context(), userID(c), c.Param("id"), patch)
	if err != nil {
		h.fail(c, err, "Error updating research entry")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entry": e}, "Research entry updated successfully", nil)
}

func (h *TopicHandler) DeleteEntry(c *gin.Context) {
	if err := h.Entries.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.fail(c, err, "Error deleting research entry")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Research entry deleted successfully", nil)
}
