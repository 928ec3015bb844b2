package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/heart-api/internal/domain"
	"github.com/oksasatya/heart-api/internal/domain/entity"
	repo "github.com/oksasatya/heart-api/internal/domain/repository"
	"github.com/oksasatya/heart-api/pkg/citation"
	"github.com/oksasatya/heart-api/pkg/helpers"
)

const defaultExportTitle = "Untitled Article"

// Export formats.
const (
	FormatText     = "txt"
	FormatMarkdown = "md"
)

var exportContentTypes = map[string]string{
	FormatText:     "text/plain; charset=utf-8",
	FormatMarkdown: "text/markdown; charset=utf-8",
}

// ExportService renders drafts to documents and, when an uploader is
// configured, stores them in object storage.
type ExportService struct {
	Drafts   repo.DraftRepository
	Uploader Uploader
	Logger   *logrus.Logger
}

func NewExportService(drafts repo.DraftRepository, uploader Uploader, logger *logrus.Logger) *ExportService {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &ExportService{Drafts: drafts, Uploader: uploader, Logger: logger}
}

type ExportResult struct {
	Format      string `json:"format"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	URL         string `json:"url,omitempty"`
	Content     string `json:"content,omitempty"`
}

// Export renders the draft. Without an uploader the rendered document is
// returned inline.
func (s *ExportService) Export(ctx context.Context, userID, draftID, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatText
	}
	contentType, ok := exportContentTypes[format]
	if !ok {
		return nil, domain.NewValidationError("format", "Format must be one of: txt, md")
	}
	if !validID(draftID) {
		return nil, domain.ErrDraftNotFound
	}
	d, err := s.Drafts.GetByID(ctx, draftID, userID)
	if err != nil {
		return nil, err
	}

	body := RenderDraft(d, format)
	res := &ExportResult{
		Format:      format,
		Filename:    draftID + "." + format,
		ContentType: contentType,
	}
	if s.Uploader == nil {
		res.Content = body
		return res, nil
	}

	object := fmt.Sprintf("exports/%s/%s-%s.%s", userID, draftID, uuid.NewString(), format)
	url, err := s.Uploader.Upload(ctx, object, contentType, strings.NewReader(body))
	if err != nil {
		s.Logger.WithError(err).WithField("draft_id", draftID).Error("export upload failed")
		return nil, fmt.Errorf("export draft: %w", err)
	}
	res.URL = url
	return res, nil
}

// RenderDraft produces the export body: title, the rewritten content (or
// the original when nothing was rewritten), then the references.
func RenderDraft(d *entity.ArticleDraft, format string) string {
	title := defaultExportTitle
	if d.Title != nil && strings.TrimSpace(*d.Title) != "" {
		title = strings.TrimSpace(*d.Title)
	}
	content := d.OriginalContent
	if d.RewrittenContent != nil && strings.TrimSpace(*d.RewrittenContent) != "" {
		content = *d.RewrittenContent
	}

	var sb strings.Builder
	if format == FormatMarkdown {
		sb.WriteString("# " + title + "\n\n")
	} else {
		sb.WriteString(title + "\n" + strings.Repeat("=", len([]rune(title))) + "\n\n")
	}
	sb.WriteString(content)
	return citation.AppendReferences(sb.String(), d.Citations)
}
