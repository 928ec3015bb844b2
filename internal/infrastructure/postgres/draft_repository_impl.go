package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/heart-api/internal/domain"
	"github.com/oksasatya/heart-api/internal/domain/entity"
)

const draftColumns = `id, user_id, title, original_content, rewritten_content, citations, metadata,
		       status, created_at, updated_at`

type DraftRepository struct {
	db DB
}

func NewDraftRepository(db DB) *DraftRepository {
	return &DraftRepository{db: db}
}

// nullableJSON returns nil when the value is unset so the column stays
// NULL, or COALESCE keeps the stored document.
func nullableJSON(v any, set bool) ([]byte, error) {
	if !set {
		return nil, nil
	}
	return json.Marshal(v)
}

func scanDraft(row pgx.Row, d *entity.ArticleDraft) error {
	var citations, metadata []byte
	if err := row.Scan(&d.ID, &d.UserID, &d.Title, &d.OriginalContent, &d.RewrittenContent,
		&citations, &metadata, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return err
	}
	if len(citations) > 0 {
		if err := json.Unmarshal(citations, &d.Citations); err != nil {
			return fmt.Errorf("decode citations: %w", err)
		}
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &d.Metadata); err != nil {
			return fmt.Errorf("decode metadata: %w", err)
		}
	}
	return nil
}

func (r *DraftRepository) Create(ctx context.Context, d *entity.ArticleDraft) error {
	if d.Status == "" {
		d.Status = entity.DraftStatusDraft
	}
	citations, err := nullableJSON(d.Citations, d.Citations != nil)
	if err != nil {
		return fmt.Errorf("encode citations: %w", err)
	}
	metadata, err := nullableJSON(d.Metadata, d.Metadata != nil)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO article_drafts (user_id, title, original_content, rewritten_content, citations, metadata, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, d.UserID, d.Title, d.OriginalContent, d.RewrittenContent, citations, metadata, d.Status)

	if err := row.Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return mapError(err, "create draft", domain.ErrDraftNotFound)
	}
	return nil
}

func (r *DraftRepository) ListByUser(ctx context.Context, userID string) ([]entity.ArticleDraft, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+draftColumns+`
		FROM article_drafts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, mapError(err, "list drafts", domain.ErrDraftNotFound)
	}
	defer rows.Close()

	drafts := make([]entity.ArticleDraft, 0)
	for rows.Next() {
		var d entity.ArticleDraft
		if err := scanDraft(rows, &d); err != nil {
			return nil, mapError(err, "scan draft", domain.ErrDraftNotFound)
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "list drafts", domain.ErrDraftNotFound)
	}
	return drafts, nil
}

func (r *DraftRepository) GetByID(ctx context.Context, id, userID string) (*entity.ArticleDraft, error) {
	d := &entity.ArticleDraft{}
	row := r.db.QueryRow(ctx, `
		SELECT `+draftColumns+`
		FROM article_drafts
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err := scanDraft(row, d); err != nil {
		return nil, mapError(err, "get draft", domain.ErrDraftNotFound)
	}
	return d, nil
}

// Update merges the patch field by field. Applying the same patch twice
// leaves the row as after the first application.
func (r *DraftRepository) Update(ctx context.Context, id, userID string, patch entity.DraftPatch) (*entity.ArticleDraft, error) {
	citations, err := nullableJSON(patch.Citations, patch.Citations != nil)
	if err != nil {
		return nil, fmt.Errorf("encode citations: %w", err)
	}
	metadata, err := nullableJSON(patch.Metadata, patch.Metadata != nil)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}

	d := &entity.ArticleDraft{}
	row := r.db.QueryRow(ctx, `
		UPDATE article_drafts
		SET title = COALESCE($1, title),
		    original_content = COALESCE($2, original_content),
		    rewritten_content = COALESCE($3, rewritten_content),
		    citations = COALESCE($4::jsonb, citations),
		    metadata = COALESCE($5::jsonb, metadata),
		    status = COALESCE($6, status),
		    updated_at = NOW()
		WHERE id = $7 AND user_id = $8
		RETURNING `+draftColumns,
		patch.Title, patch.OriginalContent, patch.RewrittenContent, citations, metadata, patch.Status, id, userID)
	if err := scanDraft(row, d); err != nil {
		return nil, mapError(err, "update draft", domain.ErrDraftNotFound)
	}
	return d, nil
}

func (r *DraftRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM article_drafts WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return mapError(err, "delete draft", domain.ErrDraftNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDraftNotFound
	}
	return nil
}
