package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/heart-api/internal/domain"
	"github.com/oksasatya/heart-api/internal/domain/entity"
)

const entryColumns = `id, topic_id, user_id, original_text, rewritten_text, source, notes,
		       entry_type, is_processed, created_at, updated_at`

// EntryRepository keeps research entries. Every mutation also bumps the
// parent topic's updated_at inside the same transaction.
type EntryRepository struct {
	db DB
}

func NewEntryRepository(db DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func scanEntry(row pgx.Row, e *entity.ResearchEntry) error {
	return row.Scan(&e.ID, &e.TopicID, &e.UserID, &e.OriginalText, &e.RewrittenText,
		&e.Source, &e.Notes, &e.EntryType, &e.IsProcessed, &e.CreatedAt, &e.UpdatedAt)
}

func touchTopic(ctx context.Context, tx pgx.Tx, topicID string) error {
	_, err := tx.Exec(ctx, `UPDATE topics SET updated_at = NOW() WHERE id = $1`, topicID)
	return mapError(err, "touch topic", domain.ErrTopicNotFound)
}

func (r *EntryRepository) Create(ctx context.Context, e *entity.ResearchEntry) error {
	if e.EntryType == "" {
		e.EntryType = entity.EntryTypeManual
	}
	return runInTx(ctx, r.db, func(tx pgx.Tx) error {
		var topicID string
		err := tx.QueryRow(ctx, `
			SELECT id FROM topics WHERE id = $1 AND user_id = $2
		`, e.TopicID, e.UserID).Scan(&topicID)
		if err != nil {
			return mapError(err, "check topic owner", domain.ErrTopicAccess)
		}

		row := tx.QueryRow(ctx, `
			INSERT INTO research_entries (topic_id, user_id, original_text, source, notes, entry_type, is_processed)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`, e.TopicID, e.UserID, e.OriginalText, e.Source, e.Notes, e.EntryType, e.IsProcessed)
		if err := row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return mapError(err, "create entry", domain.ErrTopicAccess)
		}
		return touchTopic(ctx, tx, e.TopicID)
	})
}

// ListByTopic returns the topic's entries, newest first. A topic that is
// missing or owned by someone else yields ErrTopicAccess.
func (r *EntryRepository) ListByTopic(ctx context.Context, topicID, userID string) ([]entity.ResearchEntry, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM topics WHERE id = $1 AND user_id = $2)
	`, topicID, userID).Scan(&exists); err != nil {
		return nil, mapError(err, "check topic owner", domain.ErrTopicAccess)
	}
	if !exists {
		return nil, domain.ErrTopicAccess
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+entryColumns+`
		FROM research_entries
		WHERE topic_id = $1 AND user_id = $2
		ORDER BY created_at DESC
	`, topicID, userID)
	if err != nil {
		return nil, mapError(err, "list entries", domain.ErrEntryNotFound)
	}
	defer rows.Close()

	entries := make([]entity.ResearchEntry, 0)
	for rows.Next() {
		var e entity.ResearchEntry
		if err := scanEntry(rows, &e); err != nil {
			return nil, mapError(err, "scan entry", domain.ErrEntryNotFound)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "list entries", domain.ErrEntryNotFound)
	}
	return entries, nil
}

func (r *EntryRepository) GetByID(ctx context.Context, id, userID string) (*entity.ResearchEntry, error) {
	e := &entity.ResearchEntry{}
	row := r.db.QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM research_entries
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err := scanEntry(row, e); err != nil {
		return nil, mapError(err, "get entry", domain.ErrEntryNotFound)
	}
	return e, nil
}

func (r *EntryRepository) Update(ctx context.Context, id, userID string, patch entity.EntryPatch) (*entity.ResearchEntry, error) {
	e := &entity.ResearchEntry{}
	err := runInTx(ctx, r.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			UPDATE research_entries
			SET original_text = COALESCE($1, original_text),
			    rewritten_text = COALESCE($2, rewritten_text),
			    source = COALESCE($3, source),
			    notes = COALESCE($4, notes),
			    is_processed = COALESCE($5, is_processed),
			    updated_at = NOW()
			WHERE id = $6 AND user_id = $7
			RETURNING `+entryColumns,
			patch.OriginalText, patch.RewrittenText, patch.Source, patch.Notes, patch.IsProcessed, id, userID)
		if err := scanEntry(row, e); err != nil {
			return mapError(err, "update entry", domain.ErrEntryNotFound)
		}
		return touchTopic(ctx, tx, e.TopicID)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *EntryRepository) Delete(ctx context.Context, id, userID string) (string, error) {
	var topicID string
	err := runInTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			DELETE FROM research_entries WHERE id = $1 AND user_id = $2
			RETURNING topic_id
		`, id, userID).Scan(&topicID)
		if err != nil {
			return mapError(err, "delete entry", domain.ErrEntryNotFound)
		}
		return touchTopic(ctx, tx, topicID)
	})
	if err != nil {
		return "", err
	}
	return topicID, nil
}
