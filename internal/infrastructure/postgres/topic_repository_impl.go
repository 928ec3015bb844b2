package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/heart-api/internal/domain"
	"github.com/oksasatya/heart-api/internal/domain/entity"
)

// topicSelect aggregates entry counters per topic; callers append the
// WHERE clause before topicGroupBy.
const topicSelect = `
		SELECT t.id, t.user_id, t.name, t.description, t.status, t.created_at, t.updated_at,
		       COUNT(re.id) AS total_entries,
		       COUNT(CASE WHEN re.is_processed THEN 1 END) AS processed_entries
		FROM topics t
		LEFT JOIN research_entries re ON re.topic_id = t.id`

const topicGroupBy = `
		GROUP BY t.id`

type TopicRepository struct {
	db DB
}

func NewTopicRepository(db DB) *TopicRepository {
	return &TopicRepository{db: db}
}

func scanTopic(row pgx.Row, t *entity.Topic) error {
	return row.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &t.Status,
		&t.CreatedAt, &t.UpdatedAt, &t.TotalEntries, &t.ProcessedEntries)
}

func (r *TopicRepository) Create(ctx context.Context, t *entity.Topic) error {
	if t.Status == "" {
		t.Status = entity.TopicStatusActive
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO topics (user_id, name, description, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, t.UserID, t.Name, t.Description, t.Status)

	if err := row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return mapError(err, "create topic", domain.ErrTopicNotFound)
	}
	return nil
}

func (r *TopicRepository) ListByUser(ctx context.Context, userID string) ([]entity.Topic, error) {
	rows, err := r.db.Query(ctx, topicSelect+`
		WHERE t.user_id = $1`+topicGroupBy+`
		ORDER BY t.updated_at DESC
	`, userID)
	if err != nil {
		return nil, mapError(err, "list topics", domain.ErrTopicNotFound)
	}
	defer rows.Close()

	topics := make([]entity.Topic, 0)
	for rows.Next() {
		var t entity.Topic
		if err := scanTopic(rows, &t); err != nil {
			return nil, mapError(err, "scan topic", domain.ErrTopicNotFound)
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "list topics", domain.ErrTopicNotFound)
	}
	return topics, nil
}

func (r *TopicRepository) GetByID(ctx context.Context, id, userID string) (*entity.Topic, error) {
	t := &entity.Topic{}
	row := r.db.QueryRow(ctx, topicSelect+`
		WHERE t.id = $1 AND t.user_id = $2`+topicGroupBy, id, userID)

	if err := scanTopic(row, t); err != nil {
		return nil, mapError(err, "get topic", domain.ErrTopicNotFound)
	}
	return t, nil
}

// Update merges the patch with COALESCE and returns the refreshed topic
// with its counters.
func (r *TopicRepository) Update(ctx context.Context, id, userID string, patch entity.TopicPatch) (*entity.Topic, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE topics
		SET name = COALESCE($1, name),
		    description = COALESCE($2, description),
		    status = COALESCE($3, status),
		    updated_at = NOW()
		WHERE id = $4 AND user_id = $5
	`, patch.Name, patch.Description, patch.Status, id, userID)
	if err != nil {
		return nil, mapError(err, "update topic", domain.ErrTopicNotFound)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrTopicNotFound
	}
	return r.GetByID(ctx, id, userID)
}

// Delete removes the topic; its entries go with it (ON DELETE CASCADE).
func (r *TopicRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM topics WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return mapError(err, "delete topic", domain.ErrTopicNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTopicNotFound
	}
	return nil
}
