package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/heart-api/internal/domain"
	"github.com/oksasatya/heart-api/internal/domain/entity"
	"github.com/oksasatya/heart-api/pkg/citation"
)

const (
	userA   = "11111111-1111-1111-1111-111111111111"
	userB   = "22222222-2222-2222-2222-222222222222"
	topicID = "33333333-3333-3333-3333-333333333333"
	entryID = "44444444-4444-4444-4444-444444444444"
	draftID = "55555555-5555-5555-5555-555555555555"
)

var (
	topicCols = []string{"id", "user_id", "name", "description", "status", "created_at", "updated_at", "total_entries", "processed_entries"}
	entryCols = []string{"id", "topic_id", "user_id", "original_text", "rewritten_text", "source", "notes", "entry_type", "is_processed", "created_at", "updated_at"}
	draftCols = []string{"id", "user_id", "title", "original_content", "rewritten_content", "citations", "metadata", "status", "created_at", "updated_at"}
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return mockDB
}

func strPtr(s string) *string { return &s }

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, domain.ErrTopicNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, domain.ErrConflict},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, domain.ErrTopicNotFound},
		{"value too long", &pgconn.PgError{Code: "22001"}, domain.ErrValidation},
		{"deadline", context.DeadlineExceeded, context.DeadlineExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err, "op", domain.ErrTopicNotFound)
			assert.ErrorIs(t, got, tt.want)
		})
	}
	assert.NoError(t, mapError(nil, "op", domain.ErrTopicNotFound))
}

func TestUserRepository_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockDB := newMock(t)
		now := time.Now()
		mockDB.ExpectQuery("INSERT INTO users").
			WithArgs("a@b.co", "hash").
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(userA, now))

		u := &entity.User{Email: "a@b.co", PasswordHash: "hash"}
		err := NewUserRepository(mockDB).Create(context.Background(), u)

		require.NoError(t, err)
		assert.Equal(t, userA, u.ID)
		assert.Equal(t, now, u.CreatedAt)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		mockDB := newMock(t)
		mockDB.ExpectQuery("INSERT INTO users").
			WithArgs("a@b.co", "hash").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := NewUserRepository(mockDB).Create(context.Background(), &entity.User{Email: "a@b.co", PasswordHash: "hash"})

		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Equal(t, domain.ErrUserExists, err)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	mockDB := newMock(t)
	mockDB.ExpectQuery("SELECT id, email, password_hash, created_at").
		WithArgs("missing@b.co").
		WillReturnError(pgx.ErrNoRows)

	u, err := NewUserRepository(mockDB).GetByEmail(context.Background(), "missing@b.co")

	assert.Nil(t, u)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestTopicRepository_Create_DefaultsToActive(t *testing.T) {
	mockDB := newMock(t)
	now := time.Now()
	mockDB.ExpectQuery("INSERT INTO topics").
		WithArgs(userA, "Cardiology", pgxmock.AnyArg(), entity.TopicStatusActive).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(topicID, now, now))

	tp := &entity.Topic{UserID: userA, Name: "Cardiology"}
	err := NewTopicRepository(mockDB).Create(context.Background(), tp)

	require.NoError(t, err)
	assert.Equal(t, topicID, tp.ID)
	assert.Equal(t, entity.TopicStatusActive, tp.Status)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestTopicRepository_GetByID(t *testing.T) {
	t.Run("aggregates entry counters", func(t *testing.T) {
		mockDB := newMock(t)
		now := time.Now()
		mockDB.ExpectQuery("LEFT JOIN research_entries").
			WithArgs(topicID, userA).
			WillReturnRows(pgxmock.NewRows(topicCols).
				AddRow(topicID, userA, "Cardiology", (*string)(nil), "active", now, now, int64(1), int64(0)))

		tp, err := NewTopicRepository(mockDB).GetByID(context.Background(), topicID, userA)

		require.NoError(t, err)
		assert.Equal(t, int64(1), tp.TotalEntries)
		assert.Equal(t, int64(0), tp.ProcessedEntries)
		assert.Nil(t, tp.Description)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("other user's topic is not found", func(t *testing.T) {
		mockDB := newMock(t)
		mockDB.ExpectQuery("LEFT JOIN research_entries").
			WithArgs(topicID, userB).
			WillReturnError(pgx.ErrNoRows)

		_, err := NewTopicRepository(mockDB).GetByID(context.Background(), topicID, userB)

		assert.ErrorIs(t, err, domain.ErrTopicNotFound)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestTopicRepository_ListByUser(t *testing.T) {
	mockDB := newMock(t)
	now := time.Now()
	mockDB.ExpectQuery("ORDER BY t.updated_at DESC").
		WithArgs(userA).
		WillReturnRows(pgxmock.NewRows(topicCols).
			AddRow(topicID, userA, "B", strPtr("desc"), "active", now, now, int64(2), int64(1)).
			AddRow("66666666-6666-6666-6666-666666666666", userA, "A", (*string)(nil), "archived", now, now.Add(-time.Hour), int64(0), int64(0)))

	topics, err := NewTopicRepository(mockDB).ListByUser(context.Background(), userA)

	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "desc", *topics[0].Description)
	assert.Equal(t, "archived", topics[1].Status)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestTopicRepository_UpdateAndDelete_NoRows(t *testing.T) {
	mockDB := newMock(t)
	mockDB.ExpectExec("UPDATE topics").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), topicID, userB).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mockDB.ExpectExec("DELETE FROM topics").
		WithArgs(topicID, userB).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewTopicRepository(mockDB)
	_, err := repo.Update(context.Background(), topicID, userB, entity.TopicPatch{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrTopicNotFound)

	err = repo.Delete(context.Background(), topicID, userB)
	assert.ErrorIs(t, err, domain.ErrTopicNotFound)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestEntryRepository_Create_TouchesTopicInTransaction(t *testing.T) {
	mockDB := newMock(t)
	now := time.Now()
	mockDB.ExpectBegin()
	mockDB.ExpectQuery("SELECT id FROM topics").
		WithArgs(topicID, userA).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(topicID))
	mockDB.ExpectQuery("INSERT INTO research_entries").
		WithArgs(topicID, userA, "note", pgxmock.AnyArg(), pgxmock.AnyArg(), entity.EntryTypeManual, false).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(entryID, now, now))
	mockDB.ExpectExec("UPDATE topics SET updated_at").
		WithArgs(topicID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockDB.ExpectCommit()

	e := &entity.ResearchEntry{TopicID: topicID, UserID: userA, OriginalText: "note"}
	err := NewEntryRepository(mockDB).Create(context.Background(), e)

	require.NoError(t, err)
	assert.Equal(t, entryID, e.ID)
	assert.Equal(t, entity.EntryTypeManual, e.EntryType)
	assert.False(t, e.IsProcessed)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestEntryRepository_Create_ForeignTopicRollsBack(t *testing.T) {
	mockDB := newMock(t)
	mockDB.ExpectBegin()
	mockDB.ExpectQuery("SELECT id FROM topics").
		WithArgs(topicID, userB).
		WillReturnError(pgx.ErrNoRows)
	mockDB.ExpectRollback()

	err := NewEntryRepository(mockDB).Create(context.Background(),
		&entity.ResearchEntry{TopicID: topicID, UserID: userB, OriginalText: "note"})

	assert.ErrorIs(t, err, domain.ErrTopicAccess)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestEntryRepository_Update_RollsBackWhenTouchFails(t *testing.T) {
	mockDB := newMock(t)
	now := time.Now()
	boom := errors.New("boom")
	mockDB.ExpectBegin()
	mockDB.ExpectQuery("UPDATE research_entries").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), entryID, userA).
		WillReturnRows(pgxmock.NewRows(entryCols).
			AddRow(entryID, topicID, userA, "note", (*string)(nil), (*string)(nil), (*string)(nil), "manual", true, now, now))
	mockDB.ExpectExec("UPDATE topics SET updated_at").
		WithArgs(topicID).
		WillReturnError(boom)
	mockDB.ExpectRollback()

	processed := true
	_, err := NewEntryRepository(mockDB).Update(context.Background(), entryID, userA, entity.EntryPatch{IsProcessed: &processed})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestEntryRepository_Delete(t *testing.T) {
	mockDB := newMock(t)
	mockDB.ExpectBegin()
	mockDB.ExpectQuery("DELETE FROM research_entries").
		WithArgs(entryID, userA).
		WillReturnRows(pgxmock.NewRows([]string{"topic_id"}).AddRow(topicID))
	mockDB.ExpectExec("UPDATE topics SET updated_at").
		WithArgs(topicID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockDB.ExpectCommit()

	got, err := NewEntryRepository(mockDB).Delete(context.Background(), entryID, userA)

	require.NoError(t, err)
	assert.Equal(t, topicID, got)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestEntryRepository_ListByTopic(t *testing.T) {
	t.Run("foreign topic", func(t *testing.T) {
		mockDB := newMock(t)
		mockDB.ExpectQuery("SELECT EXISTS").
			WithArgs(topicID, userB).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := NewEntryRepository(mockDB).ListByTopic(context.Background(), topicID, userB)

		assert.ErrorIs(t, err, domain.ErrTopicAccess)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("newest first", func(t *testing.T) {
		mockDB := newMock(t)
		now := time.Now()
		mockDB.ExpectQuery("SELECT EXISTS").
			WithArgs(topicID, userA).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
		mockDB.ExpectQuery("ORDER BY created_at DESC").
			WithArgs(topicID, userA).
			WillReturnRows(pgxmock.NewRows(entryCols).
				AddRow(entryID, topicID, userA, "note", strPtr("rewritten"), strPtr("PubMed"), (*string)(nil), "manual", true, now, now))

		entries, err := NewEntryRepository(mockDB).ListByTopic(context.Background(), topicID, userA)

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "rewritten", *entries[0].RewrittenText)
		assert.Equal(t, "PubMed", *entries[0].Source)
		assert.Nil(t, entries[0].Notes)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestDraftRepository_Create(t *testing.T) {
	mockDB := newMock(t)
	now := time.Now()
	mockDB.ExpectQuery("INSERT INTO article_drafts").
		WithArgs(userA, pgxmock.AnyArg(), "body", pgxmock.AnyArg(),
			[]byte(`[{"number":1,"text":"","vancouverStyle":"1. A. T. . ;():."}]`),
			[]byte(`{"grammarErrors":2}`),
			entity.DraftStatusDraft).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(draftID, now, now))

	d := &entity.ArticleDraft{
		UserID:          userA,
		Title:           strPtr("Untitled Draft"),
		OriginalContent: "body",
		Citations:       []citation.Citation{{Number: 1, VancouverStyle: "1. A. T. . ;():."}},
		Metadata:        map[string]any{"grammarErrors": 2},
	}
	err := NewDraftRepository(mockDB).Create(context.Background(), d)

	require.NoError(t, err)
	assert.Equal(t, draftID, d.ID)
	assert.Equal(t, entity.DraftStatusDraft, d.Status)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestDraftRepository_GetByID_DecodesJSON(t *testing.T) {
	mockDB := newMock(t)
	now := time.Now()
	mockDB.ExpectQuery("FROM article_drafts").
		WithArgs(draftID, userA).
		WillReturnRows(pgxmock.NewRows(draftCols).
			AddRow(draftID, userA, strPtr("T"), "body", (*string)(nil),
				[]byte(`[{"number":1,"text":"x","vancouverStyle":"1. A."}]`),
				[]byte(`{"aiDetectionScore":0.15}`),
				"draft", now, now))

	d, err := NewDraftRepository(mockDB).GetByID(context.Background(), draftID, userA)

	require.NoError(t, err)
	require.Len(t, d.Citations, 1)
	assert.Equal(t, "1. A.", d.Citations[0].VancouverStyle)
	assert.Equal(t, 0.15, d.Metadata["aiDetectionScore"])
	assert.Nil(t, d.RewrittenContent)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestDraftRepository_Update_KeepsUnsetJSON(t *testing.T) {
	mockDB := newMock(t)
	now := time.Now()
	mockDB.ExpectQuery("UPDATE article_drafts").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), []byte(nil), []byte(nil), pgxmock.AnyArg(), draftID, userA).
		WillReturnRows(pgxmock.NewRows(draftCols).
			AddRow(draftID, userA, strPtr("New"), "body", (*string)(nil), []byte(nil), []byte(nil), "draft", now, now))

	d, err := NewDraftRepository(mockDB).Update(context.Background(), draftID, userA, entity.DraftPatch{Title: strPtr("New")})

	require.NoError(t, err)
	assert.Equal(t, "New", *d.Title)
	assert.Nil(t, d.Citations)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestDraftRepository_Delete_OtherUser(t *testing.T) {
	mockDB := newMock(t)
	mockDB.ExpectExec("DELETE FROM article_drafts").
		WithArgs(draftID, userB).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := NewDraftRepository(mockDB).Delete(context.Background(), draftID, userB)

	assert.ErrorIs(t, err, domain.ErrDraftNotFound)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}
