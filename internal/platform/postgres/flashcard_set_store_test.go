package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// testSet builds a valid set with two flashcards.
func testSet(t *testing.T) *domain.FlashcardSet {
	t.Helper()

	set, err := domain.NewFlashcardSet(
		uuid.New(),
		"Geography",
		"Flashcards generated from geo.txt",
		"geo.txt",
		domain.FileTypePlainText,
		[]domain.FlashcardContent{
			{Question: "Q1", Answer: "A1", Difficulty: domain.DifficultyEasy},
			{Question: "Q2", Answer: "A2", Difficulty: domain.DifficultyHard},
		},
	)
	require.NoError(t, err)
	return set
}

func newMockStore(t *testing.T) (*PostgresFlashcardSetStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgresFlashcardSetStore(db, nil), mock
}

func TestFlashcardSetCreateCommitsAtomically(t *testing.T) {
	s, mock := newMockStore(t)
	set := testSet(t)

	// The whole write happens inside one transaction
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO flashcard_sets")).
		WithArgs(set.ID, set.UserID, set.Title, set.Description, set.FileName, set.FileType, set.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	for i, card := range set.Flashcards {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO flashcards")).
			WithArgs(card.ID, card.SetID, card.Question, card.Answer, card.Difficulty, i, card.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	err := s.Create(context.Background(), set)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlashcardSetCreateRollsBackOnCardFailure(t *testing.T) {
	s, mock := newMockStore(t)
	set := testSet(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO flashcard_sets")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO flashcards")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Second card insert fails and the whole transaction rolls back
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO flashcards")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := s.Create(context.Background(), set)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlashcardSetCreateMissingUser(t *testing.T) {
	s, mock := newMockStore(t)
	set := testSet(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO flashcard_sets")).
		WillReturnError(pgError("23503", "flashcard_sets_user_id_fkey"))
	mock.ExpectRollback()

	err := s.Create(context.Background(), set)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlashcardSetCreateRejectsInvalidSet(t *testing.T) {
	s, mock := newMockStore(t)

	// An invalid set never reaches the database
	err := s.Create(context.Background(), &domain.FlashcardSet{})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func setRows(sets ...*domain.FlashcardSet) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "title", "description", "file_name", "file_type", "created_at",
	})
	for _, s := range sets {
		rows.AddRow(s.ID, s.UserID, s.Title, s.Description, s.FileName, s.FileType, s.CreatedAt)
	}
	return rows
}

func cardRows(cards ...*domain.Flashcard) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "set_id", "question", "answer", "difficulty", "created_at",
	})
	for _, c := range cards {
		rows.AddRow(c.ID, c.SetID, c.Question, c.Answer, string(c.Difficulty), c.CreatedAt)
	}
	return rows
}

func TestListByUser(t *testing.T) {
	s, mock := newMockStore(t)
	userID := uuid.New()

	newer := &domain.FlashcardSet{
		ID: uuid.New(), UserID: userID, Title: "Newer",
		FileName: "b.txt", FileType: domain.FileTypePlainText,
		CreatedAt: time.Now().UTC(),
	}
	older := &domain.FlashcardSet{
		ID: uuid.New(), UserID: userID, Title: "Older",
		FileName: "a.txt", FileType: domain.FileTypePlainText,
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	card := &domain.Flashcard{
		ID: uuid.New(), SetID: newer.ID, Question: "Q", Answer: "A",
		Difficulty: domain.DifficultyMedium, CreatedAt: time.Now().UTC(),
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM flashcard_sets")).
		WithArgs(userID).
		WillReturnRows(setRows(newer, older))
	mock.ExpectQuery(regexp.QuoteMeta("FROM flashcards")).
		WithArgs(newer.ID).
		WillReturnRows(cardRows(card))
	mock.ExpectQuery(regexp.QuoteMeta("FROM flashcards")).
		WithArgs(older.ID).
		WillReturnRows(cardRows())

	sets, err := s.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, sets, 2)

	assert.Equal(t, "Newer", sets[0].Title)
	assert.Equal(t, "Older", sets[1].Title)
	require.Len(t, sets[0].Flashcards, 1)
	assert.Equal(t, "Q", sets[0].Flashcards[0].Question)
	assert.Empty(t, sets[1].Flashcards)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserEmpty(t *testing.T) {
	s, mock := newMockStore(t)
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM flashcard_sets")).
		WithArgs(userID).
		WillReturnRows(setRows())

	sets, err := s.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.NotNil(t, sets)
	assert.Empty(t, sets)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDForUser(t *testing.T) {
	s, mock := newMockStore(t)
	userID := uuid.New()

	set := &domain.FlashcardSet{
		ID: uuid.New(), UserID: userID, Title: "Mine",
		FileName: "doc.pdf", FileType: domain.FileTypePDF,
		CreatedAt: time.Now().UTC(),
	}
	card := &domain.Flashcard{
		ID: uuid.New(), SetID: set.ID, Question: "Q", Answer: "A",
		Difficulty: domain.DifficultyEasy, CreatedAt: time.Now().UTC(),
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM flashcard_sets")).
		WithArgs(set.ID, userID).
		WillReturnRows(setRows(set))
	mock.ExpectQuery(regexp.QuoteMeta("FROM flashcards")).
		WithArgs(set.ID).
		WillReturnRows(cardRows(card))

	got, err := s.GetByIDForUser(context.Background(), set.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, set.ID, got.ID)
	require.Len(t, got.Flashcards, 1)
	assert.Equal(t, domain.DifficultyEasy, got.Flashcards[0].Difficulty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDForUserNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	// The query filters on owner, so a foreign set returns no rows
	mock.ExpectQuery(regexp.QuoteMeta("FROM flashcard_sets")).
		WillReturnRows(setRows())

	got, err := s.GetByIDForUser(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, store.ErrFlashcardSetNotFound)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
