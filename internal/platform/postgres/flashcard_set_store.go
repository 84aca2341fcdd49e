package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// PostgresFlashcardSetStore implements the store.FlashcardSetStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFlashcardSetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFlashcardSetStore creates a new PostgreSQL implementation of the
// FlashcardSetStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresFlashcardSetStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardSetStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardSetStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_set_store")),
	}
}

// Ensure PostgresFlashcardSetStore implements store.FlashcardSetStore
var _ store.FlashcardSetStore = (*PostgresFlashcardSetStore)(nil)

// WithTx implements store.FlashcardSetStore.WithTx
func (s *PostgresFlashcardSetStore) WithTx(tx *sql.Tx) store.FlashcardSetStore {
	return &PostgresFlashcardSetStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.FlashcardSetStore.Create
// It saves the set and all of its flashcards atomically. On a plain database
// handle it opens its own transaction; on a transactional store (WithTx) it
// writes within the caller's transaction.
func (s *PostgresFlashcardSetStore) Create(ctx context.Context, set *domain.FlashcardSet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := set.Validate(); err != nil {
		log.Warn("flashcard set validation failed during create",
			slog.String("error", err.Error()),
			slog.String("set_id", set.ID.String()))
		return err
	}

	if db, ok := s.db.(*sql.DB); ok {
		return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return s.WithTx(tx).(*PostgresFlashcardSetStore).createWithinTx(ctx, set)
		})
	}

	return s.createWithinTx(ctx, set)
}

// createWithinTx inserts the set row and every flashcard row. It must only
// run on a transactional handle; Create guarantees that.
func (s *PostgresFlashcardSetStore) createWithinTx(ctx context.Context, set *domain.FlashcardSet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	setQuery := `
		INSERT INTO flashcard_sets (id, user_id, title, description, file_name, file_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		setQuery,
		set.ID,
		set.UserID,
		set.Title,
		set.Description,
		set.FileName,
		set.FileType,
		set.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during flashcard set creation",
				slog.String("set_id", set.ID.String()),
				slog.String("user_id", set.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, set.UserID)
		}
		log.Error("failed to create flashcard set",
			slog.String("error", err.Error()),
			slog.String("set_id", set.ID.String()))
		return MapError(err)
	}

	// position preserves generation order independent of timestamps.
	cardQuery := `
		INSERT INTO flashcards (id, set_id, question, answer, difficulty, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i, card := range set.Flashcards {
		_, err := s.db.ExecContext(
			ctx,
			cardQuery,
			card.ID,
			card.SetID,
			card.Question,
			card.Answer,
			card.Difficulty,
			i,
			card.CreatedAt,
		)
		if err != nil {
			log.Error("failed to create flashcard",
				slog.String("error", err.Error()),
				slog.String("set_id", set.ID.String()),
				slog.String("card_id", card.ID.String()))
			return MapError(err)
		}
	}

	log.Info("flashcard set created",
		slog.String("set_id", set.ID.String()),
		slog.String("user_id", set.UserID.String()),
		slog.Int("flashcard_count", len(set.Flashcards)))
	return nil
}

// ListByUser implements store.FlashcardSetStore.ListByUser
func (s *PostgresFlashcardSetStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.FlashcardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, title, description, file_name, file_type, created_at
		FROM flashcard_sets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query flashcard sets",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	sets := []*domain.FlashcardSet{}
	for rows.Next() {
		var set domain.FlashcardSet
		err := rows.Scan(
			&set.ID,
			&set.UserID,
			&set.Title,
			&set.Description,
			&set.FileName,
			&set.FileType,
			&set.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan flashcard set row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		sets = append(sets, &set)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning flashcard set rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	for _, set := range sets {
		if err := s.loadFlashcards(ctx, set); err != nil {
			return nil, err
		}
	}

	log.Debug("listed flashcard sets",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(sets)))
	return sets, nil
}

// GetByIDForUser implements store.FlashcardSetStore.GetByIDForUser
// The query filters on both ID and owner, so a set owned by another user is
// indistinguishable from a nonexistent one.
func (s *PostgresFlashcardSetStore) GetByIDForUser(
	ctx context.Context,
	id, userID uuid.UUID,
) (*domain.FlashcardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, title, description, file_name, file_type, created_at
		FROM flashcard_sets
		WHERE id = $1 AND user_id = $2
	`

	var set domain.FlashcardSet
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&set.ID,
		&set.UserID,
		&set.Title,
		&set.Description,
		&set.FileName,
		&set.FileType,
		&set.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("flashcard set not found",
				slog.String("set_id", id.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrFlashcardSetNotFound
		}
		log.Error("failed to get flashcard set",
			slog.String("error", err.Error()),
			slog.String("set_id", id.String()))
		return nil, MapError(err)
	}

	if err := s.loadFlashcards(ctx, &set); err != nil {
		return nil, err
	}

	return &set, nil
}

// loadFlashcards populates set.Flashcards in insertion order.
func (s *PostgresFlashcardSetStore) loadFlashcards(ctx context.Context, set *domain.FlashcardSet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, set_id, question, answer, difficulty, created_at
		FROM flashcards
		WHERE set_id = $1
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, query, set.ID)
	if err != nil {
		log.Error("failed to query flashcards",
			slog.String("error", err.Error()),
			slog.String("set_id", set.ID.String()))
		return MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	cards := []*domain.Flashcard{}
	for rows.Next() {
		var card domain.Flashcard
		var difficulty string
		err := rows.Scan(
			&card.ID,
			&card.SetID,
			&card.Question,
			&card.Answer,
			&difficulty,
			&card.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan flashcard row",
				slog.String("error", err.Error()),
				slog.String("set_id", set.ID.String()))
			return MapError(err)
		}
		card.Difficulty = domain.Difficulty(difficulty)
		cards = append(cards, &card)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning flashcard rows",
			slog.String("error", err.Error()))
		return MapError(err)
	}

	set.Flashcards = cards
	return nil
}
