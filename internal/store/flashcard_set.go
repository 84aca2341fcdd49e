package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// FlashcardSetStore defines the interface for flashcard set persistence.
type FlashcardSetStore interface {
	// Create saves a new flashcard set together with all of its flashcards.
	//
	// The write is atomic: either the set and every flashcard become durable,
	// or nothing does. A concurrent reader must never observe the set without
	// its flashcards. When called on a plain database handle the
	// implementation opens its own transaction; when called on a store
	// obtained through WithTx it participates in the caller's transaction.
	//
	// Returns validation errors if the set data is invalid and
	// ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, set *domain.FlashcardSet) error

	// ListByUser retrieves all sets owned by the given user, newest first
	// (created_at descending), each with its flashcards in insertion order.
	// Returns an empty slice when the user owns no sets.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.FlashcardSet, error)

	// GetByIDForUser retrieves the set with the given ID if and only if it is
	// owned by the given user, with its flashcards in insertion order.
	// Returns ErrFlashcardSetNotFound both when no such set exists and when
	// it is owned by someone else, so existence never leaks across users.
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.FlashcardSet, error)

	// WithTx returns a new FlashcardSetStore instance that uses the provided
	// transaction, allowing multiple operations to be executed atomically.
	WithTx(tx *sql.Tx) FlashcardSetStore
}
