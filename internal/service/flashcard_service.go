package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/extract"
	"github.com/flashdeck/flashdeck-api/internal/generation"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// Common sentinel errors for FlashcardService
var (
	// ErrSetNotFound indicates that the flashcard set does not exist for the
	// requesting user.
	ErrSetNotFound = errors.New("flashcard set not found")

	// ErrInvalidFileData indicates that the upload's base64 file data could
	// not be decoded.
	ErrInvalidFileData = errors.New("file data is not valid base64")

	// ErrNoFlashcardsGenerated indicates that generation succeeded but
	// produced zero flashcards; no set is created in that case, so a set
	// never exists without cards.
	ErrNoFlashcardsGenerated = errors.New("no flashcards were generated from the document")
)

// FlashcardService provides flashcard set operations. CreateSet is the
// persister for the upload pipeline: decode, extract, generate, then persist
// the set and all of its flashcards as one atomic unit of work.
type FlashcardService interface {
	// CreateSet runs the full pipeline for one upload on behalf of userID.
	// Any extractor or generator error aborts the operation before anything
	// is written; the error kind is surfaced unchanged. Returns the fully
	// hydrated set on success.
	CreateSet(ctx context.Context, userID uuid.UUID, payload domain.UploadPayload) (*domain.FlashcardSet, error)

	// ListSets returns the user's sets, newest first.
	ListSets(ctx context.Context, userID uuid.UUID) ([]*domain.FlashcardSet, error)

	// GetSet returns the set with the given ID if owned by userID.
	// Returns ErrSetNotFound otherwise, including on ownership mismatch.
	GetSet(ctx context.Context, userID, setID uuid.UUID) (*domain.FlashcardSet, error)
}

// FlashcardServiceError wraps errors from the flashcard service with context.
type FlashcardServiceError struct {
	// Operation is the operation that failed (e.g., "create_set")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for FlashcardServiceError.
func (e *FlashcardServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("flashcard service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("flashcard service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *FlashcardServiceError) Unwrap() error {
	return e.Err
}

// flashcardServiceImpl implements the FlashcardService interface
type flashcardServiceImpl struct {
	setStore  store.FlashcardSetStore
	extractor extract.Extractor
	generator generation.Generator
	logger    *slog.Logger
}

// NewFlashcardService creates a new FlashcardService.
// It returns an error if any of the required dependencies are nil.
func NewFlashcardService(
	setStore store.FlashcardSetStore,
	extractor extract.Extractor,
	generator generation.Generator,
	logger *slog.Logger,
) (FlashcardService, error) {
	if setStore == nil {
		return nil, &FlashcardServiceError{
			Operation: "create_service",
			Message:   "setStore cannot be nil",
		}
	}
	if extractor == nil {
		return nil, &FlashcardServiceError{
			Operation: "create_service",
			Message:   "extractor cannot be nil",
		}
	}
	if generator == nil {
		return nil, &FlashcardServiceError{
			Operation: "create_service",
			Message:   "generator cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &flashcardServiceImpl{
		setStore:  setStore,
		extractor: extractor,
		generator: generator,
		logger:    logger.With(slog.String("component", "flashcard_service")),
	}, nil
}

// CreateSet implements FlashcardService.CreateSet.
//
// The flashcards are generated before any storage write begins, so a timeout
// or cancellation during the dominant latency source (the model call) can
// never leave a set row without its cards. The store's Create then commits
// the set and every card in one transaction.
func (s *flashcardServiceImpl) CreateSet(
	ctx context.Context,
	userID uuid.UUID,
	payload domain.UploadPayload,
) (*domain.FlashcardSet, error) {
	if err := payload.Validate(); err != nil {
		s.logger.Warn("upload payload validation failed",
			"error", err,
			"user_id", userID)
		return nil, err
	}

	content, err := base64.StdEncoding.DecodeString(payload.FileData)
	if err != nil {
		s.logger.Warn("failed to decode upload file data",
			"error", err,
			"user_id", userID,
			"file_name", payload.FileName)
		return nil, fmt.Errorf("%w: %v", ErrInvalidFileData, err)
	}

	text, err := s.extractor.Extract(ctx, content, payload.FileType)
	if err != nil {
		// Surfaced unchanged so the caller can distinguish unsupported
		// formats from decode failures.
		s.logger.Warn("text extraction failed",
			"error", err,
			"user_id", userID,
			"file_name", payload.FileName,
			"file_type", payload.FileType)
		return nil, err
	}

	cards, err := s.generator.GenerateFlashcards(ctx, text)
	if err != nil {
		s.logger.Error("flashcard generation failed",
			"error", err,
			"user_id", userID,
			"file_name", payload.FileName)
		return nil, err
	}

	if len(cards) == 0 {
		s.logger.Warn("generation produced no flashcards",
			"user_id", userID,
			"file_name", payload.FileName)
		return nil, ErrNoFlashcardsGenerated
	}

	title := payload.Title
	if title == "" {
		title = titleFromFileName(payload.FileName)
	}
	description := payload.Description
	if description == "" {
		description = fmt.Sprintf("Flashcards generated from %s", payload.FileName)
	}

	set, err := domain.NewFlashcardSet(
		userID,
		title,
		description,
		payload.FileName,
		payload.FileType,
		cards,
	)
	if err != nil {
		s.logger.Error("failed to build flashcard set",
			"error", err,
			"user_id", userID)
		return nil, &FlashcardServiceError{
			Operation: "create_set",
			Message:   "failed to build flashcard set",
			Err:       err,
		}
	}

	if err := s.setStore.Create(ctx, set); err != nil {
		s.logger.Error("failed to persist flashcard set",
			"error", err,
			"user_id", userID,
			"set_id", set.ID)
		return nil, &FlashcardServiceError{
			Operation: "create_set",
			Message:   "failed to persist flashcard set",
			Err:       err,
		}
	}

	s.logger.Info("flashcard set created",
		"set_id", set.ID,
		"user_id", userID,
		"flashcard_count", len(set.Flashcards))
	return set, nil
}

// ListSets implements FlashcardService.ListSets.
func (s *flashcardServiceImpl) ListSets(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.FlashcardSet, error) {
	sets, err := s.setStore.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list flashcard sets",
			"error", err,
			"user_id", userID)
		return nil, &FlashcardServiceError{
			Operation: "list_sets",
			Message:   "failed to list flashcard sets",
			Err:       err,
		}
	}

	return sets, nil
}

// GetSet implements FlashcardService.GetSet.
func (s *flashcardServiceImpl) GetSet(
	ctx context.Context,
	userID, setID uuid.UUID,
) (*domain.FlashcardSet, error) {
	set, err := s.setStore.GetByIDForUser(ctx, setID, userID)
	if err != nil {
		if errors.Is(err, store.ErrFlashcardSetNotFound) {
			return nil, ErrSetNotFound
		}
		s.logger.Error("failed to get flashcard set",
			"error", err,
			"set_id", setID,
			"user_id", userID)
		return nil, &FlashcardServiceError{
			Operation: "get_set",
			Message:   "failed to get flashcard set",
			Err:       err,
		}
	}

	return set, nil
}

// titleFromFileName derives the default set title: the file name with its
// extension stripped, or a fixed fallback when nothing remains.
func titleFromFileName(fileName string) string {
	title := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	if title == "" {
		return "Untitled Flashcard Set"
	}
	return title
}
