package generation

import (
	"context"

	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// Generator defines the interface for generating flashcards from extracted
// document text. This interface is the boundary between the application core
// and external LLM services, so the core stays testable with a stub.
type Generator interface {
	// GenerateFlashcards produces candidate flashcards for the given text in
	// a single model invocation.
	//
	// The returned slice preserves the model's ordering and may be empty when
	// the model's reply parses but contains no flashcards. Difficulty values
	// outside the enumerated set are coerced to medium; question and answer
	// strings are passed through as received.
	//
	// Returns ErrMalformedResponse when the reply is not valid JSON and
	// ErrGenerationFailed when the underlying call fails. No retry is
	// performed at this layer.
	GenerateFlashcards(ctx context.Context, text string) ([]domain.FlashcardContent, error)
}
