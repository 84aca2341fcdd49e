package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when the underlying model call fails at
	// the transport level. It wraps the transport error.
	ErrGenerationFailed = errors.New("failed to generate flashcards from text")

	// ErrMalformedResponse is returned when the model's reply cannot be
	// parsed as JSON. It is not retried here; retry policy belongs to the
	// caller.
	ErrMalformedResponse = errors.New("malformed response from language model")

	// ErrEmptyText is returned when generation is requested for empty text.
	ErrEmptyText = errors.New("text for generation cannot be empty")

	// ErrInvalidConfig is returned when the generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
