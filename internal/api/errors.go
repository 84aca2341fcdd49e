package api

import (
	"errors"
	"net/http"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/extract"
	"github.com/flashdeck/flashdeck-api/internal/generation"
	"github.com/flashdeck/flashdeck-api/internal/service"
	"github.com/flashdeck/flashdeck-api/internal/service/auth"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. Each pipeline failure keeps its own status so
// callers can distinguish extraction, generation, and storage problems.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Not found errors (ownership mismatch included)
	case errors.Is(err, service.ErrSetNotFound),
		errors.Is(err, store.ErrFlashcardSetNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Upload payload problems
	case errors.Is(err, extract.ErrUnsupportedFormat),
		errors.Is(err, domain.ErrUnknownFileType):
		return http.StatusUnsupportedMediaType

	case errors.Is(err, service.ErrInvalidFileData),
		errors.Is(err, domain.ErrEmptyFileData),
		errors.Is(err, domain.ErrEmptyFileName):
		return http.StatusBadRequest

	// The payload decoded but could not be processed
	case errors.Is(err, extract.ErrExtractionFailed),
		errors.Is(err, service.ErrNoFlashcardsGenerated):
		return http.StatusUnprocessableEntity

	// Upstream model failures
	case errors.Is(err, generation.ErrMalformedResponse),
		errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusBadGateway

	// Storage and everything else
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, service.ErrSetNotFound),
		errors.Is(err, store.ErrFlashcardSetNotFound):
		return "Flashcard set not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, extract.ErrUnsupportedFormat),
		errors.Is(err, domain.ErrUnknownFileType):
		return "Unsupported document format"

	case errors.Is(err, service.ErrInvalidFileData):
		return "File data is not valid base64"

	case errors.Is(err, extract.ErrExtractionFailed):
		return "Could not extract text from the document"

	case errors.Is(err, service.ErrNoFlashcardsGenerated):
		return "No flashcards could be generated from the document"

	case errors.Is(err, generation.ErrMalformedResponse):
		return "The generation service returned an invalid response"

	case errors.Is(err, generation.ErrGenerationFailed):
		return "Flashcard generation failed"

	default:
		return "An unexpected error occurred"
	}
}
