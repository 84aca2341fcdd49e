package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/extract"
	"github.com/flashdeck/flashdeck-api/internal/generation"
	"github.com/flashdeck/flashdeck-api/internal/service"
	"github.com/flashdeck/flashdeck-api/internal/service/auth"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "invalid token", err: auth.ErrInvalidToken, expected: http.StatusUnauthorized},
		{name: "expired token", err: auth.ErrExpiredToken, expected: http.StatusUnauthorized},
		{name: "invalid credentials", err: auth.ErrInvalidCredentials, expected: http.StatusUnauthorized},
		{name: "set not found", err: service.ErrSetNotFound, expected: http.StatusNotFound},
		{name: "store set not found", err: store.ErrFlashcardSetNotFound, expected: http.StatusNotFound},
		{name: "user not found", err: store.ErrUserNotFound, expected: http.StatusNotFound},
		{name: "email exists", err: store.ErrEmailExists, expected: http.StatusConflict},
		{name: "unsupported format", err: extract.ErrUnsupportedFormat, expected: http.StatusUnsupportedMediaType},
		{name: "unknown file type", err: domain.ErrUnknownFileType, expected: http.StatusUnsupportedMediaType},
		{name: "invalid file data", err: service.ErrInvalidFileData, expected: http.StatusBadRequest},
		{name: "extraction failed", err: extract.ErrExtractionFailed, expected: http.StatusUnprocessableEntity},
		{name: "zero cards", err: service.ErrNoFlashcardsGenerated, expected: http.StatusUnprocessableEntity},
		{name: "malformed response", err: generation.ErrMalformedResponse, expected: http.StatusBadGateway},
		{name: "generation failed", err: generation.ErrGenerationFailed, expected: http.StatusBadGateway},
		{name: "unknown error", err: errors.New("boom"), expected: http.StatusInternalServerError},
		{
			name:     "wrapped sentinel",
			err:      fmt.Errorf("%w: pdf body truncated", extract.ErrExtractionFailed),
			expected: http.StatusUnprocessableEntity,
		},
		{
			name: "service error wrapping sentinel",
			err: &service.FlashcardServiceError{
				Operation: "get_set",
				Message:   "failed",
				Err:       store.ErrFlashcardSetNotFound,
			},
			expected: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	// Internal details never leak into the safe message
	err := fmt.Errorf("%w: xref table at offset 12345 corrupt", extract.ErrExtractionFailed)
	msg := GetSafeErrorMessage(err)
	assert.Equal(t, "Could not extract text from the document", msg)
	assert.NotContains(t, msg, "12345")

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(errors.New("stack trace here")))
	assert.Equal(t, "Flashcard set not found", GetSafeErrorMessage(service.ErrSetNotFound))
	assert.Equal(t, "Invalid credentials", GetSafeErrorMessage(auth.ErrInvalidCredentials))
}
