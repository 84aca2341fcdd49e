package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents the response for successful authentication.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Token  string    `json:"token"`
}

// CreateFlashcardsRequest represents the upload payload for set creation.
// FileData carries the document bytes base64-encoded.
type CreateFlashcardsRequest struct {
	FileData    string `json:"file_data" validate:"required"`
	FileName    string `json:"file_name" validate:"required"`
	FileType    string `json:"file_type" validate:"required"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// FlashcardResponse represents one flashcard in API responses.
type FlashcardResponse struct {
	ID         string `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty"`
}

// FlashcardSetResponse represents a flashcard set in API responses.
type FlashcardSetResponse struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	FileName    string              `json:"file_name"`
	FileType    string              `json:"file_type"`
	CreatedAt   time.Time           `json:"created_at"`
	Flashcards  []FlashcardResponse `json:"flashcards"`
}

// setToResponse converts a domain.FlashcardSet to a FlashcardSetResponse.
func setToResponse(set *domain.FlashcardSet) FlashcardSetResponse {
	cards := make([]FlashcardResponse, 0, len(set.Flashcards))
	for _, card := range set.Flashcards {
		cards = append(cards, FlashcardResponse{
			ID:         card.ID.String(),
			Question:   card.Question,
			Answer:     card.Answer,
			Difficulty: string(card.Difficulty),
		})
	}

	return FlashcardSetResponse{
		ID:          set.ID.String(),
		Title:       set.Title,
		Description: set.Description,
		FileName:    set.FileName,
		FileType:    set.FileType,
		CreatedAt:   set.CreatedAt,
		Flashcards:  cards,
	}
}

// setsToResponse converts a slice of sets, preserving order.
func setsToResponse(sets []*domain.FlashcardSet) []FlashcardSetResponse {
	responses := make([]FlashcardSetResponse, 0, len(sets))
	for _, set := range sets {
		responses = append(responses, setToResponse(set))
	}
	return responses
}
