package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Difficulty rates how hard a flashcard is expected to be for the learner.
type Difficulty string

// Possible difficulty values
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Flashcard-specific validation errors
var (
	// ErrFlashcardIDEmpty is returned when a flashcard ID is empty or nil.
	ErrFlashcardIDEmpty = errors.New("flashcard ID cannot be empty")

	// ErrFlashcardSetIDEmpty is returned when a flashcard's set ID is empty or nil.
	ErrFlashcardSetIDEmpty = errors.New("flashcard set ID cannot be empty")

	// ErrInvalidDifficulty is returned when a difficulty is outside the enumerated set.
	ErrInvalidDifficulty = errors.New("invalid flashcard difficulty")
)

// FlashcardContent is a question/answer/difficulty triple as produced by the
// generator, before it is attached to a set. The generator coerces any
// unrecognized difficulty to medium; question and answer are passed through
// as received, including empty strings.
type FlashcardContent struct {
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Difficulty Difficulty `json:"difficulty"`
}

// Flashcard represents one question/answer pair belonging to a FlashcardSet.
// Flashcards are created only as part of set creation and are immutable
// afterwards.
type Flashcard struct {
	ID         uuid.UUID  `json:"id"`
	SetID      uuid.UUID  `json:"set_id"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Difficulty Difficulty `json:"difficulty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewFlashcard creates a new Flashcard for the given set from generated
// content. It generates a new UUID for the flashcard ID and sets the creation
// timestamp. Returns an error if validation fails.
func NewFlashcard(setID uuid.UUID, content FlashcardContent) (*Flashcard, error) {
	card := &Flashcard{
		ID:         uuid.New(),
		SetID:      setID,
		Question:   content.Question,
		Answer:     content.Answer,
		Difficulty: content.Difficulty,
		CreatedAt:  time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
// Returns an error if any field fails validation.
func (c *Flashcard) Validate() error {
	if c.ID == uuid.Nil {
		return ErrFlashcardIDEmpty
	}

	if c.SetID == uuid.Nil {
		return ErrFlashcardSetIDEmpty
	}

	if !IsValidDifficulty(c.Difficulty) {
		return ErrInvalidDifficulty
	}

	return nil
}

// IsValidDifficulty checks if the given difficulty is in the enumerated set.
func IsValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// NormalizeDifficulty coerces any value outside the enumerated difficulty
// set, including the empty string, to DifficultyMedium.
func NormalizeDifficulty(d Difficulty) Difficulty {
	if IsValidDifficulty(d) {
		return d
	}
	return DifficultyMedium
}
