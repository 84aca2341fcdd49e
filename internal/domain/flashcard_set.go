package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Supported upload MIME types. Extraction refuses anything else.
const (
	FileTypePlainText = "text/plain"
	FileTypeMarkdown  = "text/markdown"
	FileTypePDF       = "application/pdf"
	FileTypeDOCX      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Common validation errors for FlashcardSet and UploadPayload
var (
	ErrEmptySetID      = errors.New("flashcard set ID cannot be empty")
	ErrEmptySetUserID  = errors.New("flashcard set user ID cannot be empty")
	ErrEmptySetTitle   = errors.New("flashcard set title cannot be empty")
	ErrEmptyFileName   = errors.New("file name cannot be empty")
	ErrEmptyFileData   = errors.New("file data cannot be empty")
	ErrUnknownFileType = errors.New("file type is not in the supported set")
)

// IsSupportedFileType reports whether the declared MIME type is one the
// extraction pipeline accepts.
func IsSupportedFileType(fileType string) bool {
	switch fileType {
	case FileTypePlainText, FileTypeMarkdown, FileTypePDF, FileTypeDOCX:
		return true
	default:
		return false
	}
}

// UploadPayload is the transient input to set creation. FileData carries the
// document bytes base64-encoded for transport; Title and Description are
// optional and defaulted by the service when absent. It is consumed once and
// never persisted as-is.
type UploadPayload struct {
	FileData    string `json:"file_data"`
	FileName    string `json:"file_name"`
	FileType    string `json:"file_type"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Validate checks if the UploadPayload has valid data.
// Returns an error if any field fails validation.
func (p *UploadPayload) Validate() error {
	if p.FileData == "" {
		return ErrEmptyFileData
	}

	if p.FileName == "" {
		return ErrEmptyFileName
	}

	if !IsSupportedFileType(p.FileType) {
		return ErrUnknownFileType
	}

	return nil
}

// FlashcardSet is the durable unit produced from one uploaded document.
// It belongs to exactly one user and is created atomically with all of its
// flashcards; a set is never visible without them. Flashcards keeps the
// generation order.
type FlashcardSet struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	FileName    string       `json:"file_name"`
	FileType    string       `json:"file_type"`
	CreatedAt   time.Time    `json:"created_at"`
	Flashcards  []*Flashcard `json:"flashcards"`
}

// NewFlashcardSet creates a new FlashcardSet owned by the given user and
// attaches a Flashcard for each generated content entry, preserving order.
// It generates a new UUID for the set ID and sets the creation timestamp.
// Returns an error if validation fails.
func NewFlashcardSet(
	userID uuid.UUID,
	title, description, fileName, fileType string,
	contents []FlashcardContent,
) (*FlashcardSet, error) {
	set := &FlashcardSet{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		FileName:    fileName,
		FileType:    fileType,
		CreatedAt:   time.Now().UTC(),
	}

	set.Flashcards = make([]*Flashcard, 0, len(contents))
	for _, content := range contents {
		card, err := NewFlashcard(set.ID, content)
		if err != nil {
			return nil, err
		}
		set.Flashcards = append(set.Flashcards, card)
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	return set, nil
}

// Validate checks if the FlashcardSet has valid data.
// Returns an error if any field fails validation.
func (s *FlashcardSet) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySetID
	}

	if s.UserID == uuid.Nil {
		return ErrEmptySetUserID
	}

	if s.Title == "" {
		return ErrEmptySetTitle
	}

	if s.FileName == "" {
		return ErrEmptyFileName
	}

	if !IsSupportedFileType(s.FileType) {
		return ErrUnknownFileType
	}

	for _, card := range s.Flashcards {
		if err := card.Validate(); err != nil {
			return err
		}
		if card.SetID != s.ID {
			return ErrFlashcardSetIDEmpty
		}
	}

	return nil
}
