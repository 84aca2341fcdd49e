package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// mockFlashcardSetStore is a function-field mock of store.FlashcardSetStore.
// Fields left nil make the corresponding call fail the invariant that the
// operation should not have been reached.
type mockFlashcardSetStore struct {
	createFn         func(ctx context.Context, set *domain.FlashcardSet) error
	listByUserFn     func(ctx context.Context, userID uuid.UUID) ([]*domain.FlashcardSet, error)
	getByIDForUserFn func(ctx context.Context, id, userID uuid.UUID) (*domain.FlashcardSet, error)

	createCalls int
	createdSets []*domain.FlashcardSet
}

func (m *mockFlashcardSetStore) Create(ctx context.Context, set *domain.FlashcardSet) error {
	m.createCalls++
	m.createdSets = append(m.createdSets, set)
	if m.createFn != nil {
		return m.createFn(ctx, set)
	}
	return nil
}

func (m *mockFlashcardSetStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.FlashcardSet, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return []*domain.FlashcardSet{}, nil
}

func (m *mockFlashcardSetStore) GetByIDForUser(
	ctx context.Context,
	id, userID uuid.UUID,
) (*domain.FlashcardSet, error) {
	if m.getByIDForUserFn != nil {
		return m.getByIDForUserFn(ctx, id, userID)
	}
	return nil, nil
}

func (m *mockFlashcardSetStore) WithTx(tx *sql.Tx) store.FlashcardSetStore {
	return m
}

// mockExtractor is a function-field mock of extract.Extractor.
type mockExtractor struct {
	extractFn    func(ctx context.Context, content []byte, declaredType string) (string, error)
	extractCalls int
	lastContent  []byte
	lastType     string
}

func (m *mockExtractor) Extract(
	ctx context.Context,
	content []byte,
	declaredType string,
) (string, error) {
	m.extractCalls++
	m.lastContent = content
	m.lastType = declaredType
	if m.extractFn != nil {
		return m.extractFn(ctx, content, declaredType)
	}
	return string(content), nil
}

// mockGenerator is a function-field mock of generation.Generator.
type mockGenerator struct {
	generateFn    func(ctx context.Context, text string) ([]domain.FlashcardContent, error)
	generateCalls int
	lastText      string
}

func (m *mockGenerator) GenerateFlashcards(
	ctx context.Context,
	text string,
) ([]domain.FlashcardContent, error) {
	m.generateCalls++
	m.lastText = text
	if m.generateFn != nil {
		return m.generateFn(ctx, text)
	}
	return nil, nil
}
