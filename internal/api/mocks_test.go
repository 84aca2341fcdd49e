package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/service/auth"
)

// mockFlashcardService is a function-field mock of service.FlashcardService.
type mockFlashcardService struct {
	createSetFn func(ctx context.Context, userID uuid.UUID, payload domain.UploadPayload) (*domain.FlashcardSet, error)
	listSetsFn  func(ctx context.Context, userID uuid.UUID) ([]*domain.FlashcardSet, error)
	getSetFn    func(ctx context.Context, userID, setID uuid.UUID) (*domain.FlashcardSet, error)

	createSetCalls int
}

func (m *mockFlashcardService) CreateSet(
	ctx context.Context,
	userID uuid.UUID,
	payload domain.UploadPayload,
) (*domain.FlashcardSet, error) {
	m.createSetCalls++
	if m.createSetFn != nil {
		return m.createSetFn(ctx, userID, payload)
	}
	return nil, nil
}

func (m *mockFlashcardService) ListSets(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.FlashcardSet, error) {
	if m.listSetsFn != nil {
		return m.listSetsFn(ctx, userID)
	}
	return []*domain.FlashcardSet{}, nil
}

func (m *mockFlashcardService) GetSet(
	ctx context.Context,
	userID, setID uuid.UUID,
) (*domain.FlashcardSet, error) {
	if m.getSetFn != nil {
		return m.getSetFn(ctx, userID, setID)
	}
	return nil, nil
}

// mockUserStore is a function-field mock of store.UserStore.
type mockUserStore struct {
	createFn     func(ctx context.Context, user *domain.User) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

// mockJWTService is a function-field mock of auth.JWTService.
type mockJWTService struct {
	generateTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	validateTokenFn func(ctx context.Context, token string) (*auth.Claims, error)
}

func (m *mockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.generateTokenFn != nil {
		return m.generateTokenFn(ctx, userID)
	}
	return "test-token", nil
}

func (m *mockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.validateTokenFn != nil {
		return m.validateTokenFn(ctx, token)
	}
	return nil, auth.ErrInvalidToken
}

// mockPasswordVerifier is a function-field mock of auth.PasswordVerifier.
type mockPasswordVerifier struct {
	compareFn func(hashedPassword, password string) error
}

func (m *mockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.compareFn != nil {
		return m.compareFn(hashedPassword, password)
	}
	return nil
}
