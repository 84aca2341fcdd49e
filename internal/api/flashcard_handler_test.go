package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashdeck/flashdeck-api/internal/api/shared"
	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/extract"
	"github.com/flashdeck/flashdeck-api/internal/generation"
	"github.com/flashdeck/flashdeck-api/internal/service"
)

// authenticatedRequest builds a request carrying userID in its context the way
// the auth middleware does.
func authenticatedRequest(t *testing.T, method, target string, body []byte, userID uuid.UUID) *http.Request {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

func createRequestBody(t *testing.T) []byte {
	t.Helper()

	body, err := json.Marshal(CreateFlashcardsRequest{
		FileData: base64.StdEncoding.EncodeToString([]byte("Paris is the capital of France.")),
		FileName: "geography.txt",
		FileType: domain.FileTypePlainText,
	})
	require.NoError(t, err)
	return body
}

func TestCreateFlashcardsSuccess(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	setID := uuid.New()
	created := &domain.FlashcardSet{
		ID:       setID,
		UserID:   userID,
		Title:    "geography",
		FileName: "geography.txt",
		FileType: domain.FileTypePlainText,
		Flashcards: []*domain.Flashcard{
			{
				ID:         uuid.New(),
				SetID:      setID,
				Question:   "What is the capital of France?",
				Answer:     "Paris",
				Difficulty: domain.DifficultyEasy,
			},
		},
	}

	svc := &mockFlashcardService{
		createSetFn: func(ctx context.Context, uid uuid.UUID, payload domain.UploadPayload) (*domain.FlashcardSet, error) {
			assert.Equal(t, userID, uid)
			assert.Equal(t, "geography.txt", payload.FileName)
			assert.Equal(t, domain.FileTypePlainText, payload.FileType)
			return created, nil
		},
	}
	handler := NewFlashcardHandler(svc, nil)

	req := authenticatedRequest(t, http.MethodPost, "/api/flashcards", createRequestBody(t), userID)
	rr := httptest.NewRecorder()
	handler.CreateFlashcards(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp FlashcardSetResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, setID.String(), resp.ID)
	assert.Equal(t, "geography", resp.Title)
	require.Len(t, resp.Flashcards, 1)
	assert.Equal(t, "What is the capital of France?", resp.Flashcards[0].Question)
	assert.Equal(t, "easy", resp.Flashcards[0].Difficulty)
}

func TestCreateFlashcardsWithoutIdentity(t *testing.T) {
	t.Parallel()

	svc := &mockFlashcardService{}
	handler := NewFlashcardHandler(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/flashcards", bytes.NewReader(createRequestBody(t)))
	rr := httptest.NewRecorder()
	handler.CreateFlashcards(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, 0, svc.createSetCalls)
}

func TestCreateFlashcardsMalformedJSON(t *testing.T) {
	t.Parallel()

	svc := &mockFlashcardService{}
	handler := NewFlashcardHandler(svc, nil)

	req := authenticatedRequest(t, http.MethodPost, "/api/flashcards", []byte("{not json"), uuid.New())
	rr := httptest.NewRecorder()
	handler.CreateFlashcards(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, svc.createSetCalls)
}

func TestCreateFlashcardsMissingFields(t *testing.T) {
	t.Parallel()

	svc := &mockFlashcardService{}
	handler := NewFlashcardHandler(svc, nil)

	body, err := json.Marshal(CreateFlashcardsRequest{FileName: "doc.txt"})
	require.NoError(t, err)

	req := authenticatedRequest(t, http.MethodPost, "/api/flashcards", body, uuid.New())
	rr := httptest.NewRecorder()
	handler.CreateFlashcards(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, svc.createSetCalls)
}

func TestCreateFlashcardsErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "unsupported format",
			serviceErr:     fmt.Errorf("%w: application/zip", extract.ErrUnsupportedFormat),
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "extraction failure",
			serviceErr:     fmt.Errorf("%w: bad xref", extract.ErrExtractionFailed),
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "invalid base64",
			serviceErr:     service.ErrInvalidFileData,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "generation failed",
			serviceErr:     fmt.Errorf("%w: upstream 503", generation.ErrGenerationFailed),
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "malformed model response",
			serviceErr:     fmt.Errorf("%w: not json", generation.ErrMalformedResponse),
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "zero cards",
			serviceErr:     service.ErrNoFlashcardsGenerated,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "storage failure",
			serviceErr: &service.FlashcardServiceError{
				Operation: "create_set",
				Message:   "failed to persist flashcard set",
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &mockFlashcardService{
				createSetFn: func(ctx context.Context, uid uuid.UUID, payload domain.UploadPayload) (*domain.FlashcardSet, error) {
					return nil, tc.serviceErr
				},
			}
			handler := NewFlashcardHandler(svc, nil)

			req := authenticatedRequest(t, http.MethodPost, "/api/flashcards", createRequestBody(t), uuid.New())
			rr := httptest.NewRecorder()
			handler.CreateFlashcards(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			// The response body must carry a sanitized message, not internals
			var resp shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
			assert.NotContains(t, resp.Error, "xref")
			assert.NotContains(t, resp.Error, "503")
		})
	}
}

func TestGetFlashcardSets(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	sets := []*domain.FlashcardSet{
		{ID: uuid.New(), UserID: userID, Title: "Newest", FileName: "a.txt", FileType: domain.FileTypePlainText},
		{ID: uuid.New(), UserID: userID, Title: "Oldest", FileName: "b.txt", FileType: domain.FileTypePlainText},
	}

	svc := &mockFlashcardService{
		listSetsFn: func(ctx context.Context, uid uuid.UUID) ([]*domain.FlashcardSet, error) {
			assert.Equal(t, userID, uid)
			return sets, nil
		},
	}
	handler := NewFlashcardHandler(svc, nil)

	req := authenticatedRequest(t, http.MethodGet, "/api/flashcards", nil, userID)
	rr := httptest.NewRecorder()
	handler.GetFlashcardSets(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp []FlashcardSetResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Newest", resp[0].Title)
	assert.Equal(t, "Oldest", resp[1].Title)
}

func TestGetFlashcardSetsEmpty(t *testing.T) {
	t.Parallel()

	svc := &mockFlashcardService{}
	handler := NewFlashcardHandler(svc, nil)

	req := authenticatedRequest(t, http.MethodGet, "/api/flashcards", nil, uuid.New())
	rr := httptest.NewRecorder()
	handler.GetFlashcardSets(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	// An empty listing is a JSON array, never null
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestGetFlashcardSetsWithoutIdentity(t *testing.T) {
	t.Parallel()

	handler := NewFlashcardHandler(&mockFlashcardService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/flashcards", nil)
	rr := httptest.NewRecorder()
	handler.GetFlashcardSets(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// getByIDRequest builds an authenticated GET with the chi URL parameter set.
func getByIDRequest(t *testing.T, userID uuid.UUID, rawID string) *http.Request {
	t.Helper()

	req := authenticatedRequest(t, http.MethodGet, "/api/flashcards/"+rawID, nil, userID)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", rawID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestGetFlashcardSetByID(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	setID := uuid.New()
	set := &domain.FlashcardSet{
		ID:       setID,
		UserID:   userID,
		Title:    "Mine",
		FileName: "doc.pdf",
		FileType: domain.FileTypePDF,
	}

	svc := &mockFlashcardService{
		getSetFn: func(ctx context.Context, uid, sid uuid.UUID) (*domain.FlashcardSet, error) {
			assert.Equal(t, userID, uid)
			assert.Equal(t, setID, sid)
			return set, nil
		},
	}
	handler := NewFlashcardHandler(svc, nil)

	rr := httptest.NewRecorder()
	handler.GetFlashcardSetByID(rr, getByIDRequest(t, userID, setID.String()))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp FlashcardSetResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, setID.String(), resp.ID)
	assert.Equal(t, "Mine", resp.Title)
}

func TestGetFlashcardSetByIDNotFound(t *testing.T) {
	t.Parallel()

	svc := &mockFlashcardService{
		getSetFn: func(ctx context.Context, uid, sid uuid.UUID) (*domain.FlashcardSet, error) {
			return nil, service.ErrSetNotFound
		},
	}
	handler := NewFlashcardHandler(svc, nil)

	rr := httptest.NewRecorder()
	handler.GetFlashcardSetByID(rr, getByIDRequest(t, uuid.New(), uuid.New().String()))

	// Ownership mismatch yields the same 404 as absence
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetFlashcardSetByIDInvalidID(t *testing.T) {
	t.Parallel()

	svc := &mockFlashcardService{
		getSetFn: func(ctx context.Context, uid, sid uuid.UUID) (*domain.FlashcardSet, error) {
			t.Fatal("service must not be called for a malformed ID")
			return nil, nil
		},
	}
	handler := NewFlashcardHandler(svc, nil)

	rr := httptest.NewRecorder()
	handler.GetFlashcardSetByID(rr, getByIDRequest(t, uuid.New(), "not-a-uuid"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
