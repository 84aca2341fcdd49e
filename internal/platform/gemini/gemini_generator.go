package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/template"

	"google.golang.org/genai"

	"github.com/flashdeck/flashdeck-api/internal/config"
	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/generation"
)

// contentCaller is the slice of the genai client the generator uses. It is
// satisfied by genai.Models and stubbed in tests.
type contentCaller interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API to generate flashcards from extracted document text.
//
// The generator makes exactly one API call per invocation. Retry and backoff
// are deliberately absent; the caller owns retry policy.
type GeminiGenerator struct {
	logger *slog.Logger

	// config contains LLM-specific configuration, injected at construction
	// so the component stays testable with a stub.
	config config.LLMConfig

	// promptTemplate renders the user message embedding the document text.
	promptTemplate *template.Template

	// caller performs the model invocation. In production this is the
	// Models service of a genai.Client.
	caller contentCaller
}

// Ensure GeminiGenerator implements the generation.Generator interface
var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a GeminiGenerator with the provided
// configuration. It validates the configuration, parses the prompt template
// (the built-in one unless llm.prompt_template_path points at an override),
// and initializes the Gemini client.
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	templateContent := defaultPromptTemplate
	if cfg.PromptTemplatePath != "" {
		raw, err := os.ReadFile(cfg.PromptTemplatePath)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
				generation.ErrInvalidConfig, cfg.PromptTemplatePath, err)
		}
		templateContent = string(raw)
	}

	promptTemplate, err := template.New("flashcards").Parse(templateContent)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &GeminiGenerator{
		logger:         logger.With(slog.String("component", "gemini_generator")),
		config:         cfg,
		promptTemplate: promptTemplate,
		caller:         client.Models,
	}, nil
}

// GenerateFlashcards implements generation.Generator.GenerateFlashcards.
// It builds the prompt, makes a single model call with the fixed system
// instruction and configured temperature, and parses the reply.
func (g *GeminiGenerator) GenerateFlashcards(
	ctx context.Context,
	text string,
) ([]domain.FlashcardContent, error) {
	prompt, err := g.createPrompt(ctx, text)
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "making Gemini API call",
		slog.String("model", g.config.ModelName),
		slog.Int("prompt_length", len(prompt)))

	resp, err := g.caller.GenerateContent(
		ctx,
		g.config.ModelName,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: systemInstruction}},
			},
			Temperature:      genai.Ptr(g.config.Temperature),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini API call failed",
			slog.String("model", g.config.ModelName),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	reply := resp.Text()
	if reply == "" {
		g.logger.ErrorContext(ctx, "Gemini API returned no text content",
			slog.String("model", g.config.ModelName))
		return nil, fmt.Errorf("%w: empty completion", generation.ErrGenerationFailed)
	}

	cards, err := g.parseResponse(ctx, reply)
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "Gemini API call successful",
		slog.Int("flashcard_count", len(cards)))
	return cards, nil
}

// createPrompt renders the user prompt from the template with the extracted
// text. Returns an error if the text is empty or template execution fails.
func (g *GeminiGenerator) createPrompt(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", generation.ErrEmptyText
	}

	g.logger.DebugContext(ctx, "generating prompt from template",
		slog.Int("text_length", len(text)))

	var promptBuffer bytes.Buffer
	if err := g.promptTemplate.Execute(&promptBuffer, promptData{DocumentText: text}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return promptBuffer.String(), nil
}

// parseResponse parses the model's text completion into flashcard contents.
//
// This is parse-then-validate at a boundary: total JSON parse failure is the
// only rejection; a parsed reply missing the flashcards key is an empty
// sequence, and per-card fields are defaulted rather than rejected. Empty
// question or answer strings are kept as received; whether to drop them is a
// product decision, not this layer's.
func (g *GeminiGenerator) parseResponse(ctx context.Context, reply string) ([]domain.FlashcardContent, error) {
	var parsed responseSchema
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &parsed); err != nil {
		g.logger.ErrorContext(ctx, "failed to parse model reply as JSON",
			slog.Int("reply_length", len(reply)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", generation.ErrMalformedResponse, err)
	}

	cards := make([]domain.FlashcardContent, 0, len(parsed.Flashcards))
	for _, card := range parsed.Flashcards {
		cards = append(cards, domain.FlashcardContent{
			Question:   card.Question,
			Answer:     card.Answer,
			Difficulty: domain.NormalizeDifficulty(domain.Difficulty(card.Difficulty)),
		})
	}

	g.logger.DebugContext(ctx, "parsed model reply",
		slog.Int("flashcard_count", len(cards)))
	return cards, nil
}

// stripCodeFence removes a surrounding markdown code fence, which some models
// emit despite the JSON response instruction.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
