// Package extract converts uploaded document payloads of a declared MIME
// type into plain UTF-8 text for flashcard generation. Extraction is a pure
// transformation: no truncation, no persistence, no network.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	docx "github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"

	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// Common errors returned by the extract package
var (
	// ErrUnsupportedFormat is returned when the declared MIME type is not in
	// the supported set. Callers must not attempt extraction fallback.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrExtractionFailed is returned when the bytes cannot be decoded as the
	// declared format (malformed PDF, corrupt DOCX archive, and so on).
	ErrExtractionFailed = errors.New("failed to extract text from document")
)

// Extractor defines the interface for turning document bytes into plain text.
type Extractor interface {
	// Extract decodes content according to the declared MIME type and returns
	// the document's text. Returns ErrUnsupportedFormat for types outside the
	// supported set and ErrExtractionFailed when decoding fails.
	Extract(ctx context.Context, content []byte, declaredType string) (string, error)
}

// DocumentExtractor implements Extractor for the supported upload types:
// text/plain, text/markdown, application/pdf, and DOCX.
type DocumentExtractor struct {
	logger *slog.Logger
}

// NewDocumentExtractor creates a DocumentExtractor.
// If logger is nil, a default logger will be used.
func NewDocumentExtractor(logger *slog.Logger) *DocumentExtractor {
	if logger == nil {
		logger = slog.Default()
	}

	return &DocumentExtractor{
		logger: logger.With(slog.String("component", "extractor")),
	}
}

// Ensure DocumentExtractor implements the Extractor interface
var _ Extractor = (*DocumentExtractor)(nil)

// Extract implements Extractor.Extract.
func (e *DocumentExtractor) Extract(ctx context.Context, content []byte, declaredType string) (string, error) {
	var text string
	var err error

	switch declaredType {
	case domain.FileTypePlainText, domain.FileTypeMarkdown:
		// Plain and Markdown text are taken as-is; Markdown syntax carries
		// meaning for the generator and is not stripped.
		text = string(content)

	case domain.FileTypePDF:
		text, err = extractPDF(content)

	case domain.FileTypeDOCX:
		text, err = extractDOCX(content)

	default:
		e.logger.WarnContext(ctx, "extraction requested for unsupported type",
			slog.String("declared_type", declaredType))
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, declaredType)
	}

	if err != nil {
		e.logger.ErrorContext(ctx, "document extraction failed",
			slog.String("declared_type", declaredType),
			slog.Int("content_bytes", len(content)),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	e.logger.DebugContext(ctx, "document extracted",
		slog.String("declared_type", declaredType),
		slog.Int("content_bytes", len(content)),
		slog.Int("text_length", len(text)))
	return text, nil
}

// recoverDecoderPanic converts a decoder panic into an error. ledongthuc/pdf
// panics rather than returning an error on some corrupt content streams, and
// a bad upload must never take the process down.
func recoverDecoderPanic(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("decoder panic: %v", r)
	}
}

// extractPDF concatenates the text runs of every page in document order.
func extractPDF(content []byte) (text string, err error) {
	defer recoverDecoderPanic(&err)

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return buf.String(), nil
}

// extractDOCX concatenates paragraph text in document order, one paragraph
// per line.
func extractDOCX(content []byte) (text string, err error) {
	defer recoverDecoderPanic(&err)

	doc, err := docx.Parse(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch paragraph := item.(type) {
		case *docx.Paragraph:
			if text := paragraph.String(); text != "" {
				sb.WriteString(text)
				sb.WriteString("\n")
			}
		}
	}

	return sb.String(), nil
}
