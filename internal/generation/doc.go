// Package generation defines the interface and error taxonomy for turning
// extracted document text into flashcards via a generative-text capability.
// Implementations live under internal/platform.
package generation
