// Package api contains the HTTP handlers and error mapping for the
// authenticated procedure surface exposed to the UI: createFlashcards,
// getFlashcardSets, and getFlashcardSetById, plus registration and login.
package api
