// Package domain contains the core entities of the application: users,
// flashcard sets, and the flashcards they own. Types here hold their own
// validation rules and have no dependencies on storage or transport.
package domain
