// Package gemini implements the generation interface using Google's Gemini
// API.
package gemini

// promptData is the data passed to the user prompt template.
type promptData struct {
	DocumentText string
}

// responseSchema is the JSON shape the model is instructed to emit.
type responseSchema struct {
	// Flashcards is the array of generated flashcards. A reply that parses
	// but lacks this key yields a nil slice, which is treated as an empty
	// generation rather than an error.
	Flashcards []flashcardSchema `json:"flashcards"`
}

// flashcardSchema is a single flashcard in the model's reply.
type flashcardSchema struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty"`
}
