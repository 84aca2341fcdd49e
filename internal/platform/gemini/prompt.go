package gemini

// systemInstruction is the fixed system message constraining the model to
// valid JSON output of the expected shape.
const systemInstruction = `You are a helpful assistant that creates educational flashcards. Always respond with valid JSON and nothing else.`

// defaultPromptTemplate is the built-in user prompt. It embeds the extracted
// document text and describes the desired fields and difficulty values.
// A file configured via llm.prompt_template_path overrides it.
const defaultPromptTemplate = `Generate flashcards from the following text. Create comprehensive questions and answers that test understanding of the key concepts.

Format the response as JSON with objects containing:
- question: string
- answer: string
- difficulty: "easy" | "medium" | "hard"

Respond with valid JSON in this format:
{
  "flashcards": [
    {
      "question": "Sample question?",
      "answer": "Sample answer",
      "difficulty": "medium"
    }
  ]
}

Text: {{.DocumentText}}`
