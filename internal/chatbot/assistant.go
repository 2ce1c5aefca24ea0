package chatbot

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cropcast/internal/llm"
	"cropcast/internal/models"
)

// TextGenerator is the generation collaborator the assistant invokes
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, cfg llm.GenerationConfig) (string, error)
}

// generationConfig keeps sampling low-variance so the language and scope
// constraints are followed rather than creatively reinterpreted
var generationConfig = llm.GenerationConfig{
	Temperature: 0.1,
	TopP:        0.2,
	TopK:        20,
	MaxTokens:   512,
}

// Assistant answers questions about one previously computed prediction,
// restricted to that prediction's data and a selected output language
type Assistant struct {
	generator TextGenerator
}

// NewAssistant creates a closed-dataset chat assistant
func NewAssistant(generator TextGenerator) *Assistant {
	return &Assistant{generator: generator}
}

// Answer responds to a question about the supplied prediction in the
// requested language (en/hi/kn; unrecognized codes fall back to English).
// It never fails: empty generations become a localized apology and
// invocation failures become a localized error message, because a failure
// is itself a valid conversational response.
func (a *Assistant) Answer(ctx context.Context, question string, data models.PredictionResult, language string) string {
	lang := normalizeLanguage(language)
	prompt := buildPrompt(question, data, lang)

	text, err := a.generator.Generate(ctx, prompt, generationConfig)
	if err != nil {
		log.Printf("Chatbot generation failed: %v", err)
		return fmt.Sprintf(errorMessages[lang], err)
	}

	answer := strings.TrimSpace(text)
	if answer == "" {
		return apologyMessages[lang]
	}

	return answer
}
