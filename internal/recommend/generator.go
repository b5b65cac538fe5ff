package recommend

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Generator turns a prompt into free-form text. Implementations may block
// on network I/O and should honor ctx cancellation.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLMGenerator adapts a langchaingo model to Generator.
type LLMGenerator struct {
	LLM     llms.Model
	Options []llms.CallOption
}

// Generate sends prompt to the model as a single human message.
func (g LLMGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, g.LLM, prompt, g.Options...)
}

// NewOllamaGenerator returns a Generator backed by an Ollama server.
func NewOllamaGenerator(serverURL, model string) (*LLMGenerator, error) {
	llm, err := ollama.New(ollama.WithServerURL(serverURL), ollama.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	return &LLMGenerator{LLM: llm}, nil
}

var _ Generator = LLMGenerator{}
