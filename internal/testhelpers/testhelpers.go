package testhelpers

import (
	"context"
	"sync"
	"testing"

	"github.com/tmc/langchaingo/llms"

	"github.com/johnwards/oppscore/internal/domain"
)

// FakeGenerator records prompts and returns a canned response or error.
type FakeGenerator struct {
	Response string
	Err      error

	mu      sync.Mutex
	prompts []string
}

// Generate records prompt and returns the configured response.
func (g *FakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if g.Err != nil {
		return "", g.Err
	}
	return g.Response, nil
}

// Prompts returns every prompt received so far.
func (g *FakeGenerator) Prompts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.prompts...)
}

// FakeLLM is a langchaingo model returning a canned completion.
type FakeLLM struct {
	Response string
	Err      error
}

// GenerateContent returns Response as the only choice.
func (m *FakeLLM) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.Response}},
	}, nil
}

// Call returns Response.
func (m *FakeLLM) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

var _ llms.Model = (*FakeLLM)(nil)

// ScenarioA returns an opportunity that scores activity 44, sentiment 85,
// stage duration 100, buying signal true and confidence 78.7.
func ScenarioA(t *testing.T) domain.Opportunity {
	t.Helper()
	return domain.Opportunity{
		Name:         "Acme Corp",
		Stage:        "Prospecting",
		Notes:        "Client approved budget, ready to buy",
		EmailCount:   3,
		CallCount:    5,
		MeetingCount: 1,
		DaysInStage:  10,
	}
}
