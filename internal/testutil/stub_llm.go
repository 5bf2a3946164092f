package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/levelup/internal/llm"
)

// StubLLMClient is an llm.LLMClient that answers from a function or fixed
// values and records every request it receives.
type StubLLMClient struct {
	// Respond, when set, takes precedence over Text and Err.
	Respond func(ctx context.Context, req llm.GenerateRequest) (string, error)
	Text    string
	Err     error

	mu    sync.Mutex
	calls []llm.GenerateRequest
}

func (s *StubLLMClient) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()

	text, err := s.Text, s.Err
	if s.Respond != nil {
		text, err = s.Respond(ctx, req)
	}
	if err != nil {
		return nil, err
	}
	return &llm.GenerateResponse{Text: text, Model: "stub"}, nil
}

func (s *StubLLMClient) Available(context.Context) bool { return s.Err == nil }

// Calls returns a copy of the recorded requests.
func (s *StubLLMClient) Calls() []llm.GenerateRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]llm.GenerateRequest, len(s.calls))
	copy(out, s.calls)
	return out
}
