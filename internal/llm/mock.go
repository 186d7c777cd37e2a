package llm

import (
	"context"
	"sync"
)

// MockResponse is a canned reply for the MockProvider.
type MockResponse struct {
	Content string
	Err     error
}

// MockProvider is a deterministic Completer for tests. It returns canned
// replies in FIFO order and records every prompt.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Prompts   []string
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Complete returns the next canned reply, or ErrProviderUnavailable once the
// queue is empty.
func (m *MockProvider) Complete(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, prompt)

	if len(m.responses) == 0 {
		return "", &ErrProviderUnavailable{}
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	if resp.Err != nil {
		return "", resp.Err
	}
	return resp.Content, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
