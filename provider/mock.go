package provider

import (
	"context"
	"fmt"
)

// MockProvider is a mock AI provider for testing.
type MockProvider struct {
	Translations map[string]string // Map of source text to translation
	Err          error             // Returned for every call when set
	FailOn       map[string]error  // Per-text failures
	CallCount    int               // Number of times Translate was called
	Requests     []TranslateRequest
}

// NewMockProvider creates a new mock provider with a few default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Введение":           "Introduction",
			"Системное мышление": "Systems Thinking",
			"Привет":             "Hello",
		},
		FailOn: map[string]error{},
	}
}

// Translate returns mock translations. Unknown texts come back tagged with
// the target language so tests can tell them apart.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	m.CallCount++
	m.Requests = append(m.Requests, req)

	if m.Err != nil {
		return "", m.Err
	}
	if err, ok := m.FailOn[req.Text]; ok {
		return "", err
	}
	if translation, ok := m.Translations[req.Text]; ok {
		return translation, nil
	}
	return fmt.Sprintf("[%s] %s", req.TargetLang, req.Text), nil
}

// LastRequest returns the most recent request, or nil.
func (m *MockProvider) LastRequest() *TranslateRequest {
	if len(m.Requests) == 0 {
		return nil
	}
	return &m.Requests[len(m.Requests)-1]
}

// Reset resets the call count and recorded requests.
func (m *MockProvider) Reset() {
	m.CallCount = 0
	m.Requests = nil
}

// Verify MockProvider implements AIProvider
var _ AIProvider = (*MockProvider)(nil)
