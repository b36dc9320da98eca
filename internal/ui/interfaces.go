package ui

// Prompter defines interface for user interaction
type Prompter interface {
	ConfirmAction(summary string) (bool, error)
}

// DefaultPrompter implements the actual prompting logic
type DefaultPrompter struct{}

// ConfirmAction prompts user to confirm a mutating operation
func (p *DefaultPrompter) ConfirmAction(summary string) (bool, error) {
	return ConfirmAction(summary)
}

// MockPrompter for testing
type MockPrompter struct {
	Confirmed         bool
	ConfirmationError error

	// Call tracking
	ConfirmActionCalled bool
	LastSummary         string
}

// ConfirmAction mocks confirmation
func (m *MockPrompter) ConfirmAction(summary string) (bool, error) {
	m.ConfirmActionCalled = true
	m.LastSummary = summary
	return m.Confirmed, m.ConfirmationError
}
