package llm

import (
	"context"
	"strings"
)

// MockGenerator answers without any network calls, so the service can run
// locally and in tests without credentials. Classification prompts get a
// conservative constraints_update object; everything else gets a short canned
// reply.
type MockGenerator struct{}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

const mockIntentJSON = `{"intent":"clarification_needed","confidence":0.5,` +
	`"extracted_updates":{"destination":null,"start_date":null,"end_date":null,` +
	`"duration_days":null,"budget":null,"travelers":null,"interests":[],"pace":null,` +
	`"constraints":[]},"missing_info":["destination","dates_or_duration"],` +
	`"notes":"mock classification"}`

func (m *MockGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "STRICT intent-classification component") {
		return mockIntentJSON, nil
	}
	return "I'm running without a language model right now, but I can still track your trip details. " +
		"Tell me your destination and dates, or ask for a currency conversion like 100 USD to EUR.", nil
}
