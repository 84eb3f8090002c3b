package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecisionValidateToolContract(t *testing.T) {
	tests := []struct {
		name    string
		d       Decision
		wantErr bool
	}{
		{"clarification is valid", AskClarification("destination", ""), false},
		{"generate is valid", GenerateResponse(""), false},
		{"out of scope is valid", OutOfScope(""), false},
		{"weather call is valid", CallWeather(""), false},
		{"currency call with payload is valid", CallCurrency(CurrencyArgs{Amount: 100, From: "USD", To: "EUR"}, ""), false},
		{"call_tool without tool name", Decision{Action: ActionCallTool}, true},
		{"currency call without payload", Decision{Action: ActionCallTool, ToolName: ToolCurrency}, true},
		{"tool name outside call_tool", Decision{Action: ActionGenerateResponse, ToolName: ToolWeather}, true},
		{"payload outside call_tool", Decision{Action: ActionAskClarification, Currency: &CurrencyArgs{}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetPendingTrimsToSingleSlot(t *testing.T) {
	var st State
	st.SetPending([]string{"destination", "dates_or_duration"})
	assert.Equal(t, []string{"destination"}, st.PendingMissingInfo)

	st.SetPending(nil)
	assert.Empty(t, st.PendingMissingInfo)
}
