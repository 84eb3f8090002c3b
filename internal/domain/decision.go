package domain

import "errors"

// Action tags what the executor should do with a turn.
type Action string

const (
	ActionAskClarification Action = "ask_clarification"
	ActionGenerateResponse Action = "generate_response"
	ActionCallTool         Action = "call_tool"
	ActionOutOfScope       Action = "out_of_scope_response"
)

// Tool names the router may dispatch to.
const (
	ToolWeather  = "weather"
	ToolCurrency = "currency"
)

// CurrencyArgs is the resolved payload for a currency tool call. Once the
// router resolves it, it is the single source of truth for the call; the
// executor must not re-derive it from the message.
type CurrencyArgs struct {
	Amount float64
	From   string
	To     string
}

// Decision is the router's verdict for one turn.
type Decision struct {
	Action      Action
	MissingInfo []string
	ToolName    string
	Currency    *CurrencyArgs
	Notes       string
}

var errDecisionToolContract = errors.New("tool name and payload are required exactly when action is call_tool")

// Validate enforces the construction contract: tool name (and, for currency,
// payload) are present iff the action is call_tool. A violation is a
// programmer error and must never reach the user.
func (d Decision) Validate() error {
	if d.Action == ActionCallTool {
		if d.ToolName == "" {
			return errDecisionToolContract
		}
		if d.ToolName == ToolCurrency && d.Currency == nil {
			return errDecisionToolContract
		}
		return nil
	}
	if d.ToolName != "" || d.Currency != nil {
		return errDecisionToolContract
	}
	return nil
}

// AskClarification builds a clarification decision for a single slot.
func AskClarification(slot string, notes string) Decision {
	return Decision{Action: ActionAskClarification, MissingInfo: []string{slot}, Notes: notes}
}

// GenerateResponse builds a plain generation decision.
func GenerateResponse(notes string) Decision {
	return Decision{Action: ActionGenerateResponse, Notes: notes}
}

// OutOfScope builds the fixed refusal decision.
func OutOfScope(notes string) Decision {
	return Decision{Action: ActionOutOfScope, Notes: notes}
}

// CallWeather builds a weather tool decision.
func CallWeather(notes string) Decision {
	return Decision{Action: ActionCallTool, ToolName: ToolWeather, Notes: notes}
}

// CallCurrency builds a currency tool decision carrying the resolved query.
func CallCurrency(args CurrencyArgs, notes string) Decision {
	return Decision{Action: ActionCallTool, ToolName: ToolCurrency, Currency: &args, Notes: notes}
}
