// Package policy evaluates the Rego error recovery policy.
package policy

import (
	"context"
	"fmt"
	"os"

	"github.com/open-policy-agent/opa/v1/rego"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// Input is the document the recovery policy is evaluated against.
type Input struct {
	Operation     string `json:"operation"`
	FailureKind   string `json:"failure_kind"`
	TransportKind string `json:"transport_kind,omitempty"`
	StatusCode    int    `json:"status_code,omitempty"`
}

// Decision is the outcome of the recovery policy.
type Decision struct {
	Message string
	Usable  bool
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.recovery.decision"),
		rego.Module("recovery.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// NewEngineFromFile loads the policy from path, or the default policy when path is empty.
func NewEngineFromFile(ctx context.Context, path string) (*Engine, error) {
	if path == "" {
		return NewEngine(ctx, DefaultRecoveryPolicy)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return NewEngine(ctx, string(content))
}

// Evaluate runs the policy for one failed remote call.
func (e *Engine) Evaluate(ctx context.Context, input Input) (Decision, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return Decision{}, fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return Decision{}, fmt.Errorf("policy returned no decision")
	}

	obj, ok := results[0].Expressions[0].Value.(map[string]interface{})
	if !ok {
		return Decision{}, fmt.Errorf("unexpected decision type %T", results[0].Expressions[0].Value)
	}

	message, _ := obj["message"].(string)
	if message == "" {
		return Decision{}, fmt.Errorf("decision has no message")
	}
	usable, ok := obj["usable"].(bool)
	if !ok {
		return Decision{}, fmt.Errorf("decision has no usable flag")
	}

	return Decision{Message: message, Usable: usable}, nil
}

// DefaultRecoveryPolicy is the default policy content.
const DefaultRecoveryPolicy = `
package recovery

default decision := {
	"message": "Something went wrong. Please try again.",
	"usable": true,
}

# Without an interview id nothing else can be done with the session.
decision := {
	"message": "Sorry, I am unable to start the interview right now. Please start a new interview to try again.",
	"usable": false,
} if {
	input.operation == "create_session"
}

decision := {
	"message": "There was an error processing your message. Please try again.",
	"usable": true,
} if {
	input.operation == "send_turn"
}

decision := {
	"message": "Sorry, I could not generate the report at this time.",
	"usable": true,
} if {
	input.operation == "fetch_report"
}
`
