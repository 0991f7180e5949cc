// Package recovery decides how the orchestrator surfaces failed remote calls.
package recovery

import (
	"context"
	"log/slog"

	"github.com/xiaot623/gogo/interviewer/internal/domain"
	"github.com/xiaot623/gogo/interviewer/policy"
)

// Policy maps a failed remote call to a user-facing failure.
// Implementations must always return a Failure with a non-empty Message.
type Policy interface {
	Recover(ctx context.Context, op domain.Operation, err error) domain.Failure
}

// Fallback messages used when no Rego decision is available.
const (
	MessageInitialization = "Sorry, I am unable to start the interview right now. Please start a new interview to try again."
	MessageSend           = "There was an error processing your message. Please try again."
	MessageReport         = "Sorry, I could not generate the report at this time."
)

// StaticPolicy is the built-in decision table.
type StaticPolicy struct{}

// Recover implements Policy.
func (StaticPolicy) Recover(_ context.Context, op domain.Operation, err error) domain.Failure {
	kind := op.FailureKind()
	switch kind {
	case domain.FailureKindInitialization:
		return domain.Failure{Kind: kind, Message: MessageInitialization, Usable: false, Err: err}
	case domain.FailureKindMessageSend:
		return domain.Failure{Kind: kind, Message: MessageSend, Usable: true, Err: err}
	default:
		return domain.Failure{Kind: kind, Message: MessageReport, Usable: true, Err: err}
	}
}

// RegoPolicy evaluates the recovery policy with OPA and falls back to the
// static table when evaluation fails.
type RegoPolicy struct {
	engine   *policy.Engine
	fallback StaticPolicy
	logger   *slog.Logger
}

// NewRegoPolicy creates a RegoPolicy backed by engine.
func NewRegoPolicy(engine *policy.Engine, logger *slog.Logger) *RegoPolicy {
	if logger == nil {
		logger = slog.Default()
	}
	return &RegoPolicy{engine: engine, logger: logger}
}

// Recover implements Policy.
func (p *RegoPolicy) Recover(ctx context.Context, op domain.Operation, err error) domain.Failure {
	kind := op.FailureKind()
	input := policy.Input{
		Operation:   string(op),
		FailureKind: string(kind),
	}
	if te, ok := domain.IsTransportError(err); ok {
		input.TransportKind = string(te.Kind)
		input.StatusCode = te.StatusCode
	}

	decision, evalErr := p.engine.Evaluate(ctx, input)
	if evalErr != nil {
		p.logger.WarnContext(ctx, "recovery policy evaluation failed, using built-in decision",
			"operation", op, "error", evalErr)
		return p.fallback.Recover(ctx, op, err)
	}

	// A session without an id can never be used, whatever the policy says.
	usable := decision.Usable
	if kind == domain.FailureKindInitialization {
		usable = false
	}

	return domain.Failure{Kind: kind, Message: decision.Message, Usable: usable, Err: err}
}
