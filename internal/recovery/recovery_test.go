package recovery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/gogo/interviewer/internal/domain"
	"github.com/xiaot623/gogo/interviewer/policy"
)

func TestStaticPolicy(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("boom")

	f := StaticPolicy{}.Recover(ctx, domain.OperationCreateSession, cause)
	assert.Equal(t, domain.FailureKindInitialization, f.Kind)
	assert.Equal(t, MessageInitialization, f.Message)
	assert.False(t, f.Usable)
	assert.Equal(t, cause, f.Err)

	f = StaticPolicy{}.Recover(ctx, domain.OperationSendTurn, cause)
	assert.Equal(t, domain.FailureKindMessageSend, f.Kind)
	assert.Equal(t, MessageSend, f.Message)
	assert.True(t, f.Usable)

	f = StaticPolicy{}.Recover(ctx, domain.OperationFetchReport, cause)
	assert.Equal(t, domain.FailureKindReport, f.Kind)
	assert.Equal(t, MessageReport, f.Message)
	assert.True(t, f.Usable)
}

func TestRegoPolicyDefaultMatchesStatic(t *testing.T) {
	ctx := context.Background()
	engine, err := policy.NewEngine(ctx, policy.DefaultRecoveryPolicy)
	require.NoError(t, err)
	p := NewRegoPolicy(engine, nil)

	for _, op := range []domain.Operation{domain.OperationCreateSession, domain.OperationSendTurn, domain.OperationFetchReport} {
		cause := &domain.TransportError{Op: op, Kind: domain.TransportErrorStatus, StatusCode: 503}
		got := p.Recover(ctx, op, cause)
		want := StaticPolicy{}.Recover(ctx, op, cause)
		assert.Equal(t, want, got, "operation %s", op)
	}
}

func TestRegoPolicyPassesTransportDetails(t *testing.T) {
	ctx := context.Background()
	engine, err := policy.NewEngine(ctx, `
package recovery

default decision := {"message": "generic", "usable": true}

decision := {"message": "service unavailable", "usable": true} if {
	input.failure_kind == "REPORT_FAILURE"
	input.transport_kind == "status"
	input.status_code == 503
}
`)
	require.NoError(t, err)
	p := NewRegoPolicy(engine, nil)

	f := p.Recover(ctx, domain.OperationFetchReport, &domain.TransportError{Kind: domain.TransportErrorStatus, StatusCode: 503})
	assert.Equal(t, "service unavailable", f.Message)

	f = p.Recover(ctx, domain.OperationFetchReport, errors.New("plain"))
	assert.Equal(t, "generic", f.Message)
}

func TestRegoPolicyNeverMakesFailedInitUsable(t *testing.T) {
	ctx := context.Background()
	engine, err := policy.NewEngine(ctx, "package recovery\n\ndecision := {\"message\": \"try again\", \"usable\": true}\n")
	require.NoError(t, err)

	f := NewRegoPolicy(engine, nil).Recover(ctx, domain.OperationCreateSession, errors.New("down"))
	assert.Equal(t, "try again", f.Message)
	assert.False(t, f.Usable)
}

func TestRegoPolicyFallsBackOnBadDecision(t *testing.T) {
	ctx := context.Background()
	engine, err := policy.NewEngine(ctx, "package recovery\n\ndecision := 42\n")
	require.NoError(t, err)

	f := NewRegoPolicy(engine, nil).Recover(ctx, domain.OperationSendTurn, errors.New("down"))
	assert.Equal(t, MessageSend, f.Message)
	assert.True(t, f.Usable)
}
