package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
		value float64
		str   string
	}{
		{"number", `8`, true, 8, "8"},
		{"fraction", `7.5`, true, 7.5, "7.5"},
		{"numeric string", `"9"`, true, 9, "9"},
		{"padded numeric string", `" 6 "`, true, 6, "6"},
		{"not available", `"N/A"`, false, 0, "N/A"},
		{"null", `null`, false, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Score
			require.NoError(t, json.Unmarshal([]byte(tt.input), &s))
			assert.Equal(t, tt.valid, s.Valid)
			assert.Equal(t, tt.value, s.Value)
			assert.Equal(t, tt.str, s.String())
		})
	}
}

func TestScoreUnmarshalRejectsObjects(t *testing.T) {
	var s Score
	assert.Error(t, json.Unmarshal([]byte(`{"v":1}`), &s))
}

func TestScoreMarshal(t *testing.T) {
	data, err := json.Marshal(NewScore(8))
	require.NoError(t, err)
	assert.Equal(t, `8`, string(data))

	data, err = json.Marshal(Score{Raw: "N/A"})
	require.NoError(t, err)
	assert.Equal(t, `"N/A"`, string(data))

	data, err = json.Marshal(Score{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(data))
}

func TestSessionStatusPrecedes(t *testing.T) {
	assert.True(t, SessionStatusInitializing.Precedes(SessionStatusActive))
	assert.True(t, SessionStatusActive.Precedes(SessionStatusConcluded))
	assert.True(t, SessionStatusActive.Precedes(SessionStatusReportReady))
	assert.False(t, SessionStatusConcluded.Precedes(SessionStatusActive))
	assert.False(t, SessionStatusReportReady.Precedes(SessionStatusReportReady))
}

func TestOperationFailureKind(t *testing.T) {
	assert.Equal(t, FailureKindInitialization, OperationCreateSession.FailureKind())
	assert.Equal(t, FailureKindMessageSend, OperationSendTurn.FailureKind())
	assert.Equal(t, FailureKindReport, OperationFetchReport.FailureKind())
}

func TestTransportErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := error(&TransportError{Op: OperationSendTurn, Kind: TransportErrorNetwork, Err: cause})

	te, ok := IsTransportError(err)
	require.True(t, ok)
	assert.Equal(t, OperationSendTurn, te.Op)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "send_turn")

	status := &TransportError{Op: OperationFetchReport, Kind: TransportErrorStatus, StatusCode: 500}
	assert.Equal(t, "fetch_report: assessment service returned status 500", status.Error())
}

func TestChatResponseText(t *testing.T) {
	assert.Equal(t, "a", (&ChatResponse{Content: "a", Message: "b"}).Text())
	assert.Equal(t, "b", (&ChatResponse{Message: "b"}).Text())
}
