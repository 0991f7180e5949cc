package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Score is an overall report score. The service contract says it is a number in
// [0,10], but it is passed through as received: numeric strings are accepted and
// anything else (for example "N/A") is kept in Raw with Valid set to false.
type Score struct {
	Value float64
	Raw   string
	Valid bool
}

// NewScore returns a valid score holding v.
func NewScore(v float64) Score {
	return Score{Value: v, Raw: strconv.FormatFloat(v, 'f', -1, 64), Valid: true}
}

// String returns the score as it should be displayed.
func (s Score) String() string {
	if s.Valid {
		return strconv.FormatFloat(s.Value, 'f', -1, 64)
	}
	return s.Raw
}

// UnmarshalJSON accepts a JSON number, a string, or null.
func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = Score{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("invalid score: %w", err)
		}
		raw = strings.TrimSpace(raw)
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			*s = Score{Value: v, Raw: raw, Valid: true}
			return nil
		}
		*s = Score{Raw: raw}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid score: %w", err)
	}
	*s = Score{Value: v, Raw: string(data), Valid: true}
	return nil
}

// MarshalJSON writes valid scores as numbers and everything else as strings.
func (s Score) MarshalJSON() ([]byte, error) {
	if s.Valid {
		return json.Marshal(s.Value)
	}
	if s.Raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(s.Raw)
}
