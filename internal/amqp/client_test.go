package amqp

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		base     time.Duration
		attempt  int
		expected time.Duration
	}{
		{time.Second, 0, 1 * time.Second},
		{time.Second, 1, 2 * time.Second},
		{time.Second, 2, 4 * time.Second},
		{time.Second, 3, 8 * time.Second},
		{time.Second, 4, 16 * time.Second},
		{time.Second, 5, 30 * time.Second},  // capped at 30s
		{time.Second, 10, 30 * time.Second}, // capped at 30s
		{500 * time.Millisecond, 0, 500 * time.Millisecond},
		{500 * time.Millisecond, 2, 2 * time.Second},
		{0, 1, 2 * time.Second}, // zero base falls back to one second
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("base_%v_attempt_%d", tt.base, tt.attempt), func(t *testing.T) {
			result := exponentialBackoff(tt.base, tt.attempt)
			if result != tt.expected {
				t.Errorf("exponentialBackoff(%v, %d) = %v, want %v", tt.base, tt.attempt, result, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection refused", errors.New("connection refused"), true},
		{"connection closed", errors.New("connection closed"), true},
		{"unexpected EOF", errors.New("unexpected EOF"), true},
		{"broken pipe", errors.New("write: broken pipe"), true},
		{"validation error", errors.New("invalid amount"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.expected {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestRecordEventMessageRoundTrip(t *testing.T) {
	msg := NewRecordEventMessage(ActionSync, "alice", "habit-1", 3, 6, 2024)
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := RecordEventMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Action != ActionSync || got.HabitID != "habit-1" || got.Day != 3 || got.Month != 6 || got.Year != 2024 {
		t.Fatalf("unexpected message: %+v", got)
	}
}
