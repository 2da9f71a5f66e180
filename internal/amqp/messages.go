package amqp

import (
	"encoding/json"
	"time"
)

const (
	// ActionSync asks the worker to mirror the record at the key.
	ActionSync = "sync"
	// ActionClear tells the worker the record at the key was removed.
	ActionClear = "clear"
)

// RecordEventMessage points the worker at one completion record. It
// deliberately carries only the key, not the record itself: the worker
// re-reads the current state from storage, so a stale message after a
// rapid toggle sequence still syncs the latest write.
type RecordEventMessage struct {
	Action    string    `json:"action"`
	Principal string    `json:"principal"`
	HabitID   string    `json:"habit_id"`
	Day       int64     `json:"day"`
	Month     int64     `json:"month"`
	Year      int64     `json:"year"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordEventMessage builds a message for the given record key.
func NewRecordEventMessage(action, principal, habitID string, day, month, year int64) *RecordEventMessage {
	return &RecordEventMessage{
		Action:    action,
		Principal: principal,
		HabitID:   habitID,
		Day:       day,
		Month:     month,
		Year:      year,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *RecordEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordEventMessageFromJSON parses a message from JSON bytes.
func RecordEventMessageFromJSON(data []byte) (*RecordEventMessage, error) {
	var msg RecordEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
