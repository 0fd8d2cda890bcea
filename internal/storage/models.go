package storage

import (
	"encoding/json"
	"time"
)

const (
	KindAveragingDown = "averaging-down"
	KindTargetAverage = "target-average"
)

// HistoryEntry is one successful calculation. Entries are never updated.
type HistoryEntry struct {
	ID        uint   `gorm:"primarykey"` // insertion order
	EntryID   string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time

	Kind   string `gorm:"index;not null"`
	Input  string `gorm:"type:text;not null"` // JSON
	Result string `gorm:"type:text;not null"` // JSON
}

func (e *HistoryEntry) DecodeInput(v any) error {
	return json.Unmarshal([]byte(e.Input), v)
}

func (e *HistoryEntry) DecodeResult(v any) error {
	return json.Unmarshal([]byte(e.Result), v)
}

// MarshalJSON exposes the public id, a millisecond timestamp and the stored
// input and result records as nested objects.
func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        string          `json:"id"`
		Timestamp int64           `json:"timestamp"`
		Type      string          `json:"type"`
		Input     json.RawMessage `json:"input"`
		Result    json.RawMessage `json:"result"`
	}{
		ID:        e.EntryID,
		Timestamp: e.CreatedAt.UnixMilli(),
		Type:      e.Kind,
		Input:     json.RawMessage(e.Input),
		Result:    json.RawMessage(e.Result),
	})
}
