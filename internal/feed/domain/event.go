package domain

import (
	"database/sql/driver"
	"errors"
	"time"
)

// JSONPayload stores an opaque JSON document in a jsonb column.
type JSONPayload []byte

// Value implements driver.Valuer
func (p JSONPayload) Value() (driver.Value, error) {
	if len(p) == 0 {
		return "null", nil
	}
	return string(p), nil
}

// Scan implements sql.Scanner
func (p *JSONPayload) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*p = append((*p)[0:0], v...)
	case string:
		*p = JSONPayload(v)
	default:
		return errors.New("unsupported type for JSONPayload")
	}
	return nil
}

// MarshalJSON writes the stored document through verbatim.
func (p JSONPayload) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

// UnmarshalJSON keeps the raw bytes.
func (p *JSONPayload) UnmarshalJSON(data []byte) error {
	*p = append((*p)[0:0], data...)
	return nil
}

// SnoozedEvent is a GitHub activity event a user hid from their feed into
// their reminder list. The GitHub event id is the primary key, so an event
// can be snoozed by at most one owner at a time.
type SnoozedEvent struct {
	EventID   string      `json:"event_id" gorm:"column:event_id;primaryKey;size:120"`
	Payload   JSONPayload `json:"payload" gorm:"column:event_json;type:jsonb"`
	GitHubID  int64       `json:"github_id" gorm:"column:github_id;index"`
	CreatedAt time.Time   `json:"created_at"`
}

func (SnoozedEvent) TableName() string {
	return "snoozed_events"
}
