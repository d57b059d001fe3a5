package publisher

import (
	"encoding/json"
	"time"

	"github.com/thisisprabha/networth/internal/domain"
)

// Routing keys on the display exchange
const (
	RoutingDisplayState = "display_state"
	RoutingCheckIn      = "check_in"
)

// DisplayStateMessage carries the widget state after a snapshot append
type DisplayStateMessage struct {
	NetWorth     float64   `json:"netWorth"`
	LastUpdated  time.Time `json:"lastUpdated"`
	DeltaPercent *float64  `json:"deltaPercent"`
	PublishedAt  time.Time `json:"publishedAt"`
}

// NewDisplayStateMessage wraps a display state
func NewDisplayStateMessage(state domain.DisplayState, now time.Time) *DisplayStateMessage {
	return &DisplayStateMessage{
		NetWorth:     state.NetWorth,
		LastUpdated:  state.LastUpdated,
		DeltaPercent: state.DeltaPercent,
		PublishedAt:  now,
	}
}

// ToJSON converts the message to JSON bytes
func (m *DisplayStateMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DisplayStateMessageFromJSON creates a message from JSON bytes
func DisplayStateMessageFromJSON(data []byte) (*DisplayStateMessage, error) {
	var msg DisplayStateMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// CheckInMessage carries a reminder
type CheckInMessage struct {
	Title string    `json:"title"`
	Body  string    `json:"body"`
	At    time.Time `json:"at"`
}

func NewCheckInMessage(r domain.Reminder) *CheckInMessage {
	return &CheckInMessage{Title: r.Title, Body: r.Body, At: r.At}
}

func (m *CheckInMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
