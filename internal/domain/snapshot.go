package domain

import "time"

// SnapshotRetention is the number of newest snapshots kept in history
const SnapshotRetention = 120

// NetWorthSnapshot is one change-triggered point of the net worth history
// Snapshots are never mutated after creation
type NetWorthSnapshot struct {
	ID             string
	Timestamp      time.Time
	NetWorth       float64
	EntryCount     int
	CategoryTotals map[Category]float64
}

// SameState reports whether two snapshots carry the same aggregate state
// ID and Timestamp are ignored
func (s NetWorthSnapshot) SameState(o NetWorthSnapshot) bool {
	if s.NetWorth != o.NetWorth || s.EntryCount != o.EntryCount {
		return false
	}
	if len(s.CategoryTotals) != len(o.CategoryTotals) {
		return false
	}
	for c, v := range s.CategoryTotals {
		ov, ok := o.CategoryTotals[c]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// DisplayState is what a home-screen style sink receives after a snapshot is appended
// DeltaPercent is a fraction and nil when no positive previous value exists
type DisplayState struct {
	NetWorth     float64   `json:"netWorth"`
	LastUpdated  time.Time `json:"lastUpdated"`
	DeltaPercent *float64  `json:"deltaPercent"`
}
