package state

import (
	"encoding/json"
	"math"
)

// Location is a latitude/longitude pair picked by the user.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Finite reports whether both coordinates are ordinary numbers.
func (l Location) Finite() bool {
	return !math.IsNaN(l.Latitude) && !math.IsInf(l.Latitude, 0) &&
		!math.IsNaN(l.Longitude) && !math.IsInf(l.Longitude, 0)
}

// MarshalJSON writes null when a coordinate is NaN or infinite.
func (l Location) MarshalJSON() ([]byte, error) {
	if !l.Finite() {
		return []byte("null"), nil
	}
	type plain Location
	return json.Marshal(plain(l))
}

// JournalEntry is a single travel note. Photo is an opaque URI owned by
// whatever picked it; only the reference is kept here.
type JournalEntry struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	DetailedNote string    `json:"detailedNote,omitempty"`
	Photo        string    `json:"photo,omitempty"`
	Location     *Location `json:"location,omitempty"`
	Date         string    `json:"date"`
}

// JournalState holds entries in insertion order, which is also display order.
type JournalState struct {
	Entries []JournalEntry `json:"entries"`
}

// DefaultJournal is the empty journal.
func DefaultJournal() JournalState {
	return JournalState{Entries: []JournalEntry{}}
}

// ReduceJournal applies a to s. The backing array of s.Entries is never
// written to; every change allocates a fresh slice.
func ReduceJournal(s JournalState, a Action) JournalState {
	switch act := a.(type) {
	case AddEntry:
		entry := act.Entry
		if entry.Location != nil {
			loc := *entry.Location
			entry.Location = &loc
		}
		entries := make([]JournalEntry, len(s.Entries), len(s.Entries)+1)
		copy(entries, s.Entries)
		return JournalState{Entries: append(entries, entry)}
	case DeleteEntry:
		return deleteEntry(s, act.ID)
	default:
		return s
	}
}

// deleteEntry drops every entry with the given id. Duplicate ids are not
// prevented elsewhere, so all matches go.
func deleteEntry(s JournalState, id string) JournalState {
	matches := 0
	for _, e := range s.Entries {
		if e.ID == id {
			matches++
		}
	}
	if matches == 0 {
		return s
	}

	entries := make([]JournalEntry, 0, len(s.Entries)-matches)
	for _, e := range s.Entries {
		if e.ID != id {
			entries = append(entries, e)
		}
	}
	return JournalState{Entries: entries}
}

// Find returns the first entry with the given id.
func (s JournalState) Find(id string) (JournalEntry, bool) {
	for _, e := range s.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return JournalEntry{}, false
}

func sameJournal(a, b JournalState) bool {
	if len(a.Entries) != len(b.Entries) {
		return false
	}
	if len(a.Entries) == 0 {
		return true
	}
	return &a.Entries[0] == &b.Entries[0]
}
