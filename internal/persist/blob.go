package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/traveljournal/internal/state"
)

// CurrentVersion is the schema version written by Encode.
const CurrentVersion = 1

var (
	ErrUnsupportedVersion = errors.New("unsupported blob version")
	ErrUnrecognizedBlob   = errors.New("unrecognized blob layout")
)

type envelope struct {
	Version int                        `json:"version"`
	State   map[string]json.RawMessage `json:"state"`
}

// Snapshot is what a blob restores. A nil slice was not present in the blob
// or not selected by the whitelist.
type Snapshot struct {
	Version int
	Session *state.SessionState
	Journal *state.JournalState
}

// Encode serializes the selected slices of s as a version 1 blob.
func Encode(s state.RootState, slices []string) ([]byte, error) {
	out := envelope{Version: CurrentVersion, State: make(map[string]json.RawMessage, len(slices))}

	for _, name := range slices {
		var (
			raw []byte
			err error
		)
		switch name {
		case state.SliceSession:
			raw, err = json.Marshal(s.Session)
		case state.SliceJournal:
			raw, err = json.Marshal(s.Journal)
		default:
			return nil, fmt.Errorf("unknown slice %q", name)
		}
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		out.State[name] = raw
	}

	return json.Marshal(out)
}

// Decode parses a blob written by Encode, or by the unversioned layout
// where each slice was stored as a JSON string under "user" and "journal".
// Only slices listed in slices are restored.
func Decode(data []byte, slices []string) (Snapshot, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return Snapshot{}, fmt.Errorf("decode blob: %w", err)
	}

	var (
		version int
		raw     map[string]json.RawMessage
	)
	switch {
	case top["version"] != nil:
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return Snapshot{}, fmt.Errorf("decode blob: %w", err)
		}
		if env.Version != CurrentVersion {
			return Snapshot{Version: env.Version}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
		}
		version, raw = env.Version, env.State
	case top["user"] != nil || top["journal"] != nil || top["_persist"] != nil:
		raw = migrateLegacy(top)
	default:
		return Snapshot{}, ErrUnrecognizedBlob
	}

	snap := Snapshot{Version: version}
	for _, name := range slices {
		r, ok := raw[name]
		if !ok || isNull(r) {
			continue
		}
		switch name {
		case state.SliceSession:
			var s state.SessionState
			if err := json.Unmarshal(r, &s); err != nil {
				return Snapshot{}, fmt.Errorf("decode %s: %w", name, err)
			}
			// A session is logged in only together with its user.
			if !s.IsLoggedIn || s.UserDetails == nil {
				s = state.DefaultSession()
			}
			snap.Session = &s
		case state.SliceJournal:
			var j state.JournalState
			if err := json.Unmarshal(r, &j); err != nil {
				return Snapshot{}, fmt.Errorf("decode %s: %w", name, err)
			}
			if j.Entries == nil {
				j.Entries = []state.JournalEntry{}
			}
			snap.Journal = &j
		}
	}
	return snap, nil
}

// migrateLegacy unwraps the double-encoded slices of the old layout and
// renames "user" to the session slice.
func migrateLegacy(top map[string]json.RawMessage) map[string]json.RawMessage {
	names := map[string]string{
		"user":             state.SliceSession,
		state.SliceJournal: state.SliceJournal,
	}

	out := make(map[string]json.RawMessage, len(names))
	for legacy, name := range names {
		r, ok := top[legacy]
		if !ok || isNull(r) {
			continue
		}
		var inner string
		if err := json.Unmarshal(r, &inner); err != nil {
			// Some writers stored the slice as an object rather than a string.
			out[name] = r
			continue
		}
		out[name] = json.RawMessage(inner)
	}
	return out
}

func isNull(r json.RawMessage) bool {
	return len(r) == 0 || string(r) == "null"
}
