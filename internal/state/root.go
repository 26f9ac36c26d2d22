package state

// Slice names, used as keys in the persisted blob.
const (
	SliceSession = "session"
	SliceJournal = "journal"
)

// RootState is the whole application state and the unit of persistence.
// A RootState handed out by a Store is a snapshot: treat it as read-only.
type RootState struct {
	Session SessionState `json:"session"`
	Journal JournalState `json:"journal"`
}

// DefaultState is a logged-out session with an empty journal.
func DefaultState() RootState {
	return RootState{
		Session: DefaultSession(),
		Journal: DefaultJournal(),
	}
}

// Reducer computes the next root state. It must not modify its input.
type Reducer func(RootState, Action) RootState

// Reduce fans a out to every slice reducer.
func Reduce(s RootState, a Action) RootState {
	return RootState{
		Session: ReduceSession(s.Session, a),
		Journal: ReduceJournal(s.Journal, a),
	}
}

// Changed reports whether next differs from prev by identity. Reducers
// return their input untouched when an action does not apply, so an
// unchanged result means nothing happened.
func Changed(prev, next RootState) bool {
	return !sameSession(prev.Session, next.Session) || !sameJournal(prev.Journal, next.Journal)
}
