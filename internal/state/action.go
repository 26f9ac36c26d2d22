package state

// Action is anything that can be dispatched to a Store.
//
// The application actions below are the only ones the slice reducers act on.
// Any other Action is accepted and ignored (identity transition).
type Action interface {
	Type() string
}

// Application action types.
const (
	TypeLogin       = "LOGIN"
	TypeLogout      = "LOGOUT"
	TypeAddEntry    = "ADD_ENTRY"
	TypeDeleteEntry = "DELETE_ENTRY"
)

// Reserved action types used by the persistence layer. Application actions
// must never use the "persist/" prefix.
const (
	ReservedPrefix = "persist/"
	TypeInit       = ReservedPrefix + "PERSIST"
	TypeRehydrate  = ReservedPrefix + "REHYDRATE"
)

// Login marks the session as logged in with the given user details.
type Login struct {
	User UserDetails
}

func (Login) Type() string { return TypeLogin }

// Logout resets the session to its logged-out default.
type Logout struct{}

func (Logout) Type() string { return TypeLogout }

// AddEntry appends an entry to the journal.
type AddEntry struct {
	Entry JournalEntry
}

func (AddEntry) Type() string { return TypeAddEntry }

// DeleteEntry removes every journal entry with the given ID.
type DeleteEntry struct {
	ID string
}

func (DeleteEntry) Type() string { return TypeDeleteEntry }

// Init announces that persistence has started and rehydration is underway.
type Init struct{}

func (Init) Type() string { return TypeInit }

// Rehydrate carries the slices restored from durable storage. A nil slice
// was not restored and keeps its current value. Err records why nothing
// could be restored, for subscribers that care; the reducer ignores it.
type Rehydrate struct {
	Session *SessionState
	Journal *JournalState
	Err     error
}

func (Rehydrate) Type() string { return TypeRehydrate }
