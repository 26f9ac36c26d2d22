package state

// UserDetails identifies the logged-in user. The reducer stores it as given;
// validation happens before dispatch.
type UserDetails struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// SessionState is the login slice. UserDetails is nil whenever IsLoggedIn is
// false; this holds on every transition and is not re-checked afterwards.
type SessionState struct {
	IsLoggedIn  bool         `json:"isLoggedIn"`
	UserDetails *UserDetails `json:"userDetails"`
}

// DefaultSession is the logged-out session.
func DefaultSession() SessionState {
	return SessionState{}
}

// ReduceSession applies a to s.
func ReduceSession(s SessionState, a Action) SessionState {
	switch act := a.(type) {
	case Login:
		user := act.User
		return SessionState{IsLoggedIn: true, UserDetails: &user}
	case Logout:
		return DefaultSession()
	default:
		// Not a session action: the slice is returned as is so that
		// Changed can tell nothing happened.
		return s
	}
}

func sameSession(a, b SessionState) bool {
	return a.IsLoggedIn == b.IsLoggedIn && a.UserDetails == b.UserDetails
}
