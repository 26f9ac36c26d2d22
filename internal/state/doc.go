// Package state is the in-memory core of the travel journal.
//
// # Overview
//
// The root state has two slices, each with its own pure reducer:
//
//   - session: login flag and user details (ReduceSession)
//   - journal: ordered journal entries (ReduceJournal)
//
// Reduce fans an Action out to both. A Store holds the current RootState,
// applies dispatched actions synchronously and notifies subscribers with the
// new snapshot.
//
// # Snapshots
//
// Reducers never modify their input. A snapshot obtained from State or a
// subscription keeps its contents after later dispatches; callers must not
// modify it either.
//
// # Actions
//
// Login, Logout, AddEntry and DeleteEntry are the application actions.
// Init and Rehydrate are reserved for the persist package. Any other Action
// value is accepted and leaves the state untouched.
package state
