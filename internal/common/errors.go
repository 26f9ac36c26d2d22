// Package common defines sentinel errors shared by the services and the
// terminal client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Input rejected before anything is dispatched or stored.
	ErrValidation = errors.New("validation error")

	ErrNotFound = errors.New("not found")

	// Operation needs a logged-in session.
	ErrNotLoggedIn = errors.New("not logged in")
)
