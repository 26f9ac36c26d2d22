// Package services holds the caller side of the state store: input
// validation, id generation and timestamps happen here, before an action is
// dispatched, because the reducers accept whatever they are given.
package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/traveljournal/internal/common"
	"github.com/dmitrijs2005/traveljournal/internal/state"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minNameLen = 3

// Store is the part of state.Store the services need.
type Store interface {
	Dispatch(a state.Action)
	State() state.RootState
}

// RegisterRequest is the registration form.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

// AuthService manages the local session. There is no credential check:
// logging in is a state change, and passwords are only validated for shape.
//
// Contract:
//   - Register: validates the form and saves name and email to the profile.
//     It does not log in.
//   - Login: validates the fields and dispatches Login.
//   - Logout: dispatches Logout and clears the profile keys.
//   - Current: the logged-in user, if any.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Current() (state.UserDetails, bool)
}

type authService struct {
	store   Store
	profile ProfileService
}

func NewAuthService(store Store, profile ProfileService) AuthService {
	return &authService{store: store, profile: profile}
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, msg)
}

func validEmail(email string) bool {
	return emailRe.MatchString(email)
}

func (a *authService) Register(ctx context.Context, req RegisterRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	switch {
	case req.Email == "" || req.Password == "" || req.Confirm == "":
		return validationError("please fill in all fields")
	case req.Password != req.Confirm:
		return validationError("passwords don't match")
	case len([]rune(req.Name)) < minNameLen:
		return validationError(fmt.Sprintf("name must be at least %d characters long", minNameLen))
	case !validEmail(req.Email):
		return validationError("please enter a valid email address")
	}

	if err := a.profile.Save(ctx, Profile{Name: req.Name, Email: req.Email}); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return validationError("please fill in all fields")
	}
	if !validEmail(email) {
		return validationError("please enter a valid email address")
	}

	user := state.UserDetails{Email: email}
	// The registered name is shown once the same email logs in.
	if p, err := a.profile.Get(ctx); err == nil && strings.EqualFold(p.Email, email) {
		user.Name = p.Name
	}

	a.store.Dispatch(state.Login{User: user})
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.store.Dispatch(state.Logout{})

	if err := a.profile.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (a *authService) Current() (state.UserDetails, bool) {
	s := a.store.State().Session
	if !s.IsLoggedIn || s.UserDetails == nil {
		return state.UserDetails{}, false
	}
	return *s.UserDetails, true
}
