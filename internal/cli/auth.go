package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/traveljournal/internal/services"
)

// Register asks for the registration form and saves it to the profile.
func (a *App) Register(ctx context.Context) error {
	var (
		req services.RegisterRequest
		err error
	)
	if req.Name, err = a.ask(ctx, "Enter name"); err != nil {
		return err
	}
	if req.Email, err = a.ask(ctx, "Enter email"); err != nil {
		return err
	}
	if req.Password, err = a.askPassword(ctx, "Enter password"); err != nil {
		return err
	}
	if req.Confirm, err = a.askPassword(ctx, "Confirm password"); err != nil {
		return err
	}

	if err := a.auth.Register(ctx, req); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered. You can now log in.")
	return nil
}

// Login asks for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := a.ask(ctx, "Enter email")
	if err != nil {
		return err
	}
	password, err := a.askPassword(ctx, "Enter password")
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, email, password); err != nil {
		return err
	}

	u, _ := a.auth.Current()
	name := u.Name
	if name == "" {
		name = u.Email
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", name)
	a.log.Info(ctx, "user logged in", "email", u.Email)
	return nil
}

// Logout ends the session and clears the stored profile.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
