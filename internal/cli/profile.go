package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/traveljournal/internal/services"
)

// Profile prints the stored profile.
func (a *App) Profile(ctx context.Context) error {
	p, err := a.profile.Get(ctx)
	if err != nil {
		return err
	}

	image := p.Image
	if image == "" {
		image = "(none)"
	}
	fmt.Fprintf(a.out, "Name:  %s\n", p.Name)
	fmt.Fprintf(a.out, "Email: %s\n", p.Email)
	fmt.Fprintf(a.out, "Image: %s\n", image)
	fmt.Fprintf(a.out, "Bio:   %s\n", p.Bio)
	return nil
}

// SetProfile asks for new profile values. Blank answers keep the old value.
func (a *App) SetProfile(ctx context.Context) error {
	var (
		p   services.Profile
		err error
	)
	if p.Name, err = a.ask(ctx, "Name (blank to keep)"); err != nil {
		return err
	}
	if p.Email, err = a.ask(ctx, "Email (blank to keep)"); err != nil {
		return err
	}
	if p.Image, err = a.ask(ctx, "Profile image URI (blank to keep)"); err != nil {
		return err
	}

	if err := a.profile.Save(ctx, p); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}

// Status prints persistence and session state.
func (a *App) Status(ctx context.Context) error {
	session := "logged out"
	if u, ok := a.auth.Current(); ok {
		session = "logged in as " + u.Email
	}

	fmt.Fprintf(a.out, "Persistence: %s\n", a.lifecycle.Status())
	fmt.Fprintf(a.out, "Session:     %s\n", session)
	fmt.Fprintf(a.out, "Entries:     %d\n", len(a.journal.List()))
	return nil
}
