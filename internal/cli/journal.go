package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/traveljournal/internal/common"
	"github.com/dmitrijs2005/traveljournal/internal/services"
	"github.com/dmitrijs2005/traveljournal/internal/state"
)

// The map view centres here when no entry has a location.
var defaultRegion = state.Location{Latitude: 37.7749, Longitude: -122.4194}

// parseLocation reads "lat,lon". An empty string means no location.
func parseLocation(s string) (*state.Location, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("%w: location must be \"latitude,longitude\"", common.ErrValidation)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad latitude %q", common.ErrValidation, latStr)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad longitude %q", common.ErrValidation, lonStr)
	}
	return &state.Location{Latitude: lat, Longitude: lon}, nil
}

func displayDate(date string) string {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return date
	}
	return t.Local().Format("2006-01-02 15:04")
}

func formatLocation(l state.Location) string {
	return fmt.Sprintf("%.6f, %.6f", l.Latitude, l.Longitude)
}

// Add asks for a new entry and adds it to the journal.
func (a *App) Add(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrNotLoggedIn
	}

	text, err := a.ask(ctx, "What happened today?")
	if err != nil {
		return err
	}
	note, err := a.askMultiline(ctx, "Detailed note (optional)")
	if err != nil {
		return err
	}
	photo, err := a.ask(ctx, "Photo URI (optional)")
	if err != nil {
		return err
	}
	locStr, err := a.ask(ctx, "Location as latitude,longitude (optional)")
	if err != nil {
		return err
	}
	loc, err := parseLocation(locStr)
	if err != nil {
		return err
	}

	e, err := a.journal.Add(ctx, services.NewEntry{
		Text:         text,
		DetailedNote: note,
		Photo:        photo,
		Location:     loc,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added entry %s\n", e.ID)
	return nil
}

// List prints one line per entry, oldest first.
func (a *App) List(ctx context.Context) error {
	entries := a.journal.List()
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No journal entries yet.")
		return nil
	}

	for _, e := range entries {
		var marks []string
		if e.Location != nil {
			marks = append(marks, "@"+formatLocation(*e.Location))
		}
		if e.Photo != "" {
			marks = append(marks, "[photo]")
		}
		if e.DetailedNote != "" {
			marks = append(marks, "[note]")
		}

		line := fmt.Sprintf("%s  %s  %s", e.ID, displayDate(e.Date), e.Text)
		if len(marks) > 0 {
			line += "  " + strings.Join(marks, " ")
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// Show prints every field of one entry.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.idArg(ctx, args, "Enter entry id to show")
	if err != nil {
		return err
	}
	e, err := a.journal.Get(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "ID:       %s\n", e.ID)
	fmt.Fprintf(a.out, "Date:     %s\n", displayDate(e.Date))
	fmt.Fprintf(a.out, "Text:     %s\n", e.Text)
	if e.DetailedNote != "" {
		fmt.Fprintf(a.out, "Note:     %s\n", strings.ReplaceAll(e.DetailedNote, "\n", "\n          "))
	}
	if e.Photo != "" {
		fmt.Fprintf(a.out, "Photo:    %s\n", e.Photo)
	}
	if e.Location != nil {
		fmt.Fprintf(a.out, "Location: %s\n", formatLocation(*e.Location))
	}
	return nil
}

// Delete removes one entry by id.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.idArg(ctx, args, "Enter entry id to delete")
	if err != nil {
		return err
	}
	if err := a.journal.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted entry %s\n", id)
	return nil
}

// Map lists the entries that carry coordinates.
func (a *App) Map(ctx context.Context) error {
	entries := a.journal.WithLocation()
	if len(entries) == 0 {
		fmt.Fprintf(a.out, "No entries with a location. Map centred on %s\n", formatLocation(defaultRegion))
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(a.out, "%s  %s  (%s)\n", formatLocation(*e.Location), e.Text, displayDate(e.Date))
	}
	return nil
}
