package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/traveljournal/internal/common"
	"github.com/dmitrijs2005/traveljournal/internal/state"
)

// DateLayout matches the millisecond UTC timestamps stored by earlier
// versions, e.g. 2024-01-01T09:30:00.000Z. It is valid RFC 3339.
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

// NewEntry is the user input for a journal entry.
type NewEntry struct {
	Text         string
	DetailedNote string
	Photo        string
	Location     *state.Location
}

// JournalService adds, removes and reads journal entries.
//
// Contract:
//   - Add and Delete need a logged-in session (common.ErrNotLoggedIn).
//   - Add rejects blank text and out-of-range coordinates (common.ErrValidation).
//   - Delete and Get return common.ErrNotFound for unknown ids.
//   - List and WithLocation return entries in insertion order.
type JournalService interface {
	Add(ctx context.Context, e NewEntry) (state.JournalEntry, error)
	Delete(ctx context.Context, id string) error
	Get(id string) (state.JournalEntry, error)
	List() []state.JournalEntry
	WithLocation() []state.JournalEntry
}

// JournalOption configures a JournalService.
type JournalOption func(*journalService)

// WithClock sets the time source for entry dates.
func WithClock(now func() time.Time) JournalOption {
	return func(s *journalService) { s.now = now }
}

// WithIDGenerator sets the entry id source.
func WithIDGenerator(newID func() (string, error)) JournalOption {
	return func(s *journalService) { s.newID = newID }
}

type journalService struct {
	store Store
	now   func() time.Time
	newID func() (string, error)
}

func NewJournalService(store Store, opts ...JournalOption) JournalService {
	s := &journalService{
		store: store,
		now:   time.Now,
		newID: newEntryID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newEntryID returns a UUIDv7: time-ordered, with random bits and a
// per-process monotonic sequence.
func newEntryID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func validLocation(l *state.Location) bool {
	if l == nil {
		return true
	}
	if !l.Finite() {
		return false
	}
	return l.Latitude >= -90 && l.Latitude <= 90 && l.Longitude >= -180 && l.Longitude <= 180
}

func (s *journalService) loggedIn() bool {
	return s.store.State().Session.IsLoggedIn
}

func (s *journalService) Add(ctx context.Context, e NewEntry) (state.JournalEntry, error) {
	if !s.loggedIn() {
		return state.JournalEntry{}, common.ErrNotLoggedIn
	}

	text := strings.TrimSpace(e.Text)
	if text == "" {
		return state.JournalEntry{}, validationError("entry text is required")
	}
	if !validLocation(e.Location) {
		return state.JournalEntry{}, validationError("location is out of range")
	}

	id, err := s.newID()
	if err != nil {
		return state.JournalEntry{}, fmt.Errorf("generate entry id: %w", err)
	}

	entry := state.JournalEntry{
		ID:           id,
		Text:         text,
		DetailedNote: strings.TrimSpace(e.DetailedNote),
		Photo:        strings.TrimSpace(e.Photo),
		Date:         s.now().UTC().Format(DateLayout),
	}
	if e.Location != nil {
		loc := *e.Location
		entry.Location = &loc
	}

	s.store.Dispatch(state.AddEntry{Entry: entry})
	return entry, nil
}

func (s *journalService) Delete(ctx context.Context, id string) error {
	if !s.loggedIn() {
		return common.ErrNotLoggedIn
	}
	if _, ok := s.store.State().Journal.Find(id); !ok {
		return fmt.Errorf("entry %s: %w", id, common.ErrNotFound)
	}
	s.store.Dispatch(state.DeleteEntry{ID: id})
	return nil
}

func (s *journalService) Get(id string) (state.JournalEntry, error) {
	e, ok := s.store.State().Journal.Find(id)
	if !ok {
		return state.JournalEntry{}, fmt.Errorf("entry %s: %w", id, common.ErrNotFound)
	}
	return e, nil
}

func (s *journalService) List() []state.JournalEntry {
	return slices.Clone(s.store.State().Journal.Entries)
}

func (s *journalService) WithLocation() []state.JournalEntry {
	var out []state.JournalEntry
	for _, e := range s.store.State().Journal.Entries {
		if e.Location != nil {
			out = append(out, e)
		}
	}
	return out
}
