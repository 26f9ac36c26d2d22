package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/traveljournal/internal/common"
	"github.com/dmitrijs2005/traveljournal/internal/kv/memkv"
	"github.com/dmitrijs2005/traveljournal/internal/state"
)

// ---- helpers ----

type fixture struct {
	store   *state.Store
	storage *memkv.Store
	profile ProfileService
	auth    AuthService
	journal JournalService
}

func newFixture(t *testing.T, opts ...JournalOption) *fixture {
	t.Helper()
	store := state.NewStore(state.DefaultState())
	storage := memkv.New()
	profile := NewProfileService(storage)
	return &fixture{
		store:   store,
		storage: storage,
		profile: profile,
		auth:    NewAuthService(store, profile),
		journal: NewJournalService(store, opts...),
	}
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	require.NoError(t, f.auth.Login(context.Background(), "a@b.com", "secret"))
}

var fixedNow = time.Date(2024, 1, 1, 9, 30, 0, 123_000_000, time.FixedZone("CET", 3600))

func fixedClock() time.Time { return fixedNow }

func sequentialIDs() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return string(rune('0' + n)), nil
	}
}

// removeFailingStorage fails every Remove.
type removeFailingStorage struct {
	*memkv.Store
}

func (removeFailingStorage) Remove(context.Context, ...string) error {
	return errors.New("read-only")
}

// ---- auth ----

func TestRegister_Validation(t *testing.T) {
	valid := RegisterRequest{Name: "Ann", Email: "a@b.com", Password: "pw", Confirm: "pw"}

	tests := []struct {
		name   string
		mutate func(r *RegisterRequest)
		msg    string
	}{
		{"missing email", func(r *RegisterRequest) { r.Email = " " }, "fill in all fields"},
		{"missing password", func(r *RegisterRequest) { r.Password = "" }, "fill in all fields"},
		{"missing confirm", func(r *RegisterRequest) { r.Confirm = "" }, "fill in all fields"},
		{"mismatch", func(r *RegisterRequest) { r.Confirm = "other" }, "don't match"},
		{"short name", func(r *RegisterRequest) { r.Name = "Al" }, "at least 3"},
		{"bad email", func(r *RegisterRequest) { r.Email = "a@b" }, "valid email"},
		{"email with space", func(r *RegisterRequest) { r.Email = "a b@c.de" }, "valid email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := valid
			tt.mutate(&req)

			err := f.auth.Register(context.Background(), req)
			require.ErrorIs(t, err, common.ErrValidation)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Equal(t, 0, f.storage.Sets())
		})
	}
}

func TestRegister_SavesProfileWithoutLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	err := f.auth.Register(ctx, RegisterRequest{Name: " Ann ", Email: "a@b.com", Password: "pw", Confirm: "pw"})
	require.NoError(t, err)

	p, err := f.profile.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ann", p.Name)
	assert.Equal(t, "a@b.com", p.Email)
	assert.False(t, f.store.State().Session.IsLoggedIn)
}

func TestRegister_StorageError(t *testing.T) {
	f := newFixture(t)
	f.storage.FailSet(errors.New("disk full"))

	err := f.auth.Register(context.Background(), RegisterRequest{Name: "Ann", Email: "a@b.com", Password: "pw", Confirm: "pw"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	got := f.store.State().Session
	assert.True(t, got.IsLoggedIn)
	assert.Equal(t, &state.UserDetails{Email: "a@b.com"}, got.UserDetails)

	u, ok := f.auth.Current()
	assert.True(t, ok)
	assert.Equal(t, "a@b.com", u.Email)
}

func TestLogin_UsesRegisteredName(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.auth.Register(ctx, RegisterRequest{Name: "Ann", Email: "A@B.com", Password: "pw", Confirm: "pw"}))

	require.NoError(t, f.auth.Login(ctx, "a@b.com", "pw"))

	u, _ := f.auth.Current()
	assert.Equal(t, "Ann", u.Name)
}

func TestLogin_Validation(t *testing.T) {
	f := newFixture(t)

	require.ErrorIs(t, f.auth.Login(context.Background(), "", "pw"), common.ErrValidation)
	require.ErrorIs(t, f.auth.Login(context.Background(), "a@b.com", ""), common.ErrValidation)
	require.ErrorIs(t, f.auth.Login(context.Background(), "not-an-email", "pw"), common.ErrValidation)

	assert.False(t, f.store.State().Session.IsLoggedIn)
}

func TestLogout_ResetsSessionAndClearsProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.profile.Save(ctx, Profile{Name: "Ann", Email: "a@b.com", Image: "file:///me.jpg"}))
	f.login(t)

	require.NoError(t, f.auth.Logout(ctx))

	assert.Equal(t, state.DefaultSession(), f.store.State().Session)
	_, ok := f.auth.Current()
	assert.False(t, ok)

	p, err := f.profile.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, Profile{Bio: DefaultBio}, p)
}

func TestLogout_ProfileErrorStillLogsOut(t *testing.T) {
	store := state.NewStore(state.DefaultState())
	auth := NewAuthService(store, NewProfileService(removeFailingStorage{memkv.New()}))
	require.NoError(t, auth.Login(context.Background(), "a@b.com", "pw"))

	err := auth.Logout(context.Background())
	require.Error(t, err)
	assert.False(t, store.State().Session.IsLoggedIn)
}

// ---- journal ----

func TestAdd(t *testing.T) {
	f := newFixture(t, WithClock(fixedClock), WithIDGenerator(sequentialIDs()))
	f.login(t)

	loc := &state.Location{Latitude: 37.7749, Longitude: -122.4194}
	e, err := f.journal.Add(context.Background(), NewEntry{
		Text:         "  Golden Gate  ",
		DetailedNote: " foggy ",
		Photo:        "file:///gg.jpg",
		Location:     loc,
	})
	require.NoError(t, err)

	assert.Equal(t, state.JournalEntry{
		ID:           "1",
		Text:         "Golden Gate",
		DetailedNote: "foggy",
		Photo:        "file:///gg.jpg",
		Location:     &state.Location{Latitude: 37.7749, Longitude: -122.4194},
		Date:         "2024-01-01T08:30:00.123Z",
	}, e)
	assert.Equal(t, []state.JournalEntry{e}, f.store.State().Journal.Entries)

	// The caller's location is not aliased into the store.
	loc.Latitude = 0
	assert.InDelta(t, 37.7749, f.store.State().Journal.Entries[0].Location.Latitude, 1e-9)
}

func TestAdd_DateIsRFC3339(t *testing.T) {
	f := newFixture(t, WithClock(fixedClock))
	f.login(t)

	e, err := f.journal.Add(context.Background(), NewEntry{Text: "x"})
	require.NoError(t, err)

	parsed, err := time.Parse(time.RFC3339, e.Date)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(fixedNow))
}

func TestAdd_GeneratesUniqueOrderedIDs(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	var prev string
	for range 50 {
		e, err := f.journal.Add(context.Background(), NewEntry{Text: "rapid"})
		require.NoError(t, err)
		require.Greater(t, e.ID, prev)
		prev = e.ID
	}
	assert.Len(t, f.journal.List(), 50)
}

func TestAdd_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("not logged in", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.journal.Add(ctx, NewEntry{Text: "x"})
		require.ErrorIs(t, err, common.ErrNotLoggedIn)
	})

	invalid := []struct {
		name  string
		entry NewEntry
	}{
		{"blank text", NewEntry{Text: "  \t"}},
		{"latitude too big", NewEntry{Text: "x", Location: &state.Location{Latitude: 91}}},
		{"longitude too small", NewEntry{Text: "x", Location: &state.Location{Longitude: -180.5}}},
		{"nan", NewEntry{Text: "x", Location: &state.Location{Latitude: math.NaN()}}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.login(t)
			_, err := f.journal.Add(ctx, tt.entry)
			require.ErrorIs(t, err, common.ErrValidation)
			assert.Empty(t, f.journal.List())
		})
	}

	t.Run("id generator fails", func(t *testing.T) {
		f := newFixture(t, WithIDGenerator(func() (string, error) { return "", errors.New("no entropy") }))
		f.login(t)
		_, err := f.journal.Add(ctx, NewEntry{Text: "x"})
		require.Error(t, err)
		assert.Empty(t, f.journal.List())
	})
}

func TestDeleteAndGet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, WithIDGenerator(sequentialIDs()))
	f.login(t)

	_, err := f.journal.Add(ctx, NewEntry{Text: "first"})
	require.NoError(t, err)
	_, err = f.journal.Add(ctx, NewEntry{Text: "second"})
	require.NoError(t, err)

	e, err := f.journal.Get("2")
	require.NoError(t, err)
	assert.Equal(t, "second", e.Text)

	require.NoError(t, f.journal.Delete(ctx, "1"))
	require.ErrorIs(t, f.journal.Delete(ctx, "1"), common.ErrNotFound)
	_, err = f.journal.Get("1")
	require.ErrorIs(t, err, common.ErrNotFound)

	list := f.journal.List()
	require.Len(t, list, 1)
	assert.Equal(t, "2", list[0].ID)

	require.NoError(t, f.auth.Logout(ctx))
	require.ErrorIs(t, f.journal.Delete(ctx, "2"), common.ErrNotLoggedIn)
}

func TestList_ReturnsCopy(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	_, err := f.journal.Add(context.Background(), NewEntry{Text: "original"})
	require.NoError(t, err)

	list := f.journal.List()
	list[0].Text = "mutated"

	assert.Equal(t, "original", f.store.State().Journal.Entries[0].Text)
}

func TestWithLocation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, WithIDGenerator(sequentialIDs()))
	f.login(t)

	_, err := f.journal.Add(ctx, NewEntry{Text: "no place"})
	require.NoError(t, err)
	_, err = f.journal.Add(ctx, NewEntry{Text: "paris", Location: &state.Location{Latitude: 48.85, Longitude: 2.35}})
	require.NoError(t, err)

	got := f.journal.WithLocation()
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

// ---- profile ----

func TestProfile_SaveKeepsUnsetFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.profile.Save(ctx, Profile{Name: "Ann", Email: "a@b.com"}))
	require.NoError(t, f.profile.Save(ctx, Profile{Image: "file:///me.jpg"}))

	p, err := f.profile.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, Profile{Name: "Ann", Email: "a@b.com", Image: "file:///me.jpg", Bio: DefaultBio}, p)

	raw, err := f.storage.Get(ctx, KeyProfileImage)
	require.NoError(t, err)
	assert.Equal(t, "file:///me.jpg", string(raw))
}

func TestProfile_GetError(t *testing.T) {
	f := newFixture(t)
	f.storage.FailGet(errors.New("io"))

	_, err := f.profile.Get(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load profile")
}
