package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddThenDeleteScenario(t *testing.T) {
	s := NewStore(DefaultState())
	beach := JournalEntry{ID: "1", Text: "Beach day", Date: "2024-01-01T00:00:00Z"}

	s.Dispatch(AddEntry{Entry: beach})
	assert.Equal(t, []JournalEntry{beach}, s.State().Journal.Entries)

	s.Dispatch(DeleteEntry{ID: "1"})
	assert.Empty(t, s.State().Journal.Entries)
}

func TestStore_LoginScenario(t *testing.T) {
	s := NewStore(DefaultState())

	s.Dispatch(Login{User: UserDetails{Email: "a@b.com"}})

	got := s.State().Session
	assert.True(t, got.IsLoggedIn)
	assert.Equal(t, &UserDetails{Email: "a@b.com"}, got.UserDetails)
}

func TestStore_PreviousSnapshotUnaffected(t *testing.T) {
	s := NewStore(DefaultState())
	s.Dispatch(AddEntry{Entry: JournalEntry{ID: "1", Text: "one"}})

	before := s.State()
	s.Dispatch(AddEntry{Entry: JournalEntry{ID: "2", Text: "two"}})
	s.Dispatch(DeleteEntry{ID: "1"})
	s.Dispatch(Login{User: UserDetails{Email: "a@b.com"}})

	require.Len(t, before.Journal.Entries, 1)
	assert.Equal(t, "1", before.Journal.Entries[0].ID)
	assert.False(t, before.Session.IsLoggedIn)
	assert.Nil(t, before.Session.UserDetails)
}

func TestStore_SubscribersNotifiedOnChangeOnly(t *testing.T) {
	s := NewStore(DefaultState())

	var got []RootState
	unsubscribe := s.Subscribe(func(rs RootState) { got = append(got, rs) })

	s.Dispatch(unknownAction{name: "IGNORED"})
	s.Dispatch(DeleteEntry{ID: "missing"})
	s.Dispatch(Logout{})
	require.Empty(t, got)

	s.Dispatch(AddEntry{Entry: JournalEntry{ID: "1", Text: "x"}})
	require.Len(t, got, 1)
	assert.Len(t, got[0].Journal.Entries, 1)

	unsubscribe()
	unsubscribe()
	s.Dispatch(AddEntry{Entry: JournalEntry{ID: "2", Text: "y"}})
	assert.Len(t, got, 1)
}

func TestStore_SubscribersRunInOrder(t *testing.T) {
	s := NewStore(DefaultState())

	var order []string
	s.Subscribe(func(RootState) { order = append(order, "first") })
	s.Subscribe(func(RootState) { order = append(order, "second") })

	s.Dispatch(Login{User: UserDetails{Email: "a@b.com"}})
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestStore_SubscriberMayDispatch(t *testing.T) {
	s := NewStore(DefaultState())

	s.Subscribe(func(rs RootState) {
		if len(rs.Journal.Entries) == 1 {
			s.Dispatch(AddEntry{Entry: JournalEntry{ID: "auto", Text: "follow-up"}})
		}
	})

	s.Dispatch(AddEntry{Entry: JournalEntry{ID: "1", Text: "x"}})
	assert.Len(t, s.State().Journal.Entries, 2)
}

func TestStore_WithReducer(t *testing.T) {
	var seen []string
	s := NewStore(DefaultState(), WithReducer(func(rs RootState, a Action) RootState {
		seen = append(seen, a.Type())
		return Reduce(rs, a)
	}))

	s.Dispatch(Login{User: UserDetails{Email: "a@b.com"}})
	s.Dispatch(Init{})

	assert.Equal(t, []string{TypeLogin, TypeInit}, seen)
	assert.True(t, s.State().Session.IsLoggedIn)
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	s := NewStore(DefaultState())

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				s.Dispatch(AddEntry{Entry: JournalEntry{Text: "x"}})
			}
		}()
	}
	wg.Wait()

	assert.Len(t, s.State().Journal.Entries, workers*perWorker)
}
