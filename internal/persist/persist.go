package persist

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/traveljournal/internal/kv"
	"github.com/dmitrijs2005/traveljournal/internal/logging"
	"github.com/dmitrijs2005/traveljournal/internal/state"
)

const (
	// DefaultKey is the storage key of the blob when Config.Key is empty.
	DefaultKey = "persist:root"
	// DefaultRehydrateTimeout bounds the startup read.
	DefaultRehydrateTimeout = 5 * time.Second
	// DefaultWriteTimeout bounds a single storage write.
	DefaultWriteTimeout = 10 * time.Second
)

// ErrClosed is returned by Flush after Close.
var ErrClosed = errors.New("persistor is closed")

// Status is the rehydration state of a Persistor.
type Status int32

const (
	StatusRehydrating Status = iota
	StatusRehydrated
)

func (s Status) String() string {
	switch s {
	case StatusRehydrating:
		return "REHYDRATING"
	case StatusRehydrated:
		return "REHYDRATED"
	default:
		return fmt.Sprintf("Status(%d)", int32(s))
	}
}

// Config controls what is persisted and when.
type Config struct {
	// Key is the storage key of the blob. Empty means DefaultKey.
	Key string
	// Whitelist names the slices to persist. Empty means all of them.
	Whitelist []string
	// RehydrateTimeout bounds the startup read. Zero means
	// DefaultRehydrateTimeout.
	RehydrateTimeout time.Duration
	// Debounce delays a write so bursts of dispatches produce one write.
	Debounce time.Duration
	// WriteTimeout bounds a single storage write. Zero means
	// DefaultWriteTimeout.
	WriteTimeout time.Duration
	// Reducer is the application root reducer. Nil means state.Reduce.
	Reducer state.Reducer
}

func (c Config) withDefaults() (Config, error) {
	if c.Key == "" {
		c.Key = DefaultKey
	}
	if c.RehydrateTimeout <= 0 {
		c.RehydrateTimeout = DefaultRehydrateTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.Reducer == nil {
		c.Reducer = state.Reduce
	}

	all := []string{state.SliceSession, state.SliceJournal}
	if len(c.Whitelist) == 0 {
		c.Whitelist = all
		return c, nil
	}
	wl := make([]string, 0, len(c.Whitelist))
	for _, name := range c.Whitelist {
		if !slices.Contains(all, name) {
			return c, fmt.Errorf("unknown slice %q in whitelist", name)
		}
		if !slices.Contains(wl, name) {
			wl = append(wl, name)
		}
	}
	c.Whitelist = wl
	return c, nil
}

// Persistor owns a state.Store and mirrors it to a kv.Storage.
type Persistor struct {
	store   *state.Store
	storage kv.Storage
	cfg     Config
	log     logging.Logger

	status        atomic.Int32
	paused        atomic.Bool
	ready         chan struct{}
	rehydrateOnce sync.Once
	unsubscribe   func()

	mu       sync.Mutex
	pending  *state.RootState
	closed   bool
	restored state.RootState

	// writeMu serializes storage writes with Purge.
	writeMu sync.Mutex

	wake      chan struct{}
	flushReq  chan chan struct{}
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a Persistor around a fresh store holding state.DefaultState.
// The store starts in REHYDRATING; call Rehydrate before relying on it.
func New(storage kv.Storage, cfg Config, log logging.Logger) (*Persistor, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.NewNop()
	}

	p := &Persistor{
		storage:  storage,
		cfg:      cfg,
		log:      log.With("component", "persist", "key", cfg.Key),
		ready:    make(chan struct{}),
		wake:     make(chan struct{}, 1),
		flushReq: make(chan chan struct{}),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	p.store = state.NewStore(state.DefaultState(),
		state.WithReducer(p.reduce),
		state.WithLogger(log),
	)
	p.unsubscribe = p.store.Subscribe(p.onChange)

	go p.run()

	return p, nil
}

// Store returns the wrapped store.
func (p *Persistor) Store() *state.Store {
	return p.store
}

// Status reports whether rehydration has completed.
func (p *Persistor) Status() Status {
	return Status(p.status.Load())
}

// Ready is closed once rehydration has completed.
func (p *Persistor) Ready() <-chan struct{} {
	return p.ready
}

// reduce handles the two reserved actions and passes every other action to
// the application reducer unmodified.
func (p *Persistor) reduce(s state.RootState, a state.Action) state.RootState {
	switch act := a.(type) {
	case state.Init:
		return s
	case state.Rehydrate:
		next := s
		if act.Session != nil {
			next.Session = *act.Session
		}
		if act.Journal != nil {
			next.Journal = *act.Journal
		}
		p.mu.Lock()
		p.restored = next
		p.mu.Unlock()
		return next
	default:
		return p.cfg.Reducer(s, a)
	}
}

// Rehydrate restores the persisted blob into the store and marks it
// REHYDRATED. A missing, unreadable, late or undecodable blob leaves the
// defaults in place. Only the first call does any work.
func (p *Persistor) Rehydrate(ctx context.Context) {
	p.rehydrateOnce.Do(func() {
		p.store.Dispatch(state.Init{})

		act := p.load(ctx)
		p.store.Dispatch(act)

		p.status.Store(int32(StatusRehydrated))

		// Dispatches that landed between the Rehydrate action and the status
		// change were skipped by onChange.
		p.mu.Lock()
		restored := p.restored
		p.mu.Unlock()
		if state.Changed(restored, p.store.State()) && !p.paused.Load() {
			p.enqueue()
		}

		close(p.ready)
	})
}

func (p *Persistor) load(ctx context.Context) state.Rehydrate {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.RehydrateTimeout)
	defer cancel()

	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := p.storage.Get(ctx, p.cfg.Key)
		ch <- result{data, err}
	}()

	var res result
	select {
	case res = <-ch:
	case <-ctx.Done():
		res.err = ctx.Err()
	}

	if res.err != nil {
		p.log.Warn(ctx, "rehydrate read failed, starting from defaults", "err", res.err)
		return state.Rehydrate{Err: res.err}
	}
	if res.data == nil {
		p.log.Info(ctx, "no persisted state, starting from defaults")
		return state.Rehydrate{}
	}

	snap, err := Decode(res.data, p.cfg.Whitelist)
	if err != nil {
		p.log.Warn(ctx, "rehydrate decode failed, starting from defaults",
			"bytes", len(res.data), "version", snap.Version, "err", err)
		return state.Rehydrate{Err: err}
	}

	p.log.Info(ctx, "state rehydrated", "bytes", len(res.data), "version", snap.Version)
	return state.Rehydrate{Session: snap.Session, Journal: snap.Journal}
}

// onChange runs inside Dispatch. It records the latest snapshot rather than
// the one it was handed, since racing dispatches may notify out of order.
func (p *Persistor) onChange(state.RootState) {
	if p.Status() != StatusRehydrated || p.paused.Load() {
		return
	}
	p.enqueue()
}

func (p *Persistor) enqueue() {
	snap := p.store.State()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.pending = &snap
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Pause stops mirroring changes until Resume.
func (p *Persistor) Pause() {
	p.paused.Store(true)
}

// Resume re-enables mirroring and queues the current snapshot, so changes
// made while paused are not lost.
func (p *Persistor) Resume() {
	if !p.paused.Swap(false) {
		return
	}
	if p.Status() == StatusRehydrated {
		p.enqueue()
	}
}

// Flush blocks until every snapshot queued before the call is written.
func (p *Persistor) Flush(ctx context.Context) error {
	reply := make(chan struct{})
	select {
	case p.flushReq <- reply:
	case <-p.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Purge deletes the persisted blob and drops any pending write. The
// in-memory state is not touched.
func (p *Persistor) Purge(ctx context.Context) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.mu.Lock()
	p.pending = nil
	p.mu.Unlock()

	if err := p.storage.Remove(ctx, p.cfg.Key); err != nil {
		return fmt.Errorf("purge %s: %w", p.cfg.Key, err)
	}
	p.log.Info(ctx, "persisted state purged")
	return nil
}

// Close writes any pending snapshot and stops the writer. The storage is
// left open; it belongs to the caller.
func (p *Persistor) Close(ctx context.Context) error {
	p.closeOnce.Do(func() {
		p.unsubscribe()
		close(p.stop)
	})

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
