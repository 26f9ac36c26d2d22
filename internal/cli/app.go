package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/traveljournal/internal/logging"
	"github.com/dmitrijs2005/traveljournal/internal/persist"
	"github.com/dmitrijs2005/traveljournal/internal/services"
)

// Indirections over the input helpers, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Lifecycle reports whether the persisted state has been restored.
// *persist.Persistor satisfies it.
type Lifecycle interface {
	Status() persist.Status
	Ready() <-chan struct{}
}

type App struct {
	lifecycle Lifecycle
	auth      services.AuthService
	journal   services.JournalService
	profile   services.ProfileService
	reader    *bufio.Reader
	out       io.Writer
	log       logging.Logger
}

func NewApp(
	lifecycle Lifecycle,
	auth services.AuthService,
	journal services.JournalService,
	profile services.ProfileService,
	in io.Reader,
	out io.Writer,
	log logging.Logger,
) *App {
	return &App{
		lifecycle: lifecycle,
		auth:      auth,
		journal:   journal,
		profile:   profile,
		reader:    bufio.NewReader(in),
		out:       out,
		log:       log,
	}
}

// Run waits for rehydration, then serves the REPL until the user exits or
// ctx is done.
func (a *App) Run(ctx context.Context) error {
	select {
	case <-a.lifecycle.Ready():
	case <-ctx.Done():
		return ctx.Err()
	}

	fmt.Fprintln(a.out, "Travel Journal (type 'help' for commands)")
	a.log.Debug(ctx, "repl started")

	return runREPL(ctx, a, a.prompt, a.nextLine, a.out)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.auth.Current()
	return ok
}

func (a *App) prompt() string {
	if u, ok := a.auth.Current(); ok {
		return fmt.Sprintf(" (%s)", u.Email)
	}
	return ""
}

func (a *App) nextLine(ctx context.Context) (string, error) {
	return interruptible(ctx, func() (string, error) { return readLine(a.reader) })
}

func (a *App) ask(ctx context.Context, prompt string) (string, error) {
	return interruptible(ctx, func() (string, error) { return getSimpleText(a.reader, prompt, a.out) })
}

func (a *App) askPassword(ctx context.Context, prompt string) (string, error) {
	return interruptible(ctx, func() (string, error) { return getPassword(a.reader, prompt, a.out) })
}

func (a *App) askMultiline(ctx context.Context, prompt string) (string, error) {
	return interruptible(ctx, func() (string, error) { return getMultiline(a.reader, prompt, a.out) })
}

// idArg returns the first argument, or asks for one.
func (a *App) idArg(ctx context.Context, args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return a.ask(ctx, prompt)
}
