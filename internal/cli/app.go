package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/seabook/internal/logging"
	"github.com/dmitrijs2005/seabook/internal/state"
	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type App struct {
	state  *state.Container
	in     io.Reader
	logger logging.Logger
}

func NewApp(s *state.Container, in io.Reader, logger logging.Logger) *App {
	return &App{state: s, in: in, logger: logger}
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	tty := interactive(a.in)
	if tty {
		printlnFn("Welcome to seabook (type 'help' for commands)")
	}

	scanner := bufio.NewScanner(a.in)
	runREPL(ctx, a, a.prompt, scanner, tty)
	return scanner.Err()
}

func interactive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && isTerminal(int(f.Fd()))
}

func (a *App) prompt() string {
	id, ok := a.state.ActiveDraftID()
	if !ok {
		return "(no draft)"
	}
	if len(id) > 8 {
		id = id[:8]
	}
	if a.state.CanFinalize() {
		return "(draft " + id + ", ready)"
	}
	return "(draft " + id + ")"
}
