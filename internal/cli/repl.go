package cli

import (
	"bufio"
	"context"
	"fmt"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests use a stub.
type execIface interface {
	Status(ctx context.Context) error
	New(ctx context.Context) error
	Show(ctx context.Context) error
	ShipType(ctx context.Context, args []string) error
	Section(ctx context.Context, args []string) error
	Period(ctx context.Context, args []string) error
	Finalize(ctx context.Context) error
	Discard(ctx context.Context, args []string) error
	Reset(ctx context.Context) error
	History(ctx context.Context) error
}

const helpText = `Available commands:
  status                      progress of the active draft
  new                         start a new Sea Service draft
  show                        print the draft's fields
  shiptype <code>             set the ship type (e.g. BULK_CARRIER)
  section <KEY> name=value..  update one section
  period name=value..         update signOnDate, signOnPort, signOffDate, signOffPort
  finalize                    lock the draft as a FINAL record
  discard [id]                delete the active draft (or the draft with id)
  reset                       clear every field of the active draft
  history                     list finalized records
  exit | quit                 leave the program`

// runREPL reads commands from scanner until EOF or exit/quit. The prompt
// (from promptFn) is printed only when prompt is true, so piped input
// produces clean output. Handlers print their own results and errors.
func runREPL(ctx context.Context, a execIface, promptFn func() string, scanner *bufio.Scanner, prompt bool) {
	for {
		if prompt {
			printlnFn(fmt.Sprintf("sb %s> ", promptFn()))
		}
		if !scanner.Scan() {
			return
		}
		parts, err := splitLine(scanner.Text())
		if err != nil {
			printlnFn("error:", err)
			continue
		}
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help", "?":
			printlnFn(helpText)
		case "status", "st":
			_ = a.Status(ctx)
		case "new":
			_ = a.New(ctx)
		case "show":
			_ = a.Show(ctx)
		case "shiptype":
			_ = a.ShipType(ctx, args)
		case "section":
			_ = a.Section(ctx, args)
		case "period":
			_ = a.Period(ctx, args)
		case "finalize":
			_ = a.Finalize(ctx)
		case "discard":
			_ = a.Discard(ctx, args)
		case "reset":
			_ = a.Reset(ctx)
		case "history", "h":
			_ = a.History(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
