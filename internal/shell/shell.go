// Package shell implements the command loop: it obtains one command line at
// a time from an interactive prompt, a piped stream, or a scripted queue,
// tokenizes it, and dispatches it to a registered action.
package shell

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/banksh/banksh/internal/auditlog"
	"github.com/banksh/banksh/internal/bank"
	"github.com/banksh/banksh/internal/dates"
	"github.com/banksh/banksh/internal/query"
	"github.com/banksh/banksh/internal/transfer"
)

// Status is a command exit status, also used as the process exit code.
type Status int

const (
	// StatusOK means the command succeeded.
	StatusOK Status = 0
	// StatusInvalid means the command was unrecognized or its input failed
	// validation.
	StatusInvalid Status = 1
	// StatusFailed means a registered action raised an error.
	StatusFailed Status = 2
)

// Action is one dispatchable command. Help text may contain the {name}
// placeholder, which is replaced with the registered name when displayed.
type Action struct {
	Name string
	Help string
	Run  func(sh *Shell, args []string) (Status, error)
}

var errText = color.New(color.FgRed)

// Shell sequences commands from a single input source and dispatches them.
// The provider handle is exclusively owned by the shell for the process
// lifetime; no state is cached across commands.
type Shell struct {
	Provider bank.Provider
	Resolve  query.Resolver
	Out      io.Writer
	Err      io.Writer
	Audit    *auditlog.Log

	source  Source
	actions map[string]*Action
	names   []string
	status  Status
}

// New creates a Shell over the given provider and input source with the
// standard actions registered.
func New(provider bank.Provider, source Source, out, errw io.Writer) *Shell {
	sh := &Shell{
		Provider: provider,
		Resolve:  dates.Resolve,
		Out:      out,
		Err:      errw,
		source:   source,
		actions:  make(map[string]*Action),
	}
	for _, a := range defaultActions() {
		sh.Register(a)
	}
	return sh
}

// Register adds an action. Panics on a duplicate name or on "help", which
// is built in and not overridable.
func (sh *Shell) Register(a *Action) {
	if a.Name == "help" {
		panic("help is a built-in command")
	}
	if _, ok := sh.actions[a.Name]; ok {
		panic("duplicate action: " + a.Name)
	}
	sh.actions[a.Name] = a
	sh.names = append(sh.names, a.Name)
}

// Run processes commands until the source is exhausted and returns the
// status of the last command executed.
func (sh *Shell) Run() Status {
	for {
		args, err := sh.source.Next()
		if err == io.EOF {
			return sh.status
		}
		if err != nil {
			sh.errorf("Error: %v\n", err)
			sh.status = StatusInvalid
			continue
		}
		if len(args) == 0 {
			continue
		}
		sh.status = sh.Dispatch(args)
	}
}

// Dispatch runs a single tokenized command and returns its status. Errors
// raised by actions are recovered here; they never end the loop.
func (sh *Shell) Dispatch(args []string) Status {
	name, rest := args[0], args[1:]
	if name == "help" {
		return sh.help(rest)
	}

	a, ok := sh.actions[name]
	if !ok {
		sh.errorf("Unrecognized command %q.\n", name)
		return StatusInvalid
	}

	st, err := a.Run(sh, rest)
	if err != nil {
		sh.errorf("Error: %v\n", err)
		return StatusFailed
	}
	return st
}

func (sh *Shell) help(args []string) Status {
	if len(args) == 0 || (len(args) == 1 && args[0] == "help") {
		names := append([]string{"help"}, sh.names...)
		sort.Strings(names)
		fmt.Fprintln(sh.Out, "Available commands:")
		for _, n := range names {
			fmt.Fprintf(sh.Out, "  %s\n", n)
		}
		return StatusOK
	}

	a, ok := sh.actions[args[0]]
	if !ok {
		sh.errorf("Unrecognized command %q.\n", args[0])
		return StatusInvalid
	}
	fmt.Fprintln(sh.Out, strings.ReplaceAll(strings.TrimSpace(a.Help), "{name}", a.Name))
	return StatusOK
}

type prompter interface {
	Ask(question string) (string, error)
}

// Confirm asks for an explicit y/Y reply when the input source is
// interactive. Scripted and piped sessions proceed without pausing.
func (sh *Shell) Confirm(question string) bool {
	p, ok := sh.source.(prompter)
	if !ok {
		return true
	}
	reply, err := p.Ask(question)
	if err != nil {
		return false
	}
	reply = strings.TrimSpace(reply)
	return strings.HasPrefix(reply, "y") || strings.HasPrefix(reply, "Y")
}

func (sh *Shell) errorf(format string, args ...any) {
	errText.Fprintf(sh.Err, format, args...)
}

// recordMove appends a submitted money movement to the audit log, when one
// is configured. Logging failures never fail the command.
func (sh *Shell) recordMove(action string, req *transfer.Request, amount decimal.Decimal) {
	if sh.Audit == nil {
		return
	}
	err := sh.Audit.Record(auditlog.Entry{
		Timestamp:   time.Now(),
		Action:      action,
		Source:      req.Source.Name(),
		Destination: req.Destination.Name(),
		Amount:      amount,
	})
	if err != nil {
		fmt.Fprintf(sh.Err, "warning: audit log: %v\n", err)
	}
}
