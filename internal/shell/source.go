package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	shellwords "github.com/mattn/go-shellwords"
)

// Source yields one tokenized command at a time. Next returns io.EOF when
// input is exhausted; any other error reports a malformed line and leaves
// the source usable for the next command.
type Source interface {
	Next() ([]string, error)
}

// QueueSource consumes a fixed queue of pre-tokenized commands in order.
type QueueSource struct {
	commands [][]string
}

// NewQueueSource creates a QueueSource over pre-split commands.
func NewQueueSource(commands [][]string) *QueueSource {
	return &QueueSource{commands: commands}
}

func (s *QueueSource) Next() ([]string, error) {
	if len(s.commands) == 0 {
		return nil, io.EOF
	}
	cmd := s.commands[0]
	s.commands = s.commands[1:]
	return cmd, nil
}

// SplitScript splits a command string on unescaped semicolons outside
// quotes, then tokenizes each segment with shell quoting rules:
// double-quoted text undergoes escape decoding, single-quoted text is
// taken literally.
func SplitScript(script string) ([][]string, error) {
	var (
		segments []string
		segment  strings.Builder

		single, double, escaped bool
	)
	for _, r := range script {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && !single:
			escaped = true
		case r == '\'' && !double:
			single = !single
		case r == '"' && !single:
			double = !double
		case r == ';' && !single && !double:
			segments = append(segments, segment.String())
			segment.Reset()
			continue
		}
		segment.WriteRune(r)
	}
	if single || double {
		return nil, fmt.Errorf("unbalanced quote in %q", script)
	}
	if escaped {
		return nil, fmt.Errorf("trailing escape in %q", script)
	}
	segments = append(segments, segment.String())

	var commands [][]string
	for _, seg := range segments {
		args, err := shellwords.Parse(seg)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", seg, err)
		}
		commands = append(commands, args)
	}
	return commands, nil
}

// PipeSource reads commands line by line from a non-terminal stream.
type PipeSource struct {
	sc     *bufio.Scanner
	failed bool
}

// NewPipeSource creates a PipeSource over r.
func NewPipeSource(r io.Reader) *PipeSource {
	return &PipeSource{sc: bufio.NewScanner(r)}
}

func (s *PipeSource) Next() ([]string, error) {
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil && !s.failed {
			s.failed = true
			return nil, fmt.Errorf("reading input: %w", err)
		}
		return nil, io.EOF
	}
	return shellwords.Parse(s.sc.Text())
}

// lineReader is the part of readline.Instance the interactive source uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Stdout() io.Writer
	Close() error
}

// InteractiveSource reads commands from a terminal, one prompted line per
// command. An interrupt discards the pending line and redisplays the
// prompt; end of input ends the session.
type InteractiveSource struct {
	rl     lineReader
	prompt string
	failed bool
}

// NewInteractiveSource opens the terminal with the given prompt.
func NewInteractiveSource(prompt string) (*InteractiveSource, error) {
	rl, err := readline.New(prompt)
	if err != nil {
		return nil, fmt.Errorf("opening terminal: %w", err)
	}
	return &InteractiveSource{rl: rl, prompt: prompt}, nil
}

func (s *InteractiveSource) Next() ([]string, error) {
	if s.failed {
		return nil, io.EOF
	}
	for {
		line, err := s.rl.Readline()
		switch err {
		case nil:
			return shellwords.Parse(line)
		case readline.ErrInterrupt:
			fmt.Fprintln(s.rl.Stdout())
		case io.EOF:
			return nil, io.EOF
		default:
			s.failed = true
			return nil, fmt.Errorf("reading input: %w", err)
		}
	}
}

// Ask displays a one-off question in place of the prompt and returns the
// reply line.
func (s *InteractiveSource) Ask(question string) (string, error) {
	s.rl.SetPrompt(question)
	defer s.rl.SetPrompt(s.prompt)
	return s.rl.Readline()
}

// Close releases the terminal.
func (s *InteractiveSource) Close() error {
	return s.rl.Close()
}
