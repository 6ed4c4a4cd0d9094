// Package gdb drives a live gdb process over its Machine Interface.
//
// A [Session] spawns gdb with --interpreter=mi3, attaches it to a running
// process or loads an executable (optionally with a core file), and then
// evaluates expressions on demand. Every printed value passes through
// [value.Parse]; text the literal grammar does not cover comes back as a
// Raw value rather than an error, so callers can still display it or probe
// it with sizeof arithmetic.
package gdb

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Maan2003/gdb-utils/pkg/errors"
	"github.com/Maan2003/gdb-utils/pkg/mi"
	"github.com/Maan2003/gdb-utils/pkg/value"
)

// Options configures a session. Exactly one of PID or Executable must be
// set; Core is only meaningful with Executable.
type Options struct {
	// GDBPath is the gdb binary to run. Empty means look up "gdb" in PATH.
	GDBPath string
	// PID attaches to a running process when non-zero.
	PID int
	// Executable loads a binary (with Core, post-mortem; without, for
	// static data inspection).
	Executable string
	// Core is an optional core dump to load alongside Executable.
	Core string
	// Logger receives debug-level protocol traffic. Nil disables logging.
	Logger *log.Logger
}

// Session is one live gdb process. Methods are safe for sequential use by
// a single goroutine; the embedded reader goroutine only shuttles records
// from the pipe into a channel.
type Session struct {
	id      string
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	recs    chan mi.Record
	readErr error
	token   int
	logger  *log.Logger
	mu      sync.Mutex // guards readErr

	closeOnce sync.Once
}

// Start launches gdb and waits for it to become ready.
func Start(ctx context.Context, opts Options) (*Session, error) {
	if opts.PID == 0 && opts.Executable == "" {
		return nil, errors.New(errors.ErrCodeSession, "need a process id or an executable")
	}

	path := opts.GDBPath
	if path == "" {
		p, err := exec.LookPath("gdb")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSession, err, "gdb not found")
		}
		path = p
	}

	args := launchArgs(opts)

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	id := uuid.NewString()
	s := &Session{
		id:     id,
		recs:   make(chan mi.Record, 64),
		logger: logger.With("session", shortID(id)),
	}
	s.logger.Debugf("Starting %s %v", path, args)

	s.cmd = exec.CommandContext(ctx, path, args...)
	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSession, err, "stdin pipe")
	}
	stdout, err := s.cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSession, err, "stdout pipe")
	}
	s.stdin = stdin

	if err := s.cmd.Start(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSession, err, "start gdb")
	}
	go s.readLoop(stdout)

	// Drain startup output up to the first prompt.
	if _, err := s.waitResult(ctx, -1); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// ID returns the session's correlation id.
func (s *Session) ID() string { return s.id }

// launchArgs builds the gdb command line for the chosen attach mode.
func launchArgs(opts Options) []string {
	args := []string{"--interpreter=mi3", "--nx", "--quiet"}
	if opts.PID != 0 {
		return append(args, "-p", strconv.Itoa(opts.PID))
	}
	args = append(args, opts.Executable)
	if opts.Core != "" {
		args = append(args, opts.Core)
	}
	return args
}

// readLoop parses MI lines off the pipe until it closes.
func (s *Session) readLoop(r io.Reader) {
	defer close(s.recs)
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scan.Scan() {
		rec, err := mi.Parse(scan.Text())
		if err != nil {
			s.logger.Debugf("Unparseable MI line: %v", err)
			continue
		}
		s.recs <- rec
	}
	if err := scan.Err(); err != nil {
		s.mu.Lock()
		s.readErr = err
		s.mu.Unlock()
	}
}

// send writes one MI command tagged with a fresh token.
func (s *Session) send(command string, args string) (int, error) {
	s.token++
	line := fmt.Sprintf("%d%s %s\n", s.token, command, args)
	if args == "" {
		line = fmt.Sprintf("%d%s\n", s.token, command)
	}
	s.logger.Debug("MI send", "cmd", command)
	if _, err := io.WriteString(s.stdin, line); err != nil {
		return 0, errors.Wrap(errors.ErrCodeSession, err, "write to gdb")
	}
	return s.token, nil
}

// waitResult consumes records until the result record carrying token
// arrives (or, for token -1, until the first prompt marker). Stream and
// notify records along the way are logged and discarded.
func (s *Session) waitResult(ctx context.Context, token int) (mi.Record, error) {
	for {
		select {
		case <-ctx.Done():
			return mi.Record{}, ctx.Err()
		case rec, ok := <-s.recs:
			if !ok {
				s.mu.Lock()
				err := s.readErr
				s.mu.Unlock()
				if err == nil {
					err = io.EOF
				}
				return mi.Record{}, errors.Wrap(errors.ErrCodeSession, err, "gdb exited")
			}
			switch rec.Kind {
			case mi.KindResult:
				if token < 0 || (rec.HasToken && rec.Token == token) {
					return rec, nil
				}
				s.logger.Debug("Discarding stale result", "token", rec.Token)
			case mi.KindDone:
				if token < 0 {
					return rec, nil
				}
			case mi.KindConsole, mi.KindLog:
				s.logger.Debug("MI stream", "text", rec.Message)
			case mi.KindStdout:
				s.logger.Debug("Inferior output", "text", rec.Message)
			}
		}
	}
}

// Eval evaluates expr in the current frame and parses the printed result.
func (s *Session) Eval(ctx context.Context, expr string) (value.Value, error) {
	token, err := s.send("-data-evaluate-expression", miQuote(expr))
	if err != nil {
		return value.Value{}, err
	}
	rec, err := s.waitResult(ctx, token)
	if err != nil {
		return value.Value{}, err
	}
	if rec.Class == "error" {
		msg := "evaluation failed"
		if v, ok := rec.Payload.Get("msg"); ok {
			msg = v.Str
		}
		return value.Value{}, errors.New(errors.ErrCodeEval, "%s: %s", expr, msg)
	}
	printed, ok := rec.Payload.Get("value")
	if !ok {
		return value.Value{}, errors.New(errors.ErrCodeProtocol, "result for %q has no value", expr)
	}
	v, err := value.Parse(printed.Str)
	if err != nil {
		// Not every printed form is a literal we model; keep it opaque.
		return value.R(printed.Str), nil
	}
	return v, nil
}

// Local is one variable of the current stack frame.
type Local struct {
	Name  string
	Value string // printed form; may be empty for aggregates
}

// Locals lists the variables of the current frame.
func (s *Session) Locals(ctx context.Context) ([]Local, error) {
	token, err := s.send("-stack-list-variables", "--simple-values")
	if err != nil {
		return nil, err
	}
	rec, err := s.waitResult(ctx, token)
	if err != nil {
		return nil, err
	}
	if rec.Class == "error" {
		return nil, errors.New(errors.ErrCodeEval, "cannot list locals")
	}
	vars, ok := rec.Payload.Get("variables")
	if !ok || vars.Kind != mi.ValueList {
		return nil, errors.New(errors.ErrCodeProtocol, "unexpected -stack-list-variables payload")
	}

	locals := make([]Local, 0, len(vars.List))
	for _, item := range vars.List {
		if item.Kind != mi.ValueDict {
			continue
		}
		var l Local
		if name, ok := item.Dict.Get("name"); ok {
			l.Name = name.Str
		}
		if val, ok := item.Dict.Get("value"); ok {
			l.Value = val.Str
		}
		if l.Name != "" {
			locals = append(locals, l)
		}
	}
	return locals, nil
}

// Close asks gdb to exit and reaps the process. Safe to call more than
// once.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		_, _ = io.WriteString(s.stdin, "-gdb-exit\n")
		_ = s.stdin.Close()

		// gdb can emit more records than the channel buffers on the way
		// out; keep consuming so the reader goroutine reaches EOF instead
		// of blocking on a full channel.
		go s.drainRecords()

		done := make(chan error, 1)
		go func() { done <- s.cmd.Wait() }()
		select {
		case err = <-done:
		case <-time.After(3 * time.Second):
			_ = s.cmd.Process.Kill()
			err = <-done
		}
	})
	return err
}

// drainRecords discards records until the reader goroutine closes the
// channel.
func (s *Session) drainRecords() {
	for range s.recs {
	}
}

// miQuote wraps an expression in the c-string form MI command arguments
// require.
func miQuote(expr string) string {
	out := make([]byte, 0, len(expr)+2)
	out = append(out, '"')
	for i := 0; i < len(expr); i++ {
		switch c := expr[i]; c {
		case '"', '\\':
			out = append(out, '\\', c)
		case '\n':
			out = append(out, '\\', 'n')
		default:
			out = append(out, c)
		}
	}
	return string(append(out, '"'))
}

// shortID trims a uuid to its first group for compact log prefixes.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
