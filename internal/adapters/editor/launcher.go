package editor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"othereditor/internal/domain"
	"othereditor/internal/ports"
)

// DefaultWaitDelay bounds how long output pipes may stay open after the
// editor exits. GUI editors often fork a child that inherits them.
const DefaultWaitDelay = 2 * time.Second

// Launcher implements ports.ProcessLauncher with os/exec
type Launcher struct {
	logger    logrus.FieldLogger
	waitDelay time.Duration
}

// Ensure Launcher implements ProcessLauncher
var _ ports.ProcessLauncher = (*Launcher)(nil)

// Option configures the Launcher
type Option func(*Launcher)

// WithLogger sets the logger receiving child output
func WithLogger(logger logrus.FieldLogger) Option {
	return func(l *Launcher) {
		l.logger = logger
	}
}

// WithWaitDelay sets the output wait delay; zero waits indefinitely
func WithWaitDelay(d time.Duration) Option {
	return func(l *Launcher) {
		l.waitDelay = d
	}
}

// NewLauncher creates a new process launcher
func NewLauncher(opts ...Option) *Launcher {
	l := &Launcher{
		logger:    logrus.StandardLogger(),
		waitDelay: DefaultWaitDelay,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch spawns the invocation with its argument vector; no shell is involved
// unless the invocation names one. Stdin is the null device, stdout and
// stderr are forwarded to the log.
func (l *Launcher) Launch(ctx context.Context, inv domain.Invocation) <-chan domain.LaunchOutcome {
	out := make(chan domain.LaunchOutcome, 1)
	fail := func(err error) <-chan domain.LaunchOutcome {
		out <- domain.Failed(inv.Command, err)
		close(out)
		return out
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	if strings.TrimSpace(inv.Command) == "" {
		return fail(errors.New("empty command"))
	}
	if inv.Dir != "" {
		if info, err := os.Stat(inv.Dir); err != nil {
			return fail(fmt.Errorf("working directory: %w", err))
		} else if !info.IsDir() {
			return fail(fmt.Errorf("working directory %s is not a directory", inv.Dir))
		}
	}

	log := l.logger.WithField("command", inv.String())
	stdout := newLogWriter(log.WithField("stream", "stdout"), logrus.InfoLevel)
	stderr := newLogWriter(log.WithField("stream", "stderr"), logrus.WarnLevel)

	cmd := exec.Command(inv.Command, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = l.waitDelay

	if err := cmd.Start(); err != nil {
		return fail(err)
	}
	log.WithField("pid", cmd.Process.Pid).Debug("process started")

	go func() {
		defer close(out)
		err := cmd.Wait()
		stdout.Flush()
		stderr.Flush()
		out <- outcomeOf(inv.Command, cmd.ProcessState, err)
	}()

	return out
}

// outcomeOf classifies the result of Wait. Exiting, with any status, is a
// success; so is an exited editor whose forked child still holds the pipes.
func outcomeOf(command string, state *os.ProcessState, err error) domain.LaunchOutcome {
	var exitErr *exec.ExitError
	if err != nil && !errors.Is(err, exec.ErrWaitDelay) && !errors.As(err, &exitErr) {
		return domain.Failed(command, err)
	}
	if state == nil {
		return domain.Failed(command, errors.New("process state unavailable"))
	}

	signal := ""
	if ws, ok := state.Sys().(interface {
		Signaled() bool
		Signal() syscall.Signal
	}); ok && ws.Signaled() {
		signal = ws.Signal().String()
	}
	return domain.Succeeded(state.ExitCode(), signal)
}

// logWriter logs every complete line written to it
type logWriter struct {
	entry *logrus.Entry
	level logrus.Level

	mu  sync.Mutex
	buf bytes.Buffer
}

func newLogWriter(entry *logrus.Entry, level logrus.Level) *logWriter {
	return &logWriter{entry: entry, level: level}
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// incomplete line, keep it for the next write
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.log(strings.TrimRight(line, "\r\n"))
	}
	return len(p), nil
}

// Flush logs any trailing partial line
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.log(w.buf.String())
		w.buf.Reset()
	}
}

func (w *logWriter) log(line string) {
	if line == "" {
		return
	}
	w.entry.Log(w.level, line)
}
