package notify

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"othereditor/internal/ports"
)

const symbol = "⚠ "

// Terminal writes notices to a terminal, one colored block per notice.
// The duration is ignored: a terminal line has no lifetime.
type Terminal struct {
	mu     sync.Mutex
	writer io.Writer
	color  *color.Color
}

// Ensure Terminal implements Notifier
var _ ports.Notifier = (*Terminal)(nil)

// NewTerminal creates a notifier writing to w, or stderr when w is nil
func NewTerminal(w io.Writer) *Terminal {
	if w == nil {
		w = os.Stderr
	}
	return &Terminal{
		writer: w,
		color:  color.New(color.FgYellow),
	}
}

// Notify writes message, indenting continuation lines under the symbol
func (t *Terminal) Notify(message string, _ time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = t.color.Fprintf(t.writer, "%s%s\n", symbol, indent(message))
}

func indent(message string) string {
	message = strings.TrimRight(message, "\n")
	pad := strings.Repeat(" ", len([]rune(symbol)))
	return strings.ReplaceAll(message, "\n", "\n"+pad)
}

// Notice is one collected message
type Notice struct {
	Message  string
	Duration time.Duration
	At       time.Time
}

// Collector keeps notices for hosts that render them themselves
type Collector struct {
	mu      sync.Mutex
	notices []Notice
	now     func() time.Time
}

// Ensure Collector implements Notifier
var _ ports.Notifier = (*Collector)(nil)

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{now: time.Now}
}

// Notify appends a notice
func (c *Collector) Notify(message string, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, Notice{Message: message, Duration: duration, At: c.now()})
}

// Drain returns the collected notices and forgets them
func (c *Collector) Drain() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.notices
	c.notices = nil
	return out
}

// Latest returns the most recent notice still within its duration
func (c *Collector) Latest() (Notice, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.notices) == 0 {
		return Notice{}, false
	}
	n := c.notices[len(c.notices)-1]
	if n.Duration > 0 && c.now().After(n.At.Add(n.Duration)) {
		return Notice{}, false
	}
	return n, true
}
