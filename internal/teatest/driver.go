// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and returned Cmds are drained in order. A Cmd
// that blocks longer than the command timeout (a spinner tick, a channel
// read waiting on a feed) is parked rather than dropped; Await keeps
// feeding parked results into the model as they arrive.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds recursive command draining.
const MaxDrainDepth = 100

const defaultCmdTimeout = 10 * time.Millisecond

// Driver is a synchronous test harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.QuitMsg is produced.
	Quitting bool

	cmdTimeout time.Duration
	parked     []chan tea.Msg
}

type Option func(*Driver)

// WithCmdTimeout changes how long a Cmd may block before it is parked.
func WithCmdTimeout(d time.Duration) Option {
	return func(dr *Driver) { dr.cmdTimeout = d }
}

// WithSize sends an initial WindowSizeMsg.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New creates a Driver. Call DrainInit to run the model's Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, cmdTimeout: defaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send dispatches msg through Update and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.deliver(msg, 0)
}

func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEsc() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyEsc})
}

func (d *Driver) PressCtrlC() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
}

func (d *Driver) View() string {
	return d.Model.View()
}

// Await feeds parked Cmd results into the model until cond holds for the
// current view or timeout elapses. It reports whether cond was met.
func (d *Driver) Await(timeout time.Duration, cond func(view string) bool) bool {
	d.T.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if cond(d.View()) {
			return true
		}
		if d.Quitting || time.Now().After(deadline) {
			return cond(d.View())
		}
		if !d.pollParked() {
			time.Sleep(time.Millisecond)
		}
	}
}

// pollParked delivers every parked result that has arrived.
func (d *Driver) pollParked() bool {
	progressed := false
	remaining := d.parked[:0]
	var ready []tea.Msg
	for _, ch := range d.parked {
		select {
		case msg := <-ch:
			ready = append(ready, msg)
			progressed = true
		default:
			remaining = append(remaining, ch)
		}
	}
	d.parked = remaining
	for _, msg := range ready {
		if msg != nil && !d.Quitting {
			d.deliver(msg, 0)
		}
	}
	return progressed
}

func (d *Driver) deliver(msg tea.Msg, depth int) {
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, cmd := range batch {
			d.drain(cmd, depth+1)
		}
		return
	}
	if _, ok := msg.(tea.QuitMsg); ok {
		d.Quitting = true
	}
	var next tea.Cmd
	d.Model, next = d.Model.Update(msg)
	if !d.Quitting {
		d.drain(next, depth+1)
	}
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest.Driver: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if msg != nil {
			d.deliver(msg, depth)
		}
	case <-time.After(d.cmdTimeout):
		d.parked = append(d.parked, ch)
	}
}
