package teatest

import (
	"strconv"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tickMsg struct{}

// counterModel counts ticks from a channel and quits on "q".
type counterModel struct {
	ticks <-chan struct{}
	count int
}

func (m counterModel) wait() tea.Msg {
	<-m.ticks
	return tickMsg{}
}

func (m counterModel) Init() tea.Cmd { return m.wait }

func (m counterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.count++
		return m, m.wait
	case tea.KeyMsg:
		if msg.String() == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m counterModel) View() string { return strconv.Itoa(m.count) }

func TestDriver_ParksBlockingCmdsUntilAwait(t *testing.T) {
	ticks := make(chan struct{}, 3)
	d := New(t, counterModel{ticks: ticks})
	d.DrainInit()
	assert.Equal(t, "0", d.View())

	ticks <- struct{}{}
	ticks <- struct{}{}
	require.True(t, d.Await(time.Second, func(v string) bool { return v == "2" }))
}

func TestDriver_AwaitTimesOut(t *testing.T) {
	d := New(t, counterModel{ticks: make(chan struct{})})
	d.DrainInit()
	assert.False(t, d.Await(30*time.Millisecond, func(v string) bool { return v == "1" }))
}

func TestDriver_QuitStopsDelivery(t *testing.T) {
	ticks := make(chan struct{}, 1)
	d := New(t, counterModel{ticks: ticks})
	d.DrainInit()

	d.PressKey('q')
	assert.True(t, d.Quitting)

	ticks <- struct{}{}
	d.Await(20*time.Millisecond, func(string) bool { return false })
	assert.Equal(t, "0", d.View())
}

func TestDriver_BatchIsDrained(t *testing.T) {
	ticks := make(chan struct{}, 2)
	ticks <- struct{}{}
	ticks <- struct{}{}
	m := counterModel{ticks: ticks}

	d := New(t, m, WithCmdTimeout(50*time.Millisecond))
	d.Send(tea.BatchMsg{m.wait})
	assert.Equal(t, "2", d.View())
}
