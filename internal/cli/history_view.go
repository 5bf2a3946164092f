package cli

import (
	"strings"
	"time"

	"github.com/alexanderramin/levelup/internal/cli/formatter"
	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type historySnapshotMsg struct {
	entries []domain.ActivityLogEntry
}

type historyFeedClosedMsg struct{}

type historyKeyMap struct {
	Quit key.Binding
}

func defaultHistoryKeyMap() historyKeyMap {
	return historyKeyMap{
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// historyModel renders the live activity log. Each snapshot from the feed
// replaces the previous one wholesale.
type historyModel struct {
	updates <-chan []domain.ActivityLogEntry
	entries []domain.ActivityLogEntry
	loaded  bool
	closed  bool
	spinner spinner.Model
	keys    historyKeyMap
	now     func() time.Time
}

func newHistoryModel(updates <-chan []domain.ActivityLogEntry, now func() time.Time) historyModel {
	return historyModel{
		updates: updates,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(formatter.StylePurple)),
		keys:    defaultHistoryKeyMap(),
		now:     now,
	}
}

func waitForSnapshot(updates <-chan []domain.ActivityLogEntry) tea.Cmd {
	return func() tea.Msg {
		entries, ok := <-updates
		if !ok {
			return historyFeedClosedMsg{}
		}
		return historySnapshotMsg{entries: entries}
	}
}

func (m historyModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForSnapshot(m.updates))
}

func (m historyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil

	case historySnapshotMsg:
		m.entries = msg.entries
		m.loaded = true
		return m, waitForSnapshot(m.updates)

	case historyFeedClosedMsg:
		m.closed = true
		return m, tea.Quit

	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m historyModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Activity log") + "\n")
	if !m.loaded {
		b.WriteString(m.spinner.View() + " " + formatter.Dim("Loading...") + "\n")
	} else {
		b.WriteString(formatter.FormatHistory(m.entries, m.now()))
	}
	b.WriteString("\n" + formatter.Dim(m.keys.Quit.Help().Key+" "+m.keys.Quit.Help().Desc) + "\n")
	return b.String()
}
