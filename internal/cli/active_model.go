package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/feed"
	"github.com/alexanderramin/tally/internal/observability"
	"github.com/alexanderramin/tally/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type feedMsg feed.Update

type feedClosedMsg struct{}

type clockMsg time.Time

type activeKeys struct {
	Quit key.Binding
}

func (k activeKeys) ShortHelp() []key.Binding  { return []key.Binding{k.Quit} }
func (k activeKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// activeModel follows the active-user feed. Elapsed clocks advance once a
// second from the local clock between feed updates.
type activeModel struct {
	updates <-chan feed.Update
	keys    activeKeys
	help    help.Model

	users  []domain.ActiveUser
	last   *feed.Change
	err    error
	now    time.Time
	closed bool
}

func newActiveModel(updates <-chan feed.Update) *activeModel {
	return &activeModel{
		updates: updates,
		keys: activeKeys{
			Quit: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
		},
		help: help.New(),
		now:  time.Now(),
	}
}

func waitForUpdate(updates <-chan feed.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return feedClosedMsg{}
		}
		return feedMsg(u)
	}
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func (m *activeModel) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), clockTick())
}

func (m *activeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case feedMsg:
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			m.err = nil
			m.users = msg.Active
			observability.SetActiveUsers(len(m.users))
		}
		if msg.Change != nil {
			m.last = msg.Change
		}
		return m, waitForUpdate(m.updates)

	case feedClosedMsg:
		m.closed = true
		return m, tea.Quit

	case clockMsg:
		m.now = time.Time(msg)
		return m, clockTick()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *activeModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.FormatActive(service.ActiveResponseAt(m.users, m.now)) + "\n")
	if m.last != nil {
		b.WriteString(formatter.Dim(fmt.Sprintf("last change: %s %s at %s",
			m.last.UserName, m.last.Kind, formatter.ClockTime(m.last.At.Local()))) + "\n")
	}
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("Feed error: "+m.err.Error()) + "\n")
	}
	b.WriteString(m.help.View(m.keys) + "\n")
	return b.String()
}
