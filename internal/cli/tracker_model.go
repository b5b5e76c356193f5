package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/timer"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// exitCloseTimeout bounds the single close attempt made on exit.
const exitCloseTimeout = 5 * time.Second

// tickMsg carries the engine's recomputed elapsed seconds.
type tickMsg int64

type stopDoneMsg struct {
	res timer.StopResult
	err error
}

type refreshDoneMsg struct {
	open bool
	err  error
}

type trackerKeys struct {
	Stop    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func (k trackerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Stop, k.Refresh, k.Quit}
}

func (k trackerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newTrackerKeys(stopOnExit bool) trackerKeys {
	quitHelp := "quit (keeps running)"
	if stopOnExit {
		quitHelp = "quit and stop"
	}
	return trackerKeys{
		Stop:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", quitHelp)),
	}
}

// trackerModel is the live clock shown by "watch" and "start --watch".
// The engine's ticker feeds ticks; the model never computes time itself.
type trackerModel struct {
	engine     *timer.Engine
	user       string
	ticks      chan int64
	keys       trackerKeys
	help       help.Model
	stopOnExit bool

	elapsed  int64
	busy     bool
	stopped  *timer.StopResult
	notice   string
	err      error
	quitting bool
}

func newTrackerModel(app *App, user string, stopOnExit bool) *trackerModel {
	ticks := make(chan int64, 1)
	m := &trackerModel{
		user:       user,
		ticks:      ticks,
		keys:       newTrackerKeys(stopOnExit),
		help:       help.New(),
		stopOnExit: stopOnExit,
	}
	m.engine = app.newEngine(func(sec int64) {
		// Keep only the latest value; the view only needs the newest.
		select {
		case <-ticks:
		default:
		}
		select {
		case ticks <- sec:
		default:
		}
	})
	return m
}

func waitForTick(ticks <-chan int64) tea.Cmd {
	return func() tea.Msg {
		return tickMsg(<-ticks)
	}
}

func (m *trackerModel) Init() tea.Cmd {
	m.elapsed = m.engine.ElapsedSeconds()
	return waitForTick(m.ticks)
}

func (m *trackerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.engine.State() == timer.Running {
			m.elapsed = int64(msg)
		}
		return m, waitForTick(m.ticks)

	case stopDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.stopped = &msg.res
		return m, tea.Quit

	case refreshDoneMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil && !msg.open {
			m.notice = "session was closed elsewhere"
			m.stopped = &timer.StopResult{AlreadyClosed: true}
			return m, tea.Quit
		}
		m.elapsed = m.engine.ElapsedSeconds()
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case m.busy:
			return m, nil
		case key.Matches(msg, m.keys.Stop):
			m.busy = true
			return m, m.stopCmd()
		case key.Matches(msg, m.keys.Refresh):
			m.busy = true
			return m, m.refreshCmd()
		}
	}
	return m, nil
}

func (m *trackerModel) stopCmd() tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		res, err := engine.Stop(context.Background())
		return stopDoneMsg{res: res, err: err}
	}
}

func (m *trackerModel) refreshCmd() tea.Cmd {
	engine, user := m.engine, m.user
	return func() tea.Msg {
		s, err := engine.Reconcile(context.Background(), user)
		return refreshDoneMsg{open: s != nil, err: err}
	}
}

func (m *trackerModel) View() string {
	var b strings.Builder

	s := m.engine.Session()
	running := m.engine.State() == timer.Running

	b.WriteString(formatter.StateIndicator(running) + "  ")
	b.WriteString(formatter.StyleHeader.Render(formatter.FormatClock(m.elapsed)) + "\n\n")

	if s != nil {
		b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("user   "), formatter.Bold(s.UserName)))
		b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("client "), formatter.StyleFg.Render(s.ClientName)))
		b.WriteString(fmt.Sprintf("  %s  %s %s\n", formatter.Dim("project"),
			formatter.StyleFg.Render(s.ProjectName), formatter.Dim("("+s.ProjectType+")")))
		b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("since  "),
			formatter.ClockTime(s.StartTime.Local())))
	}

	if m.stopped != nil && !m.stopped.AlreadyClosed {
		b.WriteString("\n" + formatter.FormatStopped(m.stopped))
	}
	if m.notice != "" {
		b.WriteString("\n" + formatter.StyleYellow.Render(m.notice) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	}
	if m.busy {
		b.WriteString("\n" + formatter.Dim("working…") + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

// finish releases the engine after the program exits: one bounded close
// attempt when the session should end with the clock, otherwise a detach
// that leaves the session open in the store.
func (m *trackerModel) finish() {
	if m.stopOnExit && m.engine.State() == timer.Running {
		ctx, cancel := context.WithTimeout(context.Background(), exitCloseTimeout)
		defer cancel()
		m.engine.CloseOnExit(ctx)
		return
	}
	m.engine.Detach()
}

func runTracker(m *trackerModel) error {
	p := tea.NewProgram(m)
	_, err := p.Run()
	m.finish()
	return err
}
