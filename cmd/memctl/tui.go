package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/cmd/memctl/logger"
	"github.com/joshuapare/memkit/pkg/command"
)

// maxLogEntries bounds the command log shown under the status bar.
const maxLogEntries = 8

func init() {
	rootCmd.AddCommand(newTUICmd())
}

func newTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Full-screen interactive view",
		Long: `The tui command opens a terminal UI that shows the region's occupancy
as it changes. Type commands at the prompt and press enter.

Commands:
` + command.Usage + `

Example:
  memctl tui --size 48`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}
	return cmd
}

func runTUI() error {
	s, err := newSession(units)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Allocator().Close(); err != nil {
			logger.Warn("error closing region", "error", err)
		}
	}()

	p := tea.NewProgram(NewModel(s, !noColor), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("error running TUI: %w", err)
	}
	logger.Info("tui exited normally")
	return nil
}

// logEntry is one executed command and its outcome.
type logEntry struct {
	line string
	res  command.Result
	err  error
}

// Model is the TUI application model
type Model struct {
	session *command.Session
	keys    KeyMap
	color   bool

	width  int
	height int

	inputBuffer string
	log         []logEntry

	showHelp bool
}

// NewModel creates a TUI model over a session
func NewModel(s *command.Session, color bool) Model {
	return Model{
		session: s,
		keys:    DefaultKeyMap(),
		color:   color,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Enter):
		line := m.inputBuffer
		m.inputBuffer = ""
		if line == "" {
			return m, nil
		}
		m = m.exec(line)
		return m, nil

	case key.Matches(msg, m.keys.Backspace):
		if len(m.inputBuffer) > 0 {
			r := []rune(m.inputBuffer)
			m.inputBuffer = string(r[:len(r)-1])
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearInput):
		m.inputBuffer = ""
		return m, nil

	case key.Matches(msg, m.keys.Compact):
		m = m.exec("compact")
		return m, nil

	case key.Matches(msg, m.keys.ClearLog):
		m.log = nil
		return m, nil

	case key.Matches(msg, m.keys.Help) && m.inputBuffer == "":
		m.showHelp = !m.showHelp
		return m, nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		m.inputBuffer += string(msg.Runes)
	case tea.KeySpace:
		m.inputBuffer += " "
	}
	return m, nil
}

// exec runs a command line and appends it to the log.
func (m Model) exec(line string) Model {
	res, err := m.session.Exec(line)
	if err != nil {
		logger.Debug("tui command failed", "line", line, "error", err)
	}
	entries := append(m.log, logEntry{line: line, res: res, err: err})
	if len(entries) > maxLogEntries {
		entries = entries[len(entries)-maxLogEntries:]
	}
	// Copy so earlier Model values never share a backing array with this one.
	m.log = append([]logEntry(nil), entries...)
	return m
}
