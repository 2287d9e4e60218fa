package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/mem/alloc"
	"github.com/joshuapare/memkit/pkg/command"
)

// resetFlags restores the global flags to their defaults.
func resetFlags() {
	verbose = false
	quiet = false
	jsonOut = false
	noColor = true
	units = defaultUnits
	strict = false
	keepBytes = false
	keepGoing = false
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	return buf.String(), fnErr
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// TestHelper drives a TUI model without a terminal.
type TestHelper struct {
	model Model
}

// NewTestHelper creates a test helper over a fresh region of size units.
func NewTestHelper(t *testing.T, size int) *TestHelper {
	t.Helper()
	fa, err := alloc.NewFirstFit(size, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fa.Close() })
	return &TestHelper{model: NewModel(command.NewSession(fa), false)}
}

// SendKey simulates a key press and returns the command it produced.
func (h *TestHelper) SendKey(keyType tea.KeyType) tea.Cmd {
	updated, cmd := h.model.Update(tea.KeyMsg{Type: keyType})
	h.model = updated.(Model)
	return cmd
}

// SendKeyRune simulates a character key press
func (h *TestHelper) SendKeyRune(r rune) *TestHelper {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// Type enters text one key at a time, sending spaces as KeySpace.
func (h *TestHelper) Type(s string) *TestHelper {
	for _, r := range s {
		if r == ' ' {
			h.SendKey(tea.KeySpace)
			continue
		}
		h.SendKeyRune(r)
	}
	return h
}

// Submit types a command line and presses enter.
func (h *TestHelper) Submit(line string) *TestHelper {
	h.Type(line)
	h.SendKey(tea.KeyEnter)
	return h
}

// SendWindowSize simulates a window resize
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	updated, _ := h.model.Update(tea.WindowSizeMsg{Width: width, Height: height})
	h.model = updated.(Model)
	return h
}

// GetModel returns the current model
func (h *TestHelper) GetModel() Model {
	return h.model
}

// GetView returns the rendered view
func (h *TestHelper) GetView() string {
	return h.model.View()
}
