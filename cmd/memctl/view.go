package main

import (
	"fmt"
	"strings"

	"github.com/joshuapare/memkit/pkg/command"
)

// View implements tea.Model
func (m Model) View() string {
	a := m.session.Allocator()
	st := a.Stats()

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("memctl  %d units at %s", a.Size(), a.Base())))
	b.WriteString("\n")

	b.WriteString(paneStyle.Render(m.wrapStatus(a.Status())))
	b.WriteString("\n")

	b.WriteString(statusStyle.Render(fmt.Sprintf(
		"in use %d  free %d  largest run %d  fragmentation %.0f%%  compactions %d",
		st.InUse, st.Free, st.LargestFreeRun, st.Fragmentation*100, st.Compactions)))
	b.WriteString("\n\n")

	for _, e := range m.log {
		b.WriteString(m.renderEntry(e))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(promptStyle.Render("> "))
	b.WriteString(m.inputBuffer)
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(command.Usage)
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render(m.helpLine()))
	return b.String()
}

// wrapStatus renders the status cells, wrapping to the window width.
func (m Model) wrapStatus(flags []bool) string {
	perLine := len(flags)
	if m.width > 0 {
		// Each cell is 3 columns; leave room for the pane border and padding.
		if n := (m.width - 4) / 3; n > 0 && n < perLine {
			perLine = n
		}
	}
	if perLine == 0 {
		return ""
	}
	var lines []string
	for start := 0; start < len(flags); start += perLine {
		end := min(start+perLine, len(flags))
		lines = append(lines, renderStatus(flags[start:end], m.color))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderEntry(e logEntry) string {
	if e.err != nil {
		return errorStyle.Render(fmt.Sprintf("%s: %v", e.line, e.err))
	}
	res := e.res
	switch res.Command.Kind {
	case command.Alloc:
		return fmt.Sprintf("%s -> %s (offset %d)", e.line, res.Address, res.Offset)
	case command.Free:
		return fmt.Sprintf("%s -> freed offset %d", e.line, res.Offset)
	case command.Compact:
		return fmt.Sprintf("%s -> moved %d unit(s)", e.line, res.Moved)
	case command.Status:
		return fmt.Sprintf("%s -> %s", e.line, res.Map)
	case command.Stats:
		st := res.Stats
		return fmt.Sprintf("%s -> %d/%d in use, %d alloc(s), %d free(s)",
			e.line, st.InUse, st.Size, st.AllocCalls, st.FreeCalls)
	}
	return e.line
}

func (m Model) helpLine() string {
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, kb := range m.keys.ShortHelp() {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
