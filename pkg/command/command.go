// Package command parses and executes textual allocator commands.
//
// It is the dispatcher between front ends (the memctl menu, scripted runs and
// the TUI) and package alloc. Nothing here reads input or prints; callers get a
// Result back and decide how to present it.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownCommand indicates a verb that is not one of the known commands.
	ErrUnknownCommand = errors.New("command: unknown command")

	// ErrUsage indicates missing or malformed command arguments.
	ErrUsage = errors.New("command: bad arguments")
)

// Kind identifies a command verb.
type Kind int

const (
	Alloc Kind = iota + 1
	Free
	Compact
	Status
	Stats
)

var kindNames = map[Kind]string{
	Alloc:   "alloc",
	Free:    "free",
	Compact: "compact",
	Status:  "status",
	Stats:   "stats",
}

// aliases maps accepted verbs to kinds.
var aliases = map[string]Kind{
	"alloc":      Alloc,
	"allocate":   Alloc,
	"a":          Alloc,
	"free":       Free,
	"dealloc":    Free,
	"deallocate": Free,
	"f":          Free,
	"compact":    Compact,
	"defrag":     Compact,
	"c":          Compact,
	"status":     Status,
	"display":    Status,
	"s":          Status,
	"stats":      Stats,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText lets Kind appear by name in JSON output.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText accepts any verb Parse accepts.
func (k *Kind) UnmarshalText(b []byte) error {
	kind, ok := aliases[strings.ToLower(string(b))]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, b)
	}
	*k = kind
	return nil
}

// Command is one parsed instruction.
type Command struct {
	Kind Kind   `json:"kind"`
	Size int    `json:"size,omitempty"`
	Addr string `json:"addr,omitempty"` // unresolved address spec, see Session.ResolveAddr
}

func (c Command) String() string {
	switch c.Kind {
	case Alloc:
		return fmt.Sprintf("alloc %d", c.Size)
	case Free:
		return fmt.Sprintf("free %s %d", c.Addr, c.Size)
	default:
		return c.Kind.String()
	}
}

// Usage lists the accepted command forms.
const Usage = `alloc SIZE          allocate SIZE units
free ADDR SIZE      free SIZE units at ADDR (0x.. absolute, +N offset from base)
compact             compact the region
status              show occupancy
stats               show counters and fragmentation`

// Parse parses a single command line such as "alloc 4" or "free +0 4".
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty command", ErrUsage)
	}
	kind, ok := aliases[strings.ToLower(fields[0])]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
	args := fields[1:]

	switch kind {
	case Alloc:
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: usage: alloc SIZE", ErrUsage)
		}
		size, err := parseSize(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: Alloc, Size: size}, nil

	case Free:
		if len(args) != 2 {
			return Command{}, fmt.Errorf("%w: usage: free ADDR SIZE", ErrUsage)
		}
		size, err := parseSize(args[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: Free, Addr: args[0], Size: size}, nil

	default:
		if len(args) != 0 {
			return Command{}, fmt.Errorf("%w: %s takes no arguments", ErrUsage, kind)
		}
		return Command{Kind: kind}, nil
	}
}

// Split breaks a script into command lines. Each argument may hold several
// commands separated by ';'. Blank entries are dropped.
func Split(args ...string) []string {
	var out []string
	for _, arg := range args {
		for _, part := range strings.Split(arg, ";") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// parseSize accepts any integer; range checks belong to the allocator.
func parseSize(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: size %q is not an integer", ErrUsage, s)
	}
	return n, nil
}
