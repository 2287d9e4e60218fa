package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/memkit/mem/alloc"
	"github.com/joshuapare/memkit/mem/region"
)

// Result is the outcome of one executed command.
type Result struct {
	Command Command      `json:"command"`
	Addr    region.Addr  `json:"-"`
	Address string       `json:"address,omitempty"` // Addr formatted as hex
	Offset  int          `json:"offset"`
	Moved   int          `json:"moved,omitempty"`
	Status  []bool       `json:"-"`
	Map     string       `json:"map,omitempty"` // Status as "X"/"-" characters
	Stats   *alloc.Stats `json:"stats,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// Session executes commands against one allocator.
type Session struct {
	a alloc.Allocator
}

// NewSession creates a session over a.
func NewSession(a alloc.Allocator) *Session {
	return &Session{a: a}
}

// Allocator returns the underlying allocator.
func (s *Session) Allocator() alloc.Allocator { return s.a }

// Exec parses and runs one command line.
func (s *Session) Exec(line string) (Result, error) {
	c, err := Parse(line)
	if err != nil {
		return Result{Error: err.Error()}, err
	}
	return s.Run(c)
}

// Run executes a parsed command. Failures are returned and also recorded in
// Result.Error; the allocator stays usable either way.
func (s *Session) Run(c Command) (Result, error) {
	res := Result{Command: c}
	var err error

	switch c.Kind {
	case Alloc:
		res.Addr, err = s.a.Alloc(c.Size)
		if err == nil {
			res.Offset = int(res.Addr - s.a.Base())
		}

	case Free:
		res.Addr, err = s.ResolveAddr(c.Addr)
		if err == nil {
			res.Offset = int(res.Addr - s.a.Base())
			err = s.a.Free(res.Addr, c.Size)
		}

	case Compact:
		res.Moved = s.a.Compact()

	case Status:
		res.Status = s.a.Status()
		res.Map = Compress(res.Status)

	case Stats:
		st := s.a.Stats()
		res.Stats = &st

	default:
		err = fmt.Errorf("%w: %v", ErrUnknownCommand, c.Kind)
	}

	if res.Addr != 0 {
		res.Address = res.Addr.String()
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res, err
}

// ResolveAddr turns an address spec into a handle:
//   - "0x7f12..." or a plain number: an absolute address
//   - "+N": N units past the region base
//
// The handle is not range-checked here; the allocator does that.
func (s *Session) ResolveAddr(spec string) (region.Addr, error) {
	if rest, ok := strings.CutPrefix(spec, "+"); ok {
		off, err := strconv.ParseUint(rest, 0, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: offset %q", ErrUsage, spec)
		}
		return s.a.Base() + region.Addr(off), nil
	}
	v, err := strconv.ParseUint(spec, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: address %q", ErrUsage, spec)
	}
	return region.Addr(v), nil
}
