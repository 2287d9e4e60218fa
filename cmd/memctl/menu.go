package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/cmd/memctl/logger"
	"github.com/joshuapare/memkit/mem/alloc"
	"github.com/joshuapare/memkit/pkg/command"
)

func init() {
	rootCmd.AddCommand(newMenuCmd())
}

func newMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Interactive numbered menu",
		Long: `The menu command runs the classic interactive loop:

  1. Allocate memory
  2. Deallocate memory
  3. Display memory status
  4. Exit

If --size is not given, the region size is read from the prompt first.
Addresses may be entered as printed (0x...) or as +N, an offset from the base.

Example:
  memctl menu
  memctl menu --size 32 --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			size := units
			if !cmd.Flags().Changed("size") {
				size = -1
			}
			return runMenu(cmd.InOrStdin(), cmd.OutOrStdout(), size, !noColor)
		},
	}
	return cmd
}

// menu reads answers line by line and writes prompts and results.
type menu struct {
	in    *bufio.Scanner
	out   io.Writer
	color bool
}

// errInputClosed ends the loop when stdin runs out.
var errInputClosed = errors.New("input closed")

// runMenu runs the interactive loop until the user exits or input ends.
// A negative size prompts for it first.
func runMenu(in io.Reader, out io.Writer, size int, color bool) error {
	m := &menu{in: bufio.NewScanner(in), out: out, color: color}

	if size < 0 {
		n, err := m.askInt("Enter the size of the memory block: ")
		if err != nil {
			return endOfInput(err)
		}
		size = n
	}

	s, err := newSession(size)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Allocator().Close(); err != nil {
			logger.Warn("error closing region", "error", err)
		}
	}()

	for {
		fmt.Fprintln(m.out, "Memory Manager Menu:")
		fmt.Fprintln(m.out, "1. Allocate memory")
		fmt.Fprintln(m.out, "2. Deallocate memory")
		fmt.Fprintln(m.out, "3. Display memory status")
		fmt.Fprintln(m.out, "4. Exit")

		choice, err := m.ask("Enter your choice: ")
		if err != nil {
			return endOfInput(err)
		}

		switch choice {
		case "1":
			err = m.allocate(s)
		case "2":
			err = m.deallocate(s)
		case "3":
			fmt.Fprintln(m.out, "Memory Block Status:")
			fmt.Fprintln(m.out, renderStatus(s.Allocator().Status(), m.color))
		case "4":
			fmt.Fprintln(m.out, "Exiting.")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
		if err != nil {
			return endOfInput(err)
		}
	}
}

// endOfInput treats running out of input as a normal exit.
func endOfInput(err error) error {
	if errors.Is(err, errInputClosed) {
		return nil
	}
	return err
}

func (m *menu) allocate(s *command.Session) error {
	size, err := m.askInt("Enter the size to allocate: ")
	if err != nil {
		return m.reportInput(err)
	}
	res, err := s.Run(command.Command{Kind: command.Alloc, Size: size})
	switch {
	case err == nil:
		fmt.Fprintf(m.out, "Memory allocated at address: %s\n", res.Address)
	case errors.Is(err, alloc.ErrOutOfMemory):
		fmt.Fprintln(m.out, "Memory allocation failed. No free block available.")
	default:
		fmt.Fprintf(m.out, "Memory allocation failed. %s\n", sentence(err))
	}
	return nil
}

func (m *menu) deallocate(s *command.Session) error {
	addr, err := m.ask("Enter the address to deallocate: ")
	if err != nil {
		return err
	}
	size, err := m.askInt("Enter the size to deallocate: ")
	if err != nil {
		return m.reportInput(err)
	}
	_, err = s.Run(command.Command{Kind: command.Free, Addr: addr, Size: size})
	switch {
	case err == nil:
		fmt.Fprintln(m.out, "Memory deallocated.")
	case errors.Is(err, alloc.ErrInvalidAddress), errors.Is(err, command.ErrUsage):
		fmt.Fprintln(m.out, "Invalid address. Please enter a valid address within the allocated memory range.")
	default:
		fmt.Fprintf(m.out, "Deallocation failed. %s\n", sentence(err))
	}
	return nil
}

// ask prints a prompt and returns the next trimmed input line.
func (m *menu) ask(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		fmt.Fprintln(m.out)
		return "", errInputClosed
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *menu) askInt(prompt string) (int, error) {
	line, err := m.ask(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", line)
	}
	return n, nil
}

// reportInput prints a bad-number error and keeps the loop going; a closed
// input is passed through.
func (m *menu) reportInput(err error) error {
	if errors.Is(err, errInputClosed) {
		return err
	}
	fmt.Fprintf(m.out, "Invalid input: %v\n", err)
	return nil
}

// sentence capitalizes an error message for the menu's prose output.
func sentence(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
