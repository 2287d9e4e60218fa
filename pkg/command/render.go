package command

import "strings"

// Render formats occupancy flags as "[X]" for allocated and "[-]" for free units.
func Render(flags []bool) string {
	var sb strings.Builder
	sb.Grow(3 * len(flags))
	for _, f := range flags {
		if f {
			sb.WriteString("[X]")
		} else {
			sb.WriteString("[-]")
		}
	}
	return sb.String()
}

// Compress formats flags as "X" and "-" characters, one per unit.
func Compress(flags []bool) string {
	b := make([]byte, len(flags))
	for i, f := range flags {
		if f {
			b[i] = 'X'
		} else {
			b[i] = '-'
		}
	}
	return string(b)
}
