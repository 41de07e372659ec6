package boxcode

import "strings"

// FormatLine renders one instruction in canonical form.
// It panics if the instruction has no command.
func FormatLine(in Instruction) string {
	if in.Command == "" {
		panic("boxcode: FormatLine called with an empty command")
	}
	if len(in.Args) == 0 {
		return in.Command
	}
	return in.Command + " " + strings.Join(in.Args, argSeparator)
}

// Format renders instructions as canonical text, one per line, with no
// trailing newline. Comments and blank lines from the original source are
// not recoverable.
func Format(ins []Instruction) string {
	lines := make([]string, len(ins))
	for i, in := range ins {
		lines[i] = FormatLine(in)
	}
	return strings.Join(lines, "\n")
}
