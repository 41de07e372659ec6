package boxcode

import (
	"fmt"
	"io"
	"strings"
)

const (
	commentPrefix = "#"
	argSeparator  = "|"
)

// SplitLines splits text on \n, \r\n and bare \r line endings.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// Parse tokenizes box code text. Blank lines, comment lines and lines that
// yield no command are dropped; it never fails.
func Parse(text string) []Instruction {
	return ParseLines(SplitLines(text))
}

// ParseLines is Parse over text that has already been split into lines.
func ParseLines(lines []string) []Instruction {
	var out []Instruction
	for _, line := range lines {
		if in, ok := parseLine(line); ok {
			out = append(out, in)
		}
	}
	return out
}

// ParseReader reads r to EOF and parses the result.
func ParseReader(r io.Reader) ([]Instruction, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("boxcode: read: %w", err)
	}
	return Parse(string(b)), nil
}

func parseLine(line string) (Instruction, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, commentPrefix) {
		return Instruction{}, false
	}

	// Only the first space separates the command; arguments may contain spaces.
	command, rest, hasRest := strings.Cut(line, " ")
	command = strings.TrimLeft(command, " \t")
	if command == "" {
		return Instruction{}, false
	}

	in := Instruction{Command: command}
	if hasRest {
		parts := strings.Split(rest, argSeparator)
		in.Args = make([]string, len(parts))
		for i, p := range parts {
			in.Args[i] = strings.TrimSpace(p)
		}
	}
	return in, true
}
