// Package stats summarises parsed box code.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/boxcode/boxutil/internal/boxcode"
)

// CommandCount pairs a command with how often it occurs.
type CommandCount struct {
	Command string
	Count   int
}

// Summary describes a list of instructions.
type Summary struct {
	Instructions   int
	Arguments      int
	EmptyArguments int
	NoArgs         int // instructions without any arguments
	Commands       []CommandCount
	Tokens         int // -1 when no tokenizer was available
}

// Summarize counts instructions, arguments and commands. Commands are
// sorted by descending count, then name. The canonical text is measured
// with tok when it is not nil.
func Summarize(ins []boxcode.Instruction, tok TokenCounter) Summary {
	s := Summary{Instructions: len(ins), Tokens: -1}

	counts := make(map[string]int)
	for _, in := range ins {
		counts[in.Command]++
		if len(in.Args) == 0 {
			s.NoArgs++
		}
		s.Arguments += len(in.Args)
		for _, a := range in.Args {
			if a == "" {
				s.EmptyArguments++
			}
		}
	}
	s.Commands = SortCounts(counts)

	if tok != nil {
		s.Tokens = tok.Count(boxcode.Format(ins))
	}
	return s
}

// SortCounts orders a command histogram by descending count, then name.
func SortCounts(counts map[string]int) []CommandCount {
	out := make([]CommandCount, 0, len(counts))
	for cmd, n := range counts {
		out = append(out, CommandCount{Command: cmd, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Command < out[j].Command
	})
	return out
}

// Render prints the summary as an aligned text report.
func (s Summary) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Instructions: %d\n", s.Instructions)
	fmt.Fprintf(&b, "Arguments:    %d (%d empty)\n", s.Arguments, s.EmptyArguments)
	fmt.Fprintf(&b, "No-arg lines: %d\n", s.NoArgs)
	if s.Tokens >= 0 {
		fmt.Fprintf(&b, "Tokens:       ~%d\n", s.Tokens)
	}
	if len(s.Commands) > 0 {
		b.WriteString("\nCommands:\n")
		width := 0
		for _, c := range s.Commands {
			if len(c.Command) > width {
				width = len(c.Command)
			}
		}
		for _, c := range s.Commands {
			fmt.Fprintf(&b, "  %-*s  %d\n", width, c.Command, c.Count)
		}
	}
	return b.String()
}
