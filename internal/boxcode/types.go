// Package boxcode parses and formats box code, a line-oriented text format
// where each line is a command optionally followed by pipe-separated arguments:
//
//	box drinking_age|21
//	ask age?
//	# comments and blank lines are ignored
//	say foo|bar|baz
package boxcode

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrEmptyCommand is returned by Validate for a record without a command.
	ErrEmptyCommand = errors.New("boxcode: empty command")
	// ErrBadCommand is returned for a command that would not survive a
	// format and parse cycle.
	ErrBadCommand = errors.New("boxcode: invalid command")
	// ErrBadArgument is returned for an argument holding a pipe or line
	// break, or with surrounding whitespace, and for a lone empty argument.
	ErrBadArgument = errors.New("boxcode: invalid argument")
)

// Instruction is a single parsed line.
type Instruction struct {
	Command string   `json:"cmd" yaml:"cmd"`
	Args    []string `json:"args" yaml:"args"`
}

// Validate reports the first instruction that Format would not render as
// text parsing back to the same instruction. Records produced by Parse
// always pass.
func Validate(ins []Instruction) error {
	for i, in := range ins {
		if err := validateCommand(in.Command, len(in.Args) > 0); err != nil {
			return fmt.Errorf("instruction %d: %w", i+1, err)
		}
		if len(in.Args) == 1 && in.Args[0] == "" {
			return fmt.Errorf("instruction %d: %w: single empty argument", i+1, ErrBadArgument)
		}
		for j, a := range in.Args {
			if err := validateArg(a); err != nil {
				return fmt.Errorf("instruction %d, argument %d: %w", i+1, j+1, err)
			}
		}
	}
	return nil
}

// validateCommand allows trailing whitespace (a tab, say) only when
// arguments follow, since a line is trimmed before it is split.
func validateCommand(cmd string, hasArgs bool) error {
	trimmed := strings.TrimLeftFunc(cmd, unicode.IsSpace)
	if !hasArgs {
		trimmed = strings.TrimRightFunc(trimmed, unicode.IsSpace)
	}
	switch {
	case strings.TrimSpace(cmd) == "":
		return ErrEmptyCommand
	case trimmed != cmd:
		return fmt.Errorf("%w %q: surrounding whitespace", ErrBadCommand, cmd)
	case strings.ContainsAny(cmd, " \n\r"):
		return fmt.Errorf("%w %q: contains a space or line break", ErrBadCommand, cmd)
	case strings.HasPrefix(cmd, commentPrefix):
		return fmt.Errorf("%w %q: starts a comment", ErrBadCommand, cmd)
	}
	return nil
}

func validateArg(a string) error {
	switch {
	case strings.ContainsAny(a, argSeparator+"\n\r"):
		return fmt.Errorf("%w %q: contains a pipe or line break", ErrBadArgument, a)
	case strings.TrimSpace(a) != a:
		return fmt.Errorf("%w %q: surrounding whitespace", ErrBadArgument, a)
	}
	return nil
}
