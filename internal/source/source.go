// Package source reads box code files and writes rendered output, classifying
// every failure into a Kind the CLI maps to an exit code.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// DefaultExtensions are the file extensions accepted as box code.
var DefaultExtensions = []string{".bx", ".box"}

// Kind classifies a host-boundary failure.
type Kind int

const (
	KindBadExtension Kind = iota + 1
	KindNotFound
	KindPermission
	KindEncoding
	KindUnreadable
	KindWrite
)

func (k Kind) String() string {
	switch k {
	case KindBadExtension:
		return "bad extension"
	case KindNotFound:
		return "not found"
	case KindPermission:
		return "permission denied"
	case KindEncoding:
		return "invalid encoding"
	case KindUnreadable:
		return "unreadable"
	case KindWrite:
		return "write failed"
	default:
		return "unknown"
	}
}

// Exit codes returned by the CLI.
const (
	ExitOK     = 0
	ExitFailed = 1
	ExitInput  = 2
	ExitOutput = 3
)

// Error is a classified I/O failure on a specific path.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindBadExtension:
		return fmt.Sprintf("the file %q does not have a recognised extension: %v", e.Path, e.Err)
	case KindEncoding:
		return fmt.Sprintf("the file %q is not valid UTF-8 text", e.Path)
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch KindOf(err) {
	case KindBadExtension, KindNotFound, KindPermission, KindEncoding, KindUnreadable:
		return ExitInput
	case KindWrite:
		return ExitOutput
	default:
		return ExitFailed
	}
}

// HasExtension reports whether path ends in one of exts. The comparison is
// case-sensitive, and a dotfile such as ".box" has no extension.
func HasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	if ext == filepath.Base(path) {
		return false
	}
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// CheckExtension returns a KindBadExtension error if path is not a box file.
func CheckExtension(path string, exts []string) error {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	if HasExtension(path, exts) {
		return nil
	}
	ext := filepath.Ext(path)
	if ext == "" {
		ext = "(none)"
	}
	return &Error{
		Kind: KindBadExtension,
		Path: path,
		Err:  fmt.Errorf("got %s, want one of %v", ext, exts),
	}
}

// Read validates the extension of path and returns its contents as text.
func Read(path string, exts []string) (string, error) {
	if err := CheckExtension(path, exts); err != nil {
		return "", err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", classifyRead(path, err)
	}
	if !utf8.Valid(b) {
		return "", &Error{Kind: KindEncoding, Path: path}
	}
	return string(b), nil
}

func classifyRead(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return &Error{Kind: KindNotFound, Path: path, Err: err}
	case errors.Is(err, os.ErrPermission):
		return &Error{Kind: KindPermission, Path: path, Err: err}
	default:
		return &Error{Kind: KindUnreadable, Path: path, Err: err}
	}
}

// Write writes text to path, or to stdout when path is empty. A trailing
// newline is appended when text does not already end in one, unless raw is
// set.
func Write(path, text string, stdout io.Writer, raw bool) error {
	if !raw && text != "" && text[len(text)-1] != '\n' {
		text += "\n"
	}

	if path == "" {
		if _, err := io.WriteString(stdout, text); err != nil {
			return &Error{Kind: KindWrite, Path: "<stdout>", Err: err}
		}
		return nil
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return &Error{Kind: KindWrite, Path: path, Err: err}
	}
	return nil
}
