package stats

import (
	"strings"
	"testing"

	"github.com/boxcode/boxutil/internal/boxcode"
)

func TestSummarize(t *testing.T) {
	ins := boxcode.Parse("say a|b\nsay |\nhalt\nask q?\nsay x")
	s := Summarize(ins, nil)

	if s.Instructions != 5 {
		t.Errorf("instructions: got %d, want 5", s.Instructions)
	}
	if s.Arguments != 6 {
		t.Errorf("arguments: got %d, want 6", s.Arguments)
	}
	if s.EmptyArguments != 2 {
		t.Errorf("empty arguments: got %d, want 2", s.EmptyArguments)
	}
	if s.NoArgs != 1 {
		t.Errorf("no-arg lines: got %d, want 1", s.NoArgs)
	}
	if s.Tokens != -1 {
		t.Errorf("tokens without tokenizer: got %d, want -1", s.Tokens)
	}

	want := []CommandCount{{"say", 3}, {"ask", 1}, {"halt", 1}}
	if len(s.Commands) != len(want) {
		t.Fatalf("commands: got %v, want %v", s.Commands, want)
	}
	for i := range want {
		if s.Commands[i] != want[i] {
			t.Errorf("command %d: got %v, want %v", i, s.Commands[i], want[i])
		}
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil)
	if s.Instructions != 0 || len(s.Commands) != 0 {
		t.Errorf("expected empty summary, got %+v", s)
	}
	if strings.Contains(s.Render(), "Commands:") {
		t.Error("empty summary should not list commands")
	}
}

func TestSummary_Render(t *testing.T) {
	s := Summarize(boxcode.Parse("say a\nhalt"), nil)
	s.Tokens = 4
	out := s.Render()
	for _, want := range []string{"Instructions: 2", "Arguments:    1 (0 empty)", "Tokens:       ~4", "say", "halt"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q in:\n%s", want, out)
		}
	}
}

// runeCounter counts one token per rune.
type runeCounter struct{ seen []string }

func (c *runeCounter) Count(text string) int {
	c.seen = append(c.seen, text)
	return len([]rune(text))
}

func TestSummarize_CountsCanonicalText(t *testing.T) {
	tok := &runeCounter{}
	s := Summarize(boxcode.Parse("  say a | b\n# note\nhalt"), tok)

	want := "say a|b\nhalt"
	if len(tok.seen) != 1 || tok.seen[0] != want {
		t.Fatalf("counted %q, want [%q]", tok.seen, want)
	}
	if s.Tokens != len(want) {
		t.Errorf("tokens: got %d, want %d", s.Tokens, len(want))
	}
}

func TestTokenizer_Count(t *testing.T) {
	tok, err := NewTokenizer("")
	if err != nil {
		t.Skipf("tokenizer unavailable: %v", err)
	}
	if tok.Encoding() != DefaultEncoding {
		t.Errorf("encoding: got %q", tok.Encoding())
	}
	if n := tok.Count("say hello|world"); n <= 0 {
		t.Errorf("expected positive token count, got %d", n)
	}
	if n := tok.Count(""); n != 0 {
		t.Errorf("expected 0 tokens for empty string, got %d", n)
	}
}
