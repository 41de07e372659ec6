package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/boxcode/boxutil/internal/export"
	"github.com/boxcode/boxutil/internal/source"
)

const sampleBox = "box drinking_age|21\nask age?\n# a comment\n\nsay foo|bar|baz\n"

func writeBox(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderFile_Formats(t *testing.T) {
	path := writeBox(t, "prog.box", sampleBox)

	tests := []struct {
		format string
		want   string
	}{
		{"raw", sampleBox},
		{"box", "box drinking_age|21\nask age?\nsay foo|bar|baz\n"},
		{"json", `[{"cmd":"box","args":["drinking_age","21"]},{"cmd":"ask","args":["age?"]},{"cmd":"say","args":["foo","bar","baz"]}]` + "\n"},
		{"JSON", `[{"cmd":"box","args":["drinking_age","21"]},{"cmd":"ask","args":["age?"]},{"cmd":"say","args":["foo","bar","baz"]}]` + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := renderFile(path, renderOptions{format: tt.format, color: "never"}, nil, &buf)
			if err != nil {
				t.Fatalf("renderFile: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestRenderFile_Listing(t *testing.T) {
	path := writeBox(t, "prog.bx", "say a|b\n")
	var buf bytes.Buffer
	if err := renderFile(path, renderOptions{format: "listing", color: "auto"}, nil, &buf); err != nil {
		t.Fatalf("renderFile: %v", err)
	}
	// A bytes.Buffer is never a terminal, so auto means plain text.
	if buf.String() != "1. say\n   1) a\n   2) b\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestRenderFile_ToFile(t *testing.T) {
	path := writeBox(t, "prog.box", sampleBox)
	out := filepath.Join(t.TempDir(), "out.json")

	var buf bytes.Buffer
	err := renderFile(path, renderOptions{format: "json", indent: 2, output: out}, nil, &buf)
	if err != nil {
		t.Fatalf("renderFile: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written to stdout, got %q", buf.String())
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(b), "[\n  {") {
		t.Errorf("expected indented JSON, got %q", b)
	}
}

func TestRenderFile_ExitCodes(t *testing.T) {
	good := writeBox(t, "prog.box", sampleBox)

	tests := []struct {
		name string
		path string
		opts renderOptions
		code int
	}{
		{"bad extension", writeBox(t, "prog.txt", sampleBox), renderOptions{format: "raw"}, source.ExitInput},
		{"missing file", filepath.Join(t.TempDir(), "none.box"), renderOptions{format: "raw"}, source.ExitInput},
		{"bad encoding", writeBox(t, "bin.bx", "\xff\xfe"), renderOptions{format: "raw"}, source.ExitInput},
		{"unwritable output", good, renderOptions{format: "box", output: filepath.Join(t.TempDir(), "no", "such", "dir.box")}, source.ExitOutput},
		{"unknown format", good, renderOptions{format: "xml"}, source.ExitFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := renderFile(tt.path, tt.opts, nil, &buf)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := source.ExitCode(err); got != tt.code {
				t.Errorf("exit code: got %d, want %d (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestExporterFor(t *testing.T) {
	exp, err := exporterFor(renderOptions{format: "json", indent: 4}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("exporterFor: %v", err)
	}
	if j, ok := exp.(*export.JSONExporter); !ok || j.Indent != "    " {
		t.Errorf("expected 4-space JSON exporter, got %#v", exp)
	}

	exp, err = exporterFor(renderOptions{format: "listing", color: "always"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("exporterFor: %v", err)
	}
	if l, ok := exp.(*export.ListingExporter); !ok || !l.Color {
		t.Errorf("expected colored listing exporter, got %#v", exp)
	}

	exp, _ = exporterFor(renderOptions{format: "listing", color: "always", output: "x.txt"}, &bytes.Buffer{})
	if l, ok := exp.(*export.ListingExporter); !ok || l.Color {
		t.Errorf("file output must not be colored, got %#v", exp)
	}

	if _, err := exporterFor(renderOptions{format: "listing", color: "sometimes"}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown color mode")
	}
}

func TestUseColor(t *testing.T) {
	if on, _ := useColor("never", os.Stdout); on {
		t.Error("never should disable color")
	}
	if on, _ := useColor("auto", &bytes.Buffer{}); on {
		t.Error("auto should disable color for non-terminals")
	}
	t.Setenv("NO_COLOR", "1")
	if on, _ := useColor("auto", os.Stdout); on {
		t.Error("NO_COLOR should disable color")
	}
}

func TestCanonicalText(t *testing.T) {
	tests := []struct{ in, want string }{
		{sampleBox, "box drinking_age|21\nask age?\nsay foo|bar|baz\n"},
		{"say a|b\n", "say a|b\n"},
		{"# only comments\n\n", ""},
		{"", ""},
		{"  say  a | b", "say a|b\n"},
	}
	for _, tt := range tests {
		if got := canonicalText(tt.in); got != tt.want {
			t.Errorf("canonicalText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
