package export

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/boxcode/boxutil/internal/boxcode"
	"gopkg.in/yaml.v3"
)

const sampleSource = "box drinking_age|21\nask age?\n# a comment\n\nsay foo|bar|baz"

func sampleDocument() Document {
	return NewDocument("examples/drinking.box", sampleSource)
}

func TestGet_ValidFormats(t *testing.T) {
	for _, name := range []string{"raw", "box", "json", "yaml", "listing", "markdown"} {
		exp, ok := Get(name)
		if !ok {
			t.Errorf("Get(%q) returned false", name)
		}
		if exp == nil {
			t.Errorf("Get(%q) returned nil exporter", name)
		}
	}
}

func TestGet_InvalidFormat(t *testing.T) {
	if _, ok := Get("invalid"); ok {
		t.Error("expected Get('invalid') to return false")
	}
}

func TestValidFormats_Sorted(t *testing.T) {
	formats := ValidFormats()
	if len(formats) != 6 {
		t.Fatalf("expected 6 formats, got %d", len(formats))
	}
	for i := 1; i < len(formats); i++ {
		if formats[i-1] > formats[i] {
			t.Errorf("formats not sorted: %v", formats)
		}
	}
}

func TestRawExporter(t *testing.T) {
	exp, _ := Get("raw")
	got, err := exp.Export(sampleDocument())
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if got != sampleSource {
		t.Errorf("raw export should pass source through: got %q", got)
	}
}

func TestBoxExporter(t *testing.T) {
	exp, _ := Get("box")
	got, err := exp.Export(sampleDocument())
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	want := "box drinking_age|21\nask age?\nsay foo|bar|baz"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestJSONExporter_Example(t *testing.T) {
	exp, _ := Get("json")
	got, err := exp.Export(NewDocument("", "del test"))
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	want := `[{"cmd":"del","args":["test"]}]`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestJSONExporter_PreservesOrder(t *testing.T) {
	exp, _ := Get("json")
	got, err := exp.Export(sampleDocument())
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	want := `[{"cmd":"box","args":["drinking_age","21"]},{"cmd":"ask","args":["age?"]},{"cmd":"say","args":["foo","bar","baz"]}]`
	if got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}
}

func TestJSONExporter_NoArgsIsEmptyArray(t *testing.T) {
	exp, _ := Get("json")
	got, _ := exp.Export(NewDocument("", "halt\nsay a||<b>"))
	want := `[{"cmd":"halt","args":[]},{"cmd":"say","args":["a","","<b>"]}]`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestJSONExporter_Empty(t *testing.T) {
	exp, _ := Get("json")
	got, _ := exp.Export(NewDocument("", "# only a comment\n"))
	if got != "[]" {
		t.Errorf("got %q, want %q", got, "[]")
	}
}

func TestJSONExporter_Indent(t *testing.T) {
	exp := &JSONExporter{Indent: "  "}
	got, err := exp.Export(sampleDocument())
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if !strings.Contains(got, "\n  {") {
		t.Errorf("expected indented output, got %s", got)
	}
	var parsed []map[string]interface{}
	if err := json.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("indented export is invalid JSON: %v", err)
	}
	if len(parsed) != 3 {
		t.Errorf("expected 3 objects, got %d", len(parsed))
	}
	for _, obj := range parsed {
		if len(obj) != 2 {
			t.Errorf("expected exactly cmd and args, got %v", obj)
		}
	}
}

func TestDecodeJSON(t *testing.T) {
	exp, _ := Get("json")
	doc := sampleDocument()
	out, _ := exp.Export(doc)

	ins, err := DecodeJSON([]byte(out))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if boxcode.Format(ins) != boxcode.Format(doc.Instructions) {
		t.Errorf("decoded instructions differ: %#v", ins)
	}
}

func TestDecodeJSON_RejectsEmptyCommand(t *testing.T) {
	_, err := DecodeJSON([]byte(`[{"cmd":"ok","args":[]},{"args":["x"]}]`))
	if !errors.Is(err, boxcode.ErrEmptyCommand) {
		t.Errorf("expected ErrEmptyCommand, got %v", err)
	}
}

func TestDecodeJSON_RejectsUnformattableRecords(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{`[{"cmd":"   ","args":["a"]}]`, boxcode.ErrEmptyCommand},
		{`[{"cmd":"say\nrm","args":["x"]}]`, boxcode.ErrBadCommand},
		{`[{"cmd":"# hidden"}]`, boxcode.ErrBadCommand},
		{`[{"cmd":"say","args":["a|b"]}]`, boxcode.ErrBadArgument},
	}
	for _, tt := range tests {
		if _, err := DecodeJSON([]byte(tt.in)); !errors.Is(err, tt.want) {
			t.Errorf("DecodeJSON(%s) = %v, want %v", tt.in, err, tt.want)
		}
	}
}

func TestDecodeJSON_Invalid(t *testing.T) {
	if _, err := DecodeJSON([]byte(`{"cmd":"x"}`)); err == nil {
		t.Error("expected error for non-array JSON")
	}
}

func TestYAMLExporter(t *testing.T) {
	exp, _ := Get("yaml")
	got, err := exp.Export(sampleDocument())
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}

	var parsed []struct {
		Cmd  string   `yaml:"cmd"`
		Args []string `yaml:"args"`
	}
	if err := yaml.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("YAML export is invalid: %v", err)
	}
	if len(parsed) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(parsed))
	}
	if parsed[2].Cmd != "say" || strings.Join(parsed[2].Args, ",") != "foo,bar,baz" {
		t.Errorf("third entry: got %+v", parsed[2])
	}
}

func TestListingExporter(t *testing.T) {
	exp, _ := Get("listing")
	got, err := exp.Export(sampleDocument())
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	want := "1. box\n" +
		"   1) drinking_age\n" +
		"   2) 21\n" +
		"2. ask\n" +
		"   1) age?\n" +
		"3. say\n" +
		"   1) foo\n" +
		"   2) bar\n" +
		"   3) baz\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestListingExporter_Empty(t *testing.T) {
	exp, _ := Get("listing")
	got, err := exp.Export(NewDocument("", "\n\n# nothing\n"))
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if got != EmptyListing+"\n" {
		t.Errorf("got %q, want %q", got, EmptyListing+"\n")
	}
}

func TestListingExporter_ColorKeepsContent(t *testing.T) {
	exp := &ListingExporter{Color: true}
	got, err := exp.Export(sampleDocument())
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	for _, want := range []string{"box", "drinking_age", "ask", "age?", "baz"} {
		if !strings.Contains(got, want) {
			t.Errorf("colored listing missing %q", want)
		}
	}
}

func TestMarkdownExporter(t *testing.T) {
	exp, _ := Get("markdown")
	got, err := exp.Export(NewDocument("dir/test.box", "say a|b\nhalt"))
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	checks := []string{
		"# test.box",
		"| # | Command | Arguments |",
		"| 1 | `say` | `a` `b` |",
		"| 2 | `halt` |  |",
	}
	for _, check := range checks {
		if !strings.Contains(got, check) {
			t.Errorf("markdown export missing %q in:\n%s", check, got)
		}
	}
}

func TestMarkdownExporter_EscapesPipes(t *testing.T) {
	exp, _ := Get("markdown")
	got, _ := exp.Export(Document{Instructions: []boxcode.Instruction{{Command: "a|b", Args: []string{"c"}}}})
	if !strings.Contains(got, "`a\\|b`") {
		t.Errorf("pipe in command should be escaped: %s", got)
	}
}

func TestMarkdownExporter_CodeSpans(t *testing.T) {
	exp, _ := Get("markdown")
	got, _ := exp.Export(NewDocument("", "say |a`b|`x``"))
	for _, want := range []string{"_(empty)_", "``a`b``", "``` `x`` ```"} {
		if !strings.Contains(got, want) {
			t.Errorf("markdown export missing %q in:\n%s", want, got)
		}
	}
}

func TestMarkdownExporter_Empty(t *testing.T) {
	exp, _ := Get("markdown")
	got, _ := exp.Export(Document{})
	if !strings.Contains(got, EmptyListing) {
		t.Errorf("expected empty indicator, got %q", got)
	}
}
