// Package export renders parsed box code into the output formats the CLI offers.
package export

import (
	"sort"

	"github.com/boxcode/boxutil/internal/boxcode"
)

// Document is passed to every Exporter.
type Document struct {
	Path         string
	Source       string
	Instructions []boxcode.Instruction
}

// NewDocument parses source and wraps it in a Document.
func NewDocument(path, source string) Document {
	return Document{
		Path:         path,
		Source:       source,
		Instructions: boxcode.Parse(source),
	}
}

// Exporter renders a Document to a string in a specific format.
type Exporter interface {
	Export(doc Document) (string, error)
}

// registry maps format names to Exporter implementations.
var registry = map[string]Exporter{
	"raw":      &RawExporter{},
	"box":      &BoxExporter{},
	"json":     &JSONExporter{},
	"yaml":     &YAMLExporter{},
	"listing":  &ListingExporter{},
	"markdown": &MarkdownExporter{},
}

// Get returns the Exporter registered under name, and whether it was found.
func Get(name string) (Exporter, bool) {
	e, ok := registry[name]
	return e, ok
}

// ValidFormats returns the supported format names in sorted order.
func ValidFormats() []string {
	formats := make([]string, 0, len(registry))
	for k := range registry {
		formats = append(formats, k)
	}
	sort.Strings(formats)
	return formats
}

// RawExporter passes the unparsed source through unchanged.
type RawExporter struct{}

func (e *RawExporter) Export(doc Document) (string, error) {
	return doc.Source, nil
}

// BoxExporter renders canonical box code.
type BoxExporter struct{}

func (e *BoxExporter) Export(doc Document) (string, error) {
	return boxcode.Format(doc.Instructions), nil
}

// args returns in.Args as a non-nil slice so encoders emit [] rather than null.
func args(in boxcode.Instruction) []string {
	if in.Args == nil {
		return []string{}
	}
	return in.Args
}
