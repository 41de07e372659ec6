package export

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MarkdownExporter renders instructions as a markdown table.
type MarkdownExporter struct{}

func (e *MarkdownExporter) Export(doc Document) (string, error) {
	var b strings.Builder
	if doc.Path != "" {
		fmt.Fprintf(&b, "# %s\n\n", filepath.Base(doc.Path))
	}

	if len(doc.Instructions) == 0 {
		fmt.Fprintf(&b, "_%s_\n", EmptyListing)
		return b.String(), nil
	}

	b.WriteString("| # | Command | Arguments |\n")
	b.WriteString("|---|---------|-----------|\n")
	for i, in := range doc.Instructions {
		cells := make([]string, len(in.Args))
		for j, a := range in.Args {
			cells[j] = codeSpan(a)
		}
		fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, codeSpan(in.Command), strings.Join(cells, " "))
	}
	return b.String(), nil
}

// codeSpan wraps s in a fence one backtick longer than the longest run
// inside it. Values touching a backtick get padding spaces, which markdown
// strips. An empty value renders as _(empty)_ since `` is not a code span.
func codeSpan(s string) string {
	if s == "" {
		return "_(empty)_"
	}
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", longest+1)
	body := escapeCell(s)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		body = " " + body + " "
	}
	return fence + body + fence
}

// escapeCell keeps pipes inside values from splitting table columns.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
