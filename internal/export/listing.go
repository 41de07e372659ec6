package export

import (
	"fmt"
	"strings"
)

// EmptyListing is rendered in place of an empty instruction list.
const EmptyListing = "(no instructions)"

// ListingExporter renders a 1-indexed human-readable listing with each
// argument indented and sub-indexed beneath its command.
type ListingExporter struct {
	Color bool
}

func (e *ListingExporter) Export(doc Document) (string, error) {
	st := plainStyles
	if e.Color {
		st = colorStyles
	}

	if len(doc.Instructions) == 0 {
		return st.muted(EmptyListing) + "\n", nil
	}

	var b strings.Builder
	for i, in := range doc.Instructions {
		fmt.Fprintf(&b, "%s %s\n", st.index(fmt.Sprintf("%d.", i+1)), st.command(in.Command))
		for j, a := range in.Args {
			fmt.Fprintf(&b, "   %s %s\n", st.index(fmt.Sprintf("%d)", j+1)), st.argument(a))
		}
	}
	return b.String(), nil
}
