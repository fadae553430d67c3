package mapping

import (
	"fmt"
	"strings"
)

// ResolveHeaders merges the two physical header rows of the Valo sheet
// into one effective header per column. Row B carries the more specific
// relabel and wins when non-blank; row A is the fallback. With twoRow
// disabled only row B counts. Columns blank in every usable row get the
// placeholder "col-<index>", which no master column ever matches.
func ResolveHeaders(rowA, rowB []string, twoRow bool) []string {
	n := len(rowB)
	if twoRow && len(rowA) > n {
		n = len(rowA)
	}
	out := make([]string, n)
	for i := range out {
		var a, b string
		if i < len(rowA) {
			a = strings.TrimSpace(rowA[i])
		}
		if i < len(rowB) {
			b = strings.TrimSpace(rowB[i])
		}
		switch {
		case b != "":
			out[i] = b
		case twoRow && a != "":
			out[i] = a
		default:
			out[i] = fmt.Sprintf("col-%d", i)
		}
	}
	return out
}
