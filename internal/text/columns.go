package text

import "strings"

// Columns splits s into k sub-sequences by index modulo k.
// Column i holds s[i], s[i+k], s[i+2k], ... A k below 1 yields nil.
func Columns(s string, k int) []string {
	if k < 1 {
		return nil
	}
	builders := make([]strings.Builder, k)
	for i := range builders {
		builders[i].Grow(len(s)/k + 1)
	}
	for i := 0; i < len(s); i++ {
		builders[i%k].WriteByte(s[i])
	}
	cols := make([]string, k)
	for i := range builders {
		cols[i] = builders[i].String()
	}
	return cols
}

// Interleave rebuilds the original sequence from columns produced by Columns.
func Interleave(cols []string) string {
	total := 0
	for _, c := range cols {
		total += len(c)
	}
	var b strings.Builder
	b.Grow(total)
	for row := 0; b.Len() < total; row++ {
		for _, c := range cols {
			if row < len(c) {
				b.WriteByte(c[row])
			}
		}
	}
	return b.String()
}
