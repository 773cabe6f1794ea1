package manifest

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is how many unchanged lines surround each change in a preview.
const contextLines = 2

// Preview renders a line diff between two versions of a manifest, with '+'
// and '-' markers and a little surrounding context. It returns "" when the
// two are identical.
func Preview(name string, before, after []byte) string {
	if string(before) == string(after) {
		return ""
	}
	dmp := diffmatchpatch.New()
	chars1, chars2, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lines)

	type row struct {
		mark byte
		text string
	}
	var rows []row
	for _, d := range diffs {
		mark := byte(' ')
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			mark = '+'
		case diffmatchpatch.DiffDelete:
			mark = '-'
		}
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l == "" {
				continue
			}
			rows = append(rows, row{mark: mark, text: strings.TrimRight(l, "\r\n")})
		}
	}

	keep := make([]bool, len(rows))
	for i, r := range rows {
		if r.mark == ' ' {
			continue
		}
		for j := max(0, i-contextLines); j <= min(len(rows)-1, i+contextLines); j++ {
			keep[j] = true
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n+++ %s\n", name, name)
	skipped := false
	for i, r := range rows {
		if !keep[i] {
			skipped = true
			continue
		}
		if skipped {
			b.WriteString("@@\n")
			skipped = false
		}
		b.WriteByte(r.mark)
		b.WriteString(r.text)
		b.WriteByte('\n')
	}
	return b.String()
}
