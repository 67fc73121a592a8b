package debug

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Span is one contiguous edit between two byte streams: at offset Off
// in the old stream, Del bytes were removed and Ins bytes inserted.
type Span struct {
	Off int
	Del []byte
	Ins []byte
}

func (s Span) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "@%#x", s.Off)
	if len(s.Del) > 0 {
		fmt.Fprintf(&b, " -%s", hexArg(s.Del))
	}
	if len(s.Ins) > 0 {
		fmt.Fprintf(&b, " +%s", hexArg(s.Ins))
	}
	return b.String()
}

// DiffBytes reports where two encoded blobs differ, as edit spans with
// offsets into a. Equal inputs yield no spans. Useful for checking
// which regions of a save an edit actually touched.
func DiffBytes(a, b []byte) []Span {
	// Bytes map to runes one-to-one so arbitrary binary survives the
	// diff; going through string(a) would fold invalid UTF-8 to U+FFFD.
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(bytesToRunes(a), bytesToRunes(b), false)

	var spans []Span
	off := 0
	cur := -1
	for _, df := range diffs {
		text := runesToBytes([]rune(df.Text))
		switch df.Type {
		case diffmatchpatch.DiffEqual:
			off += len(text)
			cur = -1
		case diffmatchpatch.DiffDelete:
			if cur < 0 {
				spans = append(spans, Span{Off: off})
				cur = len(spans) - 1
			}
			spans[cur].Del = append(spans[cur].Del, text...)
			off += len(text)
		case diffmatchpatch.DiffInsert:
			if cur < 0 {
				spans = append(spans, Span{Off: off})
				cur = len(spans) - 1
			}
			spans[cur].Ins = append(spans[cur].Ins, text...)
		}
	}
	return spans
}

func bytesToRunes(b []byte) []rune {
	rs := make([]rune, len(b))
	for i, c := range b {
		rs[i] = rune(c)
	}
	return rs
}

func runesToBytes(rs []rune) []byte {
	b := make([]byte, len(rs))
	for i, r := range rs {
		b[i] = byte(r)
	}
	return b
}
