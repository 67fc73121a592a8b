package debug

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	offsetColor = color.New(color.FgCyan)
	asciiColor  = color.New(color.Faint)
)

// Hexdump writes a classic 16-bytes-per-line dump of data to w, with
// an offset column and an ASCII gutter. Offsets are colored when w is
// a terminal.
func Hexdump(w io.Writer, data []byte) {
	tty := isTTY(w)
	for off := 0; off < len(data); off += 16 {
		line := data[off:min(off+16, len(data))]
		var hexCol strings.Builder
		for i := 0; i < 16; i++ {
			if i == 8 {
				hexCol.WriteByte(' ')
			}
			if i < len(line) {
				fmt.Fprintf(&hexCol, "%02x ", line[i])
			} else {
				hexCol.WriteString("   ")
			}
		}
		offCol := fmt.Sprintf("%08x", off)
		gutter := asciiGutter(line)
		if tty {
			offCol = offsetColor.Sprint(offCol)
			gutter = asciiColor.Sprint(gutter)
		}
		fmt.Fprintf(w, "%s  %s |%s|\n", offCol, hexCol.String(), gutter)
	}
}

func asciiGutter(line []byte) string {
	var b strings.Builder
	for _, c := range line {
		if c >= 0x20 && c < 0x7F {
			b.WriteByte(c)
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
