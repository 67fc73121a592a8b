package debug

import (
	"fmt"
	"os"
)

// Logf writes a trace line to stderr. Arguments that are byte slices
// render as bounded hex so a trace of a large payload stays one line.
func Logf(msg string, args ...any) {
	for i := range args {
		if b, ok := args[i].([]byte); ok {
			args[i] = hexArg(b)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

const hexArgMax = 32

func hexArg(b []byte) string {
	if len(b) <= hexArgMax {
		return fmt.Sprintf("[% x]", b)
	}
	return fmt.Sprintf("[% x ... %d bytes]", b[:hexArgMax], len(b))
}
