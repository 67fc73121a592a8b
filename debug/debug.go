package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Load bool
	Save bool
	Refs bool
	Skip bool
}

var d *debug

func init() {
	d = &debug{}
	d.Load = boolEnv("REDSAV_DEBUG_LOAD")
	d.Save = boolEnv("REDSAV_DEBUG_SAVE")
	d.Refs = boolEnv("REDSAV_DEBUG_REFS")
	d.Skip = boolEnv("REDSAV_DEBUG_SKIP")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Load gates tracing of the decode pass.
func Load() bool {
	return d.Load
}

// Save gates tracing of the encode pass.
func Save() bool {
	return d.Save
}

// Refs gates tracing of object registration and handle fixup.
func Refs() bool {
	return d.Refs
}

// Skip gates tracing of skippability changes.
func Skip() bool {
	return d.Skip
}
