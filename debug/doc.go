// Package debug holds tracing helpers gated by REDSAV_DEBUG_*
// environment variables, plus hexdump and byte-diff utilities for
// inspecting encoded blobs. Nothing here is part of the stable API.
package debug
