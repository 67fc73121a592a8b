// Package format holds save-format revision numbers and the base error
// for malformed save data.
//
// A Version is read from the save container header by the I/O layer and
// threaded through every serialization pass via prop.Ctx. Layout
// conditionals (such as the width of TweakDBID payloads) are expressed
// as predicates on Version so that property code never compares raw
// revision numbers.
package format
