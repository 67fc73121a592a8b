// Package query finds properties in a loaded tree by expression.
//
// A query is an expr-lang boolean expression over per-node variables:
//
//	kind == "Int32" && value > 100
//	type startsWith "handle:" && depth <= 3
//	name == "itemID" || kind == "TweakDBID"
//
// Compile once with Compile and run against any number of trees, or
// use Find for one-off searches. Matches come back in depth-first
// pre-order, each with the field name and depth where it was found.
package query
