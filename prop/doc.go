// Package prop implements the property system at the heart of a save
// blob: a tree of typed, named nodes that reads from and writes back to
// the binary layout with full fidelity, even for schema types it has
// never been taught.
//
// # Node contract
//
// Every node is a Property: a fixed Kind, an interned type name, a
// Load/Save pair over bounded stream views, a Skippable flag, and a
// listener set. Three rules hold the design together:
//
//   - A node that loaded successfully and was never mutated saves by
//     re-emitting the exact span it was loaded from. Only edited
//     subtrees go through structural re-encoding, so data the encoder
//     does not fully understand is never corrupted by an edit nearby.
//   - Any mutation flips Skippable to false, permanently, and then
//     synchronously notifies listeners. Containers listen to their
//     children, so an edit deep in the tree un-skips the whole path up
//     to the root.
//   - A type name with no registered decoder produces an Unknown node
//     holding raw bytes, not an error.
//
// # Passes
//
// A load or save is one single-threaded traversal owning a Ctx (object
// handle table, string pool access, format version). Handles resolve
// in two phases: ids are collected while decoding, then fixed up in
// Ctx.Finish, so forward references are free and ids that were never
// registered surface as an *UnresolvedError rather than a silent nil.
//
// # Example
//
//	blob, err := prop.ReadBlob(data, format.V203)
//	if err != nil {
//	    return err
//	}
//	// edit something...
//	out, err := blob.Bytes()
package prop
