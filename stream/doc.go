// Package stream provides the binary reader and writer the property
// engine decodes from and encodes to.
//
// All multi-byte values are little-endian with fixed, explicit widths;
// nothing in the layout is platform dependent. Save blobs arrive in
// memory already decompressed by the container layer, so both ends work
// over byte slices rather than file handles: Reader is a bounded view
// with Tell/Seek/Remaining, Writer is an append-only buffer with
// reserve-and-patch support for size-prefixed frames.
//
// # Example: size-prefixed frame
//
//	w := stream.NewWriter()
//	slot := w.ReserveU32()
//	start := w.Tell()
//	// ... encode payload ...
//	w.PatchU32(slot, uint32(w.Tell()-start))
//
// # Example: bounded decode
//
//	size := r.U32()
//	sub := r.Sub(int(size))
//	// sub.Remaining() never exceeds size
package stream
