package prop

import (
	"io"

	"github.com/pkg/errors"

	"github.com/redsav-format/go-redsav/format"
	"github.com/redsav-format/go-redsav/pool"
	"github.com/redsav-format/go-redsav/stream"
)

// Blob is one decoded property system: the string pool, the root
// property, and the format version the bytes were laid out for. The
// container layer hands this engine the decompressed region and the
// version from the save header; everything inside the region is ours.
//
// On-disk layout: [string pool block][root property frame].
type Blob struct {
	Version format.Version
	Pool    *pool.Pool
	Root    Property
}

// ReadBlob decodes a property system from data. The pass context is
// created here and torn down before returning: handle resolution is
// completed (or reported as an integrity error) by the time the caller
// sees the Blob.
func ReadBlob(data []byte, version format.Version, opts ...CtxOption) (*Blob, error) {
	p := pool.New()
	ctx := NewCtx(p, version, opts...)
	r := stream.NewReader(data)
	if err := p.Read(r); err != nil {
		return nil, errors.Wrap(err, "string pool block")
	}
	root, err := readElement(r, ctx)
	if err != nil {
		return nil, errors.Wrap(err, "root property")
	}
	if n := r.Remaining(); n > 0 {
		return nil, errors.Errorf("%d bytes after root property", n)
	}
	if err := ctx.Finish(); err != nil {
		return nil, err
	}
	return &Blob{Version: version, Pool: p, Root: root}, nil
}

// Write re-encodes the blob. Properties untouched since load are
// emitted from their original spans; edited subtrees are structurally
// re-encoded. Writing twice without mutation in between produces
// identical bytes.
//
// Interning happens through the blob's pool before Write is called, so
// the pool block can lead the output and every token stays valid.
func (b *Blob) Write(dst io.Writer, opts ...CtxOption) error {
	data, err := b.Bytes(opts...)
	if err != nil {
		return err
	}
	if _, err := dst.Write(data); err != nil {
		return errors.Wrap(err, "flush")
	}
	return nil
}

// Bytes is Write into a fresh buffer.
func (b *Blob) Bytes(opts ...CtxOption) ([]byte, error) {
	w := stream.NewWriter()
	ctx := NewCtx(b.Pool, b.Version, opts...)
	if err := b.Pool.Write(w); err != nil {
		return nil, errors.Wrap(err, "string pool block")
	}
	if err := writeElement(w, ctx, b.Root); err != nil {
		return nil, errors.Wrap(err, "root property")
	}
	return w.Bytes(), nil
}
