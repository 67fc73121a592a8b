package prop

import (
	"github.com/pkg/errors"

	"github.com/redsav-format/go-redsav/pool"
	"github.com/redsav-format/go-redsav/stream"
)

// Every property on disk is framed as
//
//	[u16 type-name token][u32 payload size][payload]
//
// and object fields prepend a u16 field-name token. The size field is
// what bounds the region a property decodes from: it is how Unknown
// payloads know their extent, and how a parent skips past a child it
// cannot interpret.

func readElement(r *stream.Reader, ctx *Ctx) (Property, error) {
	typeTok := pool.StringID(r.U16())
	size := r.U32()
	if err := r.Err(); err != nil {
		return nil, err
	}
	name, err := ctx.LookupString(typeTok)
	if err != nil {
		return nil, errors.Wrap(err, "type name token")
	}
	sub := r.Sub(int(size))
	if err := r.Err(); err != nil {
		return nil, errors.Wrapf(err, "property %q", name)
	}
	p := ctx.Registry().New(name, typeTok)
	if err := p.Load(sub, ctx); err != nil {
		return nil, errors.Wrapf(err, "property %q", name)
	}
	if n := sub.Remaining(); n > 0 {
		return nil, errors.Errorf("property %q: %d bytes left undecoded", name, n)
	}
	return p, nil
}

func writeElement(w *stream.Writer, ctx *Ctx, p Property) error {
	w.U16(uint16(p.TypeName()))
	slot := w.ReserveU32()
	start := w.Tell()
	if err := p.Save(w, ctx); err != nil {
		return err
	}
	w.PatchU32(slot, uint32(w.Tell()-start))
	return w.Err()
}

func readField(r *stream.Reader, ctx *Ctx) (Field, error) {
	nameTok := pool.StringID(r.U16())
	if err := r.Err(); err != nil {
		return Field{}, err
	}
	fieldName, err := ctx.LookupString(nameTok)
	if err != nil {
		return Field{}, errors.Wrap(err, "field name token")
	}
	p, err := readElement(r, ctx)
	if err != nil {
		return Field{}, errors.Wrapf(err, "field %q", fieldName)
	}
	return Field{Name: nameTok, Value: p}, nil
}

func writeField(w *stream.Writer, ctx *Ctx, f Field) error {
	w.U16(uint16(f.Name))
	return writeElement(w, ctx, f.Value)
}
