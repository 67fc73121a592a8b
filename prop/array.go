package prop

import (
	"github.com/pkg/errors"

	"github.com/redsav-format/go-redsav/pool"
	"github.com/redsav-format/go-redsav/stream"
)

// Array is a fixed array: one element type token, an explicit count,
// then the element payloads back to back without per-element sizes.
//
// Because the elements are unsized, an unregistered element type means
// no element boundary can be recovered; the whole payload then degrades
// to a verbatim span instead of failing the load.
type Array struct {
	base
	elemType pool.StringID
	elems    []Property
	fallback []byte
}

func NewArray(typeName pool.StringID) *Array {
	a := &Array{}
	a.init(KindArray, typeName, a)
	return a
}

// SetElemType fixes the element type for an array built
// programmatically.
func (a *Array) SetElemType(id pool.StringID) {
	a.elemType = id
	a.MarkModified()
}

func (a *Array) ElemType() pool.StringID {
	return a.elemType
}

// Opaque reports whether the array decoded as a verbatim span because
// its element type had no registered decoder.
func (a *Array) Opaque() bool {
	return a.fallback != nil
}

func (a *Array) Len() int {
	return len(a.elems)
}

func (a *Array) At(i int) Property {
	return a.elems[i]
}

// Append adds an element and starts tracking its mutations.
func (a *Array) Append(p Property) {
	a.elems = append(a.elems, p)
	p.AddListener(a)
	a.MarkModified()
}

// OnPropertyEvent propagates element modifications upward.
func (a *Array) OnPropertyEvent(_ Property, ev Event) {
	if ev == EventDataModified {
		a.MarkModified()
	}
}

func (a *Array) loadPayload(r *stream.Reader, ctx *Ctx) error {
	start := r.Tell()
	elemTok := pool.StringID(r.U16())
	count := int(r.U32())
	if err := r.Err(); err != nil {
		return err
	}
	elemName, err := ctx.LookupString(elemTok)
	if err != nil {
		return errors.Wrap(err, "element type token")
	}
	f := ctx.Registry().Lookup(elemName)
	if f == nil {
		r.Seek(start)
		a.fallback = r.Bytes(r.Remaining())
		a.elems = nil
		return r.Err()
	}
	elems := make([]Property, 0, count)
	for i := 0; i < count; i++ {
		el := f(elemTok)
		if err := el.Load(r, ctx); err != nil {
			return errors.Wrapf(err, "element %d of %q", i, elemName)
		}
		elems = append(elems, el)
	}
	a.elemType = elemTok
	a.elems = elems
	a.fallback = nil
	for _, el := range a.elems {
		el.AddListener(a)
	}
	return nil
}

func (a *Array) savePayload(w *stream.Writer, ctx *Ctx) error {
	if a.fallback != nil {
		w.Raw(a.fallback)
		return w.Err()
	}
	w.U16(uint16(a.elemType))
	w.U32(uint32(len(a.elems)))
	for i, el := range a.elems {
		if err := el.Save(w, ctx); err != nil {
			return errors.Wrapf(err, "element %d", i)
		}
	}
	return w.Err()
}

// DynArray is a dynamic array: an explicit count followed by fully
// framed elements, each carrying its own type token and size. The
// per-element frame is what allows heterogeneous content and
// per-element Unknown fallback.
type DynArray struct {
	base
	elems []Property
}

func NewDynArray(typeName pool.StringID) *DynArray {
	a := &DynArray{}
	a.init(KindDynArray, typeName, a)
	return a
}

func (a *DynArray) Len() int {
	return len(a.elems)
}

func (a *DynArray) At(i int) Property {
	return a.elems[i]
}

// Append adds an element and starts tracking its mutations.
func (a *DynArray) Append(p Property) {
	a.elems = append(a.elems, p)
	p.AddListener(a)
	a.MarkModified()
}

// Remove drops the element at i.
func (a *DynArray) Remove(i int) {
	a.elems[i].RemoveListener(a)
	a.elems = append(a.elems[:i], a.elems[i+1:]...)
	a.MarkModified()
}

// OnPropertyEvent propagates element modifications upward.
func (a *DynArray) OnPropertyEvent(_ Property, ev Event) {
	if ev == EventDataModified {
		a.MarkModified()
	}
}

func (a *DynArray) loadPayload(r *stream.Reader, ctx *Ctx) error {
	count := int(r.U32())
	if err := r.Err(); err != nil {
		return err
	}
	elems := make([]Property, 0, count)
	for i := 0; i < count; i++ {
		el, err := readElement(r, ctx)
		if err != nil {
			return errors.Wrapf(err, "element %d", i)
		}
		elems = append(elems, el)
	}
	a.elems = elems
	for _, el := range a.elems {
		el.AddListener(a)
	}
	return nil
}

func (a *DynArray) savePayload(w *stream.Writer, ctx *Ctx) error {
	w.U32(uint32(len(a.elems)))
	for i, el := range a.elems {
		if err := writeElement(w, ctx, el); err != nil {
			return errors.Wrapf(err, "element %d", i)
		}
	}
	return w.Err()
}
