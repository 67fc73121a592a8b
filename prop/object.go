package prop

import (
	"github.com/pkg/errors"

	"github.com/redsav-format/go-redsav/pool"
	"github.com/redsav-format/go-redsav/stream"
)

// Field is one named slot of an embedded object.
type Field struct {
	Name  pool.StringID
	Value Property
}

// Object is an embedded object: an id other properties can refer to by
// handle, plus an ordered list of named fields. Decoding an object
// registers its id with the pass context.
//
// An object listens to its own fields, so any mutation below it makes
// the whole chain up to the root non-skippable. That is what keeps a
// parent from re-emitting a stale verbatim span around an edited
// child.
type Object struct {
	base
	id     uint32
	fields []Field
}

func NewObject(typeName pool.StringID) *Object {
	o := &Object{}
	o.init(KindObject, typeName, o)
	return o
}

// NewObjectWithID creates an object with a caller-chosen id, for blobs
// built programmatically.
func NewObjectWithID(typeName pool.StringID, id uint32) *Object {
	o := NewObject(typeName)
	o.id = id
	return o
}

// ID returns the object's handle id within its blob.
func (o *Object) ID() uint32 {
	return o.id
}

// Fields returns the ordered field list. Callers must not mutate the
// returned slice.
func (o *Object) Fields() []Field {
	return o.fields
}

// FieldByName returns the value of the first field with the given name
// token, or nil.
func (o *Object) FieldByName(name pool.StringID) Property {
	for i := range o.fields {
		if o.fields[i].Name == name {
			return o.fields[i].Value
		}
	}
	return nil
}

// AddField appends a field and starts tracking its mutations.
func (o *Object) AddField(name pool.StringID, v Property) {
	o.fields = append(o.fields, Field{Name: name, Value: v})
	v.AddListener(o)
	o.MarkModified()
}

// RemoveField removes the first field with the given name token and
// reports whether one was found.
func (o *Object) RemoveField(name pool.StringID) bool {
	for i := range o.fields {
		if o.fields[i].Name == name {
			o.fields[i].Value.RemoveListener(o)
			o.fields = append(o.fields[:i], o.fields[i+1:]...)
			o.MarkModified()
			return true
		}
	}
	return false
}

// OnPropertyEvent propagates child modifications upward.
func (o *Object) OnPropertyEvent(_ Property, ev Event) {
	if ev == EventDataModified {
		o.MarkModified()
	}
}

func (o *Object) loadPayload(r *stream.Reader, ctx *Ctx) error {
	o.id = r.U32()
	count := int(r.U16())
	if err := r.Err(); err != nil {
		return err
	}
	if err := ctx.RegisterObject(o.id, o); err != nil {
		return err
	}
	fields := make([]Field, 0, count)
	for i := 0; i < count; i++ {
		f, err := readField(r, ctx)
		if err != nil {
			return err
		}
		fields = append(fields, f)
	}
	o.fields = fields
	// Only now wire up change tracking: the loads above already fired
	// their own notifications and must not count as mutations of this
	// object.
	for i := range o.fields {
		o.fields[i].Value.AddListener(o)
	}
	return nil
}

func (o *Object) savePayload(w *stream.Writer, ctx *Ctx) error {
	w.U32(o.id)
	if len(o.fields) > 0xFFFF {
		return errors.Errorf("object %d has %d fields, limit is %d", o.id, len(o.fields), 0xFFFF)
	}
	w.U16(uint16(len(o.fields)))
	for i := range o.fields {
		if err := writeField(w, ctx, o.fields[i]); err != nil {
			return err
		}
	}
	return w.Err()
}

// Handle is a u32 reference to an object elsewhere in the same blob.
// Decoding only records the id; the target is fixed up when the pass
// context finishes, so forward references cost nothing.
type Handle struct {
	base
	ref *Ref
}

func NewHandle(typeName pool.StringID) *Handle {
	h := &Handle{}
	h.init(KindHandle, typeName, h)
	return h
}

// Ref returns the reference cell, or nil for a handle that never
// loaded or was never pointed anywhere.
func (h *Handle) Ref() *Ref {
	return h.ref
}

// SetRef points the handle at a different object.
func (h *Handle) SetRef(ref *Ref) {
	h.ref = ref
	h.MarkModified()
}

// SetTargetID points the handle at an object id directly, for blobs
// built programmatically. The reference stays pending until a load
// pass resolves it.
func (h *Handle) SetTargetID(id uint32) {
	h.ref = &Ref{id: id}
	h.MarkModified()
}

func (h *Handle) loadPayload(r *stream.Reader, ctx *Ctx) error {
	id := r.U32()
	if err := r.Err(); err != nil {
		return err
	}
	h.ref = ctx.Resolve(id)
	return nil
}

func (h *Handle) savePayload(w *stream.Writer, _ *Ctx) error {
	if h.ref == nil {
		return errors.New("handle points nowhere")
	}
	w.U32(h.ref.ID())
	return w.Err()
}
