package prop

import (
	"github.com/redsav-format/go-redsav/debug"
	"github.com/redsav-format/go-redsav/pool"
	"github.com/redsav-format/go-redsav/stream"
)

// Property is a single named, typed node in a save's object tree.
//
// The concrete variants form a closed set (the unexported payload
// methods keep it that way); schema types the engine has not been
// taught decode as *Unknown, which preserves their bytes verbatim.
type Property interface {
	// Kind tags the concrete variant.
	Kind() Kind

	// TypeName is the interned schema type name, used for diagnostics
	// and for re-dispatching on load.
	TypeName() pool.StringID

	// Load decodes the payload from a stream view already bounded to
	// this node's logical extent. Whether or not the decode succeeds,
	// every listener receives EventDataModified before Load returns.
	// A successful Load leaves the node Skippable (unless it was ever
	// mutated); after a failed one the node is not fully defined and
	// must not be saved.
	Load(r *stream.Reader, ctx *Ctx) error

	// Save encodes the current state. Saving twice with no mutation in
	// between produces identical bytes. A node that is Skippable and
	// still holds the span captured at Load writes that span verbatim,
	// so untouched data is never re-encoded.
	Save(w *stream.Writer, ctx *Ctx) error

	// Skippable reports whether the node is eligible for verbatim
	// passthrough: true after construction and after a successful
	// load, permanently false after the first mutation.
	Skippable() bool

	// MarkModified is the explicit modification transition: it flips
	// Skippable to false and then synchronously notifies every
	// listener. Mutating setters call it; callers replacing payload
	// state out of band must call it themselves.
	MarkModified()

	// AddListener and RemoveListener maintain the observer set.
	// Observation is orthogonal to value state, so both are safe on
	// nodes the caller otherwise treats as read-only.
	AddListener(l Listener)
	RemoveListener(l Listener)

	loadPayload(r *stream.Reader, ctx *Ctx) error
	savePayload(w *stream.Writer, ctx *Ctx) error
}

// base carries the state every variant shares. Variants embed it and
// point self back at themselves so notifications can hand out the
// concrete node.
type base struct {
	kind      Kind
	typeName  pool.StringID
	skippable bool
	// mutated latches on the first MarkModified and never clears:
	// skippability must not come back for the lifetime of the node,
	// not even across a reload.
	mutated   bool
	raw       []byte
	listeners map[Listener]struct{}
	self      Property
}

func (b *base) init(kind Kind, typeName pool.StringID, self Property) {
	b.kind = kind
	b.typeName = typeName
	b.skippable = true
	b.self = self
}

func (b *base) Kind() Kind {
	return b.kind
}

func (b *base) TypeName() pool.StringID {
	return b.typeName
}

func (b *base) Skippable() bool {
	return b.skippable
}

func (b *base) AddListener(l Listener) {
	if b.listeners == nil {
		b.listeners = make(map[Listener]struct{})
	}
	b.listeners[l] = struct{}{}
}

func (b *base) RemoveListener(l Listener) {
	delete(b.listeners, l)
}

// notify delivers EventDataModified to a snapshot of the listener set,
// so a callback removing itself does not disturb delivery.
func (b *base) notify() {
	if len(b.listeners) == 0 {
		return
	}
	snapshot := make([]Listener, 0, len(b.listeners))
	for l := range b.listeners {
		snapshot = append(snapshot, l)
	}
	for _, l := range snapshot {
		l.OnPropertyEvent(b.self, EventDataModified)
	}
}

func (b *base) MarkModified() {
	if debug.Skip() && b.skippable {
		debug.Logf("unskip %s\n", b.kind)
	}
	b.mutated = true
	b.skippable = false
	b.notify()
}

func (b *base) Load(r *stream.Reader, ctx *Ctx) error {
	start := r.Tell()
	err := b.self.loadPayload(r, ctx)
	if err == nil {
		err = r.Err()
	}
	if err == nil {
		b.raw = r.Slice(start, r.Tell())
		b.skippable = !b.mutated
	} else {
		// A failed load leaves the node not fully defined; it must
		// never be emitted from a stale span.
		b.raw = nil
		b.skippable = false
	}
	if debug.Load() {
		debug.Logf("load %s: %d bytes, err=%v\n", b.kind, r.Tell()-start, err)
	}
	b.notify()
	return err
}

func (b *base) Save(w *stream.Writer, ctx *Ctx) error {
	if b.skippable && b.raw != nil {
		if debug.Save() {
			debug.Logf("save %s: verbatim %d bytes\n", b.kind, len(b.raw))
		}
		w.Raw(b.raw)
		return w.Err()
	}
	if debug.Save() {
		debug.Logf("save %s: re-encode\n", b.kind)
	}
	if err := b.self.savePayload(w, ctx); err != nil {
		return err
	}
	return w.Err()
}
