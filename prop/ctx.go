package prop

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/redsav-format/go-redsav/debug"
	"github.com/redsav-format/go-redsav/format"
	"github.com/redsav-format/go-redsav/pool"
)

// Ctx is the per-pass serialization context: the object table handle
// properties resolve against, the string pool, and the format version
// that governs conditional layouts. A Ctx belongs to exactly one load
// or save traversal and is discarded when the pass ends; object ids
// are meaningless outside the Ctx that produced them.
type Ctx struct {
	pool      *pool.Pool
	version   format.Version
	reg       *Registry
	overwrite bool

	objects map[uint32]Property
	refs    map[uint32]*Ref
}

// CtxOption configures a Ctx.
type CtxOption func(*Ctx)

// WithRegistry uses reg instead of the package default registry.
func WithRegistry(reg *Registry) CtxOption {
	return func(c *Ctx) {
		c.reg = reg
	}
}

// WithOverwrite makes duplicate object-id registration last-wins
// instead of an error. Real saves have not been observed to need it;
// the default rejects duplicates.
func WithOverwrite() CtxOption {
	return func(c *Ctx) {
		c.overwrite = true
	}
}

// NewCtx creates a context for a single pass over one blob.
func NewCtx(p *pool.Pool, v format.Version, opts ...CtxOption) *Ctx {
	c := &Ctx{
		pool:    p,
		version: v,
		reg:     DefaultRegistry(),
		objects: make(map[uint32]Property),
		refs:    make(map[uint32]*Ref),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Ctx) Version() format.Version {
	return c.version
}

func (c *Ctx) Registry() *Registry {
	return c.reg
}

// Intern delegates to the blob's string pool.
func (c *Ctx) Intern(s string) (pool.StringID, error) {
	return c.pool.Intern(s)
}

// LookupString delegates to the blob's string pool.
func (c *Ctx) LookupString(id pool.StringID) (string, error) {
	return c.pool.Lookup(id)
}

// RegisterObject records that a decoded object is reachable under id.
// Duplicate registration is rejected unless the Ctx was built with
// WithOverwrite.
func (c *Ctx) RegisterObject(id uint32, p Property) error {
	if _, ok := c.objects[id]; ok && !c.overwrite {
		return errors.Errorf("object id %d registered twice", id)
	}
	if debug.Refs() {
		debug.Logf("register object %d\n", id)
	}
	c.objects[id] = p
	return nil
}

// Resolve returns the reference cell for id. Forward references are
// legal: the cell stays unresolved until Finish fixes it up, and every
// handle requesting the same id shares the same cell.
func (c *Ctx) Resolve(id uint32) *Ref {
	if ref, ok := c.refs[id]; ok {
		return ref
	}
	ref := &Ref{id: id}
	if p, ok := c.objects[id]; ok {
		ref.target = p
	}
	if debug.Refs() {
		debug.Logf("resolve %d: pending=%v\n", id, ref.target == nil)
	}
	c.refs[id] = ref
	return ref
}

// Finish is the second phase of handle resolution: every requested id
// is matched against the registered objects. Ids that were requested
// but never registered make the pass fail with *UnresolvedError: the
// bytes decoded fine, but the object graph is inconsistent.
func (c *Ctx) Finish() error {
	var missing []uint32
	for id, ref := range c.refs {
		p, ok := c.objects[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		ref.target = p
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		if debug.Refs() {
			debug.Logf("finish: %d unresolved ids %v\n", len(missing), missing)
		}
		return &UnresolvedError{IDs: missing}
	}
	return nil
}

// Ref is a possibly-pending reference to an object in the same blob.
type Ref struct {
	id     uint32
	target Property
}

func (r *Ref) ID() uint32 {
	return r.id
}

// Target returns the referenced property, or nil while the reference
// is still pending.
func (r *Ref) Target() Property {
	return r.target
}

func (r *Ref) Resolved() bool {
	return r.target != nil
}

// UnresolvedError reports handle ids that were requested during a pass
// but never registered before Finish.
type UnresolvedError struct {
	IDs []uint32
}

func (e *UnresolvedError) Error() string {
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return "unresolved object references: " + strings.Join(parts, ", ")
}
