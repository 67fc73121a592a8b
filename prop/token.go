package prop

import (
	"github.com/pkg/errors"

	"github.com/redsav-format/go-redsav/pool"
	"github.com/redsav-format/go-redsav/stream"
)

// CName is an engine name token: a u16 pool reference to the string
// content.
type CName struct {
	base
	name pool.StringID
}

func NewCName(typeName pool.StringID) *CName {
	p := &CName{}
	p.init(KindCName, typeName, p)
	return p
}

func (p *CName) Name() pool.StringID {
	return p.name
}

func (p *CName) SetName(id pool.StringID) {
	p.name = id
	p.MarkModified()
}

func (p *CName) loadPayload(r *stream.Reader, ctx *Ctx) error {
	tok := r.U16()
	if err := r.Err(); err != nil {
		return err
	}
	if _, err := ctx.LookupString(pool.StringID(tok)); err != nil {
		return err
	}
	p.name = pool.StringID(tok)
	return nil
}

func (p *CName) savePayload(w *stream.Writer, _ *Ctx) error {
	w.U16(uint16(p.name))
	return w.Err()
}

// TweakDBID is a database record hash. Revisions before
// format.V195 store only the low 32 bits.
type TweakDBID struct {
	base
	hash uint64
}

func NewTweakDBID(typeName pool.StringID) *TweakDBID {
	p := &TweakDBID{}
	p.init(KindTweakDBID, typeName, p)
	return p
}

func (p *TweakDBID) Hash() uint64 {
	return p.hash
}

func (p *TweakDBID) SetHash(h uint64) {
	p.hash = h
	p.MarkModified()
}

func (p *TweakDBID) loadPayload(r *stream.Reader, ctx *Ctx) error {
	if ctx.Version().HasWideTweakIDs() {
		p.hash = r.U64()
	} else {
		p.hash = uint64(r.U32())
	}
	return r.Err()
}

func (p *TweakDBID) savePayload(w *stream.Writer, ctx *Ctx) error {
	if ctx.Version().HasWideTweakIDs() {
		w.U64(p.hash)
		return w.Err()
	}
	if p.hash > 0xFFFFFFFF {
		return errors.Errorf("tweak id %#x does not fit the narrow layout of version %s", p.hash, ctx.Version())
	}
	w.U32(uint32(p.hash))
	return w.Err()
}

// NodeRef is a node path string in packed-length layout.
type NodeRef struct {
	base
	path string
}

func NewNodeRef(typeName pool.StringID) *NodeRef {
	p := &NodeRef{}
	p.init(KindNodeRef, typeName, p)
	return p
}

func (p *NodeRef) Path() string {
	return p.path
}

func (p *NodeRef) SetPath(path string) {
	p.path = path
	p.MarkModified()
}

func (p *NodeRef) loadPayload(r *stream.Reader, _ *Ctx) error {
	p.path = r.LString()
	return r.Err()
}

func (p *NodeRef) savePayload(w *stream.Writer, _ *Ctx) error {
	w.LString(p.path)
	return w.Err()
}
