package prop

import (
	"github.com/redsav-format/go-redsav/pool"
	"github.com/redsav-format/go-redsav/stream"
)

// Bool is a single byte on disk, zero or one.
type Bool struct {
	base
	v bool
}

func NewBool(typeName pool.StringID) *Bool {
	p := &Bool{}
	p.init(KindBool, typeName, p)
	return p
}

func (p *Bool) Value() bool {
	return p.v
}

func (p *Bool) Set(v bool) {
	p.v = v
	p.MarkModified()
}

func (p *Bool) loadPayload(r *stream.Reader, _ *Ctx) error {
	p.v = r.U8() != 0
	return r.Err()
}

func (p *Bool) savePayload(w *stream.Writer, _ *Ctx) error {
	var b uint8
	if p.v {
		b = 1
	}
	w.U8(b)
	return w.Err()
}

// Int32 is a little-endian i32.
type Int32 struct {
	base
	v int32
}

func NewInt32(typeName pool.StringID) *Int32 {
	p := &Int32{}
	p.init(KindInt32, typeName, p)
	return p
}

func (p *Int32) Value() int32 {
	return p.v
}

func (p *Int32) Set(v int32) {
	p.v = v
	p.MarkModified()
}

func (p *Int32) loadPayload(r *stream.Reader, _ *Ctx) error {
	p.v = r.I32()
	return r.Err()
}

func (p *Int32) savePayload(w *stream.Writer, _ *Ctx) error {
	w.I32(p.v)
	return w.Err()
}

// Float is a little-endian f32.
type Float struct {
	base
	v float32
}

func NewFloat(typeName pool.StringID) *Float {
	p := &Float{}
	p.init(KindFloat, typeName, p)
	return p
}

func (p *Float) Value() float32 {
	return p.v
}

func (p *Float) Set(v float32) {
	p.v = v
	p.MarkModified()
}

func (p *Float) loadPayload(r *stream.Reader, _ *Ctx) error {
	p.v = r.F32()
	return r.Err()
}

func (p *Float) savePayload(w *stream.Writer, _ *Ctx) error {
	w.F32(p.v)
	return w.Err()
}

// Double is a little-endian f64.
type Double struct {
	base
	v float64
}

func NewDouble(typeName pool.StringID) *Double {
	p := &Double{}
	p.init(KindDouble, typeName, p)
	return p
}

func (p *Double) Value() float64 {
	return p.v
}

func (p *Double) Set(v float64) {
	p.v = v
	p.MarkModified()
}

func (p *Double) loadPayload(r *stream.Reader, _ *Ctx) error {
	p.v = r.F64()
	return r.Err()
}

func (p *Double) savePayload(w *stream.Writer, _ *Ctx) error {
	w.F64(p.v)
	return w.Err()
}

// Combo is an enumerated value: the payload is the pool token of the
// selected enumerator name. The option list comes from the registry
// factory that produced the node and is not serialized.
type Combo struct {
	base
	choice  pool.StringID
	options []string
}

func NewCombo(typeName pool.StringID, options ...string) *Combo {
	p := &Combo{options: options}
	p.init(KindCombo, typeName, p)
	return p
}

// Options returns the known enumerator names, if the factory provided
// any.
func (p *Combo) Options() []string {
	return p.options
}

func (p *Combo) Choice() pool.StringID {
	return p.choice
}

func (p *Combo) SetChoice(id pool.StringID) {
	p.choice = id
	p.MarkModified()
}

func (p *Combo) loadPayload(r *stream.Reader, ctx *Ctx) error {
	tok := r.U16()
	if err := r.Err(); err != nil {
		return err
	}
	// The token must resolve within this blob's pool.
	if _, err := ctx.LookupString(pool.StringID(tok)); err != nil {
		return err
	}
	p.choice = pool.StringID(tok)
	return nil
}

func (p *Combo) savePayload(w *stream.Writer, _ *Ctx) error {
	w.U16(uint16(p.choice))
	return w.Err()
}
