package prop

import (
	"github.com/redsav-format/go-redsav/pool"
	"github.com/redsav-format/go-redsav/stream"
)

// Unknown is the fallback variant for schema types with no registered
// decoder. It slurps the entire bounded region it is handed and emits
// it back byte for byte, so a blob containing types this engine has
// never seen still round-trips exactly.
type Unknown struct {
	base
	data []byte
}

func NewUnknown(typeName pool.StringID) *Unknown {
	u := &Unknown{}
	u.init(KindUnknown, typeName, u)
	return u
}

// Data returns the opaque payload bytes.
func (u *Unknown) Data() []byte {
	return u.data
}

// SetData replaces the opaque payload.
func (u *Unknown) SetData(d []byte) {
	u.data = append([]byte(nil), d...)
	u.MarkModified()
}

func (u *Unknown) loadPayload(r *stream.Reader, _ *Ctx) error {
	u.data = r.Bytes(r.Remaining())
	return r.Err()
}

func (u *Unknown) savePayload(w *stream.Writer, _ *Ctx) error {
	w.Raw(u.data)
	return w.Err()
}
