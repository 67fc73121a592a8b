package stream

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf16"

	"github.com/pkg/errors"
)

// Reader decodes little-endian binary data from an in-memory region.
//
// Errors are sticky: the first failure is recorded and every subsequent
// read returns a zero value without advancing. Callers check Err() once
// after a run of reads rather than after every scalar.
type Reader struct {
	data []byte
	pos  int
	err  error
}

// NewReader creates a Reader over data. The reader does not copy or
// take ownership of the slice.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Tell returns the current read position within this view.
func (r *Reader) Tell() int {
	return r.pos
}

// Seek moves the read position within this view.
func (r *Reader) Seek(pos int) {
	if pos < 0 || pos > len(r.data) {
		r.fail(errors.Errorf("seek to %d outside region of %d bytes", pos, len(r.data)))
		return
	}
	r.pos = pos
}

// Len returns the total size of this view.
func (r *Reader) Len() int {
	return len(r.data)
}

// Remaining returns the number of unread bytes in this view.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Data returns the whole backing region of this view, independent of
// the read position.
func (r *Reader) Data() []byte {
	return r.data
}

// Slice returns a copy of the region between start and end. It is used
// to capture the raw span a structural decode consumed.
func (r *Reader) Slice(start, end int) []byte {
	if start < 0 || end > len(r.data) || start > end {
		r.fail(errors.Errorf("slice [%d:%d) outside region of %d bytes", start, end, len(r.data)))
		return nil
	}
	out := make([]byte, end-start)
	copy(out, r.data[start:end])
	return out
}

// Sub consumes the next n bytes and returns a Reader bounded to exactly
// that region. The sub-reader is how a parent hands a property a stream
// view limited to the property's logical extent.
func (r *Reader) Sub(n int) *Reader {
	if n < 0 || r.pos+n > len(r.data) {
		r.fail(errors.Wrapf(io.ErrUnexpectedEOF, "sub-region of %d bytes at offset %d of %d", n, r.pos, len(r.data)))
		return NewReader(nil)
	}
	sub := NewReader(r.data[r.pos : r.pos+n])
	r.pos += n
	return sub
}

// Bytes consumes and returns a copy of the next n bytes.
func (r *Reader) Bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.pos+n > len(r.data) {
		r.fail(errors.Wrapf(io.ErrUnexpectedEOF, "read of %d bytes at offset %d of %d", n, r.pos, len(r.data)))
		return nil
	}
	out := make([]byte, n)
	copy(out, r.data[r.pos:])
	r.pos += n
	return out
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.pos+n > len(r.data) {
		r.fail(errors.Wrapf(io.ErrUnexpectedEOF, "read of %d bytes at offset %d of %d", n, r.pos, len(r.data)))
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *Reader) U8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) U16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *Reader) U32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *Reader) U64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *Reader) I32() int32 {
	return int32(r.U32())
}

func (r *Reader) F32() float32 {
	return math.Float32frombits(r.U32())
}

func (r *Reader) F64() float64 {
	return math.Float64frombits(r.U64())
}

// PackedInt reads a variable-length signed integer. The first byte
// holds the sign (0x80), a continuation flag (0x40) and the low 6 bits;
// following bytes hold 7 bits each with 0x80 as the continuation flag.
func (r *Reader) PackedInt() int64 {
	b0 := r.U8()
	if r.err != nil {
		return 0
	}
	v := int64(b0 & 0x3F)
	if b0&0x40 != 0 {
		shift := uint(6)
		for {
			b := r.U8()
			if r.err != nil {
				return 0
			}
			v |= int64(b&0x7F) << shift
			if b&0x80 == 0 {
				break
			}
			shift += 7
			if shift > 62 {
				r.fail(errors.New("packed int too long"))
				return 0
			}
		}
	}
	if b0&0x80 != 0 {
		v = -v
	}
	return v
}

// PString reads a u16 length-prefixed UTF-8 string.
func (r *Reader) PString() string {
	n := r.U16()
	b := r.take(int(n))
	if b == nil {
		return ""
	}
	return string(b)
}

// LString reads a packed-length string. A negative length means that
// many single-byte characters follow; a positive length means that many
// UTF-16LE code units follow.
func (r *Reader) LString() string {
	n := r.PackedInt()
	switch {
	case r.err != nil:
		return ""
	case n < 0:
		b := r.take(int(-n))
		if b == nil {
			return ""
		}
		return string(b)
	case n > 0:
		b := r.take(int(n) * 2)
		if b == nil {
			return ""
		}
		units := make([]uint16, n)
		for i := range units {
			units[i] = binary.LittleEndian.Uint16(b[i*2:])
		}
		return string(utf16.Decode(units))
	default:
		return ""
	}
}
