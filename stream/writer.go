package stream

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf16"

	"github.com/pkg/errors"
)

// Writer encodes little-endian binary data into a growing in-memory
// buffer. Like Reader, errors are sticky.
//
// Size-prefixed frames are written with ReserveU32/PatchU32: reserve a
// slot, encode the payload, then patch the slot with the payload size.
type Writer struct {
	data []byte
	err  error
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	return &Writer{data: make([]byte, 0, 64)}
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

// Tell returns the current write position.
func (w *Writer) Tell() int {
	return len(w.data)
}

// Bytes returns the encoded output. The slice is owned by the writer
// until the caller is done with it.
func (w *Writer) Bytes() []byte {
	return w.data
}

// WriteTo flushes the encoded output to an io.Writer.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := dst.Write(w.data)
	return int64(n), err
}

// Raw appends bytes verbatim.
func (w *Writer) Raw(b []byte) {
	if w.err != nil {
		return
	}
	w.data = append(w.data, b...)
}

func (w *Writer) U8(v uint8) {
	if w.err != nil {
		return
	}
	w.data = append(w.data, v)
}

func (w *Writer) U16(v uint16) {
	if w.err != nil {
		return
	}
	w.data = binary.LittleEndian.AppendUint16(w.data, v)
}

func (w *Writer) U32(v uint32) {
	if w.err != nil {
		return
	}
	w.data = binary.LittleEndian.AppendUint32(w.data, v)
}

func (w *Writer) U64(v uint64) {
	if w.err != nil {
		return
	}
	w.data = binary.LittleEndian.AppendUint64(w.data, v)
}

func (w *Writer) I32(v int32) {
	w.U32(uint32(v))
}

func (w *Writer) F32(v float32) {
	w.U32(math.Float32bits(v))
}

func (w *Writer) F64(v float64) {
	w.U64(math.Float64bits(v))
}

// ReserveU32 appends a zeroed u32 slot and returns its offset for a
// later PatchU32.
func (w *Writer) ReserveU32() int {
	off := len(w.data)
	w.U32(0)
	return off
}

// PatchU32 overwrites a previously reserved slot.
func (w *Writer) PatchU32(off int, v uint32) {
	if w.err != nil {
		return
	}
	if off < 0 || off+4 > len(w.data) {
		w.fail(errors.Errorf("patch at %d outside buffer of %d bytes", off, len(w.data)))
		return
	}
	binary.LittleEndian.PutUint32(w.data[off:], v)
}

// PackedInt writes a variable-length signed integer in the layout
// documented on Reader.PackedInt. Magnitudes of 62 bits or more do not
// fit the layout Reader.PackedInt accepts and fail the writer.
func (w *Writer) PackedInt(v int64) {
	if w.err != nil {
		return
	}
	var b0 uint8
	if v < 0 {
		b0 |= 0x80
		v = -v
	}
	// v is still negative here for MinInt64; the uint64 conversion
	// yields the true magnitude for that case too.
	if mag := uint64(v); mag >= 1<<62 {
		w.fail(errors.Errorf("packed int magnitude %d does not fit 62 bits", mag))
		return
	}
	b0 |= uint8(v & 0x3F)
	v >>= 6
	if v != 0 {
		b0 |= 0x40
	}
	w.U8(b0)
	for v != 0 {
		b := uint8(v & 0x7F)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.U8(b)
	}
}

// PString writes a u16 length-prefixed UTF-8 string.
func (w *Writer) PString(s string) {
	if len(s) > 0xFFFF {
		w.fail(errors.Errorf("string of %d bytes exceeds u16 length prefix", len(s)))
		return
	}
	w.U16(uint16(len(s)))
	w.Raw([]byte(s))
}

// LString writes a packed-length string: single-byte characters with a
// negative length when the content is plain ASCII, UTF-16LE code units
// with a positive length otherwise.
func (w *Writer) LString(s string) {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		w.PackedInt(-int64(len(s)))
		w.Raw([]byte(s))
		return
	}
	units := utf16.Encode([]rune(s))
	w.PackedInt(int64(len(units)))
	for _, u := range units {
		w.U16(u)
	}
}
