package prop

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/redsav-format/go-redsav/stream"
)

func TestUnknownRoundTripIdentity(t *testing.T) {
	ctx, p := newTestCtx(t)
	tok := intern(t, p, "someModdedType")

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"single", []byte{0xFF}},
		{"arbitrary", []byte{0x00, 0x01, 0xFE, 0xDC, 0xBA, 0x98, 0x76, 0x54, 0x32, 0x10}},
		{"looks like a frame", []byte{0x02, 0x00, 0x04, 0x00, 0x00, 0x00, 0xAA, 0xBB, 0xCC, 0xDD}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewUnknown(tok)
			if err := u.Load(stream.NewReader(tt.data), ctx); err != nil {
				t.Fatal(err)
			}
			if u.Kind() != KindUnknown {
				t.Errorf("kind = %s", u.Kind())
			}
			w := stream.NewWriter()
			if err := u.Save(w, ctx); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.data, w.Bytes(), cmp.Comparer(bytesEqual)); diff != "" {
				t.Errorf("round trip mismatch (-in +out):\n%s", diff)
			}
		})
	}
}

func bytesEqual(a, b []byte) bool {
	return string(a) == string(b)
}

func TestUnknownSetDataReencodes(t *testing.T) {
	ctx, p := newTestCtx(t)
	tok := intern(t, p, "someModdedType")

	u := NewUnknown(tok)
	if err := u.Load(stream.NewReader([]byte{1, 2, 3}), ctx); err != nil {
		t.Fatal(err)
	}
	u.SetData([]byte{9, 9})
	if u.Skippable() {
		t.Error("SetData should mark the node modified")
	}
	w := stream.NewWriter()
	if err := u.Save(w, ctx); err != nil {
		t.Fatal(err)
	}
	if string(w.Bytes()) != "\x09\x09" {
		t.Errorf("saved %x", w.Bytes())
	}
}
