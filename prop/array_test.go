package prop

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/redsav-format/go-redsav/stream"
)

func TestArrayRoundTrip(t *testing.T) {
	ctx, p := newTestCtx(t)
	arrTok := intern(t, p, "static:3,Int32")
	elemTok := intern(t, p, "Int32")

	a := NewArray(arrTok)
	a.SetElemType(elemTok)
	for _, v := range []int32{10, -20, 30} {
		n := NewInt32(elemTok)
		n.Set(v)
		a.Append(n)
	}

	w := stream.NewWriter()
	if err := a.Save(w, ctx); err != nil {
		t.Fatal(err)
	}

	b := NewArray(arrTok)
	if err := b.Load(stream.NewReader(w.Bytes()), ctx); err != nil {
		t.Fatal(err)
	}
	if b.Opaque() {
		t.Fatal("array with registered element type should decode structurally")
	}
	if b.Len() != 3 {
		t.Fatalf("len = %d", b.Len())
	}
	got := []int32{}
	for i := 0; i < b.Len(); i++ {
		got = append(got, b.At(i).(*Int32).Value())
	}
	if diff := cmp.Diff([]int32{10, -20, 30}, got); diff != "" {
		t.Errorf("elements (-want +got):\n%s", diff)
	}
}

func TestArrayOpaqueFallback(t *testing.T) {
	ctx, p := newTestCtx(t)
	arrTok := intern(t, p, "static:2,Vector3")
	elemTok := intern(t, p, "Vector3")

	// Vector3 has no registered decoder and the elements carry no
	// sizes, so the whole payload must survive as an opaque span.
	w := stream.NewWriter()
	w.U16(uint16(elemTok))
	w.U32(2)
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	w.Raw(payload)

	a := NewArray(arrTok)
	if err := a.Load(stream.NewReader(w.Bytes()), ctx); err != nil {
		t.Fatal(err)
	}
	if !a.Opaque() {
		t.Fatal("unregistered element type should degrade to opaque")
	}
	if a.Len() != 0 {
		t.Errorf("opaque array reports %d elements", a.Len())
	}

	out := stream.NewWriter()
	if err := a.Save(out, ctx); err != nil {
		t.Fatal(err)
	}
	if string(out.Bytes()) != string(w.Bytes()) {
		t.Errorf("opaque round trip mismatch:\n in  %x\n out %x", w.Bytes(), out.Bytes())
	}
}

func TestDynArrayHeterogeneous(t *testing.T) {
	ctx, p := newTestCtx(t)
	arrTok := intern(t, p, "array:whatever")
	intTok := intern(t, p, "Int32")
	mysteryTok := intern(t, p, "mysteryType")

	a := NewDynArray(arrTok)
	n := NewInt32(intTok)
	n.Set(77)
	a.Append(n)
	u := NewUnknown(mysteryTok)
	u.SetData([]byte{0xDE, 0xAD})
	a.Append(u)

	w := stream.NewWriter()
	if err := a.Save(w, ctx); err != nil {
		t.Fatal(err)
	}

	b := NewDynArray(arrTok)
	if err := b.Load(stream.NewReader(w.Bytes()), ctx); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 2 {
		t.Fatalf("len = %d", b.Len())
	}
	if got := b.At(0).(*Int32).Value(); got != 77 {
		t.Errorf("first element = %d", got)
	}
	mystery, ok := b.At(1).(*Unknown)
	if !ok {
		t.Fatalf("second element is %T, want *Unknown", b.At(1))
	}
	if string(mystery.Data()) != "\xde\xad" {
		t.Errorf("unknown payload = %x", mystery.Data())
	}
}

func TestContainerUnskippedByElementMutation(t *testing.T) {
	ctx, p := newTestCtx(t)
	arrTok := intern(t, p, "array:Int32")
	intTok := intern(t, p, "Int32")

	// Build, save, reload: the loaded array and its elements are all
	// skippable.
	a := NewDynArray(arrTok)
	n := NewInt32(intTok)
	n.Set(1)
	a.Append(n)
	w := stream.NewWriter()
	if err := a.Save(w, ctx); err != nil {
		t.Fatal(err)
	}
	b := NewDynArray(arrTok)
	if err := b.Load(stream.NewReader(w.Bytes()), ctx); err != nil {
		t.Fatal(err)
	}
	if !b.Skippable() {
		t.Fatal("loaded array should be skippable")
	}

	// Mutating an element un-skips the container too.
	b.At(0).(*Int32).Set(2)
	if b.At(0).Skippable() {
		t.Error("mutated element should not be skippable")
	}
	if b.Skippable() {
		t.Error("container holding a mutated element should not be skippable")
	}

	// And the re-encode carries the new value.
	out := stream.NewWriter()
	if err := b.Save(out, ctx); err != nil {
		t.Fatal(err)
	}
	c := NewDynArray(arrTok)
	if err := c.Load(stream.NewReader(out.Bytes()), ctx); err != nil {
		t.Fatal(err)
	}
	if got := c.At(0).(*Int32).Value(); got != 2 {
		t.Errorf("value after re-encode = %d", got)
	}
}
