package prop

import (
	"bytes"
	"testing"

	"github.com/redsav-format/go-redsav/format"
	"github.com/redsav-format/go-redsav/pool"
)

// buildTestBlob assembles a small but representative save blob: a root
// object with a scalar, a handle that refers forward to an embedded
// child object, and a modded property nobody has a decoder for.
func buildTestBlob(t *testing.T) ([]byte, *Registry) {
	t.Helper()
	reg := NewRegistry()
	if err := reg.RegisterObjectType("testRoot"); err != nil {
		t.Fatal(err)
	}
	if err := reg.RegisterObjectType("testChild"); err != nil {
		t.Fatal(err)
	}

	p := pool.New()
	intern := func(s string) pool.StringID {
		id, err := p.Intern(s)
		if err != nil {
			t.Fatal(err)
		}
		return id
	}

	root := NewObjectWithID(intern("testRoot"), 1)

	active := NewBool(intern("Bool"))
	active.Set(true)
	root.AddField(intern("active"), active)

	// The handle comes before the object it points at: decoding must
	// tolerate the forward reference.
	buddy := NewHandle(intern("handle:testChild"))
	buddy.SetTargetID(2)
	root.AddField(intern("buddy"), buddy)

	child := NewObjectWithID(intern("testChild"), 2)
	count := NewInt32(intern("Int32"))
	count.Set(5)
	child.AddField(intern("count"), count)
	root.AddField(intern("child"), child)

	modded := NewUnknown(intern("mysteryData"))
	modded.SetData([]byte{0xCA, 0xFE, 0xBA, 0xBE, 0x00})
	root.AddField(intern("modded"), modded)

	blob := &Blob{Version: format.V203, Pool: p, Root: root}
	data, err := blob.Bytes(WithRegistry(reg))
	if err != nil {
		t.Fatal(err)
	}
	return data, reg
}

func TestBlobEndToEnd(t *testing.T) {
	data, reg := buildTestBlob(t)

	blob, err := ReadBlob(data, format.V203, WithRegistry(reg))
	if err != nil {
		t.Fatal(err)
	}

	root, ok := blob.Root.(*Object)
	if !ok {
		t.Fatalf("root is %T", blob.Root)
	}
	if root.ID() != 1 {
		t.Errorf("root id = %d", root.ID())
	}

	tok := func(s string) pool.StringID {
		id, err := blob.Pool.Intern(s)
		if err != nil {
			t.Fatal(err)
		}
		return id
	}

	if got := root.FieldByName(tok("active")).(*Bool); !got.Value() {
		t.Error("active lost its value")
	}

	// The forward handle ended up on the child object.
	buddy := root.FieldByName(tok("buddy")).(*Handle)
	if !buddy.Ref().Resolved() {
		t.Fatal("handle unresolved after load")
	}
	child := root.FieldByName(tok("child")).(*Object)
	if buddy.Ref().Target() != Property(child) {
		t.Error("handle resolved to the wrong object")
	}

	// The modded property fell back to Unknown and kept its bytes.
	modded, ok := root.FieldByName(tok("modded")).(*Unknown)
	if !ok {
		t.Fatalf("modded is %T", root.FieldByName(tok("modded")))
	}
	if !bytes.Equal(modded.Data(), []byte{0xCA, 0xFE, 0xBA, 0xBE, 0x00}) {
		t.Errorf("modded payload = %x", modded.Data())
	}
}

func TestBlobUntouchedRoundTripIsIdentity(t *testing.T) {
	data, reg := buildTestBlob(t)

	blob, err := ReadBlob(data, format.V203, WithRegistry(reg))
	if err != nil {
		t.Fatal(err)
	}
	out, err := blob.Bytes(WithRegistry(reg))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, out) {
		t.Errorf("untouched blob did not round trip byte-exactly:\n in  %x\n out %x", data, out)
	}

	// And writing again changes nothing.
	again, err := blob.Bytes(WithRegistry(reg))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, again) {
		t.Error("consecutive writes differ")
	}
}

func TestBlobEditReencodesOnlyTouchedPath(t *testing.T) {
	data, reg := buildTestBlob(t)

	blob, err := ReadBlob(data, format.V203, WithRegistry(reg))
	if err != nil {
		t.Fatal(err)
	}
	root := blob.Root.(*Object)
	tok := func(s string) pool.StringID {
		id, err := blob.Pool.Intern(s)
		if err != nil {
			t.Fatal(err)
		}
		return id
	}

	child := root.FieldByName(tok("child")).(*Object)
	count := child.FieldByName(tok("count")).(*Int32)
	count.Set(9)

	// The edit un-skips the whole path to the root, and nothing else.
	if count.Skippable() || child.Skippable() || root.Skippable() {
		t.Error("edited path should not be skippable")
	}
	if !root.FieldByName(tok("active")).Skippable() {
		t.Error("untouched sibling should stay skippable")
	}
	if !root.FieldByName(tok("modded")).Skippable() {
		t.Error("untouched unknown should stay skippable")
	}

	out, err := blob.Bytes(WithRegistry(reg))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(data, out) {
		t.Fatal("edited blob produced identical bytes")
	}

	// Loading the edited bytes shows the new value with every
	// untouched sibling intact.
	edited, err := ReadBlob(out, format.V203, WithRegistry(reg))
	if err != nil {
		t.Fatal(err)
	}
	eroot := edited.Root.(*Object)
	echild := eroot.FieldByName(tok("child")).(*Object)
	if got := echild.FieldByName(tok("count")).(*Int32).Value(); got != 9 {
		t.Errorf("count = %d, want 9", got)
	}
	if !eroot.FieldByName(tok("active")).(*Bool).Value() {
		t.Error("sibling bool corrupted by edit")
	}
	emodded := eroot.FieldByName(tok("modded")).(*Unknown)
	if !bytes.Equal(emodded.Data(), []byte{0xCA, 0xFE, 0xBA, 0xBE, 0x00}) {
		t.Errorf("unknown sibling corrupted by edit: %x", emodded.Data())
	}
}

func TestBlobDanglingHandleFailsLoad(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterObjectType("testRoot"); err != nil {
		t.Fatal(err)
	}

	p := pool.New()
	intern := func(s string) pool.StringID {
		id, err := p.Intern(s)
		if err != nil {
			t.Fatal(err)
		}
		return id
	}
	root := NewObjectWithID(intern("testRoot"), 1)
	ghost := NewHandle(intern("handle:testChild"))
	ghost.SetTargetID(42) // nothing registers 42
	root.AddField(intern("ghost"), ghost)

	blob := &Blob{Version: format.V203, Pool: p, Root: root}
	data, err := blob.Bytes(WithRegistry(reg))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ReadBlob(data, format.V203, WithRegistry(reg)); err == nil {
		t.Fatal("dangling handle should fail the load")
	}
}

func TestBlobTruncatedFailsLoad(t *testing.T) {
	data, reg := buildTestBlob(t)
	for _, cut := range []int{1, len(data) / 2, len(data) - 1} {
		if _, err := ReadBlob(data[:cut], format.V203, WithRegistry(reg)); err == nil {
			t.Errorf("truncation at %d should fail", cut)
		}
	}
}

func TestWalk(t *testing.T) {
	data, reg := buildTestBlob(t)
	blob, err := ReadBlob(data, format.V203, WithRegistry(reg))
	if err != nil {
		t.Fatal(err)
	}
	kinds := map[Kind]int{}
	if err := Walk(blob.Root, func(p Property, depth int) error {
		kinds[p.Kind()]++
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if kinds[KindObject] != 2 {
		t.Errorf("objects = %d, want 2", kinds[KindObject])
	}
	if kinds[KindUnknown] != 1 {
		t.Errorf("unknowns = %d, want 1", kinds[KindUnknown])
	}
	if kinds[KindHandle] != 1 {
		t.Errorf("handles = %d, want 1", kinds[KindHandle])
	}
}
