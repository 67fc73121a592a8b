package pool

import (
	"errors"
	"testing"

	"github.com/redsav-format/go-redsav/stream"
)

func TestInternDeduplicates(t *testing.T) {
	p := New()
	a, err := p.Intern("itemData")
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Intern("questData")
	if err != nil {
		t.Fatal(err)
	}
	a2, err := p.Intern("itemData")
	if err != nil {
		t.Fatal(err)
	}
	if a != a2 {
		t.Errorf("same content produced ids %d and %d", a, a2)
	}
	if a == b {
		t.Errorf("different content shared id %d", a)
	}
	if p.Len() != 2 {
		t.Errorf("len = %d, want 2", p.Len())
	}
}

func TestLookup(t *testing.T) {
	p := New()
	id, err := p.Intern("Bool")
	if err != nil {
		t.Fatal(err)
	}
	s, err := p.Lookup(id)
	if err != nil {
		t.Fatal(err)
	}
	if s != "Bool" {
		t.Errorf("lookup = %q", s)
	}
	if _, err := p.Lookup(id + 1); !errors.Is(err, ErrBadStringID) {
		t.Errorf("foreign id error = %v, want ErrBadStringID", err)
	}
}

func TestBlockRoundTrip(t *testing.T) {
	p := New()
	for _, s := range []string{"", "Bool", "itemData", "wódka"} {
		if _, err := p.Intern(s); err != nil {
			t.Fatal(err)
		}
	}
	w := stream.NewWriter()
	if err := p.Write(w); err != nil {
		t.Fatal(err)
	}

	q := New()
	if err := q.Read(stream.NewReader(w.Bytes())); err != nil {
		t.Fatal(err)
	}
	if q.Len() != p.Len() {
		t.Fatalf("len = %d, want %d", q.Len(), p.Len())
	}
	// Tokens from before the round trip still resolve to the same
	// content afterwards.
	for _, s := range []string{"", "Bool", "itemData", "wódka"} {
		id, err := p.Intern(s)
		if err != nil {
			t.Fatal(err)
		}
		got, err := q.Lookup(id)
		if err != nil {
			t.Fatal(err)
		}
		if got != s {
			t.Errorf("id %d = %q, want %q", id, got, s)
		}
	}
}

func TestReadRejectsTruncatedBlock(t *testing.T) {
	w := stream.NewWriter()
	w.U32(3)
	w.PString("only one")
	p := New()
	if err := p.Read(stream.NewReader(w.Bytes())); err == nil {
		t.Error("truncated block should fail")
	}
}

func TestReadRejectsDuplicateEntries(t *testing.T) {
	w := stream.NewWriter()
	w.U32(2)
	w.PString("dup")
	w.PString("dup")
	p := New()
	if err := p.Read(stream.NewReader(w.Bytes())); err == nil {
		t.Error("duplicate entries should fail")
	}
}
