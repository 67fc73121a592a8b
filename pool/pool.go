package pool

import (
	"errors"
	"fmt"

	"github.com/redsav-format/go-redsav/stream"
)

// ErrBadStringID reports a lookup with a token this pool never issued.
var ErrBadStringID = errors.New("bad string id")

// StringID is a stable token for an interned string. IDs are only
// meaningful within the pool instance that produced them; they are also
// the u16 tokens property frames use on disk.
type StringID uint16

// maxEntries is fixed by the u16 token width of the on-disk frames.
const maxEntries = 1 << 16

// Pool is an append-only intern table. Interning equal content twice
// yields the same id; entries are never removed for the life of the
// pool.
type Pool struct {
	entries []string
	index   map[string]StringID
}

// New creates an empty pool.
func New() *Pool {
	return &Pool{index: make(map[string]StringID)}
}

// Len returns the number of interned strings.
func (p *Pool) Len() int {
	return len(p.entries)
}

// Intern returns the id for s, inserting it if it is not already
// present.
func (p *Pool) Intern(s string) (StringID, error) {
	if id, ok := p.index[s]; ok {
		return id, nil
	}
	if len(p.entries) >= maxEntries {
		return 0, fmt.Errorf("string pool full (%d entries)", maxEntries)
	}
	id := StringID(len(p.entries))
	p.entries = append(p.entries, s)
	p.index[s] = id
	return id, nil
}

// Lookup returns the string content for id. An id that did not come
// from this pool instance is a caller bug and is reported as an error,
// never as a silent default.
func (p *Pool) Lookup(id StringID) (string, error) {
	if int(id) >= len(p.entries) {
		return "", fmt.Errorf("%w: id %d outside pool of %d entries", ErrBadStringID, id, len(p.entries))
	}
	return p.entries[id], nil
}

// Read loads a pool block: u32 entry count followed by u16
// length-prefixed UTF-8 entries in id order. The block replaces any
// existing content.
func (p *Pool) Read(r *stream.Reader) error {
	count := r.U32()
	if err := r.Err(); err != nil {
		return err
	}
	if count > maxEntries {
		return fmt.Errorf("pool block of %d entries exceeds limit %d", count, maxEntries)
	}
	entries := make([]string, 0, count)
	index := make(map[string]StringID, count)
	for i := uint32(0); i < count; i++ {
		s := r.PString()
		if err := r.Err(); err != nil {
			return err
		}
		if _, ok := index[s]; ok {
			return fmt.Errorf("duplicate pool entry %q at id %d", s, i)
		}
		index[s] = StringID(i)
		entries = append(entries, s)
	}
	p.entries = entries
	p.index = index
	return nil
}

// Write emits the pool block in id order so that every token handed out
// before the write stays valid.
func (p *Pool) Write(w *stream.Writer) error {
	w.U32(uint32(len(p.entries)))
	for _, s := range p.entries {
		w.PString(s)
	}
	return w.Err()
}
