package prop

import (
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/redsav-format/go-redsav/pool"
)

// Factory produces a fresh node for a schema type name. The pool token
// of the name is passed through so the node can re-emit it.
type Factory func(typeName pool.StringID) Property

// Registry maps schema type names to factories. Exact names are
// consulted first, then the engine's structural prefixes (handle:,
// array:, static:). A name nobody registered is not an error; it
// produces an *Unknown node.
//
// Unlike Ctx and Pool, a Registry may be shared across passes, so it
// carries its own lock.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a registry populated with the built-in scalar
// and token kinds.
func NewRegistry() *Registry {
	r := &Registry{factories: map[string]Factory{}}
	r.registerBuiltins()
	return r
}

func (r *Registry) registerBuiltins() {
	r.factories["Bool"] = func(id pool.StringID) Property { return NewBool(id) }
	r.factories["Int32"] = func(id pool.StringID) Property { return NewInt32(id) }
	r.factories["Float"] = func(id pool.StringID) Property { return NewFloat(id) }
	r.factories["Double"] = func(id pool.StringID) Property { return NewDouble(id) }
	r.factories["CName"] = func(id pool.StringID) Property { return NewCName(id) }
	r.factories["TweakDBID"] = func(id pool.StringID) Property { return NewTweakDBID(id) }
	r.factories["NodeRef"] = func(id pool.StringID) Property { return NewNodeRef(id) }
}

// Register adds a factory for an exact type name. Registering a name
// twice is an error.
func (r *Registry) Register(name string, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if name == "" {
		return errors.New("type name cannot be empty")
	}
	if _, ok := r.factories[name]; ok {
		return errors.Errorf("type %q already registered", name)
	}
	r.factories[name] = f
	return nil
}

// RegisterObjectType registers name as an embedded-object class.
func (r *Registry) RegisterObjectType(name string) error {
	return r.Register(name, func(id pool.StringID) Property { return NewObject(id) })
}

// RegisterEnum registers name as an enumerated type with the given
// enumerator names.
func (r *Registry) RegisterEnum(name string, options ...string) error {
	return r.Register(name, func(id pool.StringID) Property { return NewCombo(id, options...) })
}

// Lookup returns the factory for an exact type name, or nil.
func (r *Registry) Lookup(name string) Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.factories[name]
}

// New produces a node for a type name observed in a stream. Structural
// prefixes dispatch to the container kinds; anything else without a
// registered factory falls back to Unknown.
func (r *Registry) New(name string, id pool.StringID) Property {
	if f := r.Lookup(name); f != nil {
		return f(id)
	}
	switch {
	case strings.HasPrefix(name, "handle:"):
		return NewHandle(id)
	case strings.HasPrefix(name, "array:"):
		return NewDynArray(id)
	case strings.HasPrefix(name, "static:"):
		return NewArray(id)
	}
	return NewUnknown(id)
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry a Ctx uses unless
// overridden with WithRegistry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
