package prop

// Event identifies what happened to a property.
type Event int

const (
	// EventDataModified signals that a node's payload changed, either
	// by a structural load or by a mutating setter. By the time a
	// listener receives it for a mutation, the node already reports
	// Skippable() == false.
	EventDataModified Event = iota
)

// Listener observes property events. The relation is non-owning in
// both directions: a property never manages a listener's lifetime, and
// a listener must remove itself before the property goes away if it
// cares about not being called.
//
// Delivery is synchronous and reentrant-unsafe: a callback must not
// mutate the property it is being notified about.
type Listener interface {
	OnPropertyEvent(p Property, ev Event)
}
