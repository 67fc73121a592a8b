package prop

// Children returns the direct structural children of a property. Leaf
// kinds return nil; handles are references, not edges, so they
// contribute no children.
func Children(p Property) []Property {
	switch x := p.(type) {
	case *Object:
		out := make([]Property, len(x.fields))
		for i := range x.fields {
			out[i] = x.fields[i].Value
		}
		return out
	case *Array:
		return append([]Property(nil), x.elems...)
	case *DynArray:
		return append([]Property(nil), x.elems...)
	default:
		return nil
	}
}

// Walk visits p and its descendants depth-first, parents before
// children. Returning an error stops the walk.
func Walk(p Property, visit func(p Property, depth int) error) error {
	return walk(p, 0, visit)
}

func walk(p Property, depth int, visit func(p Property, depth int) error) error {
	if err := visit(p, depth); err != nil {
		return err
	}
	for _, c := range Children(p) {
		if err := walk(c, depth+1, visit); err != nil {
			return err
		}
	}
	return nil
}
