package query

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"

	"github.com/redsav-format/go-redsav/pool"
	"github.com/redsav-format/go-redsav/prop"
)

// Match is one property a query selected, with enough context to show
// a result list.
type Match struct {
	Prop  prop.Property
	Name  string // field name within the enclosing object, "" otherwise
	Depth int
}

// Compile builds a query from an expr-lang source. The expression is
// evaluated once per node against the variables
//
//	kind:  the kind tag, e.g. "Int32", "Unknown"
//	type:  the schema type name, e.g. "handle:gameItemData"
//	name:  the enclosing object's field name, "" for array elements
//	value: the scalar payload, or nil for containers
//	depth: distance from the queried root
//
// and selects the node when it yields true.
func Compile(src string) (*Query, error) {
	prg, err := expr.Compile(src, expr.Env(map[string]any{}), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, errors.Wrapf(err, "query %q", src)
	}
	return &Query{src: src, prg: prg}, nil
}

// Query is a compiled property filter.
type Query struct {
	src string
	prg *vm.Program
}

// Find runs a one-off query; see Compile and Query.Run.
func Find(root prop.Property, p *pool.Pool, src string) ([]Match, error) {
	q, err := Compile(src)
	if err != nil {
		return nil, err
	}
	return q.Run(root, p)
}

// Run walks the tree under root and collects every node the query
// selects. The pool resolves name and type tokens for the expression
// environment.
func (q *Query) Run(root prop.Property, p *pool.Pool) ([]Match, error) {
	var out []Match
	err := walk(root, p, "", 0, func(pr prop.Property, name string, depth int) error {
		typeName, err := p.Lookup(pr.TypeName())
		if err != nil {
			return err
		}
		env := map[string]any{
			"kind":  pr.Kind().String(),
			"type":  typeName,
			"name":  name,
			"value": scalarValue(pr, p),
			"depth": depth,
		}
		res, err := expr.Run(q.prg, env)
		if err != nil {
			return errors.Wrapf(err, "query %q", q.src)
		}
		if hit, ok := res.(bool); ok && hit {
			out = append(out, Match{Prop: pr, Name: name, Depth: depth})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func walk(pr prop.Property, p *pool.Pool, name string, depth int, visit func(prop.Property, string, int) error) error {
	if err := visit(pr, name, depth); err != nil {
		return err
	}
	if o, ok := pr.(*prop.Object); ok {
		for _, f := range o.Fields() {
			fn, err := p.Lookup(f.Name)
			if err != nil {
				return err
			}
			if err := walk(f.Value, p, fn, depth+1, visit); err != nil {
				return err
			}
		}
		return nil
	}
	for _, c := range prop.Children(pr) {
		if err := walk(c, p, "", depth+1, visit); err != nil {
			return err
		}
	}
	return nil
}

func scalarValue(pr prop.Property, p *pool.Pool) any {
	switch x := pr.(type) {
	case *prop.Bool:
		return x.Value()
	case *prop.Int32:
		return int(x.Value())
	case *prop.Float:
		return float64(x.Value())
	case *prop.Double:
		return x.Value()
	case *prop.Combo:
		s, err := p.Lookup(x.Choice())
		if err != nil {
			return nil
		}
		return s
	case *prop.CName:
		s, err := p.Lookup(x.Name())
		if err != nil {
			return nil
		}
		return s
	case *prop.TweakDBID:
		return x.Hash()
	case *prop.NodeRef:
		return x.Path()
	case *prop.Unknown:
		return len(x.Data())
	default:
		return nil
	}
}
