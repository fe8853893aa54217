package shapeval

import "fmt"

// ValidateSchema checks that a schema node is well-formed: every leaf is a
// recognized variant and every composite's sub-parts are themselves valid
// fragments. The engine runs this on every dynamically-produced Dependent
// fragment before interpreting it, so a malformed computed schema surfaces as
// a structured error instead of undefined dispatch behavior.
func ValidateSchema(n Node) error {
	var errs Errors
	checkNode(n, nil, &errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MustValidateSchema returns the node or panics with the rendered error tree.
func MustValidateSchema(n Node) Node {
	if err := ValidateSchema(n); err != nil {
		if es, ok := AsErrors(err); ok {
			panic(fmt.Sprintf("shapeval: invalid schema\n%s", es.Render()))
		}
		panic(err)
	}
	return n
}

func schemaError(path []any, reason string, fragment any) *Error {
	e := NewError("invalid schema: %{reason}", map[string]any{"reason": reason, "fragment": fmt.Sprintf("%v", fragment)})
	e.Code = CodeInvalidSchema
	e.Path = path
	return e
}

func checkNode(n Node, path []any, errs *Errors) {
	if n == nil {
		*errs = append(*errs, schemaError(path, "nil node", nil))
		return
	}
	switch t := n.(type) {
	case Kind:
		checkKind(t, path, errs)
	case RequiredNode:
		if t.Inner == nil {
			*errs = append(*errs, schemaError(path, "required wraps nil node", t))
			return
		}
		if requiredInside(t.Inner) {
			*errs = append(*errs, schemaError(path, "required wraps required", t))
		}
		checkNode(t.Inner, childPath(path, "inner"), errs)
	case DefaultNode:
		if t.Inner == nil {
			*errs = append(*errs, schemaError(path, "default wraps nil node", t))
			return
		}
		if requiredInside(t.Inner) {
			// the constructors panic on this; a hand-built or computed node
			// still must not reach the engine
			*errs = append(*errs, schemaError(path, "default declared on a required field", t))
		}
		if t.Fn == nil && t.Value == nil {
			*errs = append(*errs, schemaError(path, "default has neither value nor function", t))
		}
		checkNode(t.Inner, childPath(path, "inner"), errs)
	case ListNode:
		if t.Elem == nil {
			*errs = append(*errs, schemaError(path, "list has nil element node", t))
			return
		}
		checkNode(t.Elem, childPath(path, "elem"), errs)
	case TupleNode:
		for i, e := range t.Elems {
			if e == nil {
				*errs = append(*errs, schemaError(childPath(path, i), "tuple has nil position", t))
				continue
			}
			checkNode(e, childPath(path, i), errs)
		}
	case MapNode:
		if t.Value == nil {
			*errs = append(*errs, schemaError(path, "map has nil value node", t))
			return
		}
		if t.Key != nil {
			checkNode(t.Key, childPath(path, "key"), errs)
		}
		checkNode(t.Value, childPath(path, "value"), errs)
	case ObjectNode:
		seen := map[string]struct{}{}
		for _, f := range t.Fields {
			if !validKey(f.Key) {
				*errs = append(*errs, schemaError(path, fmt.Sprintf("invalid field key %v", f.Key), t))
				continue
			}
			name := keyName(f.Key)
			if _, dup := seen[name]; dup {
				*errs = append(*errs, schemaError(childPath(path, f.Key), "duplicate field key", t))
				continue
			}
			seen[name] = struct{}{}
			if f.Node == nil {
				*errs = append(*errs, schemaError(childPath(path, f.Key), "field has nil node", t))
				continue
			}
			checkNode(f.Node, childPath(path, f.Key), errs)
		}
	case EnumNode:
		if len(t.Values) == 0 {
			*errs = append(*errs, schemaError(path, "enum has no values", t))
		}
	case LiteralNode:
		// any constant is a valid literal
	case UnionNode:
		if len(t.Alts) == 0 {
			*errs = append(*errs, schemaError(path, "union has no alternatives", t))
			return
		}
		for i, a := range t.Alts {
			if a == nil {
				*errs = append(*errs, schemaError(childPath(path, i), "union has nil alternative", t))
				continue
			}
			checkNode(a, childPath(path, i), errs)
		}
	case CustomNode:
		if (t.Fn == nil) == (t.CtxFn == nil) {
			*errs = append(*errs, schemaError(path, "custom needs exactly one callback", t))
		}
	case CondNode:
		if (t.Pred == nil) == (t.CtxPred == nil) {
			*errs = append(*errs, schemaError(path, "conditional needs exactly one predicate", t))
		}
		if t.Then == nil && t.Else == nil {
			*errs = append(*errs, schemaError(path, "conditional has no branches", t))
		}
		if t.Then != nil {
			checkNode(t.Then, childPath(path, "then"), errs)
		}
		if t.Else != nil {
			checkNode(t.Else, childPath(path, "else"), errs)
		}
	case DependentNode:
		switch {
		case t.Fn != nil && t.Cmp == nil && t.On == nil:
		case t.Fn == nil && t.Cmp != nil && validKey(t.On):
		default:
			*errs = append(*errs, schemaError(path, "dependent needs a callback or a sibling comparison", t))
		}
	case TransformNode:
		if t.Inner == nil {
			*errs = append(*errs, schemaError(path, "transform wraps nil node", t))
			return
		}
		if (t.Fn == nil) == (t.CtxFn == nil) {
			*errs = append(*errs, schemaError(path, "transform needs exactly one mapper", t))
		}
		checkNode(t.Inner, childPath(path, "inner"), errs)
	default:
		*errs = append(*errs, schemaError(path, fmt.Sprintf("unrecognized node %T", n), n))
	}
}

func checkKind(k Kind, path []any, errs *Errors) {
	if k.kind < KindText || k.kind > KindCollection {
		*errs = append(*errs, schemaError(path, fmt.Sprintf("unknown primitive kind %d", k.kind), k))
		return
	}
	var (
		min, max       *float64
		minLen, maxLen *int
	)
	for _, c := range k.checks {
		switch c.op {
		case opMin:
			v := c.num
			min = &v
		case opMax:
			v := c.num
			max = &v
		case opMinLen:
			v := c.n
			minLen = &v
		case opMaxLen:
			v := c.n
			maxLen = &v
		}
		if (c.op == opMinLen || c.op == opMaxLen || c.op == opLen) && c.n < 0 {
			*errs = append(*errs, schemaError(path, "negative length bound", k))
		}
		if c.op == opPattern && c.re == nil {
			*errs = append(*errs, schemaError(path, "pattern check without expression", k))
		}
	}
	if min != nil && max != nil && *min > *max {
		*errs = append(*errs, schemaError(path, "min bound exceeds max bound", k))
	}
	if minLen != nil && maxLen != nil && *minLen > *maxLen {
		*errs = append(*errs, schemaError(path, "min length exceeds max length", k))
	}
}

func childPath(path []any, key any) []any {
	p := make([]any, len(path)+1)
	copy(p, path)
	p[len(path)] = key
	return p
}
