package shapeval

import (
	"context"
	"fmt"
	"strings"
)

// validateUnion tries the alternatives in order; the first success wins. On
// total failure a single error names every attempted shape.
func validateUnion(ctx context.Context, t UnionNode, v any, vc Context) (any, Errors) {
	for _, alt := range t.Alts {
		if out, errs := validateValue(ctx, alt, v, vc); len(errs) == 0 {
			return out, nil
		}
	}
	names := make([]any, len(t.Alts))
	for i, alt := range t.Alts {
		names[i] = describe(alt)
	}
	e := coded(CodeNoMatch, map[string]any{"expected": names, "actual": typeName(v)})
	e.Path = vc.Path
	return nil, Errors{e}
}

// validateEnum canonicalizes both sides to text before the membership check
// so symbol-typed and text-typed members interoperate.
func validateEnum(t EnumNode, v any, vc Context) (any, Errors) {
	cv := canonText(v)
	for _, allowed := range t.Values {
		if canonText(allowed) == cv {
			return v, nil
		}
	}
	names := make([]any, len(t.Values))
	for i, allowed := range t.Values {
		names[i] = canonText(allowed)
	}
	e := coded(CodeInvalidEnum, map[string]any{"allowed": names, "actual": cv})
	e.Path = vc.Path
	return nil, Errors{e}
}

func validateLiteral(t LiteralNode, v any, vc Context) (any, Errors) {
	if eqValues(v, t.Value) {
		return v, nil
	}
	e := coded(CodeNotEqual, map[string]any{"expected": t.Value, "actual": v})
	e.Path = vc.Path
	return nil, Errors{e}
}

// canonText is the textual canonical form used for enum membership.
func canonText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case Sym:
		return string(t)
	default:
		return stringify(v)
	}
}

// describe names a node's expected shape for error messages.
func describe(n Node) string {
	switch t := n.(type) {
	case nil:
		return "nil"
	case Kind:
		return t.kind.String()
	case RequiredNode:
		return describe(t.Inner)
	case ListNode:
		return "list of " + describe(t.Elem)
	case TupleNode:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = describe(e)
		}
		return "tuple(" + strings.Join(parts, ", ") + ")"
	case MapNode:
		if t.Key != nil {
			return "map of " + describe(t.Key) + " to " + describe(t.Value)
		}
		return "map of " + describe(t.Value)
	case ObjectNode:
		return "object"
	case EnumNode:
		parts := make([]string, len(t.Values))
		for i, v := range t.Values {
			parts[i] = canonText(v)
		}
		return "enum(" + strings.Join(parts, ", ") + ")"
	case LiteralNode:
		return fmt.Sprintf("literal %v", t.Value)
	case UnionNode:
		parts := make([]string, len(t.Alts))
		for i, a := range t.Alts {
			parts[i] = describe(a)
		}
		return strings.Join(parts, " | ")
	case CustomNode:
		return "custom"
	case CondNode:
		return "conditional"
	case DependentNode:
		return "dependent"
	case DefaultNode:
		return describe(t.Inner)
	case TransformNode:
		return describe(t.Inner)
	default:
		return fmt.Sprintf("%T", n)
	}
}
