package shapeval

import "context"

// Node is one variant of the closed type describing a validation rule.
// Schemas are plain immutable values; constructing one never touches the data
// being validated. The concrete variants are exported so collaborators (e.g.
// data generators) can enumerate a schema mechanically.
type Node interface {
	isNode()
}

// RequiredNode rejects absence (missing key or nil value).
type RequiredNode struct {
	Inner Node
}

// ListNode validates a homogeneous sequence.
type ListNode struct {
	Elem Node
}

// TupleNode validates a fixed-arity positional sequence.
type TupleNode struct {
	Elems []Node
}

// MapNode validates a dictionary-shaped value with typed values and,
// optionally, typed keys (Key == nil leaves keys unchecked).
type MapNode struct {
	Key   Node
	Value Node
}

// Field pairs a canonical key with the node validating its value.
type Field struct {
	Key  any // string or Sym
	Node Node
}

// ObjectNode validates a keyed collection field by field. Fields keep their
// declaration order; transforms may read earlier siblings' validated values.
type ObjectNode struct {
	Fields []Field
}

// EnumNode requires the value to canonicalize-equal one of a fixed set.
type EnumNode struct {
	Values []any
}

// LiteralNode requires the value to deep-equal one constant.
type LiteralNode struct {
	Value any
}

// UnionNode requires the value to satisfy at least one alternative; the first
// success wins.
type UnionNode struct {
	Alts []Node
}

// CustomNode runs a user predicate. Exactly one of Fn (value only) or CtxFn
// (value and root data) must be set; schema authors pick the variant
// explicitly instead of the engine sniffing arities.
type CustomNode struct {
	Fn    ValueFunc
	CtxFn ContextFunc
}

// CondNode selects a branch node from a predicate over the data. Exactly one
// of Pred (root only) or CtxPred (current value and root) must be set. The
// selected branch is implicitly required; a nil branch means "skip".
type CondNode struct {
	Pred    RootPred
	CtxPred ContextPred
	Then    Node
	Else    Node
}

// DependentNode computes a schema fragment from the data at validation time
// (Fn form), or compares this field's value against a named sibling's
// already-validated value (On/Cmp form).
type DependentNode struct {
	Fn  DependentFunc
	On  any // sibling key, string or Sym
	Cmp CompareFunc
}

// DefaultNode substitutes a value when the field is absent and not required.
// Exactly one of Value or Fn is consulted (Fn wins when set). The default is
// itself validated against Inner.
type DefaultNode struct {
	Inner Node
	Value any
	Fn    func(ctx context.Context) (any, error)
}

// TransformNode maps the value after Inner validates. Exactly one of Fn
// (value only) or CtxFn (value and the in-progress normalized enclosing
// object) must be set.
type TransformNode struct {
	Inner Node
	Fn    TransformFunc
	CtxFn TransformContextFunc
}

func (Kind) isNode()          {}
func (RequiredNode) isNode()  {}
func (ListNode) isNode()      {}
func (TupleNode) isNode()     {}
func (MapNode) isNode()       {}
func (ObjectNode) isNode()    {}
func (EnumNode) isNode()      {}
func (LiteralNode) isNode()   {}
func (UnionNode) isNode()     {}
func (CustomNode) isNode()    {}
func (CondNode) isNode()      {}
func (DependentNode) isNode() {}
func (DefaultNode) isNode()   {}
func (TransformNode) isNode() {}

// ---- constructors ----

// Required marks absence of the inner node's value as an error.
func Required(inner Node) Node { return RequiredNode{Inner: inner} }

// ListOf validates each element of a sequence against elem.
func ListOf(elem Node) Node { return ListNode{Elem: elem} }

// TupleOf validates a fixed-arity sequence position by position.
func TupleOf(elems ...Node) Node { return TupleNode{Elems: elems} }

// MapOf validates every value of a dictionary against value.
func MapOf(value Node) Node { return MapNode{Value: value} }

// MapKV validates every key and value of a dictionary.
func MapKV(key, value Node) Node { return MapNode{Key: key, Value: value} }

// Object declares a keyed collection schema from ordered fields.
func Object(fields ...Field) Node { return ObjectNode{Fields: fields} }

// F declares one object field under its canonical key (string or Sym).
func F(key any, n Node) Field { return Field{Key: key, Node: n} }

// Enum accepts any value canonicalize-equal to one of values.
func Enum(values ...any) Node { return EnumNode{Values: values} }

// Literal accepts exactly one constant value.
func Literal(value any) Node { return LiteralNode{Value: value} }

// Either accepts a value satisfying a or b; a is tried first.
func Either(a, b Node) Node { return UnionNode{Alts: []Node{a, b}} }

// OneOf accepts a value satisfying at least one alternative, tried in order.
func OneOf(alts ...Node) Node { return UnionNode{Alts: alts} }

// Custom runs fn against the value.
func Custom(fn ValueFunc) Node { return CustomNode{Fn: fn} }

// CustomCtx runs fn against the value and the root data.
func CustomCtx(fn ContextFunc) Node { return CustomNode{CtxFn: fn} }

// Cond selects then or els depending on pred over the root data.
func Cond(pred RootPred, then, els Node) Node { return CondNode{Pred: pred, Then: then, Else: els} }

// CondCtx selects then or els depending on pred over (value, root).
func CondCtx(pred ContextPred, then, els Node) Node {
	return CondNode{CtxPred: pred, Then: then, Else: els}
}

// Dependent applies a schema fragment computed by fn at validation time. The
// fragment passes through ValidateSchema before being interpreted.
func Dependent(fn DependentFunc) Node { return DependentNode{Fn: fn} }

// DependsOn compares this field's value against the named sibling's
// already-validated value using cmp.
func DependsOn(key any, cmp CompareFunc) Node { return DependentNode{On: key, Cmp: cmp} }

// Default substitutes v when the value is absent. Defaulting a required field
// is a schema-definition error and panics at construction.
func Default(inner Node, v any) Node {
	mustNotBeRequired(inner)
	return DefaultNode{Inner: inner, Value: v}
}

// DefaultFunc substitutes fn's result when the value is absent.
func DefaultFunc(inner Node, fn func(ctx context.Context) (any, error)) Node {
	mustNotBeRequired(inner)
	return DefaultNode{Inner: inner, Fn: fn}
}

// Transform maps the validated value through fn.
func Transform(inner Node, fn TransformFunc) Node { return TransformNode{Inner: inner, Fn: fn} }

// TransformCtx maps the validated value through fn, which additionally sees
// the in-progress normalized enclosing object (earlier siblings are already
// validated, defaulted, and transformed).
func TransformCtx(inner Node, fn TransformContextFunc) Node {
	return TransformNode{Inner: inner, CtxFn: fn}
}

// mustNotBeRequired enforces the Default/Required contract at construction
// time so the mistake never surfaces as a per-call validation failure.
func mustNotBeRequired(n Node) {
	if requiredInside(n) {
		panic("shapeval: default declared on a required field")
	}
}

// requiredInside reports whether n is a Required node, possibly behind
// transform or default decorators.
func requiredInside(n Node) bool {
	switch t := n.(type) {
	case RequiredNode:
		return true
	case TransformNode:
		return requiredInside(t.Inner)
	case DefaultNode:
		return requiredInside(t.Inner)
	default:
		return false
	}
}
