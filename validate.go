package shapeval

import (
	"context"
	"fmt"
)

// Validate checks data against the schema node and returns the normalized
// copy, an Errors tree on validation failure, or ErrInvalidMode when the mode
// option is not a recognized value. Validation never mutates the schema or
// the input; each call is an independent, stateless computation.
func Validate(ctx context.Context, n Node, data any, opts ...Option) (any, error) {
	o := options{mode: Strict}
	for _, opt := range opts {
		opt(&o)
	}
	if o.mode != Strict && o.mode != Permissive {
		return nil, ErrInvalidMode
	}
	vc := Context{Root: data, Mode: o.mode}
	out, errs := validateValue(ctx, n, data, vc)
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// MustValidate returns the normalized data or panics with the indented
// multi-line rendering of the error tree.
func MustValidate(ctx context.Context, n Node, data any, opts ...Option) any {
	out, err := Validate(ctx, n, data, opts...)
	if err != nil {
		if es, ok := AsErrors(err); ok {
			panic(fmt.Sprintf("shapeval: validation failed\n%s", es.Render()))
		}
		panic(err)
	}
	return out
}

// SafeValidate returns (zero, false) instead of an error on failure.
func SafeValidate(ctx context.Context, n Node, data any, opts ...Option) (any, bool) {
	out, err := Validate(ctx, n, data, opts...)
	if err != nil {
		return nil, false
	}
	return out, true
}

// Is reports whether data conforms to the schema node.
func Is(ctx context.Context, n Node, data any) bool {
	_, err := Validate(ctx, n, data)
	return err == nil
}

// validateValue dispatches a present value against a node. Absence semantics
// (missing keys, defaults, required) live in the object field loop; here a
// nil value is simply a value.
func validateValue(ctx context.Context, n Node, v any, vc Context) (any, Errors) {
	switch t := n.(type) {
	case Kind:
		nv, err := validateKind(t, v, vc)
		if err != nil {
			return nil, Errors{err}
		}
		return nv, nil
	case RequiredNode:
		if v == nil {
			return nil, Errors{requiredError(t.Inner, vc)}
		}
		return validateValue(ctx, t.Inner, v, vc)
	case DefaultNode:
		if v == nil {
			return applyDefault(ctx, t, vc)
		}
		return validateValue(ctx, t.Inner, v, vc)
	case ListNode:
		return validateList(ctx, t, v, vc)
	case TupleNode:
		return validateTuple(ctx, t, v, vc)
	case MapNode:
		return validateMap(ctx, t, v, vc)
	case ObjectNode:
		return validateObject(ctx, t, v, vc)
	case EnumNode:
		return validateEnum(t, v, vc)
	case LiteralNode:
		return validateLiteral(t, v, vc)
	case UnionNode:
		return validateUnion(ctx, t, v, vc)
	case CustomNode:
		return validateCustom(ctx, t, v, vc)
	case CondNode:
		branch := condBranch(ctx, t, v, vc)
		if branch == nil {
			return v, nil
		}
		return validateValue(ctx, branch, v, vc)
	case DependentNode:
		return validateDependent(ctx, t, v, vc)
	case TransformNode:
		out, errs := validateValue(ctx, t.Inner, v, vc)
		if len(errs) > 0 {
			return nil, errs
		}
		return applyTransform(ctx, t, out, vc)
	default:
		e := coded(CodeInvalidSchema, map[string]any{"fragment": fmt.Sprintf("%T", n)})
		e.Path = vc.Path
		return nil, Errors{e}
	}
}

func requiredError(inner Node, vc Context) *Error {
	e := coded(CodeRequired, map[string]any{"expected": describe(inner)})
	e.Path = vc.Path
	return e
}

func applyDefault(ctx context.Context, t DefaultNode, vc Context) (any, Errors) {
	dv := t.Value
	if t.Fn != nil {
		v, err := t.Fn(ctx)
		if err != nil {
			e := NewError(err.Error(), nil)
			e.Code = CodeCustom
			e.Path = vc.Path
			return nil, Errors{e}
		}
		dv = v
	}
	// the default value passes through the inner node so refinements and
	// normalization apply to it as well
	return validateValue(ctx, t.Inner, dv, vc)
}

func condBranch(ctx context.Context, t CondNode, v any, vc Context) Node {
	var take bool
	if t.CtxPred != nil {
		take = t.CtxPred(ctx, v, vc.Root)
	} else if t.Pred != nil {
		take = t.Pred(ctx, vc.Root)
	}
	if take {
		return t.Then
	}
	return t.Else
}

func validateCustom(ctx context.Context, t CustomNode, v any, vc Context) (any, Errors) {
	var r Result
	if t.CtxFn != nil {
		r = t.CtxFn(ctx, v, vc.Root)
	} else {
		r = t.Fn(ctx, v)
	}
	if !r.OK() {
		return nil, Errors{failError(r, vc)}
	}
	return v, nil
}

// validateDependent evaluates a Dependent node against a present value; the
// absent-field counterpart lives in validateAbsent.
func validateDependent(ctx context.Context, t DependentNode, v any, vc Context) (any, Errors) {
	if t.Cmp != nil {
		var other any
		if vc.acc != nil {
			other, _ = lookupField(vc.acc, t.On)
		}
		if r := t.Cmp(ctx, v, other); !r.OK() {
			return nil, Errors{failError(r, vc)}
		}
		return v, nil
	}
	frag, res := t.Fn(ctx, v, vc.Root)
	if res != nil {
		return nil, Errors{failError(*res, vc)}
	}
	if frag == nil {
		return v, nil
	}
	if errs := invalidFragment(frag, vc); errs != nil {
		return nil, errs
	}
	return validateValue(ctx, frag, v, vc)
}

func applyTransform(ctx context.Context, t TransformNode, v any, vc Context) (any, Errors) {
	var (
		out any
		err error
	)
	if t.CtxFn != nil {
		var acc any
		if vc.acc != nil {
			acc = vc.acc.value()
		}
		out, err = t.CtxFn(ctx, v, acc)
	} else {
		out, err = t.Fn(ctx, v)
	}
	if err != nil {
		if es, ok := AsErrors(err); ok {
			return nil, es
		}
		e := NewError(err.Error(), nil)
		e.Code = CodeCustom
		e.Path = vc.Path
		return nil, Errors{e}
	}
	return out, nil
}
