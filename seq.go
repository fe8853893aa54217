package shapeval

import (
	"context"
	"sort"
)

// validateList validates a homogeneous sequence. The element becomes the
// current value of the recursion (so contextual callbacks see the element,
// not the enclosing object) while Root stays unchanged. The first failing
// element stops the list and yields that single error, addressed at the list
// field rather than at an index. Keyed collections accumulate instead.
func validateList(ctx context.Context, t ListNode, v any, vc Context) (any, Errors) {
	items, ok := v.([]any)
	if !ok {
		e := coded(CodeInvalidType, map[string]any{"expected": "list", "actual": typeName(v)})
		e.Path = vc.Path
		return nil, Errors{e}
	}
	out := make([]any, len(items))
	for i, el := range items {
		nv, errs := validateValue(ctx, t.Elem, el, vc)
		if len(errs) > 0 {
			return nil, errs
		}
		out[i] = nv
	}
	return out, nil
}

// validateTuple checks arity first; a mismatch reports expected vs actual
// counts and skips all positional checks. Positional validation halts on the
// first failure with the failing index recorded in the error content.
func validateTuple(ctx context.Context, t TupleNode, v any, vc Context) (any, Errors) {
	items, ok := v.([]any)
	if !ok {
		e := coded(CodeInvalidType, map[string]any{"expected": "tuple", "actual": typeName(v)})
		e.Path = vc.Path
		return nil, Errors{e}
	}
	if len(items) != len(t.Elems) {
		e := coded(CodeArityMismatch, map[string]any{"expected": len(t.Elems), "actual": len(items)})
		e.Path = vc.Path
		return nil, Errors{e}
	}
	out := make([]any, len(items))
	for i, el := range items {
		nv, errs := validateValue(ctx, t.Elems[i], el, vc)
		if len(errs) > 0 {
			parent := &Error{
				Path:    vc.Path,
				Content: map[string]any{"index": i},
				Errors:  errs,
			}
			return nil, Errors{parent}
		}
		out[i] = nv
	}
	return out, nil
}

// validateMap validates a dictionary with typed values (and optionally typed
// keys). Entries are visited in sorted key order for deterministic error
// selection; per-entry errors accumulate like object fields do.
func validateMap(ctx context.Context, t MapNode, v any, vc Context) (any, Errors) {
	src, ok := asDict(v)
	if !ok {
		e := coded(CodeInvalidType, map[string]any{"expected": "map", "actual": typeName(v)})
		e.Path = vc.Path
		return nil, Errors{e}
	}
	keys := src.keys()
	sort.Slice(keys, func(i, j int) bool { return keyName(keys[i]) < keyName(keys[j]) })

	out := src.clone()
	var errs Errors
	for _, k := range keys {
		val, _ := src.get(k)
		kvc := vc.child(k)
		if t.Key != nil {
			if _, kerrs := validateValue(ctx, t.Key, k, kvc); len(kerrs) > 0 {
				errs = append(errs, Wrap(kvc.Path, k, kerrs...))
				continue
			}
		}
		nv, verrs := validateValue(ctx, t.Value, val, kvc)
		if len(verrs) > 0 {
			errs = append(errs, Wrap(kvc.Path, k, verrs...))
			continue
		}
		out.set(k, nv)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out.value(), nil
}
