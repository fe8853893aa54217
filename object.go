package shapeval

import "context"

// validateObject walks one keyed collection. Declared fields are processed in
// declaration order so a later field's transform can read earlier siblings
// from the in-progress output. Sibling errors accumulate; a failing field
// never short-circuits the rest of the object.
func validateObject(ctx context.Context, o ObjectNode, v any, vc Context) (any, Errors) {
	src, ok := asDict(v)
	if !ok {
		e := coded(CodeInvalidType, map[string]any{"expected": "object", "actual": typeName(v)})
		e.Path = vc.Path
		return nil, Errors{e}
	}

	out := newOutput(o, src, vc.Mode)
	var errs Errors
	for _, f := range o.Fields {
		val, found := lookupField(src, f.Key)
		fvc := vc.child(f.Key).withAcc(out)
		fv, include, ferrs := validateField(ctx, f.Node, val, found, fvc)
		if len(ferrs) > 0 {
			errs = append(errs, Wrap(fvc.Path, f.Key, ferrs...))
			continue
		}
		if !include {
			continue
		}
		if vc.Mode == Permissive {
			// rewrite under the canonical key; the alternate spelling from
			// the input copy must not linger beside it
			out.delete(f.Key)
		}
		out.set(f.Key, fv)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out.value(), nil
}

// newOutput picks the output container. Strict mode is schema-driven: plain
// string keys produce a map[string]any, any symbolic canonical key forces
// map[any]any. Permissive mode starts from a copy of the raw input so
// undeclared fields survive untouched.
func newOutput(o ObjectNode, src dict, mode Mode) dict {
	if mode == Permissive {
		return src.clone()
	}
	for _, f := range o.Fields {
		if _, ok := f.Key.(string); !ok {
			return anyDict{}
		}
	}
	return stringDict{}
}

// validateField applies field-level absence semantics before delegating to
// validateValue. A missing key and an explicit nil are both absence. include
// reports whether the field contributes a value to the output.
func validateField(ctx context.Context, n Node, v any, found bool, vc Context) (any, bool, Errors) {
	if !found || v == nil {
		return validateAbsent(ctx, n, vc)
	}
	out, errs := validateValue(ctx, n, v, vc)
	return out, len(errs) == 0, errs
}

// validateAbsent resolves what absence means for a node: an error for
// required fields, a substituted value for defaulted ones, and a silent skip
// for everything else.
func validateAbsent(ctx context.Context, n Node, vc Context) (any, bool, Errors) {
	switch t := n.(type) {
	case RequiredNode:
		return nil, false, Errors{requiredError(t.Inner, vc)}
	case DefaultNode:
		out, errs := applyDefault(ctx, t, vc)
		return out, len(errs) == 0, errs
	case CondNode:
		branch := condBranch(ctx, t, nil, vc)
		if branch == nil {
			return nil, false, nil
		}
		// the selected branch is implicitly required
		return nil, false, Errors{requiredError(branch, vc)}
	case DependentNode:
		if t.Cmp != nil {
			var other any
			if vc.acc != nil {
				other, _ = lookupField(vc.acc, t.On)
			}
			if r := t.Cmp(ctx, nil, other); !r.OK() {
				return nil, false, Errors{failError(r, vc)}
			}
			return nil, false, nil
		}
		frag, res := t.Fn(ctx, nil, vc.Root)
		if res != nil {
			return nil, false, Errors{failError(*res, vc)}
		}
		if frag == nil {
			return nil, false, nil
		}
		if errs := invalidFragment(frag, vc); errs != nil {
			return nil, false, errs
		}
		return validateAbsent(ctx, frag, vc)
	case TransformNode:
		out, include, errs := validateAbsent(ctx, t.Inner, vc)
		if len(errs) > 0 || !include {
			return out, include, errs
		}
		nv, terrs := applyTransform(ctx, t, out, vc)
		return nv, len(terrs) == 0, terrs
	default:
		return nil, false, nil
	}
}

// invalidFragment meta-validates a dynamically-produced schema fragment
// before the engine interprets it.
func invalidFragment(frag Node, vc Context) Errors {
	err := ValidateSchema(frag)
	if err == nil {
		return nil
	}
	inner, _ := AsErrors(err)
	e := coded(CodeInvalidSchema, map[string]any{"fragment": describe(frag)})
	e.Path = vc.Path
	e.Errors = inner.Rebase(vc.Path)
	return Errors{e}
}
