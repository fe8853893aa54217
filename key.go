package shapeval

// Sym is the symbol-like key universe. Plain string is the text-like one.
// A schema field declared with one representation accepts data keyed by
// either; output always uses the declared (canonical) representation.
type Sym string

// altKey returns the equivalent key in the other representation, or nil when
// the key has no alternate form.
func altKey(k any) any {
	switch t := k.(type) {
	case string:
		return Sym(t)
	case Sym:
		return string(t)
	default:
		return nil
	}
}

// keyName returns the textual name shared by both representations.
func keyName(k any) string {
	switch t := k.(type) {
	case string:
		return t
	case Sym:
		return string(t)
	default:
		return stringify(k)
	}
}

func validKey(k any) bool {
	switch k.(type) {
	case string, Sym:
		return true
	default:
		return false
	}
}

// asDict views v as a dictionary-shaped value. map[string]any (the shape the
// JSON/YAML helpers produce) and map[any]any (mixed key universes) are both
// accepted.
func asDict(v any) (dict, bool) {
	switch t := v.(type) {
	case map[string]any:
		return stringDict(t), true
	case map[any]any:
		return anyDict(t), true
	default:
		return nil, false
	}
}

// dict abstracts over the two accepted dictionary container types so the
// traversal performs a single lookup-with-fallback per field instead of
// special-casing key universes throughout.
type dict interface {
	get(k any) (any, bool)
	set(k, v any)
	delete(k any)
	keys() []any
	clone() dict
	value() any
}

type stringDict map[string]any

func (d stringDict) get(k any) (any, bool) {
	v, ok := d[keyName(k)]
	return v, ok
}

func (d stringDict) set(k, v any) { d[keyName(k)] = v }

func (d stringDict) delete(k any) { delete(d, keyName(k)) }

func (d stringDict) keys() []any {
	out := make([]any, 0, len(d))
	for k := range d {
		out = append(out, k)
	}
	return out
}

func (d stringDict) clone() dict {
	out := make(stringDict, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func (d stringDict) value() any { return map[string]any(d) }

type anyDict map[any]any

func (d anyDict) get(k any) (any, bool) {
	if v, ok := d[k]; ok {
		return v, true
	}
	if alt := altKey(k); alt != nil {
		if v, ok := d[alt]; ok {
			return v, true
		}
	}
	return nil, false
}

func (d anyDict) set(k, v any) {
	d[k] = v
}

func (d anyDict) delete(k any) {
	delete(d, k)
	if alt := altKey(k); alt != nil {
		delete(d, alt)
	}
}

func (d anyDict) keys() []any {
	out := make([]any, 0, len(d))
	for k := range d {
		out = append(out, k)
	}
	return out
}

func (d anyDict) clone() dict {
	out := make(anyDict, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func (d anyDict) value() any { return map[any]any(d) }

// lookupField resolves a field value using the canonical key first and the
// alternate representation second.
func lookupField(d dict, canonical any) (any, bool) {
	if v, ok := d.get(canonical); ok {
		return v, true
	}
	if alt := altKey(canonical); alt != nil {
		if v, ok := d.get(alt); ok {
			return v, true
		}
	}
	return nil, false
}
