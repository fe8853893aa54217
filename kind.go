package shapeval

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"time"

	"github.com/katsuo-dev/shapeval/codec"
)

// KindType enumerates the primitive kinds.
type KindType int

const (
	KindText KindType = iota
	KindInteger
	KindReal
	KindBool
	KindSymbol
	KindRef
	KindAny
	KindDate
	KindTimeOfDay
	KindDateTime
	KindNaiveDateTime
	KindDuration
	KindCollection
)

func (k KindType) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindBool:
		return "boolean"
	case KindSymbol:
		return "symbol"
	case KindRef:
		return "ref"
	case KindAny:
		return "any"
	case KindDate:
		return "date"
	case KindTimeOfDay:
		return "time"
	case KindDateTime:
		return "date-time"
	case KindNaiveDateTime:
		return "naive-date-time"
	case KindDuration:
		return "duration"
	case KindCollection:
		return "collection"
	default:
		return "unknown"
	}
}

// Kind is a primitive schema node. Refinement checks attach via the
// copy-returning builder methods, leaving the receiver untouched.
type Kind struct {
	kind   KindType
	checks []check
}

// Type returns the primitive kind tag.
func (k Kind) Type() KindType { return k.kind }

type checkOp int

const (
	opMin checkOp = iota
	opMax
	opGt
	opLt
	opEq
	opNe
	opMinLen
	opMaxLen
	opLen
	opPattern
)

type check struct {
	op  checkOp
	num float64
	n   int
	val any
	re  *regexp.Regexp
}

// ---- kind constructors ----

// Text matches string values.
func Text() Kind { return Kind{kind: KindText} }

// Integer matches whole numbers; the normalized value is an int64.
func Integer() Kind { return Kind{kind: KindInteger} }

// Real matches any numeric value; the normalized value is a float64.
func Real() Kind { return Kind{kind: KindReal} }

// Boolean matches bool values.
func Boolean() Kind { return Kind{kind: KindBool} }

// Symbol matches Sym values.
func Symbol() Kind { return Kind{kind: KindSymbol} }

// Ref matches reference values (channels, functions, pointers), the shapes a
// handle to a live resource takes in Go.
func Ref() Kind { return Kind{kind: KindRef} }

// Any matches every present value.
func Any() Kind { return Kind{kind: KindAny} }

// Date matches time.Time values or "2006-01-02" strings; the normalized value
// is a time.Time at midnight UTC.
func Date() Kind { return Kind{kind: KindDate} }

// TimeOfDay matches "15:04:05" (or "15:04") strings or time.Time values.
func TimeOfDay() Kind { return Kind{kind: KindTimeOfDay} }

// DateTime matches time.Time values or zoned RFC3339 strings.
func DateTime() Kind { return Kind{kind: KindDateTime} }

// NaiveDateTime matches time.Time values or zone-less date-time strings.
func NaiveDateTime() Kind { return Kind{kind: KindNaiveDateTime} }

// Duration matches time.Duration values or Go duration strings.
func Duration() Kind { return Kind{kind: KindDuration} }

// Collection matches any map, slice, or array without inspecting its
// contents.
func Collection() Kind { return Kind{kind: KindCollection} }

// ---- refinement builders ----

func (k Kind) with(c check) Kind {
	checks := make([]check, len(k.checks)+1)
	copy(checks, k.checks)
	checks[len(k.checks)] = c
	k.checks = checks
	return k
}

// Min requires a numeric value >= n.
func (k Kind) Min(n float64) Kind { return k.with(check{op: opMin, num: n}) }

// Max requires a numeric value <= n.
func (k Kind) Max(n float64) Kind { return k.with(check{op: opMax, num: n}) }

// Gt requires a numeric value > n.
func (k Kind) Gt(n float64) Kind { return k.with(check{op: opGt, num: n}) }

// Lt requires a numeric value < n.
func (k Kind) Lt(n float64) Kind { return k.with(check{op: opLt, num: n}) }

// Eq requires the value to equal v.
func (k Kind) Eq(v any) Kind { return k.with(check{op: opEq, val: v}) }

// Ne requires the value to differ from v.
func (k Kind) Ne(v any) Kind { return k.with(check{op: opNe, val: v}) }

// MinLen requires a length >= n (strings, sequences, dictionaries).
func (k Kind) MinLen(n int) Kind { return k.with(check{op: opMinLen, n: n}) }

// MaxLen requires a length <= n.
func (k Kind) MaxLen(n int) Kind { return k.with(check{op: opMaxLen, n: n}) }

// Len requires a length of exactly n.
func (k Kind) Len(n int) Kind { return k.with(check{op: opLen, n: n}) }

// Pattern requires a string value matching the regular expression. The
// pattern is compiled eagerly; an invalid pattern panics like
// regexp.MustCompile.
func (k Kind) Pattern(expr string) Kind {
	return k.with(check{op: opPattern, re: regexp.MustCompile(expr)})
}

// ---- validation ----

// validateKind type-checks v, normalizes it, and applies refinement checks.
func validateKind(k Kind, v any, vc Context) (any, *Error) {
	nv, err := normalizeKind(k, v, vc)
	if err != nil {
		return nil, err
	}
	for _, c := range k.checks {
		if err := applyCheck(c, nv, vc); err != nil {
			return nil, err
		}
	}
	return nv, nil
}

func typeError(k Kind, v any, vc Context) *Error {
	e := coded(CodeInvalidType, map[string]any{"expected": k.kind.String(), "actual": typeName(v)})
	e.Path = vc.Path
	return e
}

func normalizeKind(k Kind, v any, vc Context) (any, *Error) {
	switch k.kind {
	case KindText:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case KindInteger:
		if i, ok := asInt(v); ok {
			return i, nil
		}
	case KindReal:
		if f, ok := asFloat(v); ok {
			return f, nil
		}
	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case KindSymbol:
		if s, ok := v.(Sym); ok {
			return s, nil
		}
	case KindRef:
		switch reflect.ValueOf(v).Kind() {
		case reflect.Chan, reflect.Func, reflect.Pointer, reflect.UnsafePointer:
			return v, nil
		}
	case KindAny:
		return v, nil
	case KindDate:
		switch t := v.(type) {
		case time.Time:
			return t, nil
		case string:
			if d, err := codec.ParseDate(t); err == nil {
				return d, nil
			}
		}
	case KindTimeOfDay:
		switch t := v.(type) {
		case time.Time:
			return t, nil
		case string:
			if d, err := codec.ParseClock(t); err == nil {
				return d, nil
			}
		}
	case KindDateTime:
		switch t := v.(type) {
		case time.Time:
			return t, nil
		case string:
			if d, err := codec.ParseRFC3339(t); err == nil {
				return d, nil
			}
		}
	case KindNaiveDateTime:
		switch t := v.(type) {
		case time.Time:
			return t, nil
		case string:
			if d, err := codec.ParseNaiveDateTime(t); err == nil {
				return d, nil
			}
		}
	case KindDuration:
		switch t := v.(type) {
		case time.Duration:
			return t, nil
		case string:
			if d, err := codec.ParseDuration(t); err == nil {
				return d, nil
			}
		}
	case KindCollection:
		switch reflect.ValueOf(v).Kind() {
		case reflect.Map, reflect.Slice, reflect.Array:
			return v, nil
		}
	}
	return nil, typeError(k, v, vc)
}

func applyCheck(c check, v any, vc Context) *Error {
	fail := func(code string, bindings map[string]any) *Error {
		e := coded(code, bindings)
		e.Path = vc.Path
		return e
	}
	switch c.op {
	case opMin:
		if f, ok := asFloat(v); ok && f < c.num {
			return fail(CodeTooSmall, map[string]any{"limit": c.num, "actual": f})
		}
	case opMax:
		if f, ok := asFloat(v); ok && f > c.num {
			return fail(CodeTooBig, map[string]any{"limit": c.num, "actual": f})
		}
	case opGt:
		if f, ok := asFloat(v); ok && f <= c.num {
			return fail(CodeNotGreater, map[string]any{"limit": c.num, "actual": f})
		}
	case opLt:
		if f, ok := asFloat(v); ok && f >= c.num {
			return fail(CodeNotLess, map[string]any{"limit": c.num, "actual": f})
		}
	case opEq:
		if !eqValues(v, c.val) {
			return fail(CodeNotEqual, map[string]any{"expected": c.val, "actual": v})
		}
	case opNe:
		if eqValues(v, c.val) {
			return fail(CodeEqual, map[string]any{"expected": c.val})
		}
	case opMinLen:
		if n, ok := lengthOf(v); ok && n < c.n {
			return fail(CodeTooShort, map[string]any{"limit": c.n, "actual": n})
		}
	case opMaxLen:
		if n, ok := lengthOf(v); ok && n > c.n {
			return fail(CodeTooLong, map[string]any{"limit": c.n, "actual": n})
		}
	case opLen:
		if n, ok := lengthOf(v); ok && n != c.n {
			return fail(CodeWrongLength, map[string]any{"limit": c.n, "actual": n})
		}
	case opPattern:
		if s, ok := v.(string); ok && !c.re.MatchString(s) {
			return fail(CodePattern, map[string]any{"pattern": c.re.String(), "actual": s})
		}
	}
	return nil
}

// ---- value coercion helpers ----

func asInt(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		if t > math.MaxInt64 {
			return 0, false
		}
		return int64(t), true
	case float64:
		if math.Trunc(t) == t && !math.IsInf(t, 0) {
			return int64(t), true
		}
	case float32:
		f := float64(t)
		if math.Trunc(f) == f {
			return int64(f), true
		}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, true
		}
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		if f, err := strconv.ParseFloat(t.String(), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func eqValues(a, b any) bool {
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			return af == bf
		}
	}
	return reflect.DeepEqual(a, b)
}

func lengthOf(v any) (int, bool) {
	switch t := v.(type) {
	case string:
		return len([]rune(t)), true
	case Sym:
		return len([]rune(string(t))), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "text"
	case Sym:
		return "symbol"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64, json.Number:
		return "number"
	case time.Time:
		return "date-time"
	case time.Duration:
		return "duration"
	case map[string]any, map[any]any:
		return "object"
	case []any:
		return "list"
	default:
		return reflect.TypeOf(v).String()
	}
}
