package shapeval

import "context"

// Result is the outcome of a user-supplied callback: either success or a
// failure descriptor made of a message template and substitution bindings.
// The engine renders %{name} tokens into the final message and stores the raw
// bindings as the error's Content.
type Result struct {
	ok       bool
	Template string
	Bindings map[string]any
}

// Pass reports callback success.
func Pass() Result { return Result{ok: true} }

// Fail reports callback failure with a message template and bindings.
func Fail(template string, bindings map[string]any) Result {
	return Result{Template: template, Bindings: bindings}
}

// OK reports whether the result is a success.
func (r Result) OK() bool { return r.ok }

// ValueFunc is the 1-arg custom callback form: it sees the value in scope.
type ValueFunc func(ctx context.Context, v any) Result

// ContextFunc is the 2-arg custom callback form: it sees the value in scope
// and the unchanged root data. For list elements the value is the element,
// not the enclosing object.
type ContextFunc func(ctx context.Context, v, root any) Result

// RootPred is the 1-arg conditional predicate form over the root data.
type RootPred func(ctx context.Context, root any) bool

// ContextPred is the 2-arg conditional predicate form over (value, root).
type ContextPred func(ctx context.Context, v, root any) bool

// DependentFunc computes a schema fragment from the data in scope. Returning
// (nil, nil) accepts the value without further validation; (node, nil)
// applies node after it passes ValidateSchema; a non-nil Result reports a
// failure directly.
type DependentFunc func(ctx context.Context, v, root any) (Node, *Result)

// CompareFunc compares this field's value against a sibling's
// already-validated value.
type CompareFunc func(ctx context.Context, v, other any) Result

// TransformFunc is the 1-arg post-validation mapper form.
type TransformFunc func(ctx context.Context, v any) (any, error)

// TransformContextFunc is the 2-arg mapper form; acc is the in-progress
// normalized enclosing object, so a transform can derive its value from
// earlier siblings.
type TransformContextFunc func(ctx context.Context, v, acc any) (any, error)

// failError turns a failure Result into a leaf error at the current path.
func failError(r Result, vc Context) *Error {
	e := NewError(r.Template, r.Bindings)
	e.Code = CodeCustom
	e.Path = vc.Path
	return e
}
