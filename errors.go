package shapeval

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/katsuo-dev/shapeval/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired      = "required"
	CodeInvalidType   = "invalid_type"
	CodeInvalidEnum   = "invalid_enum"
	CodeNotEqual      = "not_equal"
	CodeEqual         = "equal"
	CodeArityMismatch = "arity_mismatch"
	CodeNoMatch       = "no_match"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeNotGreater    = "not_greater"
	CodeNotLess       = "not_less"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeWrongLength   = "wrong_length"
	CodePattern       = "pattern"
	CodeCustom        = "custom"
	CodeInvalidSchema = "invalid_schema"
)

// Error is one node of a validation error tree. A leaf carries Message and
// Content (the raw template bindings); a parent carries Key and Errors and
// typically no Message. The tree mirrors the schema shape at the point of
// failure.
type Error struct {
	Path    []any          // keys from the root to the failing location
	Key     any            // field key, set on parent errors wrapping a field failure
	Code    string         // machine-readable code, one of the consts above
	Message string         // rendered human message (leaf errors)
	Content map[string]any // raw template bindings for machine consumption
	Errors  []*Error       // children, set on parent errors
}

// Errors is a list of sibling error trees that implements error.
type Errors []*Error

// NewError builds a leaf error from a message template and bindings.
// Tokens of the form %{name} are substituted with stringified binding values;
// the raw bindings are retained in Content.
func NewError(template string, bindings map[string]any) *Error {
	return &Error{Message: RenderTemplate(template, bindings), Content: bindings}
}

// coded builds a leaf error whose template is resolved from the built-in code
// dictionary via i18n.
func coded(code string, bindings map[string]any) *Error {
	e := NewError(i18n.T(code, nil), bindings)
	e.Code = code
	return e
}

// Wrap builds a parent error holding children under (path, key).
func Wrap(path []any, key any, children ...*Error) *Error {
	return &Error{Path: path, Key: key, Errors: children}
}

// Rebase splices an error tree computed against a local root under a caller
// path prefix, recursively.
func (e *Error) Rebase(prefix []any) *Error {
	out := *e
	out.Path = append(append([]any{}, prefix...), e.Path...)
	if len(e.Errors) > 0 {
		out.Errors = make([]*Error, len(e.Errors))
		for i, c := range e.Errors {
			out.Errors[i] = c.Rebase(prefix)
		}
	}
	return &out
}

// Rebase applies Error.Rebase to every tree in the list.
func (es Errors) Rebase(prefix []any) Errors {
	out := make(Errors, len(es))
	for i, e := range es {
		out[i] = e.Rebase(prefix)
	}
	return out
}

// RenderTemplate substitutes %{name} tokens in template with stringified
// binding values. Unknown tokens are left as-is.
func RenderTemplate(template string, bindings map[string]any) string {
	if len(bindings) == 0 || !strings.Contains(template, "%{") {
		return template
	}
	var b strings.Builder
	rest := template
	for {
		i := strings.Index(rest, "%{")
		if i < 0 {
			b.WriteString(rest)
			break
		}
		j := strings.Index(rest[i:], "}")
		if j < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:i])
		name := rest[i+2 : i+j]
		if v, ok := bindings[name]; ok {
			b.WriteString(stringify(v))
		} else {
			b.WriteString(rest[i : i+j+1])
		}
		rest = rest[i+j+1:]
	}
	return b.String()
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		return t
	case Sym:
		return string(t)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = stringify(e)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Error summarizes the first few entries.
func (es Errors) Error() string {
	if len(es) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(es)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		es[i].summarize(b)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

func (e *Error) summarize(b *strings.Builder) {
	if len(e.Errors) > 0 {
		e.Errors[0].summarize(b)
		return
	}
	if e.Message != "" {
		b.WriteString(e.Message)
	} else if e.Code != "" {
		b.WriteString(e.Code)
	} else {
		b.WriteString("invalid")
	}
	if len(e.Path) > 0 {
		fmt.Fprintf(b, " at %s", renderPath(e.Path))
	}
}

func renderPath(path []any) string {
	b := &strings.Builder{}
	for _, k := range path {
		b.WriteString("/")
		b.WriteString(stringify(k))
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// Render produces an indented multi-line rendering of every error tree,
// suitable for the panic payload of the Must* variants.
func (es Errors) Render() string {
	b := &strings.Builder{}
	for _, e := range es {
		e.render(b, 0)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (e *Error) render(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	switch {
	case len(e.Errors) > 0:
		fmt.Fprintf(b, "%s%s:\n", indent, renderPath(e.Path))
		for _, c := range e.Errors {
			c.render(b, depth+1)
		}
	case e.Message != "":
		fmt.Fprintf(b, "%s%s\n", indent, e.Message)
	default:
		fmt.Fprintf(b, "%s%s\n", indent, e.Code)
	}
}

// ToMap projects the error trees into plain nested records. Symbol keys
// stringify; fixed-size binding values flatten to ordered sequences.
func (es Errors) ToMap() []map[string]any {
	out := make([]map[string]any, len(es))
	for i, e := range es {
		out[i] = e.ToMap()
	}
	return out
}

// ToMap projects a single error tree into a plain nested record.
func (e *Error) ToMap() map[string]any {
	m := map[string]any{}
	if len(e.Path) > 0 {
		path := make([]any, len(e.Path))
		for i, k := range e.Path {
			path[i] = plainValue(k)
		}
		m["path"] = path
	}
	if e.Key != nil {
		m["key"] = plainValue(e.Key)
	}
	if e.Code != "" {
		m["code"] = e.Code
	}
	if e.Message != "" {
		m["message"] = e.Message
	}
	if len(e.Content) > 0 {
		content := make(map[string]any, len(e.Content))
		keys := make([]string, 0, len(e.Content))
		for k := range e.Content {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			content[k] = plainValue(e.Content[k])
		}
		m["content"] = content
	}
	if len(e.Errors) > 0 {
		children := make([]map[string]any, len(e.Errors))
		for i, c := range e.Errors {
			children[i] = c.ToMap()
		}
		m["errors"] = children
	}
	return m
}

// plainValue converts binding values into plainly serializable shapes.
func plainValue(v any) any {
	switch t := v.(type) {
	case Sym:
		return string(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plainValue(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[stringify(k)] = plainValue(e)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON serializes the ToMap projection.
func (es Errors) MarshalJSON() ([]byte, error) {
	return json.Marshal(es.ToMap())
}

// AsErrors extracts Errors from an error using errors.As internally.
func AsErrors(err error) (Errors, bool) {
	if err == nil {
		return nil, false
	}
	var es Errors
	if errors.As(err, &es) {
		return es, true
	}
	return nil, false
}

// ErrInvalidMode reports a caller-contract violation: an unrecognized Mode was
// passed via WithMode. It is returned directly, never as part of an Errors
// tree.
var ErrInvalidMode = errors.New("shapeval: invalid mode")
