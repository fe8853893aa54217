package shapeval

// Mode controls what happens to input fields the schema does not declare.
type Mode int

const (
	// Strict drops undeclared fields; the output is a filtered projection of
	// schema-declared fields.
	Strict Mode = iota
	// Permissive preserves undeclared fields; the output is the input merged
	// with the validated fields.
	Permissive
)

// Option configures a Validate call.
type Option func(*options)

type options struct {
	mode Mode
}

// WithMode selects Strict or Permissive handling of undeclared fields.
func WithMode(m Mode) Option {
	return func(o *options) { o.mode = m }
}

// Context threads the per-call validation state down the recursion: the
// unchanged root data, the current path (used solely for error addressing,
// never for lookup), the active mode, and the in-progress normalized
// enclosing object consumed by dependent transforms and sibling comparisons.
type Context struct {
	Root any
	Path []any
	Mode Mode
	acc  dict
}

// child extends the path by one key. The underlying array is copied so sibling
// recursions never alias each other's paths.
func (c Context) child(key any) Context {
	p := make([]any, len(c.Path)+1)
	copy(p, c.Path)
	p[len(c.Path)] = key
	c.Path = p
	return c
}

// withAcc rebinds the in-progress normalized object visible to callbacks.
func (c Context) withAcc(acc dict) Context {
	c.acc = acc
	return c
}
