// Package shapeval provides:
//
//   - Schema-driven validation of nested data (objects, lists, tuples, maps)
//     returning either a normalized copy or a path-addressed error tree
//   - A closed schema node model (Kind, Required, ListOf, TupleOf, MapOf,
//     Object, Enum, Literal, Either/OneOf, Custom, Cond, Dependent, Default,
//     Transform) built from plain immutable values
//   - A stable error model via Error/Errors (path, code, templated message,
//     raw bindings) with a serialization projection
//   - Strict vs Permissive handling of fields the schema does not declare
//   - A meta-validator (ValidateSchema) guarding dynamically-computed fragments
//
// Design policy:
//   - Keep the public API in the root package; put the message dictionary under
//     i18n/ and temporal parsing under codec/.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := shapeval.Object(
//	    shapeval.F("id", shapeval.Required(shapeval.Text())),
//	    shapeval.F("tags", shapeval.ListOf(shapeval.Text())),
//	)
//	out, err := shapeval.Validate(ctx, s, data)
//	out, err = shapeval.Validate(ctx, s, data, shapeval.WithMode(shapeval.Permissive))
package shapeval
