package shapeval_test

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/katsuo-dev/shapeval"
)

func TestObject_SiblingErrorsAccumulate(t *testing.T) {
	s := shapeval.Object(
		shapeval.F("a", shapeval.Required(shapeval.Integer())),
		shapeval.F("b", shapeval.Required(shapeval.Text())),
		shapeval.F("c", shapeval.Boolean()),
	)
	_, err := shapeval.Validate(context.Background(), s, map[string]any{"c": true})
	errs, ok := shapeval.AsErrors(err)
	if !ok || len(errs) != 2 {
		t.Fatalf("expected two sibling errors, got %v", err)
	}
	if errs[0].Key != "a" || errs[1].Key != "b" {
		t.Fatalf("expected declaration order a then b, got %v then %v", errs[0].Key, errs[1].Key)
	}
	for _, e := range errs {
		if len(e.Errors) != 1 || e.Errors[0].Code != shapeval.CodeRequired {
			t.Fatalf("expected a single required leaf under %v, got %#v", e.Key, e.Errors)
		}
	}
}

func TestObject_NestedPathAddressing(t *testing.T) {
	s := shapeval.Object(
		shapeval.F("user", shapeval.Required(shapeval.Object(
			shapeval.F("name", shapeval.Required(shapeval.Text())),
		))),
	)
	_, err := shapeval.Validate(context.Background(), s, map[string]any{"user": map[string]any{}})
	errs, _ := shapeval.AsErrors(err)
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", err)
	}
	leaf := errs[0].Errors[0].Errors[0]
	if !reflect.DeepEqual(leaf.Path, []any{"user", "name"}) {
		t.Fatalf("expected path [user name], got %v", leaf.Path)
	}
}

func TestObject_NonObjectInput(t *testing.T) {
	s := shapeval.Object(shapeval.F("a", shapeval.Text()))
	_, err := shapeval.Validate(context.Background(), s, "nope")
	errs, _ := shapeval.AsErrors(err)
	if len(errs) != 1 || errs[0].Code != shapeval.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %v", err)
	}
	if errs[0].Content["expected"] != "object" {
		t.Fatalf("expected object in content, got %#v", errs[0].Content)
	}
}

func TestObject_PermissiveRewritesAlternateSpelling(t *testing.T) {
	s := shapeval.Object(shapeval.F("name", shapeval.Required(shapeval.Text())))
	data := map[any]any{shapeval.Sym("name"): "x", "extra": 1}
	out, err := shapeval.Validate(context.Background(), s, data, shapeval.WithMode(shapeval.Permissive))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := out.(map[any]any)
	if _, lingers := m[shapeval.Sym("name")]; lingers {
		t.Fatalf("alternate key spelling lingered: %#v", m)
	}
	if m["name"] != "x" || m["extra"] != 1 {
		t.Fatalf("permissive output mismatch: %#v", m)
	}
}

func TestObject_TransformSeesEarlierSiblings(t *testing.T) {
	s := shapeval.Object(
		shapeval.F("first", shapeval.Required(shapeval.Text())),
		shapeval.F("greeting", shapeval.TransformCtx(shapeval.Text(),
			func(ctx context.Context, v, acc any) (any, error) {
				first, _ := acc.(map[string]any)["first"].(string)
				return fmt.Sprintf("%s, %s", v, first), nil
			})),
	)
	out, err := shapeval.Validate(context.Background(), s, map[string]any{
		"first":    "Ada",
		"greeting": "hello",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.(map[string]any)["greeting"]; got != "hello, Ada" {
		t.Fatalf("expected derived greeting, got %#v", got)
	}
}

func TestObject_TransformOnAbsentDefaultedField(t *testing.T) {
	s := shapeval.Object(
		shapeval.F("n", shapeval.Transform(shapeval.Default(shapeval.Integer(), 2),
			func(ctx context.Context, v any) (any, error) {
				return v.(int64) * 10, nil
			})),
	)
	out, err := shapeval.Validate(context.Background(), s, map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.(map[string]any)["n"]; got != int64(20) {
		t.Fatalf("expected default to flow through transform, got %#v", got)
	}
}

func TestObject_DefaultValueValidatedByInner(t *testing.T) {
	s := shapeval.Object(shapeval.F("n", shapeval.Default(shapeval.Integer().Min(10), 5)))
	_, err := shapeval.Validate(context.Background(), s, map[string]any{})
	errs, _ := shapeval.AsErrors(err)
	if len(errs) != 1 || errs[0].Errors[0].Code != shapeval.CodeTooSmall {
		t.Fatalf("expected too_small for out-of-range default, got %v", err)
	}
}

func TestObject_DefaultFunc(t *testing.T) {
	s := shapeval.Object(shapeval.F("id", shapeval.DefaultFunc(shapeval.Text(),
		func(ctx context.Context) (any, error) { return "generated", nil })))
	out, err := shapeval.Validate(context.Background(), s, map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.(map[string]any)["id"] != "generated" {
		t.Fatalf("expected generated default, got %#v", out)
	}
}

func TestObject_OptionalFieldSkippedWhenAbsent(t *testing.T) {
	s := shapeval.Object(shapeval.F("note", shapeval.Text()))
	out, err := shapeval.Validate(context.Background(), s, map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := out.(map[string]any)["note"]; present {
		t.Fatalf("optional absent field leaked into output: %#v", out)
	}
}
