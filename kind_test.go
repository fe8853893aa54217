package shapeval_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/katsuo-dev/shapeval"
)

func validateOne(t *testing.T, n shapeval.Node, v any) (any, shapeval.Errors) {
	t.Helper()
	out, err := shapeval.Validate(context.Background(), n, v)
	if err == nil {
		return out, nil
	}
	errs, ok := shapeval.AsErrors(err)
	if !ok {
		t.Fatalf("unexpected non-structured error: %v", err)
	}
	return nil, errs
}

func TestKind_IntegerNormalization(t *testing.T) {
	cases := []struct {
		in   any
		want int64
	}{
		{42, 42},
		{int64(7), 7},
		{uint8(9), 9},
		{3.0, 3},
		{json.Number("123"), 123},
	}
	for _, c := range cases {
		out, errs := validateOne(t, shapeval.Integer(), c.in)
		if errs != nil {
			t.Fatalf("%#v: %v", c.in, errs)
		}
		if out != c.want {
			t.Fatalf("%#v: got %#v want %d", c.in, out, c.want)
		}
	}
	for _, bad := range []any{3.5, "42", true, json.Number("1.5")} {
		if _, errs := validateOne(t, shapeval.Integer(), bad); len(errs) != 1 || errs[0].Code != shapeval.CodeInvalidType {
			t.Fatalf("%#v: expected invalid_type, got %v", bad, errs)
		}
	}
}

func TestKind_RealNormalization(t *testing.T) {
	for _, c := range []struct {
		in   any
		want float64
	}{
		{1.5, 1.5},
		{2, 2},
		{json.Number("2.25"), 2.25},
	} {
		out, errs := validateOne(t, shapeval.Real(), c.in)
		if errs != nil || out != c.want {
			t.Fatalf("%#v: got %#v %v", c.in, out, errs)
		}
	}
	if _, errs := validateOne(t, shapeval.Real(), "1.5"); len(errs) != 1 {
		t.Fatalf("expected rejection of text, got none")
	}
}

func TestKind_TextSymbolBoolean(t *testing.T) {
	if out, errs := validateOne(t, shapeval.Text(), "x"); errs != nil || out != "x" {
		t.Fatalf("text: %v %v", out, errs)
	}
	if _, errs := validateOne(t, shapeval.Text(), shapeval.Sym("x")); errs == nil {
		t.Fatalf("text must not accept symbols")
	}
	if out, errs := validateOne(t, shapeval.Symbol(), shapeval.Sym("s")); errs != nil || out != shapeval.Sym("s") {
		t.Fatalf("symbol: %v %v", out, errs)
	}
	if _, errs := validateOne(t, shapeval.Symbol(), "s"); errs == nil {
		t.Fatalf("symbol must not accept text")
	}
	if out, errs := validateOne(t, shapeval.Boolean(), true); errs != nil || out != true {
		t.Fatalf("boolean: %v %v", out, errs)
	}
}

func TestKind_RefAndCollection(t *testing.T) {
	ch := make(chan int)
	fn := func() {}
	ptr := &struct{}{}
	for _, v := range []any{ch, fn, ptr} {
		if _, errs := validateOne(t, shapeval.Ref(), v); errs != nil {
			t.Fatalf("ref should accept %T: %v", v, errs)
		}
	}
	if _, errs := validateOne(t, shapeval.Ref(), "x"); errs == nil {
		t.Fatalf("ref must not accept text")
	}

	for _, v := range []any{map[string]any{}, []any{1}, [2]int{1, 2}} {
		if _, errs := validateOne(t, shapeval.Collection(), v); errs != nil {
			t.Fatalf("collection should accept %T: %v", v, errs)
		}
	}
	if _, errs := validateOne(t, shapeval.Collection(), 1); errs == nil {
		t.Fatalf("collection must not accept integers")
	}
}

func TestKind_TemporalParsing(t *testing.T) {
	out, errs := validateOne(t, shapeval.Date(), "2026-08-31")
	if errs != nil {
		t.Fatalf("date: %v", errs)
	}
	d := out.(time.Time)
	if d.Year() != 2026 || d.Month() != time.August || d.Day() != 31 || d.Hour() != 0 {
		t.Fatalf("date normalization wrong: %v", d)
	}

	out, errs = validateOne(t, shapeval.DateTime(), "2026-08-31T10:30:00Z")
	if errs != nil {
		t.Fatalf("date-time: %v", errs)
	}
	if out.(time.Time).Hour() != 10 {
		t.Fatalf("date-time normalization wrong: %v", out)
	}

	if _, errs = validateOne(t, shapeval.DateTime(), "2026-08-31T10:30:00"); errs == nil {
		t.Fatalf("zoned kind must reject zone-less input")
	}
	if _, errs = validateOne(t, shapeval.NaiveDateTime(), "2026-08-31T10:30:00"); errs != nil {
		t.Fatalf("naive date-time: %v", errs)
	}

	out, errs = validateOne(t, shapeval.TimeOfDay(), "09:30")
	if errs != nil {
		t.Fatalf("clock: %v", errs)
	}
	if out.(time.Time).Minute() != 30 {
		t.Fatalf("clock normalization wrong: %v", out)
	}

	out, errs = validateOne(t, shapeval.Duration(), "1h30m")
	if errs != nil {
		t.Fatalf("duration: %v", errs)
	}
	if out != 90*time.Minute {
		t.Fatalf("duration normalization wrong: %v", out)
	}
	if out, errs = validateOne(t, shapeval.Duration(), 5*time.Second); errs != nil || out != 5*time.Second {
		t.Fatalf("native duration: %v %v", out, errs)
	}

	now := time.Now()
	if out, errs = validateOne(t, shapeval.DateTime(), now); errs != nil || out != now {
		t.Fatalf("native time: %v %v", out, errs)
	}
}

func TestKind_NumericRefinements(t *testing.T) {
	cases := []struct {
		n    shapeval.Node
		v    any
		code string
	}{
		{shapeval.Integer().Min(3), 2, shapeval.CodeTooSmall},
		{shapeval.Integer().Max(3), 4, shapeval.CodeTooBig},
		{shapeval.Integer().Gt(3), 3, shapeval.CodeNotGreater},
		{shapeval.Integer().Lt(3), 3, shapeval.CodeNotLess},
		{shapeval.Integer().Eq(3), 4, shapeval.CodeNotEqual},
		{shapeval.Integer().Ne(3), 3, shapeval.CodeEqual},
	}
	for _, c := range cases {
		_, errs := validateOne(t, c.n, c.v)
		if len(errs) != 1 || errs[0].Code != c.code {
			t.Fatalf("%v on %v: expected %s, got %v", c.n, c.v, c.code, errs)
		}
	}
	if _, errs := validateOne(t, shapeval.Integer().Min(3).Max(5), 4); errs != nil {
		t.Fatalf("in-range value rejected: %v", errs)
	}
}

func TestKind_LengthRefinementsCountRunes(t *testing.T) {
	if _, errs := validateOne(t, shapeval.Text().MinLen(3), "héllo"); errs != nil {
		t.Fatalf("rune count: %v", errs)
	}
	if _, errs := validateOne(t, shapeval.Text().MaxLen(2), "héllo"); len(errs) != 1 || errs[0].Code != shapeval.CodeTooLong {
		t.Fatalf("expected too_long, got %v", errs)
	}
	if _, errs := validateOne(t, shapeval.Text().Len(2), "héllo"); len(errs) != 1 || errs[0].Code != shapeval.CodeWrongLength {
		t.Fatalf("expected wrong_length, got %v", errs)
	}
}

func TestKind_Pattern(t *testing.T) {
	hex := shapeval.Text().Pattern(`^[0-9a-f]+$`)
	if _, errs := validateOne(t, hex, "deadbeef"); errs != nil {
		t.Fatalf("pattern match: %v", errs)
	}
	_, errs := validateOne(t, hex, "XYZ")
	if len(errs) != 1 || errs[0].Code != shapeval.CodePattern {
		t.Fatalf("expected pattern, got %v", errs)
	}
	if errs[0].Content["pattern"] != `^[0-9a-f]+$` {
		t.Fatalf("expected pattern in content, got %#v", errs[0].Content)
	}
}

func TestKind_InapplicableChecksAreSkipped(t *testing.T) {
	// length bounds mean nothing for a plain integer; the value passes
	if _, errs := validateOne(t, shapeval.Integer().MinLen(3), 5); errs != nil {
		t.Fatalf("inapplicable length bound rejected value: %v", errs)
	}
}

func TestKind_AnyAcceptsEverything(t *testing.T) {
	for _, v := range []any{1, "x", true, []any{}, map[string]any{}} {
		out, errs := validateOne(t, shapeval.Any(), v)
		if errs != nil {
			t.Fatalf("any rejected %#v: %v", v, errs)
		}
		_ = out
	}
}
