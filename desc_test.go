package jsonunpack_test

import (
	"errors"
	"strings"
	"testing"

	jsonunpack "github.com/reoring/jsonunpack"
)

func TestParseDesc_RoundTrip(t *testing.T) {
	cases := []string{
		"uint8", "uint16", "uint32", "uint64", "int8", "int16", "int32", "int64", "int",
		"bool", "float64", "string", "object", "any",
		"[]uint8",
		"[][]string",
		"optional<int64>",
		"optional<[]object>",
		"oneof<string,null>",
		"optional<[]oneof<string,object,null>>",
		"oneof<string,int,bool,float64,object,[]int,[]string,[]bool,[]float64>",
	}
	for _, src := range cases {
		d, err := jsonunpack.ParseDesc(src)
		if err != nil {
			t.Fatalf("parse %q: %v", src, err)
		}
		if d.String() != src {
			t.Fatalf("round trip %q -> %q", src, d.String())
		}
	}
}

func TestParseDesc_AliasesAndSpacing(t *testing.T) {
	cases := map[string]string{
		"sequence<double>":              "[]float64",
		" optional < json > ":           "optional<any>",
		"oneof< UINT8 , null >":         "oneof<uint8,null>",
		"[] oneof<sequence<int>, null>": "[]oneof<[]int,null>",
	}
	for src, want := range cases {
		d, err := jsonunpack.ParseDesc(src)
		if err != nil {
			t.Fatalf("parse %q: %v", src, err)
		}
		if d.String() != want {
			t.Fatalf("parse %q: got %q want %q", src, d.String(), want)
		}
	}
}

func TestParseDesc_Errors(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"", "unexpected end of input"},
		{"uint128", "unknown shape"},
		{"optional<int,bool>", "takes 1 shape"},
		{"optional<int", "expected ',' or '>'"},
		{"optional int", "expected '<'"},
		{"oneof<int>", "at least two candidates"},
		{"oneof<int,int>", "both int"},
		{"[]", "unexpected end of input"},
		{"int bool", "unexpected"},
	}
	for _, tc := range cases {
		_, err := jsonunpack.ParseDesc(tc.src)
		if !errors.Is(err, jsonunpack.ErrDescSyntax) {
			t.Fatalf("parse %q: expected ErrDescSyntax, got %v", tc.src, err)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("parse %q: error %q does not mention %q", tc.src, err, tc.want)
		}
	}
}

func TestDesc_Validate(t *testing.T) {
	ok := jsonunpack.OneOfDesc(
		jsonunpack.SequenceDesc(jsonunpack.ScalarDesc(jsonunpack.KindInt)),
		jsonunpack.OptionalDesc(jsonunpack.ScalarDesc(jsonunpack.KindInt)),
	)
	if err := ok.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	bad := []jsonunpack.Desc{
		{},
		{Kind: jsonunpack.KindOptional},
		{Kind: jsonunpack.Kind(99)},
		jsonunpack.SequenceDesc(jsonunpack.OneOfDesc(jsonunpack.ScalarDesc(jsonunpack.KindBool))),
	}
	for _, d := range bad {
		if err := d.Validate(); err == nil {
			t.Fatalf("expected %#v to be invalid", d)
		}
	}
}

func TestDesc_Equal(t *testing.T) {
	a := jsonunpack.MustParseDesc("optional<[]int8>")
	b := jsonunpack.OptionalDesc(jsonunpack.SequenceDesc(jsonunpack.ScalarDesc(jsonunpack.KindInt8)))
	if !a.Equal(b) {
		t.Fatalf("%s != %s", a, b)
	}
	if a.Equal(jsonunpack.MustParseDesc("[]int8")) {
		t.Fatalf("unexpected equality")
	}
}

func TestKind_Classification(t *testing.T) {
	if !jsonunpack.KindInt.IsInteger() || jsonunpack.KindFloat64.IsInteger() {
		t.Fatalf("IsInteger misclassifies")
	}
	if !jsonunpack.KindNull.IsScalar() || jsonunpack.KindSequence.IsScalar() {
		t.Fatalf("IsScalar misclassifies")
	}
	if jsonunpack.Kind(-1).String() != "invalid" {
		t.Fatalf("out of range kind should render as invalid")
	}
}
