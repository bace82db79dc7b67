package document

import (
	"encoding/json"
	"math"
	"strconv"
	"testing"

	smithydocument "github.com/aws/smithy-go/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Numbers(t *testing.T) {
	doc := map[string]any{
		"pos_int_42":       smithydocument.Number("42"),
		"pos_int_zero":     smithydocument.Number("0"),
		"pos_int_max":      smithydocument.Number(strconv.FormatUint(math.MaxUint64, 10)),
		"neg_int_minus_42": smithydocument.Number("-42"),
		"neg_int_minus_1":  smithydocument.Number("-1"),
		"neg_int_min":      smithydocument.Number(strconv.FormatInt(math.MinInt64, 10)),
		"pos_float":        smithydocument.Number("2.71"),
		"neg_float":        smithydocument.Number("-2.71"),
		"exp_float":        smithydocument.Number("1e3"),
		"huge_float":       smithydocument.Number("1e400"),
		"not_a_number":     math.NaN(),
		"pos_infinity":     math.Inf(1),
		"neg_infinity":     math.Inf(-1),
	}

	got := Normalize(doc)

	assert.Equal(t, map[string]any{
		"pos_int_42":       uint64(42),
		"pos_int_zero":     uint64(0),
		"pos_int_max":      uint64(math.MaxUint64),
		"neg_int_minus_42": int64(-42),
		"neg_int_minus_1":  int64(-1),
		"neg_int_min":      int64(math.MinInt64),
		"pos_float":        2.71,
		"neg_float":        -2.71,
		"exp_float":        1000.0,
		"huge_float":       nil,
		"not_a_number":     nil,
		"pos_infinity":     nil,
		"neg_infinity":     nil,
	}, got)
}

func TestNormalize_IntegerOverflowFallsBackToFloat(t *testing.T) {
	assert.Equal(t, 18446744073709551616.0, Normalize(smithydocument.Number("18446744073709551616")))
	assert.Equal(t, -9223372036854775809.0, Normalize(smithydocument.Number("-9223372036854775809")))
}

func TestNormalize_IntegersRoundTripThroughJSON(t *testing.T) {
	values := []any{
		Normalize(smithydocument.Number(strconv.FormatUint(math.MaxUint64, 10))),
		Normalize(smithydocument.Number(strconv.FormatInt(math.MinInt64, 10))),
	}

	out, err := json.Marshal(values)
	require.NoError(t, err)
	assert.Equal(t, `[18446744073709551615,-9223372036854775808]`, string(out))
}

func TestNormalize_StringAndBoolean(t *testing.T) {
	doc := map[string]any{
		"string":       "hello world",
		"empty_string": "",
		"bool_true":    true,
		"bool_false":   false,
		"null_value":   nil,
	}

	assert.Equal(t, doc, Normalize(doc))
}

func TestNormalize_Arrays(t *testing.T) {
	assert.Equal(t, []any{"value-1", "value-2"}, Normalize([]any{"value-1", "value-2"}))
}

func TestNormalize_EmptyCollections(t *testing.T) {
	got := Normalize(map[string]any{
		"empty_object": map[string]any{},
		"empty_array":  []any{},
	})

	assert.Equal(t, map[string]any{
		"empty_object": map[string]any{},
		"empty_array":  []any{},
	}, got)
}

func TestNormalize_NestedStructures(t *testing.T) {
	doc := map[string]any{
		"object_in_object": map[string]any{
			"id":     smithydocument.Number("1"),
			"active": true,
		},
		"array_of_objects": []any{
			map[string]any{"id": smithydocument.Number("1"), "name": "First"},
			map[string]any{"id": smithydocument.Number("2"), "name": "Second"},
		},
		"object_with_array": map[string]any{
			"items": []any{"a", "b"},
		},
		"deep_nesting": map[string]any{
			"level2": map[string]any{
				"nested": map[string]any{"value": smithydocument.Number("999")},
			},
		},
	}

	got := Normalize(doc)

	assert.Equal(t, map[string]any{
		"object_in_object": map[string]any{"id": uint64(1), "active": true},
		"array_of_objects": []any{
			map[string]any{"id": uint64(1), "name": "First"},
			map[string]any{"id": uint64(2), "name": "Second"},
		},
		"object_with_array": map[string]any{"items": []any{"a", "b"}},
		"deep_nesting": map[string]any{
			"level2": map[string]any{
				"nested": map[string]any{"value": uint64(999)},
			},
		},
	}, got)
}

func TestNormalize_NativeNumbers(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{name: "int positive", in: 7, want: uint64(7)},
		{name: "int negative", in: -7, want: int64(-7)},
		{name: "int64 min", in: int64(math.MinInt64), want: int64(math.MinInt64)},
		{name: "uint64 max", in: uint64(math.MaxUint64), want: uint64(math.MaxUint64)},
		{name: "uint8", in: uint8(255), want: uint64(255)},
		{name: "float32", in: float32(0.5), want: 0.5},
		{name: "json number int", in: json.Number("12"), want: uint64(12)},
		{name: "json number float", in: json.Number("-1.5"), want: -1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	inner := []any{smithydocument.Number("1")}
	doc := map[string]any{"list": inner}

	_ = Normalize(doc)

	assert.Equal(t, smithydocument.Number("1"), inner[0])
}
