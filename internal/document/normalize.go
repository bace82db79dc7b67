// Package document converts decoded backend documents into canonical values.
//
// The cloud backend returns a smithy document. Decoded into an empty
// interface it is a tree of map[string]any, []any, string, bool, nil and
// document.Number leaves, where document.Number does not say whether it
// holds an integer or a float. Normalize resolves every number into uint64
// (non-negative integer), int64 (negative integer) or float64, so integers
// survive the full 64-bit ranges exactly.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	smithydocument "github.com/aws/smithy-go/document"
)

// Normalize returns the canonical value for doc. It never fails: floats that
// are NaN or infinite become nil, and unknown leaf types become their
// string form.
func Normalize(doc any) any {
	switch v := doc.(type) {
	case nil:
		return nil
	case map[string]any:
		obj := make(map[string]any, len(v))
		for key, member := range v {
			obj[key] = Normalize(member)
		}
		return obj
	case []any:
		arr := make([]any, len(v))
		for i, item := range v {
			arr[i] = Normalize(item)
		}
		return arr
	case string:
		return v
	case bool:
		return v
	case smithydocument.Number:
		return numberLiteral(string(v))
	case json.Number:
		return numberLiteral(string(v))
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return signed(int64(v))
	case int8:
		return signed(int64(v))
	case int16:
		return signed(int64(v))
	case int32:
		return signed(int64(v))
	case int64:
		return signed(v)
	case uint:
		return uint64(v)
	case uint8:
		return uint64(v)
	case uint16:
		return uint64(v)
	case uint32:
		return uint64(v)
	case uint64:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// numberLiteral classifies a decimal literal. Literals with a fraction or an
// exponent are floats; integer literals that do not fit 64 bits fall back to
// float, and floats outside the float64 range normalize like infinities.
func numberLiteral(lit string) any {
	n := smithydocument.Number(lit)
	if !strings.ContainsAny(lit, ".eE") {
		if strings.HasPrefix(lit, "-") {
			if i, err := n.Int64(); err == nil {
				return signed(i)
			}
		} else if u, err := n.Uint64(); err == nil {
			return u
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return lit
	}
	return finite(f)
}

func signed(i int64) any {
	if i >= 0 {
		return uint64(i)
	}
	return i
}

func finite(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}
