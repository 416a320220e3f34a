// SPDX-License-Identifier: MPL-2.0

package scenario

import (
	"fmt"
	"strconv"
	"strings"
)

// Canonical renders a decoded scenario value or a widget value as the string
// both sides are compared by: lists join their elements with commas and
// numbers use the shortest exact decimal form.
func Canonical(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []string:
		return strings.Join(x, ",")
	case []float64:
		parts := make([]string, len(x))
		for i, f := range x {
			parts[i] = Canonical(f)
		}
		return strings.Join(parts, ",")
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = Canonical(e)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(x)
	}
}

// numbers accepts a number or a list of numbers.
func numbers(v any) ([]float64, error) {
	if list, ok := v.([]any); ok {
		out := make([]float64, len(list))
		for i, e := range list {
			f, err := number(e)
			if err != nil {
				return nil, err
			}
			out[i] = f
		}
		return out, nil
	}
	f, err := number(v)
	if err != nil {
		return nil, err
	}
	return []float64{f}, nil
}

func number(v any) (float64, error) {
	switch x := v.(type) {
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case float64:
		return x, nil
	case string, bool, nil:
		return 0, fmt.Errorf("%v is not a number", v)
	default:
		f, err := strconv.ParseFloat(fmt.Sprint(x), 64)
		if err != nil {
			return 0, fmt.Errorf("%v is not a number", v)
		}
		return f, nil
	}
}

// strs accepts a string or a list of strings.
func strs(v any) ([]string, error) {
	switch x := v.(type) {
	case string:
		return []string{x}, nil
	case []any:
		out := make([]string, len(x))
		for i, e := range x {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("%v is not a string", e)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%v is not a string or list of strings", v)
	}
}
