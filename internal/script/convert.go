package script

import (
	"strings"

	"github.com/d5/tengo/v2"
)

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}

// immutable converts a Go map to a read-only script map. Values tengo
// cannot represent are dropped.
func immutable(values map[string]any) *tengo.ImmutableMap {
	out := &tengo.ImmutableMap{Value: make(map[string]tengo.Object, len(values))}
	for k, v := range values {
		if nested, ok := v.(map[string]any); ok {
			out.Value[k] = immutable(nested)
			continue
		}
		obj, err := tengo.FromInterface(v)
		if err != nil {
			continue
		}
		out.Value[k] = obj
	}
	return out
}
