package service

import (
	"encoding/json"
	"reflect"
	"strings"

	perr "confmatrix/internal/platform/errors"

	"github.com/ohler55/ojg/jp"
)

// parsePath compiles a JSONPath such as "params.lr", "$.metrics[0].acc" or "$.runs[*].loss"
// a blank path is the document itself
func parsePath(field, p string) (jp.Expr, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return jp.R(), nil
	}
	x, err := jp.ParseString(rooted(p))
	if err != nil {
		return nil, perr.WithField(perr.InvalidArgf("invalid path %q: %v", p, err), field)
	}
	return x, nil
}

// rooted anchors a bare path like "params.lr" at the document root
func rooted(p string) string {
	switch {
	case strings.HasPrefix(p, "$"), strings.HasPrefix(p, "@"):
		return p
	case strings.HasPrefix(p, "["):
		return "$" + p
	default:
		return "$." + p
	}
}

// first returns the first value x selects in doc
func first(x jp.Expr, doc any) (any, bool) {
	got := x.Get(doc)
	if len(got) == 0 {
		return nil, false
	}
	return got[0], true
}

// selected is the value x selects in doc: one match as is, several as a list, none as nil
func selected(x jp.Expr, doc any) any {
	switch got := x.Get(doc); len(got) {
	case 0:
		return nil
	case 1:
		return got[0]
	default:
		return got
	}
}

// without returns a deep copy of doc with every value x selects removed
func without(doc map[string]any, x jp.Expr) map[string]any {
	cp := deepCopy(doc).(map[string]any)
	if isRoot(x) {
		return cp
	}
	_ = x.Del(cp)
	return cp
}

func isRoot(x jp.Expr) bool {
	if len(x) == 0 {
		return true
	}
	_, ok := x[0].(jp.Root)
	return ok && len(x) == 1
}

func deepCopy(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, vv := range x {
			out[k] = deepCopy(vv)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, vv := range x {
			out[i] = deepCopy(vv)
		}
		return out
	default:
		return v
	}
}

// equal compares decoded values with every number widened to float64
// so a yaml int and a json float of the same value match
func equal(a, b any) bool {
	return reflect.DeepEqual(widen(a), widen(b))
}

func widen(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case float32:
		return float64(x)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, vv := range x {
			out[k] = widen(vv)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, vv := range x {
			out[i] = widen(vv)
		}
		return out
	default:
		return v
	}
}
