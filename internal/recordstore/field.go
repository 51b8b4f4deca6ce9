package recordstore

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names a record field and the legacy names it may appear under.
// Lookups try Name first, then each alias in order.
type Field struct {
	Name    string
	Aliases []string
}

func F(name string, aliases ...string) Field {
	return Field{Name: name, Aliases: aliases}
}

func (f Field) keys() []string {
	return append([]string{f.Name}, f.Aliases...)
}

// Lookup returns the value under the first key present in the record.
// A key holding null counts as present.
func (r Record) Lookup(f Field) (any, bool) {
	for _, k := range f.keys() {
		if v, ok := r.Fields[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// Has reports whether any of the field's keys exist.
func (r Record) Has(f Field) bool {
	_, ok := r.Lookup(f)
	return ok
}

// Text returns the first non-empty textual value across the field's keys.
// Lists yield their first element.
func (r Record) Text(f Field) string {
	for _, k := range f.keys() {
		if s := toText(r.Fields[k]); s != "" {
			return s
		}
	}
	return ""
}

// Ref returns the first linked record id.
func (r Record) Ref(f Field) string {
	refs := r.Refs(f)
	if len(refs) == 0 {
		return ""
	}
	return refs[0]
}

// Refs returns linked record ids. Single values become a one element list.
func (r Record) Refs(f Field) []string {
	for _, k := range f.keys() {
		if refs := toRefs(r.Fields[k]); len(refs) > 0 {
			return refs
		}
	}
	return nil
}

// Number returns the first numeric value across the field's keys.
func (r Record) Number(f Field) (float64, bool) {
	for _, k := range f.keys() {
		if n, ok := toNumber(r.Fields[k]); ok {
			return n, true
		}
	}
	return 0, false
}

func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []any:
		for _, item := range t {
			if s := toText(item); s != "" {
				return s
			}
		}
		return ""
	case []string:
		for _, item := range t {
			if s := strings.TrimSpace(item); s != "" {
				return s
			}
		}
		return ""
	case map[string]any:
		if id, ok := t["id"]; ok {
			return toText(id)
		}
		return ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func toRefs(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := toText(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := toText(t); s != "" {
			return []string{s}
		}
		return nil
	}
}

func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// ValueText converts a raw field value the same way Text does.
func ValueText(v any) string { return toText(v) }

// ValueRefs converts a raw field value the same way Refs does.
func ValueRefs(v any) []string { return toRefs(v) }
