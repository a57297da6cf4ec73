package menu

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DecodeFunc builds a concrete item from a stored entry. params holds every
// stored field except the help key. A mismatch between params and the fields
// the variant expects must be reported as a *StructuralError so that the next
// candidate variant gets a chance.
type DecodeFunc func(name string, params map[string]any, help *string) (Serialisable, error)

// Variant is one candidate concrete item type tried while loading a list.
type Variant struct {
	Name   string
	Decode DecodeFunc
}

// StructuralError reports that a stored entry does not have the shape a
// variant expects. It is recoverable during List loading.
type StructuralError struct {
	Variant string
	Reason  string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: %s", e.Variant, e.Reason)
}

// FromDict decodes a single-entry Dict with variant v.
func FromDict(v Variant, d Dict) (Serialisable, error) {
	if len(d) != 1 {
		return nil, &StructuralError{Variant: v.Name, Reason: fmt.Sprintf("expected exactly one entry, got %d", len(d))}
	}
	for name, values := range d {
		params := make(map[string]any, len(values))
		var help *string
		for k, val := range values {
			if k != HelpKey {
				params[k] = val
				continue
			}
			s, ok := val.(string)
			if !ok {
				return nil, &StructuralError{Variant: v.Name, Reason: fmt.Sprintf("field %q: expected string, got %T", HelpKey, val)}
			}
			help = &s
		}
		return v.Decode(name, params, help)
	}
	panic("unreachable")
}

// Fields walks the stored parameters of one entry on behalf of a DecodeFunc.
// It records the first mismatch and flags fields nobody asked for.
type Fields struct {
	variant string
	values  map[string]any
	seen    map[string]struct{}
	err     error
}

// NewFields starts a structural check of values for the named variant.
func NewFields(variant string, values map[string]any) *Fields {
	return &Fields{variant: variant, values: values, seen: make(map[string]struct{}, len(values))}
}

// String returns the required string field key.
func (f *Fields) String(key string) string {
	f.seen[key] = struct{}{}
	raw, ok := f.values[key]
	if !ok {
		f.fail("missing required field %q", key)
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		f.fail("field %q: expected string, got %T", key, raw)
		return ""
	}
	return s
}

// Present reports whether key is stored, regardless of its value.
func (f *Fields) Present(key string) bool {
	f.seen[key] = struct{}{}
	_, ok := f.values[key]
	return ok
}

// Require fails unless key is stored.
func (f *Fields) Require(key string) {
	if !f.Present(key) {
		f.fail("missing required field %q", key)
	}
}

// Err returns the first mismatch, or an error naming unexpected fields.
func (f *Fields) Err() error {
	if f.err != nil {
		return f.err
	}
	var extra []string
	for k := range f.values {
		if _, ok := f.seen[k]; !ok {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return &StructuralError{Variant: f.variant, Reason: "unexpected fields " + strings.Join(extra, ", ")}
	}
	return nil
}

func (f *Fields) fail(format string, args ...any) {
	if f.err == nil {
		f.err = &StructuralError{Variant: f.variant, Reason: fmt.Sprintf(format, args...)}
	}
}

// IsStructural reports whether err is a recoverable shape mismatch.
func IsStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}
