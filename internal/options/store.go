package options

import (
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Value is a single named option value.
type Value struct {
	Name  string
	Value any
}

// Store maps option names to their current values. Options that were never
// set are absent rather than erroneous. Values are kept in insertion order so
// that forwarded options render deterministically.
type Store struct {
	defs   map[string]Definition
	order  []string
	values map[string]any
}

func NewStore(defs []Definition) *Store {
	s := &Store{
		defs:   make(map[string]Definition, len(defs)),
		values: make(map[string]any),
	}
	for _, def := range defs {
		s.defs[def.Name] = def
	}
	return s
}

// Set stores value under name. A nil value removes the option.
func (s *Store) Set(name string, value any) {
	if value == nil {
		s.unset(name)
		return
	}
	if _, exists := s.values[name]; !exists {
		s.order = append(s.order, name)
	}
	s.values[name] = value
}

func (s *Store) unset(name string) {
	if _, exists := s.values[name]; !exists {
		return
	}
	delete(s.values, name)
	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == name })
}

func (s *Store) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// IsSet reports whether name holds a non-blank value.
func (s *Store) IsSet(name string) bool {
	v, ok := s.values[name]
	return ok && strings.TrimSpace(Format(v)) != ""
}

func (s *Store) String(name string) string {
	return Format(s.values[name])
}

// Bool reports whether name is set to a true-ish value.
func (s *Store) Bool(name string) bool {
	v, ok := s.values[name]
	if !ok {
		return false
	}
	b, err := cast.ToBoolE(v)
	return err == nil && b
}

// Int returns the base 10 integer value of name, or 0 if it is absent or not
// numeric.
func (s *Store) Int(name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s.String(name)))
	if err != nil {
		return 0
	}
	return n
}

// Strings returns a list option. Plain strings are split on commas.
func (s *Store) Strings(name string) []string {
	switch v := s.values[name].(type) {
	case nil:
		return nil
	case []string:
		return slices.Clone(v)
	case []any:
		return cast.ToStringSlice(v)
	default:
		var out []string
		for part := range strings.SplitSeq(Format(v), ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
}

func (s *Store) Definition(name string) (Definition, bool) {
	def, ok := s.defs[name]
	return def, ok
}

// Forwarded returns every set option not flagged Internal, in insertion
// order. Options without a definition are always forwarded.
func (s *Store) Forwarded() []Value {
	var out []Value
	for _, name := range s.order {
		if def, ok := s.defs[name]; ok && def.Has(Internal) {
			continue
		}
		out = append(out, Value{Name: name, Value: s.values[name]})
	}
	return out
}

func (s *Store) Clone() *Store {
	c := &Store{
		defs:   s.defs,
		order:  slices.Clone(s.order),
		values: make(map[string]any, len(s.values)),
	}
	for k, v := range s.values {
		c.values[k] = v
	}
	return c
}

// Normalize returns a snapshot with Hadoop aliases rewritten:
//   - reuse_jvms=true becomes -1 (unlimited reuse)
//   - ignore_exit_status=true sets respect_exit_status=false
//   - reduce_tasks becomes 0 when reduce is inactive
//
// The receiver is left untouched.
func (s *Store) Normalize(reduceActive bool) *Store {
	n := s.Clone()
	if v, ok := n.Get("reuse_jvms"); ok && (v == true || strings.EqualFold(Format(v), "true")) {
		n.Set("reuse_jvms", "-1")
	}
	if n.Bool("ignore_exit_status") {
		n.Set("respect_exit_status", "false")
	}
	if !reduceActive {
		n.Set("reduce_tasks", 0)
	}
	return n
}

// Format renders an option value as it appears on a command line.
func Format(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, ",")
	case []any:
		return strings.Join(cast.ToStringSlice(t), ",")
	default:
		return cast.ToString(t)
	}
}
