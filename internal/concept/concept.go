// Package concept normalizes concept names and provides the set algebra over them.
package concept

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrEmptyConcept = errors.New("concept: empty identifier")

// Normalize trims the name and collapses inner whitespace runs to a single space.
// Case is kept for display; identity is decided by Key.
func Normalize(name string) (string, error) {
	n := strings.Join(strings.Fields(name), " ")
	if n == "" {
		return "", ErrEmptyConcept
	}
	return n, nil
}

// Key is the identity of a concept: normalized text, case-folded.
func Key(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Set is a set of concepts keyed by Key. The first spelling added for a key is
// the one reported by Names.
type Set struct {
	items map[string]string
}

// NewSet builds a set from names, silently skipping empty ones.
func NewSet(names ...string) Set {
	s := Set{items: make(map[string]string, len(names))}
	for _, n := range names {
		_ = s.Add(n)
	}
	return s
}

// FromStrings builds a set and rejects empty names.
func FromStrings(names []string) (Set, error) {
	s := Set{items: make(map[string]string, len(names))}
	for i, n := range names {
		if err := s.Add(n); err != nil {
			return Set{}, fmt.Errorf("concept %d: %w", i, err)
		}
	}
	return s, nil
}

func (s *Set) Add(name string) error {
	n, err := Normalize(name)
	if err != nil {
		return err
	}
	if s.items == nil {
		s.items = make(map[string]string)
	}
	k := Key(n)
	if _, ok := s.items[k]; !ok {
		s.items[k] = n
	}
	return nil
}

func (s Set) Has(name string) bool {
	_, ok := s.items[Key(name)]
	return ok
}

func (s Set) Len() int { return len(s.items) }

func (s Set) IsEmpty() bool { return len(s.items) == 0 }

// Union keeps the receiver's spelling for keys present in both sets.
func (s Set) Union(o Set) Set {
	out := Set{items: make(map[string]string, len(s.items)+len(o.items))}
	for k, v := range s.items {
		out.items[k] = v
	}
	for k, v := range o.items {
		if _, ok := out.items[k]; !ok {
			out.items[k] = v
		}
	}
	return out
}

func (s Set) Intersect(o Set) Set {
	out := Set{items: make(map[string]string)}
	for k, v := range s.items {
		if _, ok := o.items[k]; ok {
			out.items[k] = v
		}
	}
	return out
}

// Difference returns the concepts of s that are not in o.
func (s Set) Difference(o Set) Set {
	out := Set{items: make(map[string]string)}
	for k, v := range s.items {
		if _, ok := o.items[k]; !ok {
			out.items[k] = v
		}
	}
	return out
}

func (s Set) Equal(o Set) bool {
	if len(s.items) != len(o.items) {
		return false
	}
	for k := range s.items {
		if _, ok := o.items[k]; !ok {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every concept of s is in o.
func (s Set) SubsetOf(o Set) bool {
	for k := range s.items {
		if _, ok := o.items[k]; !ok {
			return false
		}
	}
	return true
}

// Names returns the display names ordered by key.
func (s Set) Names() []string {
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = s.items[k]
	}
	return out
}

// Keys returns the sorted identity keys.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s Set) String() string {
	return "{" + strings.Join(s.Names(), ", ") + "}"
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	set, err := FromStrings(names)
	if err != nil {
		return err
	}
	*s = set
	return nil
}

func (Set) GormDataType() string { return "json" }

// Value stores the set as a JSON array column.
func (s Set) Value() (driver.Value, error) {
	b, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *Set) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*s = Set{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("concept: cannot scan %T into Set", value)
	}
	if len(data) == 0 {
		*s = Set{}
		return nil
	}
	return s.UnmarshalJSON(data)
}
