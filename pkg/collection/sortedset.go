// Package collection provides container kinds that can be bound from a run of command line
// tokens. Every type here implements coerce.Container through its pointer.
package collection

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"

	"github.com/tidwall/btree"
)

// SortedSet is a set of unique elements kept in ascending order. The zero value is an empty set
// ready to use.
type SortedSet[T cmp.Ordered] struct {
	tree *btree.BTreeG[T]
}

// NewSortedSet returns a set holding items.
func NewSortedSet[T cmp.Ordered](items ...T) *SortedSet[T] {
	s := &SortedSet[T]{}
	for _, item := range items {
		s.Insert(item)
	}
	return s
}

func (s *SortedSet[T]) init() {
	if s.tree == nil {
		s.tree = btree.NewBTreeG[T](cmp.Less[T])
	}
}

// Insert adds v and reports whether it was not already present.
func (s *SortedSet[T]) Insert(v T) bool {
	s.init()
	_, replaced := s.tree.Set(v)
	return !replaced
}

// Contains reports whether v is in the set.
func (s *SortedSet[T]) Contains(v T) bool {
	if s == nil || s.tree == nil {
		return false
	}
	_, ok := s.tree.Get(v)
	return ok
}

// Len returns the number of elements.
func (s *SortedSet[T]) Len() int {
	if s == nil || s.tree == nil {
		return 0
	}
	return s.tree.Len()
}

// Values returns the elements in ascending order.
func (s *SortedSet[T]) Values() []T {
	if s == nil || s.tree == nil {
		return nil
	}
	out := make([]T, 0, s.tree.Len())
	s.tree.Scan(func(item T) bool {
		out = append(out, item)
		return true
	})
	return out
}

func (s *SortedSet[T]) String() string {
	parts := make([]string, 0, s.Len())
	for _, v := range s.Values() {
		parts = append(parts, fmt.Sprint(v))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// ElemType implements coerce.Container and reports T.
func (s *SortedSet[T]) ElemType() reflect.Type {
	return reflect.TypeFor[T]()
}

// Add implements coerce.Container. It fails unless v has type T.
func (s *SortedSet[T]) Add(v any) error {
	x, ok := v.(T)
	if !ok {
		return fmt.Errorf("sorted set of %s cannot hold %T", reflect.TypeFor[T](), v)
	}
	s.Insert(x)
	return nil
}

// Items implements coerce.Container and returns the elements in ascending order.
func (s *SortedSet[T]) Items() []any {
	values := s.Values()
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
