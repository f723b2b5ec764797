package rtti

import (
	"sort"
	"sync"
)

// hashMap is a thread safe map keyed by type name
type hashMap[T any] struct {
	data sync.Map
}

func newHashMap[T any]() *hashMap[T] {
	return &hashMap[T]{}
}

// Len returns the length of the map
func (n *hashMap[T]) Len() int {
	count := 0
	n.data.Range(func(key, value interface{}) bool {
		count++
		return true
	})
	return count
}

// Get gets the value from the key
func (n *hashMap[T]) Get(key string) (T, bool) {
	c, ok := n.data.Load(key)
	if !ok {
		return *new(T), ok
	}
	return c.(T), ok
}

// Set sets the key to the value
func (n *hashMap[T]) Set(key string, value T) {
	n.data.Store(key, value)
}

// Range ranges over the map with a function until false is returned
func (n *hashMap[T]) Range(f func(key string, value T) bool) {
	n.data.Range(func(key, value interface{}) bool {
		return f(key.(string), value.(T))
	})
}

// Keys returns the keys of the map in lexicographic order
func (n *hashMap[T]) Keys() []string {
	var keys []string
	n.data.Range(func(key, value interface{}) bool {
		keys = append(keys, key.(string))
		return true
	})
	sort.Strings(keys)
	return keys
}

// Values returns the values of the map ordered by key
func (n *hashMap[T]) Values() []T {
	keys := n.Keys()
	values := make([]T, 0, len(keys))
	for _, k := range keys {
		if v, ok := n.Get(k); ok {
			values = append(values, v)
		}
	}
	return values
}

// set is a basic thread-safe set
type set[T comparable] struct {
	mu     sync.RWMutex
	values map[T]struct{}
}

func newSet[T comparable]() *set[T] {
	return &set[T]{values: map[T]struct{}{}}
}

// Add adds an element to the set
func (s *set[T]) Add(val T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[val] = struct{}{}
}

// Remove removes an element from the set
func (s *set[T]) Remove(val T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, val)
}

// Contains returns true if the set contains the element
func (s *set[T]) Contains(val T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[val]
	return ok
}

// stack is a basic LIFO stack
type stack[T any] struct {
	mu     sync.Mutex
	values []T
}

func newStack[T any]() *stack[T] {
	return &stack[T]{values: []T{}}
}

// Push a new value onto the stack
func (s *stack[T]) Push(f T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = append(s.values, f)
}

// Pop removes and returns the top element of the stack. Returns false if the stack is empty.
func (s *stack[T]) Pop() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return *new(T), false
	}
	index := len(s.values) - 1
	element := s.values[index]
	s.values = s.values[:index]
	return element, true
}

// Len returns the number of elements in the stack
func (s *stack[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}
