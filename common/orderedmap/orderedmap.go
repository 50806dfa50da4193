/*
 * Gentype - A structural algebra over generic type descriptors
 *
 * Copyright Gentype Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package orderedmap

// OrderedMap is a map which remembers the order in which keys were first set.
// Iteration follows insertion order, which keeps diagnostics and derived
// structures deterministic. The zero value is ready to use.
type OrderedMap[K comparable, V any] struct {
	indexes map[K]int
	pairs   []Pair[K, V]
}

// Pair is an entry in an OrderedMap.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// New returns a new OrderedMap with the given initial capacity.
func New[K comparable, V any](size int) *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		indexes: make(map[K]int, size),
		pairs:   make([]Pair[K, V], 0, size),
	}
}

func (om *OrderedMap[K, V]) ensureInitialized() {
	if om.indexes == nil {
		om.indexes = make(map[K]int)
	}
}

// Get returns the value associated with the given key.
// The second return value indicates if the key is present in the map.
func (om *OrderedMap[K, V]) Get(key K) (result V, present bool) {
	if om == nil || om.indexes == nil {
		return
	}
	var index int
	if index, present = om.indexes[key]; present {
		result = om.pairs[index].Value
	}
	return
}

// Contains returns true if the key is present in the map.
func (om *OrderedMap[K, V]) Contains(key K) bool {
	if om == nil || om.indexes == nil {
		return false
	}
	_, present := om.indexes[key]
	return present
}

// Set sets the key-value pair, and returns what `Get` would have returned
// on that key prior to the call to `Set`.
// Setting an existing key updates the value but keeps the original position.
func (om *OrderedMap[K, V]) Set(key K, value V) (oldValue V, present bool) {
	om.ensureInitialized()

	var index int
	if index, present = om.indexes[key]; present {
		oldValue = om.pairs[index].Value
		om.pairs[index].Value = value
		return
	}

	om.indexes[key] = len(om.pairs)
	om.pairs = append(om.pairs, Pair[K, V]{Key: key, Value: value})
	return
}

// Len returns the number of entries in the map.
func (om *OrderedMap[K, V]) Len() int {
	if om == nil {
		return 0
	}
	return len(om.pairs)
}

// Foreach iterates over the entries of the map in insertion order,
// and invokes the provided function for each key-value pair.
func (om *OrderedMap[K, V]) Foreach(f func(key K, value V)) {
	if om == nil {
		return
	}
	for _, pair := range om.pairs {
		f(pair.Key, pair.Value)
	}
}

// Keys returns the keys of the map in insertion order.
func (om *OrderedMap[K, V]) Keys() []K {
	if om == nil {
		return nil
	}
	keys := make([]K, 0, len(om.pairs))
	for _, pair := range om.pairs {
		keys = append(keys, pair.Key)
	}
	return keys
}
