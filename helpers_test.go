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

package gentype

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testHierarchy is the catalog most tests run against,
// a small collections-library shape:
//
//	interface Iterable<T>
//	interface Collection<E> extends Iterable<E>
//	interface List<E> extends Collection<E>
//	class ArrayList<E> implements List<E>
//	class LinkedList<E> implements List<E>
//	class Fruit
//	class Apple extends Fruit implements Comparable<Apple>
//	class Orange extends Fruit implements Comparable<Orange>
//	class Box<T extends Comparable<T>>
//	interface Map<K, V>
//	class HashMap<K, V> implements Map<K, V>
//	class Container<T> { class Item<U> {} static class Nested<N> {} }
//	enum Color; enum Size
type testHierarchy struct {
	cat *Catalog

	iterable   *Entity
	collection *Entity
	list       *Entity
	arrayList  *Entity
	linkedList *Entity

	fruit  *Entity
	apple  *Entity
	orange *Entity

	box *Entity

	mapEntity *Entity
	hashMap   *Entity

	container *Entity
	item      *Entity
	nested    *Entity

	color *Entity
	size  *Entity
}

// declared builds a declaration-form instantiation, bypassing the
// validation of NewParameterizedType: declared supertype forms refer to
// the declaring entity's own variables.
func declared(entity *Entity, arguments ...Type) *ParameterizedType {
	return &ParameterizedType{
		Entity:        entity,
		TypeArguments: arguments,
	}
}

func newTestHierarchy(t *testing.T) *testHierarchy {
	cat := NewCatalog()

	iterable, err := cat.DefineInterface("Iterable", "T")
	require.NoError(t, err)

	collection, err := cat.DefineInterface("Collection", "E")
	require.NoError(t, err)
	require.NoError(t,
		collection.AddInterface(declared(iterable, collection.Variable("E"))),
	)

	list, err := cat.DefineInterface("List", "E")
	require.NoError(t, err)
	require.NoError(t,
		list.AddInterface(declared(collection, list.Variable("E"))),
	)

	arrayList, err := cat.DefineClass("ArrayList", "E")
	require.NoError(t, err)
	require.NoError(t,
		arrayList.AddInterface(declared(list, arrayList.Variable("E"))),
	)

	linkedList, err := cat.DefineClass("LinkedList", "E")
	require.NoError(t, err)
	require.NoError(t,
		linkedList.AddInterface(declared(list, linkedList.Variable("E"))),
	)

	fruit, err := cat.DefineClass("Fruit")
	require.NoError(t, err)

	apple, err := cat.DefineClass("Apple")
	require.NoError(t, err)
	require.NoError(t, apple.SetSuperclass(fruit.RawType()))
	require.NoError(t,
		apple.AddInterface(declared(cat.Comparable(), apple.RawType())),
	)

	orange, err := cat.DefineClass("Orange")
	require.NoError(t, err)
	require.NoError(t, orange.SetSuperclass(fruit.RawType()))
	require.NoError(t,
		orange.AddInterface(declared(cat.Comparable(), orange.RawType())),
	)

	box, err := cat.DefineClass("Box", "T")
	require.NoError(t, err)
	require.NoError(t,
		box.TypeParameter("T").SetBounds(
			declared(cat.Comparable(), box.Variable("T")),
		),
	)

	mapEntity, err := cat.DefineInterface("Map", "K", "V")
	require.NoError(t, err)

	hashMap, err := cat.DefineClass("HashMap", "K", "V")
	require.NoError(t, err)
	require.NoError(t,
		hashMap.AddInterface(declared(
			mapEntity,
			hashMap.Variable("K"),
			hashMap.Variable("V"),
		)),
	)

	container, err := cat.DefineClass("Container", "T")
	require.NoError(t, err)

	item, err := cat.DefineMemberClass(container, "Item", false, "U")
	require.NoError(t, err)

	nested, err := cat.DefineMemberClass(container, "Nested", true, "N")
	require.NoError(t, err)

	color, err := cat.DefineEnum("Color")
	require.NoError(t, err)

	size, err := cat.DefineEnum("Size")
	require.NoError(t, err)

	return &testHierarchy{
		cat:        cat,
		iterable:   iterable,
		collection: collection,
		list:       list,
		arrayList:  arrayList,
		linkedList: linkedList,
		fruit:      fruit,
		apple:      apple,
		orange:     orange,
		box:        box,
		mapEntity:  mapEntity,
		hashMap:    hashMap,
		container:  container,
		item:       item,
		nested:     nested,
		color:      color,
		size:       size,
	}
}

func (h *testHierarchy) parameterized(
	t *testing.T,
	entity *Entity,
	arguments ...Type,
) *ParameterizedType {
	result, err := NewParameterizedType(nil, entity, arguments...)
	require.NoError(t, err)
	return result
}

func (h *testHierarchy) listOf(t *testing.T, argument Type) *ParameterizedType {
	return h.parameterized(t, h.list, argument)
}

func (h *testHierarchy) arrayListOf(t *testing.T, argument Type) *ParameterizedType {
	return h.parameterized(t, h.arrayList, argument)
}

func (h *testHierarchy) stringType() *RawType {
	return h.cat.StringEntity().RawType()
}

func (h *testHierarchy) numberType() *RawType {
	return h.cat.Number().RawType()
}

func (h *testHierarchy) boxType(name string) *RawType {
	return h.cat.MustEntity(name).RawType()
}

func (h *testHierarchy) primitive(name string) *RawType {
	return h.cat.MustEntity(name).RawType()
}

func (h *testHierarchy) unbounded() *WildcardType {
	return NewUnboundedWildcard(h.cat)
}

func (h *testHierarchy) extendsWildcard(t *testing.T, bounds ...Type) *WildcardType {
	result, err := NewUpperBoundedWildcard(bounds...)
	require.NoError(t, err)
	return result
}

func (h *testHierarchy) superWildcard(t *testing.T, bounds ...Type) *WildcardType {
	result, err := NewLowerBoundedWildcard(bounds...)
	require.NoError(t, err)
	return result
}
