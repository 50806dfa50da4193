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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gentype/gentype/errors"
)

func TestCatalogBuiltins(t *testing.T) {

	t.Parallel()

	cat := NewCatalog()

	t.Run("top type", func(t *testing.T) {
		t.Parallel()

		object, err := cat.Entity("Object")
		require.NoError(t, err)
		assert.Same(t, cat.Object(), object)
		assert.True(t, isTopType(cat.TopType()))
	})

	t.Run("string implements Comparable<String>", func(t *testing.T) {
		t.Parallel()

		str := cat.StringEntity()
		require.Len(t, str.Interfaces(), 2)
		assert.True(t,
			str.Interfaces()[1].Equal(
				declared(cat.Comparable(), str.RawType()),
			),
		)
	})

	t.Run("enum base is F-bounded", func(t *testing.T) {
		t.Parallel()

		enum := cat.EnumBase()
		require.True(t, enum.IsGeneric())

		parameter := enum.TypeParameter("E")
		require.NotNil(t, parameter)
		require.Len(t, parameter.Bounds(), 1)
		assert.Equal(t, "Enum<E>", parameter.Bounds()[0].String())
	})

	t.Run("primitives and boxes", func(t *testing.T) {
		t.Parallel()

		intEntity := cat.MustEntity("int")
		assert.True(t, intEntity.IsPrimitive())

		integer := cat.BoxEntity(intEntity)
		require.NotNil(t, integer)
		assert.Equal(t, "Integer", integer.Name)
		assert.Same(t, intEntity, cat.PrimitiveFor(integer))

		assert.True(t, cat.widensTo(intEntity, cat.MustEntity("double")))
		assert.False(t, cat.widensTo(intEntity, cat.MustEntity("char")))
		assert.False(t, cat.widensTo(intEntity, intEntity))
	})
}

func TestCatalogDefine(t *testing.T) {

	t.Parallel()

	t.Run("duplicate name", func(t *testing.T) {
		t.Parallel()

		cat := NewCatalog()

		_, err := cat.DefineClass("Task")
		require.NoError(t, err)

		_, err = cat.DefineInterface("Task")
		var alreadyDefinedErr *AlreadyDefinedError
		require.ErrorAs(t, err, &alreadyDefinedErr)
		assert.Equal(t, "Task", alreadyDefinedErr.Name)
		assert.True(t, errors.IsUserError(err))
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		cat := NewCatalog()

		_, err := cat.DefineClass("")
		require.Error(t, err)
		assert.True(t, errors.IsUserError(err))
	})

	t.Run("enum superclass", func(t *testing.T) {
		t.Parallel()

		cat := NewCatalog()

		color, err := cat.DefineEnum("Color")
		require.NoError(t, err)
		assert.True(t, color.IsEnum())
		assert.True(t, color.IsClassLike())

		require.NotNil(t, color.Superclass())
		assert.True(t,
			color.Superclass().Equal(
				declared(cat.EnumBase(), color.RawType()),
			),
		)
	})

	t.Run("member classes", func(t *testing.T) {
		t.Parallel()

		h := newTestHierarchy(t)

		assert.Same(t, h.container, h.item.Enclosing())
		assert.False(t, h.item.IsStatic())
		assert.True(t, h.nested.IsStatic())
	})
}

func TestCatalogLookup(t *testing.T) {

	t.Parallel()

	t.Run("not defined, with suggestion", func(t *testing.T) {
		t.Parallel()

		h := newTestHierarchy(t)

		_, err := h.cat.Entity("Lst")
		var notDefinedErr *NotDefinedError
		require.ErrorAs(t, err, &notDefinedErr)
		assert.Equal(t, "Lst", notDefinedErr.Name)
		assert.Equal(t, "List", notDefinedErr.Suggestion)
		assert.Equal(t, "did you mean `List`?", notDefinedErr.SecondaryError())
	})

	t.Run("must entity panics", func(t *testing.T) {
		t.Parallel()

		cat := NewCatalog()

		assert.Panics(t, func() {
			cat.MustEntity("Nope")
		})
	})

	t.Run("entity names sorted", func(t *testing.T) {
		t.Parallel()

		h := newTestHierarchy(t)

		names := h.cat.EntityNames()
		assert.Contains(t, names, "ArrayList")
		assert.Contains(t, names, "Object")
		assert.IsIncreasing(t, names)
	})
}

func TestCatalogArrayEntity(t *testing.T) {

	t.Parallel()

	h := newTestHierarchy(t)
	cat := h.cat

	t.Run("singleton per component", func(t *testing.T) {
		t.Parallel()

		first := cat.ArrayEntity(cat.StringEntity())
		second := cat.ArrayEntity(cat.StringEntity())
		assert.Same(t, first, second)
		assert.Equal(t, "String[]", first.Name)
		assert.True(t, first.IsArray())
		assert.Same(t, cat.StringEntity(), first.ComponentEntity())
	})

	t.Run("not registered by name", func(t *testing.T) {
		t.Parallel()

		cat.ArrayEntity(cat.Number())
		assert.NotContains(t, cat.EntityNames(), "Number[]")
	})

	t.Run("concurrent loads agree", func(t *testing.T) {
		t.Parallel()

		const loaders = 8

		results := make([]*Entity, loaders)

		var wg sync.WaitGroup
		for i := 0; i < loaders; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = cat.ArrayEntity(h.fruit)
			}(i)
		}
		wg.Wait()

		for _, result := range results[1:] {
			assert.Same(t, results[0], result)
		}
	})
}

func TestEntityAssignableFrom(t *testing.T) {

	t.Parallel()

	h := newTestHierarchy(t)
	cat := h.cat

	t.Run("identity and hierarchy", func(t *testing.T) {
		t.Parallel()

		assert.True(t, h.fruit.AssignableFrom(h.fruit))
		assert.True(t, h.fruit.AssignableFrom(h.apple))
		assert.False(t, h.apple.AssignableFrom(h.fruit))
		assert.True(t, h.list.AssignableFrom(h.arrayList))
		assert.True(t, h.iterable.AssignableFrom(h.linkedList))
		assert.True(t, cat.Object().AssignableFrom(h.apple))
	})

	t.Run("primitives", func(t *testing.T) {
		t.Parallel()

		intEntity := cat.MustEntity("int")
		longEntity := cat.MustEntity("long")
		assert.True(t, intEntity.AssignableFrom(intEntity))
		assert.False(t, longEntity.AssignableFrom(intEntity))
		assert.False(t, cat.Object().AssignableFrom(intEntity))
	})

	t.Run("arrays", func(t *testing.T) {
		t.Parallel()

		stringArray := cat.ArrayEntity(cat.StringEntity())
		objectArray := cat.ArrayEntity(cat.Object())
		intArray := cat.ArrayEntity(cat.MustEntity("int"))
		longArray := cat.ArrayEntity(cat.MustEntity("long"))

		assert.True(t, objectArray.AssignableFrom(stringArray))
		assert.False(t, stringArray.AssignableFrom(objectArray))
		assert.True(t, cat.Object().AssignableFrom(stringArray))
		assert.True(t, cat.Serializable().AssignableFrom(intArray))
		assert.True(t, cat.Cloneable().AssignableFrom(stringArray))

		// Primitive components are invariant.
		assert.False(t, longArray.AssignableFrom(intArray))
		assert.True(t, intArray.AssignableFrom(intArray))
		assert.False(t, objectArray.AssignableFrom(intArray))
	})

	t.Run("enum reaches Comparable", func(t *testing.T) {
		t.Parallel()

		assert.True(t, cat.EnumBase().AssignableFrom(h.color))
		assert.True(t, cat.Comparable().AssignableFrom(h.color))
		assert.True(t, cat.Serializable().AssignableFrom(h.color))
	})
}
