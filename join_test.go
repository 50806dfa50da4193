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

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireBounds(t *testing.T, bounds []Type, err error, expected ...string) {
	t.Helper()
	require.NoError(t, err)
	assert.Equal(t,
		expected,
		typeStrings(bounds),
		"bounds: %s",
		pretty.Sprint(bounds),
	)
}

func TestLeastUpperBoundsReferences(t *testing.T) {

	t.Parallel()

	h := newTestHierarchy(t)
	cat := h.cat

	t.Run("single input", func(t *testing.T) {
		t.Parallel()

		listOfString := h.listOf(t, h.stringType())
		bounds, err := LeastUpperBounds(listOfString)
		require.NoError(t, err)
		require.Len(t, bounds, 1)
		assert.Same(t, Type(listOfString), bounds[0])
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		t.Parallel()

		listOfString := h.listOf(t, h.stringType())
		bounds, err := LeastUpperBounds(listOfString, h.listOf(t, h.stringType()))
		requireBounds(t, bounds, err, "List<String>")
	})

	t.Run("siblings meet in their interface", func(t *testing.T) {
		t.Parallel()

		bounds, err := LeastUpperBounds(
			h.arrayListOf(t, h.stringType()),
			h.parameterized(t, h.linkedList, h.stringType()),
		)
		requireBounds(t, bounds, err, "List<String>")
	})

	t.Run("unrelated classes meet in the top type", func(t *testing.T) {
		t.Parallel()

		bounds, err := LeastUpperBounds(
			h.fruit.RawType(),
			h.listOf(t, h.stringType()),
		)
		requireBounds(t, bounds, err, "Object")
	})

	t.Run("comparable siblings produce a wildcard through the cycle guard", func(t *testing.T) {
		t.Parallel()

		bounds, err := LeastUpperBounds(
			h.boxType("Integer"),
			h.boxType("Long"),
		)
		requireBounds(t, bounds, err, "Number", "Comparable<?>")
	})

	t.Run("repeated argument positions join independently", func(t *testing.T) {
		t.Parallel()

		// The guarded sub-join of Integer and Long completes inside the
		// key position and must run again, unguarded, in the value
		// position.
		bounds, err := LeastUpperBounds(
			h.parameterized(t, h.hashMap, h.boxType("Integer"), h.boxType("Integer")),
			h.parameterized(t, h.hashMap, h.boxType("Long"), h.boxType("Long")),
		)
		require.NoError(t, err)
		require.Len(t, bounds, 1)
		assert.Equal(t,
			"HashMap<? extends Number & Comparable<?>, ? extends Number & Comparable<?>>",
			bounds[0].String(),
		)
	})

	t.Run("fruit siblings", func(t *testing.T) {
		t.Parallel()

		bounds, err := LeastUpperBounds(h.apple.RawType(), h.orange.RawType())
		requireBounds(t, bounds, err, "Fruit", "Comparable<?>")
	})

	t.Run("argument join becomes an extends wildcard", func(t *testing.T) {
		t.Parallel()

		bounds, err := LeastUpperBounds(
			h.listOf(t, h.apple.RawType()),
			h.listOf(t, h.orange.RawType()),
		)
		require.NoError(t, err)
		require.Len(t, bounds, 1)
		assert.Equal(t,
			"List<? extends Fruit & Comparable<?>>",
			bounds[0].String(),
		)
	})

	t.Run("super wildcards meet in the glb", func(t *testing.T) {
		t.Parallel()

		bounds, err := LeastUpperBounds(
			h.parameterized(t, h.list, h.superWildcard(t, h.boxType("Integer"))),
			h.parameterized(t, h.list, h.superWildcard(t, h.numberType())),
		)
		requireBounds(t, bounds, err, "List<? super Integer>")
	})

	t.Run("extends meets super unrestricted", func(t *testing.T) {
		t.Parallel()

		bounds, err := LeastUpperBounds(
			h.parameterized(t, h.list, h.extendsWildcard(t, h.numberType())),
			h.parameterized(t, h.list, h.superWildcard(t, h.boxType("Integer"))),
		)
		requireBounds(t, bounds, err, "List<?>")
	})

	t.Run("a raw input infects the join", func(t *testing.T) {
		t.Parallel()

		bounds, err := LeastUpperBounds(
			h.list.RawType(),
			h.listOf(t, h.stringType()),
		)
		requireBounds(t, bounds, err, "List")
	})

	t.Run("enums meet in a guarded enum bound", func(t *testing.T) {
		t.Parallel()

		bounds, err := LeastUpperBounds(h.color.RawType(), h.size.RawType())
		require.NoError(t, err)
		require.Len(t, bounds, 1)
		assert.True(t,
			bounds[0].Equal(declared(cat.EnumBase(), h.unbounded())),
			"bounds: %s",
			pretty.Sprint(bounds),
		)
	})
}

func TestJoinKeyVariableIdentity(t *testing.T) {

	t.Parallel()

	h := newTestHierarchy(t)

	listElement := h.list.Variable("E")
	collectionElement := h.collection.Variable("E")

	// Same-named parameters of different declaration sites are
	// different variables and must not share a guard key.
	assert.NotEqual(t,
		joinKey([]Type{listElement}),
		joinKey([]Type{collectionElement}),
	)
	assert.Equal(t,
		joinKey([]Type{listElement}),
		joinKey([]Type{h.list.Variable("E")}),
	)
}

func TestLeastUpperBoundsPrimitives(t *testing.T) {

	t.Parallel()

	h := newTestHierarchy(t)

	t.Run("widening-related", func(t *testing.T) {
		t.Parallel()

		bounds, err := LeastUpperBounds(h.primitive("int"), h.primitive("long"))
		requireBounds(t, bounds, err, "long")

		bounds, err = LeastUpperBounds(h.primitive("byte"), h.primitive("char"))
		requireBounds(t, bounds, err, "int")
	})

	t.Run("disjoint primitives have no join", func(t *testing.T) {
		t.Parallel()

		bounds, err := LeastUpperBounds(h.primitive("boolean"), h.primitive("int"))
		require.NoError(t, err)
		assert.Empty(t, bounds)
	})

	t.Run("mixing primitives and references fails", func(t *testing.T) {
		t.Parallel()

		_, err := LeastUpperBounds(h.primitive("int"), h.stringType())
		var incompatibleErr *IncompatibleJoinInputsError
		require.ErrorAs(t, err, &incompatibleErr)
	})

	t.Run("no inputs", func(t *testing.T) {
		t.Parallel()

		_, err := LeastUpperBounds()
		require.Error(t, err)
	})
}
