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

package typeexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gentype/gentype"
	"github.com/gentype/gentype/errors"
)

func newTestCatalog(t *testing.T) *gentype.Catalog {
	t.Helper()

	cat := gentype.NewCatalog()

	list, err := cat.DefineInterface("List", "E")
	require.NoError(t, err)

	arrayList, err := cat.DefineClass("ArrayList", "E")
	require.NoError(t, err)
	require.NoError(t, arrayList.AddInterface(
		&gentype.ParameterizedType{
			Entity:        list,
			TypeArguments: []gentype.Type{arrayList.Variable("E")},
		},
	))

	fruit, err := cat.DefineClass("Fruit")
	require.NoError(t, err)

	apple, err := cat.DefineClass("Apple")
	require.NoError(t, err)
	require.NoError(t, apple.SetSuperclass(fruit.RawType()))

	container, err := cat.DefineClass("Container", "T")
	require.NoError(t, err)
	_, err = cat.DefineMemberClass(container, "Item", false, "U")
	require.NoError(t, err)

	return cat
}

func parse(t *testing.T, cat *gentype.Catalog, input string) gentype.Type {
	t.Helper()
	parsed, err := Parse(cat, input)
	require.NoError(t, err)
	return parsed
}

func TestParseRawType(t *testing.T) {

	t.Parallel()

	cat := newTestCatalog(t)

	parsed := parse(t, cat, "String")
	assert.Same(t, cat.StringEntity().RawType(), parsed)

	parsed = parse(t, cat, "  int ")
	assert.Same(t, cat.MustEntity("int").RawType(), parsed)
}

func TestParseParameterizedType(t *testing.T) {

	t.Parallel()

	cat := newTestCatalog(t)

	t.Run("simple", func(t *testing.T) {
		t.Parallel()

		parsed := parse(t, cat, "List<String>")
		require.IsType(t, &gentype.ParameterizedType{}, parsed)
		assert.Equal(t, "List<String>", parsed.String())
	})

	t.Run("nested arguments", func(t *testing.T) {
		t.Parallel()

		parsed := parse(t, cat, "List<List<String>>")
		assert.Equal(t, "List<List<String>>", parsed.String())
	})

	t.Run("interior whitespace", func(t *testing.T) {
		t.Parallel()

		parsed := parse(t, cat, "List < List < String > >")
		assert.Equal(t, "List<List<String>>", parsed.String())
	})

	t.Run("member chain", func(t *testing.T) {
		t.Parallel()

		parsed := parse(t, cat, "Container<String>.Item<Fruit>")
		assert.Equal(t, "Container<String>.Item<Fruit>", parsed.String())
	})
}

func TestParseArrayType(t *testing.T) {

	t.Parallel()

	cat := newTestCatalog(t)

	t.Run("raw component", func(t *testing.T) {
		t.Parallel()

		parsed := parse(t, cat, "String[]")
		raw, ok := parsed.(*gentype.RawType)
		require.True(t, ok)
		assert.Equal(t, "String[]", raw.Entity.Name)
	})

	t.Run("primitive multi-dimensional", func(t *testing.T) {
		t.Parallel()

		parsed := parse(t, cat, "int[][]")
		assert.Equal(t, "int[][]", parsed.String())
	})

	t.Run("parameterized component", func(t *testing.T) {
		t.Parallel()

		parsed := parse(t, cat, "List<String>[]")
		require.IsType(t, &gentype.ArrayType{}, parsed)
		assert.Equal(t, "List<String>[]", parsed.String())
	})
}

func TestParseWildcard(t *testing.T) {

	t.Parallel()

	cat := newTestCatalog(t)

	t.Run("unbounded", func(t *testing.T) {
		t.Parallel()

		parsed := parse(t, cat, "List<?>")
		assert.Equal(t, "List<?>", parsed.String())
	})

	t.Run("upper bounded", func(t *testing.T) {
		t.Parallel()

		parsed := parse(t, cat, "List<? extends Number>")
		assert.Equal(t, "List<? extends Number>", parsed.String())
	})

	t.Run("multiple upper bounds", func(t *testing.T) {
		t.Parallel()

		parsed := parse(t, cat, "List<? extends Fruit & Serializable>")
		assert.Equal(t, "List<? extends Fruit & Serializable>", parsed.String())
	})

	t.Run("lower bounded", func(t *testing.T) {
		t.Parallel()

		parsed := parse(t, cat, "List<? super Apple>")
		assert.Equal(t, "List<? super Apple>", parsed.String())
	})

	t.Run("bare", func(t *testing.T) {
		t.Parallel()

		parsed := parse(t, cat, "? extends Number")
		wildcard, ok := parsed.(*gentype.WildcardType)
		require.True(t, ok)
		require.Len(t, wildcard.UpperBounds, 1)
	})
}

func TestParseInScope(t *testing.T) {

	t.Parallel()

	cat := newTestCatalog(t)
	list := cat.MustEntity("List")

	t.Run("variable", func(t *testing.T) {
		t.Parallel()

		parsed, err := ParseInScope(cat, list, "E")
		require.NoError(t, err)
		variable, ok := parsed.(*gentype.VariableType)
		require.True(t, ok)
		assert.Same(t, list.TypeParameter("E"), variable.Parameter)
	})

	t.Run("variable argument", func(t *testing.T) {
		t.Parallel()

		parsed, err := ParseInScope(cat, list, "List<E>")
		require.NoError(t, err)
		assert.Equal(t, "List<E>", parsed.String())
	})

	t.Run("out of scope", func(t *testing.T) {
		t.Parallel()

		_, err := Parse(cat, "E")
		var notDefinedErr *gentype.NotDefinedError
		require.ErrorAs(t, err, &notDefinedErr)
	})
}

func TestParsePrefix(t *testing.T) {

	t.Parallel()

	cat := newTestCatalog(t)

	parsed, rest, err := ParsePrefix(cat, nil, "List<String> to Object")
	require.NoError(t, err)
	assert.Equal(t, "List<String>", parsed.String())
	assert.Equal(t, " to Object", rest)
}

func TestParseErrors(t *testing.T) {

	t.Parallel()

	cat := newTestCatalog(t)

	t.Run("not defined with suggestion", func(t *testing.T) {
		t.Parallel()

		_, err := Parse(cat, "List<Strin>")
		var notDefinedErr *gentype.NotDefinedError
		require.ErrorAs(t, err, &notDefinedErr)
		assert.Equal(t, "Strin", notDefinedErr.Name)
		assert.Equal(t, "String", notDefinedErr.Suggestion)
	})

	t.Run("unterminated arguments", func(t *testing.T) {
		t.Parallel()

		_, err := Parse(cat, "List<String")
		var syntaxErr *SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
		assert.True(t, errors.IsUserError(err))
	})

	t.Run("missing bracket", func(t *testing.T) {
		t.Parallel()

		_, err := Parse(cat, "String[")
		var syntaxErr *SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
	})

	t.Run("trailing input", func(t *testing.T) {
		t.Parallel()

		_, err := Parse(cat, "String extra")
		var syntaxErr *SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		_, err := Parse(cat, "   ")
		var syntaxErr *SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
	})

	t.Run("primitive type argument", func(t *testing.T) {
		t.Parallel()

		_, err := Parse(cat, "List<int>")
		var primitiveErr *gentype.PrimitiveTypeArgumentError
		require.ErrorAs(t, err, &primitiveErr)
	})

	t.Run("wildcard array component", func(t *testing.T) {
		t.Parallel()

		_, err := Parse(cat, "?[]")
		var componentErr *gentype.InvalidComponentTypeError
		require.ErrorAs(t, err, &componentErr)
	})

	t.Run("argument count", func(t *testing.T) {
		t.Parallel()

		_, err := Parse(cat, "List<String, String>")
		var countErr *gentype.InvalidTypeArgumentCountError
		require.ErrorAs(t, err, &countErr)
	})
}
