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

package pretty

import (
	"testing"

	"github.com/logrusorgru/aurora/v4"
	"github.com/stretchr/testify/assert"
)

func TestColorizeRawType(t *testing.T) {

	t.Parallel()

	cat := newTestCatalog(t)

	assert.Equal(t,
		aurora.Colorize("String", aurora.CyanFg).String(),
		Colorize(cat.StringEntity().RawType()))
}

func TestColorizeVariable(t *testing.T) {

	t.Parallel()

	cat := newTestCatalog(t)

	assert.Equal(t,
		aurora.Colorize("E", aurora.YellowFg|aurora.BrightFg).String(),
		Colorize(cat.MustEntity("List").Variable("E")))
}

func TestColorizeParameterizedType(t *testing.T) {

	t.Parallel()

	cat := newTestCatalog(t)

	assert.Equal(t,
		aurora.Colorize("List", aurora.CyanFg).String()+
			"<"+
			aurora.Colorize("String", aurora.CyanFg).String()+
			">",
		Colorize(parse(t, cat, "List<String>")))
}

func TestColorizeWildcard(t *testing.T) {

	t.Parallel()

	cat := newTestCatalog(t)

	t.Run("unbounded", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t,
			aurora.Colorize("?", aurora.MagentaFg).String(),
			Colorize(parse(t, cat, "?")))
	})

	t.Run("upper bounded", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t,
			aurora.Colorize("?", aurora.MagentaFg).String()+
				" extends "+
				aurora.Colorize("Number", aurora.CyanFg).String(),
			Colorize(parse(t, cat, "? extends Number")))
	})
}

func TestColorizeArrayType(t *testing.T) {

	t.Parallel()

	cat := newTestCatalog(t)

	t.Run("raw array entity", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t,
			aurora.Colorize("int[]", aurora.CyanFg).String(),
			Colorize(parse(t, cat, "int[]")))
	})

	t.Run("parameterized component", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t,
			aurora.Colorize("List", aurora.CyanFg).String()+
				"<"+
				aurora.Colorize("String", aurora.CyanFg).String()+
				">[]",
			Colorize(parse(t, cat, "List<String>[]")))
	})
}
