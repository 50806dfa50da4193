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
	"strings"

	"github.com/logrusorgru/aurora/v4"

	"github.com/gentype/gentype"
	"github.com/gentype/gentype/errors"
)

// Colorize renders a descriptor for a terminal:
// entity names cyan, variables yellow, wildcards magenta.
// Punctuation stays uncolored. The layout is the single-line String form.
func Colorize(t gentype.Type) string {
	var b strings.Builder
	colorize(&b, t)
	return b.String()
}

func colorize(b *strings.Builder, t gentype.Type) {
	switch t := t.(type) {
	case *gentype.RawType:
		b.WriteString(colorizeEntityName(t.Entity.Name))

	case *gentype.ParameterizedType:
		if t.Owner != nil {
			colorize(b, t.Owner)
			b.WriteByte('.')
		}
		b.WriteString(colorizeEntityName(t.Entity.Name))
		b.WriteByte('<')
		for i, argument := range t.TypeArguments {
			if i > 0 {
				b.WriteString(", ")
			}
			colorize(b, argument)
		}
		b.WriteByte('>')

	case *gentype.ArrayType:
		colorize(b, t.Component)
		b.WriteString("[]")

	case *gentype.VariableType:
		b.WriteString(colorizeVariableName(t.Parameter.Name))

	case *gentype.WildcardType:
		b.WriteString(colorizeWildcard("?"))
		if len(t.LowerBounds) > 0 {
			b.WriteString(" super ")
			colorizeBounds(b, t.LowerBounds)
		} else if len(t.UpperBounds) != 1 || !isTopBound(t.UpperBounds[0]) {
			b.WriteString(" extends ")
			colorizeBounds(b, t.UpperBounds)
		}

	case nil:
		panic(errors.NewUnexpectedError("missing type"))

	default:
		panic(errors.NewUnreachableError())
	}
}

func colorizeBounds(b *strings.Builder, bounds []gentype.Type) {
	for i, bound := range bounds {
		if i > 0 {
			b.WriteString(" & ")
		}
		colorize(b, bound)
	}
}

func colorizeEntityName(name string) string {
	return aurora.Colorize(name, aurora.CyanFg).String()
}

func colorizeVariableName(name string) string {
	return aurora.Colorize(name, aurora.YellowFg|aurora.BrightFg).String()
}

func colorizeWildcard(s string) string {
	return aurora.Colorize(s, aurora.MagentaFg).String()
}
