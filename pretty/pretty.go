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

// Package pretty renders type descriptors as prettier documents,
// wrapping long argument lists over multiple lines.
package pretty

import (
	"strings"

	"github.com/turbolent/prettier"

	"github.com/gentype/gentype"
	"github.com/gentype/gentype/errors"
)

var typeArgumentSeparatorDoc prettier.Doc = prettier.Concat{
	prettier.Text(","),
	prettier.Line{},
}

var boundSeparatorDoc prettier.Doc = prettier.Concat{
	prettier.Line{},
	prettier.Text("& "),
}

// Doc returns the prettier document for a descriptor.
func Doc(t gentype.Type) prettier.Doc {
	switch t := t.(type) {
	case *gentype.RawType:
		return prettier.Text(t.Entity.Name)

	case *gentype.ParameterizedType:
		var doc prettier.Concat
		if t.Owner != nil {
			doc = append(doc, Doc(t.Owner), prettier.Text("."))
		}
		doc = append(doc, prettier.Text(t.Entity.Name))

		argumentDocs := make([]prettier.Doc, len(t.TypeArguments))
		for i, argument := range t.TypeArguments {
			argumentDocs[i] = Doc(argument)
		}

		doc = append(doc, prettier.Group{
			Doc: prettier.Concat{
				prettier.Text("<"),
				prettier.Indent{
					Doc: prettier.Concat{
						prettier.SoftLine{},
						prettier.Join(typeArgumentSeparatorDoc, argumentDocs...),
					},
				},
				prettier.SoftLine{},
				prettier.Text(">"),
			},
		})
		return doc

	case *gentype.ArrayType:
		return prettier.Concat{
			Doc(t.Component),
			prettier.Text("[]"),
		}

	case *gentype.VariableType:
		return prettier.Text(t.Parameter.Name)

	case *gentype.WildcardType:
		return wildcardDoc(t)

	case nil:
		panic(errors.NewUnexpectedError("missing type"))

	default:
		panic(errors.NewUnreachableError())
	}
}

func wildcardDoc(t *gentype.WildcardType) prettier.Doc {
	if len(t.LowerBounds) > 0 {
		return boundedWildcardDoc("super", t.LowerBounds)
	}
	if len(t.UpperBounds) == 1 && isTopBound(t.UpperBounds[0]) {
		return prettier.Text("?")
	}
	return boundedWildcardDoc("extends", t.UpperBounds)
}

func boundedWildcardDoc(keyword string, bounds []gentype.Type) prettier.Doc {
	boundDocs := make([]prettier.Doc, len(bounds))
	for i, bound := range bounds {
		boundDocs[i] = Doc(bound)
	}
	return prettier.Group{
		Doc: prettier.Concat{
			prettier.Text("? " + keyword + " "),
			prettier.Indent{
				Doc: prettier.Join(boundSeparatorDoc, boundDocs...),
			},
		},
	}
}

func isTopBound(bound gentype.Type) bool {
	raw, ok := bound.(*gentype.RawType)
	return ok && raw.Entity == raw.Entity.Catalog().Object()
}

// Print renders a descriptor with the given maximum line width.
func Print(t gentype.Type, maxLineWidth int) string {
	var b strings.Builder
	prettier.Prettier(&b, Doc(t), maxLineWidth, "    ")
	return b.String()
}
