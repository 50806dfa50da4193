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

// Package repl interprets interactive queries against a catalog.
package repl

import (
	"fmt"
	"strings"

	"github.com/gentype/gentype"
	"github.com/gentype/gentype/errors"
	"github.com/gentype/gentype/pretty"
	"github.com/gentype/gentype/typeexpr"
)

// HelpMessage describes the available queries.
const HelpMessage = `Queries:
  erase <type>               erased entity and kind
  component <type>           array component type
  supers <type>              direct supertypes
  closure <type>             all supertypes
  resolve <type> to <name>   resolve the generic form of an ancestor
  assignable <type> to <type>   assignability (with unchecked and boxing)
  strict <type> to <type>       assignability by reference conversion only
  same <type> and <type>     whether two descriptors denote the same type
  lub <type> and <type> ...  least upper bounds
  describe <type>            pretty-print a descriptor

Commands:
  .help                      print this message
  .entities                  list the defined entities
  .exit                      exit the session
`

const describeMaxLineWidth = 60

// REPL interprets queries against a catalog.
type REPL struct {
	catalog *gentype.Catalog
}

func NewREPL(catalog *gentype.Catalog) *REPL {
	return &REPL{
		catalog: catalog,
	}
}

func (r *REPL) Catalog() *gentype.Catalog {
	return r.catalog
}

// Suggestion is a completion candidate for interactive input.
type Suggestion struct {
	Text        string
	Description string
}

// Suggestions returns completion candidates:
// the queries, followed by the defined entity names.
func (r *REPL) Suggestions() []Suggestion {
	suggestions := []Suggestion{
		{Text: "erase", Description: "erased entity and kind"},
		{Text: "component", Description: "array component type"},
		{Text: "supers", Description: "direct supertypes"},
		{Text: "closure", Description: "all supertypes"},
		{Text: "resolve", Description: "resolve the generic form of an ancestor"},
		{Text: "assignable", Description: "assignability (with unchecked and boxing)"},
		{Text: "strict", Description: "assignability by reference conversion only"},
		{Text: "same", Description: "same-type test"},
		{Text: "lub", Description: "least upper bounds"},
		{Text: "describe", Description: "pretty-print a descriptor"},
	}
	for _, name := range r.catalog.EntityNames() {
		suggestions = append(suggestions, Suggestion{
			Text:        name,
			Description: "entity",
		})
	}
	return suggestions
}

// Execute interprets one query line and returns its result.
func (r *REPL) Execute(line string) (string, error) {
	query, rest := nextWord(line)

	switch query {
	case "":
		return "", nil

	case "erase":
		t, err := r.parseAll(rest)
		if err != nil {
			return "", err
		}
		entity := gentype.Erase(t)
		return fmt.Sprintf("%s (%s)", entity.Name, entity.Kind), nil

	case "component":
		t, err := r.parseAll(rest)
		if err != nil {
			return "", err
		}
		component, ok := gentype.ComponentType(t)
		if !ok {
			return "", errors.NewDefaultUserError(
				"%s is not an array type",
				t,
			)
		}
		return component.String(), nil

	case "supers":
		t, err := r.parseAll(rest)
		if err != nil {
			return "", err
		}
		return renderTypes(gentype.DirectSupertypes(t)), nil

	case "closure":
		t, err := r.parseAll(rest)
		if err != nil {
			return "", err
		}
		return renderTypes(gentype.AllSupertypes(t)), nil

	case "resolve":
		t, rest, err := r.parseOne(rest)
		if err != nil {
			return "", err
		}
		rest, err = expectKeyword(rest, "to")
		if err != nil {
			return "", err
		}
		name, rest := nextWord(rest)
		if name == "" || strings.TrimSpace(rest) != "" {
			return "", errors.NewDefaultUserError(
				"usage: resolve <type> to <name>",
			)
		}
		target, err := r.catalog.Entity(name)
		if err != nil {
			return "", err
		}
		resolved, ok := gentype.ResolveSuperType(t, target)
		if !ok {
			return "", errors.NewDefaultUserError(
				"%s is not a supertype of %s",
				name,
				t,
			)
		}
		return resolved.String(), nil

	case "assignable":
		from, to, err := r.parsePair(rest, "to")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%t", gentype.IsAssignable(to, from)), nil

	case "strict":
		from, to, err := r.parsePair(rest, "to")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%t", gentype.IsAssignableStrict(to, from)), nil

	case "same":
		a, b, err := r.parsePair(rest, "and")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%t", gentype.IsSameType(a, b)), nil

	case "lub":
		types, err := r.parseList(rest, "and")
		if err != nil {
			return "", err
		}
		bounds, err := gentype.LeastUpperBounds(types...)
		if err != nil {
			return "", err
		}
		if len(bounds) == 0 {
			return "(none)", nil
		}
		rendered := make([]string, len(bounds))
		for i, bound := range bounds {
			rendered[i] = bound.String()
		}
		return strings.Join(rendered, " & "), nil

	case "describe":
		t, err := r.parseAll(rest)
		if err != nil {
			return "", err
		}
		return pretty.Print(t, describeMaxLineWidth), nil

	default:
		return "", errors.NewDefaultUserError(
			"unknown query %q, type .help for the available queries",
			query,
		)
	}
}

func (r *REPL) parseAll(input string) (gentype.Type, error) {
	return typeexpr.Parse(r.catalog, input)
}

func (r *REPL) parseOne(input string) (gentype.Type, string, error) {
	return typeexpr.ParsePrefix(r.catalog, nil, input)
}

func (r *REPL) parsePair(input, separator string) (gentype.Type, gentype.Type, error) {
	first, rest, err := r.parseOne(input)
	if err != nil {
		return nil, nil, err
	}
	rest, err = expectKeyword(rest, separator)
	if err != nil {
		return nil, nil, err
	}
	second, err := r.parseAll(rest)
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

func (r *REPL) parseList(input, separator string) ([]gentype.Type, error) {
	var types []gentype.Type
	for {
		t, rest, err := r.parseOne(input)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
		if strings.TrimSpace(rest) == "" {
			return types, nil
		}
		input, err = expectKeyword(rest, separator)
		if err != nil {
			return nil, err
		}
	}
}

func renderTypes(types []gentype.Type) string {
	if len(types) == 0 {
		return "(none)"
	}
	var b strings.Builder
	for i, t := range types {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(t.String())
	}
	return b.String()
}

func nextWord(input string) (string, string) {
	input = strings.TrimLeft(input, " \t")
	end := strings.IndexAny(input, " \t")
	if end < 0 {
		return input, ""
	}
	return input[:end], input[end:]
}

func expectKeyword(input, keyword string) (string, error) {
	word, rest := nextWord(input)
	if word != keyword {
		return "", errors.NewDefaultUserError(
			"expected %q, got %q",
			keyword,
			word,
		)
	}
	return rest, nil
}
