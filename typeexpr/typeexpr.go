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

// Package typeexpr parses textual type expressions into descriptors.
//
// The accepted syntax mirrors the rendering of descriptors:
//
//	type     : element ( '[' ']' )*
//	element  : wildcard | named
//	wildcard : '?' ( ( 'extends' | 'super' ) type ( '&' type )* )?
//	named    : name args? ( '.' name args? )*
//	args     : '<' type ( ',' type )* '>'
//
// Names resolve against a Resolver, typically a *gentype.Catalog.
// Inside a declaration site's scope, bare names additionally resolve to
// the site's type parameters, which shadow entities of the same name.
package typeexpr

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/gentype/gentype"
	"github.com/gentype/gentype/errors"
)

// Resolver resolves entity names. *gentype.Catalog implements it.
type Resolver interface {
	Entity(name string) (*gentype.Entity, error)
}

var _ Resolver = &gentype.Catalog{}

// SyntaxError reports malformed input, with the byte offset of the
// offending position.
type SyntaxError struct {
	Message string
	Pos     int
}

var _ errors.UserError = &SyntaxError{}

func (*SyntaxError) IsUserError() {}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Message)
}

// Parse parses a complete type expression.
func Parse(resolver Resolver, input string) (gentype.Type, error) {
	return ParseInScope(resolver, nil, input)
}

// ParseInScope parses a complete type expression. If site is non-nil,
// bare names matching the site's type parameters parse as variables.
func ParseInScope(
	resolver Resolver,
	site gentype.DeclarationSite,
	input string,
) (gentype.Type, error) {
	t, rest, err := ParsePrefix(resolver, site, input)
	if err != nil {
		return nil, err
	}
	p := &parser{input: input}
	p.pos = len(input) - len(rest)
	p.skipSpace()
	if p.pos < len(input) {
		return nil, &SyntaxError{
			Message: fmt.Sprintf("unexpected %q after type", remainder(input, p.pos)),
			Pos:     p.pos,
		}
	}
	return t, nil
}

// ParsePrefix parses one type expression from the start of the input and
// returns the unconsumed remainder.
func ParsePrefix(
	resolver Resolver,
	site gentype.DeclarationSite,
	input string,
) (gentype.Type, string, error) {
	p := &parser{
		resolver: resolver,
		site:     site,
		input:    input,
	}
	t, err := p.parseType()
	if err != nil {
		return nil, input, err
	}
	return t, input[p.pos:], nil
}

func remainder(input string, pos int) string {
	rest := input[pos:]
	if len(rest) > 10 {
		rest = rest[:10] + "…"
	}
	return rest
}

type parser struct {
	resolver Resolver
	site     gentype.DeclarationSite
	input    string
	pos      int
}

func (p *parser) parseType() (gentype.Type, error) {
	element, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	for p.consume('[') {
		if !p.consume(']') {
			return nil, p.syntaxError("expected ']'")
		}
		element, err = gentype.NewArrayType(element)
		if err != nil {
			return nil, err
		}
	}
	return element, nil
}

func (p *parser) parseElement() (gentype.Type, error) {
	if p.consume('?') {
		return p.parseWildcard()
	}

	name, ok := p.identifier()
	if !ok {
		return nil, p.syntaxError("expected type name or '?'")
	}

	if !p.peekIs('<') {
		if parameter := p.scopeParameter(name); parameter != nil {
			return &gentype.VariableType{Parameter: parameter}, nil
		}
		entity, err := p.resolver.Entity(name)
		if err != nil {
			return nil, err
		}
		return entity.RawType(), nil
	}

	t, err := p.parseInvocation(nil, name)
	if err != nil {
		return nil, err
	}

	// Member chain: Outer<A>.Inner<B>. A member without arguments is
	// just its raw type, since raw descriptors carry no owner.
	for p.consume('.') {
		memberName, ok := p.identifier()
		if !ok {
			return nil, p.syntaxError("expected member type name")
		}
		if !p.peekIs('<') {
			entity, err := p.resolver.Entity(memberName)
			if err != nil {
				return nil, err
			}
			return entity.RawType(), nil
		}
		t, err = p.parseInvocation(t, memberName)
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (p *parser) parseInvocation(owner gentype.Type, name string) (gentype.Type, error) {
	entity, err := p.resolver.Entity(name)
	if err != nil {
		return nil, err
	}
	arguments, err := p.parseTypeArguments()
	if err != nil {
		return nil, err
	}
	invocation, err := gentype.NewParameterizedType(owner, entity, arguments...)
	if err != nil {
		return nil, err
	}
	return invocation, nil
}

func (p *parser) parseTypeArguments() ([]gentype.Type, error) {
	if !p.consume('<') {
		return nil, p.syntaxError("expected '<'")
	}
	var arguments []gentype.Type
	for {
		argument, err := p.parseType()
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, argument)
		if p.consume(',') {
			continue
		}
		if p.consume('>') {
			return arguments, nil
		}
		return nil, p.syntaxError("expected ',' or '>'")
	}
}

func (p *parser) parseWildcard() (gentype.Type, error) {
	start := p.pos
	keyword, ok := p.identifier()
	if !ok {
		return p.unboundedWildcard()
	}

	switch keyword {
	case "extends":
		bounds, err := p.parseBounds()
		if err != nil {
			return nil, err
		}
		wildcard, err := gentype.NewUpperBoundedWildcard(bounds...)
		if err != nil {
			return nil, err
		}
		return wildcard, nil

	case "super":
		bounds, err := p.parseBounds()
		if err != nil {
			return nil, err
		}
		wildcard, err := gentype.NewLowerBoundedWildcard(bounds...)
		if err != nil {
			return nil, err
		}
		return wildcard, nil

	default:
		// Not a bound keyword, e.g. the wildcard in `Map<?, String>`
		// followed by something else entirely.
		p.pos = start
		return p.unboundedWildcard()
	}
}

func (p *parser) unboundedWildcard() (gentype.Type, error) {
	object, err := p.resolver.Entity("Object")
	if err != nil {
		return nil, err
	}
	return gentype.NewUnboundedWildcard(object.Catalog()), nil
}

func (p *parser) parseBounds() ([]gentype.Type, error) {
	var bounds []gentype.Type
	for {
		bound, err := p.parseType()
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, bound)
		if !p.consume('&') {
			return bounds, nil
		}
	}
}

func (p *parser) scopeParameter(name string) *gentype.TypeParameter {
	if p.site == nil {
		return nil
	}
	for _, parameter := range p.site.DeclaredTypeParameters() {
		if parameter.Name == name {
			return parameter
		}
	}
	return nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) {
		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

func (p *parser) peekIs(c byte) bool {
	p.skipSpace()
	return p.pos < len(p.input) && p.input[p.pos] == c
}

func (p *parser) consume(c byte) bool {
	if !p.peekIs(c) {
		return false
	}
	p.pos++
	return true
}

func (p *parser) identifier() (string, bool) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		if !unicode.IsLetter(r) && r != '_' &&
			(p.pos == start || !unicode.IsDigit(r)) {

			break
		}
		p.pos += size
	}
	if p.pos == start {
		return "", false
	}
	return p.input[start:p.pos], true
}

func (p *parser) syntaxError(message string) *SyntaxError {
	p.skipSpace()
	return &SyntaxError{
		Message: message,
		Pos:     p.pos,
	}
}
