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
	"sort"
	"strconv"
	"strings"

	"github.com/gentype/gentype/errors"
)

// LeastUpperBounds computes the join of the given descriptors:
// the set of most specific types every input is assignable to.
//
// The result may have more than one element when the inputs only meet in
// unrelated interfaces, e.g. the join of Integer and Long is
// Number and Comparable<?>. Class-like bounds precede interface bounds.
//
// Joining primitives uses the widening order; the join of widening-
// unrelated primitives (e.g. boolean and int) is empty. Joining a
// primitive with a reference type fails with IncompatibleJoinInputsError.
//
// F-bounded hierarchies make the naive computation non-terminating:
// the join of Integer and Long asks for the join of their Comparable
// instantiations' arguments, which are Integer and Long again. A sub-join
// whose input set is still underway resolves to the top type instead of
// recursing.
func LeastUpperBounds(types ...Type) ([]Type, error) {
	state := &joinState{
		processed: map[string]struct{}{},
	}
	return state.join(types)
}

type joinState struct {
	// processed records the input sets of sub-joins already underway,
	// keyed by their canonical rendering.
	processed map[string]struct{}
}

func (s *joinState) join(inputs []Type) ([]Type, error) {
	if len(inputs) == 0 {
		return nil, errors.NewDefaultUserError(
			"join requires at least one type",
		)
	}

	var deduped []Type
	for _, t := range inputs {
		if t == nil {
			panic(errors.NewUnexpectedError("missing type"))
		}
		if !containsType(deduped, t) {
			deduped = append(deduped, t)
		}
	}
	if len(deduped) == 1 {
		return deduped, nil
	}

	key := joinKey(deduped)
	if _, underway := s.processed[key]; underway {
		// Infinite descent through an F-bounded hierarchy.
		return []Type{catalogOf(deduped[0]).TopType()}, nil
	}
	s.processed[key] = struct{}{}
	// The guard covers sub-joins still underway, not completed ones:
	// repeating a finished sub-join in a sibling position must recompute
	// it, not collapse it to the top type.
	defer delete(s.processed, key)

	primitives := 0
	for _, t := range deduped {
		if isPrimitiveDescriptor(t) {
			primitives++
		}
	}
	switch primitives {
	case 0:
		return s.joinReferences(deduped)
	case len(deduped):
		return joinPrimitives(deduped), nil
	default:
		return nil, &IncompatibleJoinInputsError{Types: deduped}
	}
}

// joinKey renders an input set into a canonical guard key.
// Variables are qualified by their declaration site: two parameters that
// merely share a name must not share a key.
func joinKey(types []Type) string {
	rendered := make([]string, len(types))
	for i, t := range types {
		var b strings.Builder
		writeJoinKey(&b, t)
		rendered[i] = b.String()
	}
	sort.Strings(rendered)
	return strings.Join(rendered, "|")
}

func writeJoinKey(b *strings.Builder, t Type) {
	switch t := t.(type) {
	case *RawType:
		b.WriteString(t.Entity.Name)

	case *ParameterizedType:
		if t.Owner != nil {
			writeJoinKey(b, t.Owner)
			b.WriteByte('.')
		}
		b.WriteString(t.Entity.Name)
		b.WriteByte('<')
		for i, argument := range t.TypeArguments {
			if i > 0 {
				b.WriteString(", ")
			}
			writeJoinKey(b, argument)
		}
		b.WriteByte('>')

	case *ArrayType:
		writeJoinKey(b, t.Component)
		b.WriteString("[]")

	case *VariableType:
		parameter := t.Parameter
		b.WriteString(parameter.Site.DeclarationName())
		b.WriteByte('#')
		b.WriteString(strconv.Itoa(parameter.Ordinal))
		b.WriteByte(':')
		b.WriteString(parameter.Name)

	case *WildcardType:
		if len(t.LowerBounds) > 0 {
			b.WriteString("? super ")
			writeJoinKeyBounds(b, t.LowerBounds)
			return
		}
		b.WriteString("? extends ")
		writeJoinKeyBounds(b, t.UpperBounds)

	case nil:
		panic(errors.NewUnexpectedError("missing type"))

	default:
		panic(errors.NewUnreachableError())
	}
}

func writeJoinKeyBounds(b *strings.Builder, bounds []Type) {
	for i, bound := range bounds {
		if i > 0 {
			b.WriteString(" & ")
		}
		writeJoinKey(b, bound)
	}
}

func isPrimitiveDescriptor(t Type) bool {
	raw, ok := t.(*RawType)
	return ok && raw.Entity.IsPrimitive()
}

func joinPrimitives(inputs []Type) []Type {
	common := primitiveWideningClosure(inputs[0].(*RawType).Entity)
	for _, t := range inputs[1:] {
		closure := primitiveWideningClosure(t.(*RawType).Entity)
		common = intersectEntities(common, closure)
	}

	minimal := minimalEntities(common)
	result := make([]Type, 0, len(minimal))
	for _, entity := range minimal {
		result = append(result, entity.raw)
	}
	return result
}

// primitiveWideningClosure returns the entity itself followed by all
// primitives it widens to, in breadth-first order.
func primitiveWideningClosure(entity *Entity) []*Entity {
	result := []*Entity{entity}
	queue := []*Entity{entity}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		for _, successor := range next.catalog.wideningSuccessors(next) {
			if containsEntity(result, successor) {
				continue
			}
			result = append(result, successor)
			queue = append(queue, successor)
		}
	}
	return result
}

func (s *joinState) joinReferences(inputs []Type) ([]Type, error) {
	// Candidate entities: the erased supertype closures of all inputs,
	// intersected. The first input's closure order (self first, then
	// breadth-first) makes closer candidates come first.
	candidates := erasedClosure(inputs[0])
	for _, t := range inputs[1:] {
		candidates = intersectEntities(candidates, erasedClosure(t))
	}

	var classLike, interfaces []Type
	for _, candidate := range minimalEntities(candidates) {
		bound, err := s.candidateBound(candidate, inputs)
		if err != nil {
			return nil, err
		}
		if candidate.IsClassLike() {
			classLike = append(classLike, bound)
		} else {
			interfaces = append(interfaces, bound)
		}
	}

	// Canonical order, so the join does not depend on the input order:
	// class-like bounds first, each group sorted by rendering.
	sortTypesByString(classLike)
	sortTypesByString(interfaces)
	return append(classLike, interfaces...), nil
}

func sortTypesByString(types []Type) {
	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
}

func erasedClosure(t Type) []*Entity {
	result := []*Entity{Erase(t)}
	for _, super := range supertypeClosure(t, false) {
		entity := Erase(super)
		if !containsEntity(result, entity) {
			result = append(result, entity)
		}
	}
	return result
}

func intersectEntities(a, b []*Entity) []*Entity {
	var result []*Entity
	for _, entity := range a {
		if containsEntity(b, entity) {
			result = append(result, entity)
		}
	}
	return result
}

func containsEntity(entities []*Entity, entity *Entity) bool {
	for _, existing := range entities {
		if existing == entity {
			return true
		}
	}
	return false
}

// minimalEntities drops every entity that is a strict supertype of
// another entity in the set, keeping only the most specific ones.
func minimalEntities(entities []*Entity) []*Entity {
	var result []*Entity
	for _, candidate := range entities {
		aboveAnother := false
		for _, other := range entities {
			if isStrictlyAbove(candidate, other) {
				aboveAnother = true
				break
			}
		}
		if !aboveAnother {
			result = append(result, candidate)
		}
	}
	return result
}

func isStrictlyAbove(above, below *Entity) bool {
	if above == below {
		return false
	}
	if above.IsPrimitive() && below.IsPrimitive() {
		return above.catalog.widensTo(below, above)
	}
	return above.AssignableFrom(below)
}

// candidateBound turns a minimal candidate entity into a bound:
// the raw type for non-generic candidates, and otherwise the merge of
// the inputs' resolutions to the candidate. A raw resolution of any
// input infects the whole bound.
func (s *joinState) candidateBound(candidate *Entity, inputs []Type) (Type, error) {
	if !candidate.IsGeneric() {
		return candidate.raw, nil
	}

	resolutions := make([]*ParameterizedType, 0, len(inputs))
	for _, input := range inputs {
		resolved, ok := ResolveSuperType(input, candidate)
		if !ok {
			return candidate.raw, nil
		}
		parameterized, ok := resolved.(*ParameterizedType)
		if !ok {
			return candidate.raw, nil
		}
		resolutions = append(resolutions, parameterized)
	}

	merged := resolutions[0]
	for _, next := range resolutions[1:] {
		var ok bool
		var err error
		merged, ok, err = s.mergeInvocations(merged, next)
		if err != nil {
			return nil, err
		}
		if !ok {
			return candidate.raw, nil
		}
	}
	return merged, nil
}

func (s *joinState) mergeInvocations(a, b *ParameterizedType) (*ParameterizedType, bool, error) {
	if a.Entity != b.Entity ||
		len(a.TypeArguments) != len(b.TypeArguments) {

		return nil, false, nil
	}
	if (a.Owner == nil) != (b.Owner == nil) {
		return nil, false, nil
	}
	if a.Owner != nil && !a.Owner.Equal(b.Owner) {
		return nil, false, nil
	}

	arguments := make([]Type, len(a.TypeArguments))
	for i := range a.TypeArguments {
		merged, err := s.mergeArguments(a.TypeArguments[i], b.TypeArguments[i])
		if err != nil {
			return nil, false, err
		}
		arguments[i] = merged
	}
	return &ParameterizedType{
		Owner:         a.Owner,
		Entity:        a.Entity,
		TypeArguments: arguments,
	}, true, nil
}

// mergeArguments computes the least argument containing both arguments.
func (s *joinState) mergeArguments(a, b Type) (Type, error) {
	if a.Equal(b) {
		return a, nil
	}

	cat := catalogOf(a)

	aWildcard, aIsWildcard := a.(*WildcardType)
	bWildcard, bIsWildcard := b.(*WildcardType)
	aIsLower := aIsWildcard && len(aWildcard.LowerBounds) > 0
	bIsLower := bIsWildcard && len(bWildcard.LowerBounds) > 0

	switch {
	case aIsLower && bIsLower:
		// ? super X meets ? super Y: ? super glb(X, Y).
		var lowers []Type
		lowers = append(lowers, aWildcard.LowerBounds...)
		lowers = append(lowers, bWildcard.LowerBounds...)
		return &WildcardType{
			UpperBounds: []Type{cat.TopType()},
			LowerBounds: greatestLowerBounds(lowers),
		}, nil

	case aIsLower || bIsLower:
		if aIsWildcard && bIsWildcard {
			// ? super X meets ? extends Y: no type is known to be in
			// both; the unknown stays unrestricted.
			return unboundedWildcard(cat), nil
		}
		// A meets ? super X: ? super glb(A, X).
		lower := aWildcard
		plain := b
		if bIsLower {
			lower = bWildcard
			plain = a
		}
		lowers := append([]Type{plain}, lower.LowerBounds...)
		return &WildcardType{
			UpperBounds: []Type{cat.TopType()},
			LowerBounds: greatestLowerBounds(lowers),
		}, nil

	default:
		// A meets B, or ? extends X meets ? extends Y (or mixtures):
		// ? extends lub over all the upper views.
		var uppers []Type
		for _, t := range []Type{a, b} {
			if wildcard, ok := t.(*WildcardType); ok {
				uppers = append(uppers, wildcard.UpperBounds...)
			} else {
				uppers = append(uppers, t)
			}
		}
		bounds, err := s.join(uppers)
		if err != nil {
			return nil, err
		}
		if len(bounds) == 0 {
			return unboundedWildcard(cat), nil
		}
		return &WildcardType{UpperBounds: bounds}, nil
	}
}

func unboundedWildcard(cat *Catalog) *WildcardType {
	return &WildcardType{
		UpperBounds: []Type{cat.TopType()},
	}
}

// greatestLowerBounds keeps the most general common subtypes of the
// given types: duplicates and strict supertypes of other members are
// dropped, and the remainder is read as an intersection.
func greatestLowerBounds(types []Type) []Type {
	var deduped []Type
	for _, t := range types {
		if !containsType(deduped, t) {
			deduped = append(deduped, t)
		}
	}

	var result []Type
	for _, candidate := range deduped {
		aboveAnother := false
		for _, other := range deduped {
			if candidate.Equal(other) {
				continue
			}
			if assignableReference(candidate, other, false) {
				aboveAnother = true
				break
			}
		}
		if !aboveAnother {
			result = append(result, candidate)
		}
	}
	return result
}
