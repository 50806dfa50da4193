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
	"github.com/gentype/gentype/common/orderedmap"
	"github.com/gentype/gentype/errors"
)

// Bindings maps type parameters to the descriptors substituted for them.
// Iteration follows insertion order, which keeps diagnostics deterministic.
type Bindings = orderedmap.OrderedMap[*TypeParameter, Type]

// NewBindings returns an empty binding map.
func NewBindings() *Bindings {
	return orderedmap.New[*TypeParameter, Type](0)
}

// Substitute replaces every bound variable reference in the descriptor
// with its binding, rebuilding only the spine that actually changed:
// if no variable in a sub-descriptor is bound,
// the original sub-descriptor is returned, pointer-identical.
// In particular, Substitute(T, empty) == T for every T.
func Substitute(t Type, bindings *Bindings) Type {
	return substitute(t, bindings, false)
}

func substitute(t Type, bindings *Bindings, wildcardForMissing bool) Type {
	switch t := t.(type) {
	case *RawType:
		// A raw descriptor has no sub-structure that could contain
		// a variable.
		return t

	case *VariableType:
		if replacement, ok := bindings.Get(t.Parameter); ok {
			return replacement
		}
		if wildcardForMissing {
			return &WildcardType{
				UpperBounds: t.Parameter.effectiveUpperBounds(),
			}
		}
		return t

	case *ParameterizedType:
		changed := false
		owner := t.Owner
		if owner != nil {
			newOwner := substitute(owner, bindings, wildcardForMissing)
			if newOwner != owner {
				changed = true
				owner = newOwner
			}
		}
		arguments := substituteAll(t.TypeArguments, bindings, wildcardForMissing, &changed)
		if !changed {
			return t
		}
		return &ParameterizedType{
			Owner:         owner,
			Entity:        t.Entity,
			TypeArguments: arguments,
		}

	case *ArrayType:
		component := substitute(t.Component, bindings, wildcardForMissing)
		if component == t.Component {
			return t
		}
		// A raw replacement collapses the array to its raw form,
		// keeping raw components out of ArrayType.
		if raw, ok := component.(*RawType); ok {
			return raw.Entity.catalog.ArrayEntity(raw.Entity).raw
		}
		return &ArrayType{Component: component}

	case *WildcardType:
		changed := false
		upperBounds := substituteAll(t.UpperBounds, bindings, wildcardForMissing, &changed)
		lowerBounds := substituteAll(t.LowerBounds, bindings, wildcardForMissing, &changed)
		if !changed {
			return t
		}
		return &WildcardType{
			UpperBounds: upperBounds,
			LowerBounds: lowerBounds,
		}

	case nil:
		panic(errors.NewUnexpectedError("missing type"))

	default:
		panic(errors.NewUnreachableError())
	}
}

func substituteAll(
	types []Type,
	bindings *Bindings,
	wildcardForMissing bool,
	changed *bool,
) []Type {
	if len(types) == 0 {
		return types
	}
	result := make([]Type, len(types))
	for i, t := range types {
		substituted := substitute(t, bindings, wildcardForMissing)
		if substituted != t {
			*changed = true
		}
		result[i] = substituted
	}
	return result
}

// ResolveInContext resolves the entity-declared variables occurring in a
// descriptor against a context type, and substitutes them.
//
// For each variable whose declaration site is a generic entity, the
// context is resolved to that entity (see ResolveSuperType); if the
// resolution is a parameterized form, the argument at the variable's
// ordinal becomes its binding. Variables that cannot be resolved —
// operation-declared variables, or entity variables the context does not
// reach in parameterized form — are left in place.
//
// E.g. resolving `T[]` (T declared by List<T>)
// in the context `ArrayList<String>` yields `String[]`.
func ResolveInContext(context, t Type) Type {
	if context == nil {
		panic(errors.NewUnexpectedError("missing context type"))
	}
	bindings := NewBindings()
	seen := map[*TypeParameter]struct{}{}
	collectContextBindings(context, t, bindings, seen)
	if bindings.Len() == 0 {
		return t
	}
	return Substitute(t, bindings)
}

func collectContextBindings(
	context Type,
	t Type,
	bindings *Bindings,
	seen map[*TypeParameter]struct{},
) {
	switch t := t.(type) {
	case *RawType:
		return

	case *ParameterizedType:
		if t.Owner != nil {
			collectContextBindings(context, t.Owner, bindings, seen)
		}
		for _, argument := range t.TypeArguments {
			collectContextBindings(context, argument, bindings, seen)
		}

	case *ArrayType:
		collectContextBindings(context, t.Component, bindings, seen)

	case *WildcardType:
		for _, bound := range t.UpperBounds {
			collectContextBindings(context, bound, bindings, seen)
		}
		for _, bound := range t.LowerBounds {
			collectContextBindings(context, bound, bindings, seen)
		}

	case *VariableType:
		parameter := t.Parameter
		if _, done := seen[parameter]; done {
			return
		}
		seen[parameter] = struct{}{}

		if site, ok := parameter.Site.(*Entity); ok {
			if resolved, found := ResolveSuperType(context, site); found {
				if parameterized, ok := resolved.(*ParameterizedType); ok &&
					parameter.Ordinal < len(parameterized.TypeArguments) {

					bindings.Set(
						parameter,
						parameterized.TypeArguments[parameter.Ordinal],
					)
				}
			}
		}

		// Bounds may mention further variables (F-bounds reach the
		// parameter itself; the seen set terminates the walk).
		for _, bound := range parameter.Bounds() {
			collectContextBindings(context, bound, bindings, seen)
		}

	case nil:
		panic(errors.NewUnexpectedError("missing type"))

	default:
		panic(errors.NewUnreachableError())
	}
}
