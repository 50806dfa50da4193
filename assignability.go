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
	"github.com/gentype/gentype/errors"
)

// IsAssignable reports whether a value of descriptor `from` can be
// assigned to a reference of descriptor `to`.
//
// It permits the loose conversions of an assignment context:
// unchecked conversions through raw views
// (a raw List is assignable to List<String>),
// primitive widening (int to long),
// boxing (int to Integer, and onward by reference conversion to Object),
// and unboxing (Integer to int, and onward by widening to long).
func IsAssignable(to, from Type) bool {
	if assignableReference(to, from, true) {
		return true
	}
	return assignableBoxed(to, from)
}

// IsAssignableStrict is IsAssignable restricted to sound reference
// conversions: no unchecked raw views, no boxing, no widening.
// This is the relation used for type-argument bound checks.
func IsAssignableStrict(to, from Type) bool {
	return assignableReference(to, from, false)
}

// IsSubtype reports whether `sub` is a subtype of `super`
// under the assignment-context conversions.
func IsSubtype(sub, super Type) bool {
	return IsAssignable(super, sub)
}

// IsSubtypeStrict reports whether `sub` is a subtype of `super`
// by reference conversion only.
func IsSubtypeStrict(sub, super Type) bool {
	return IsAssignableStrict(super, sub)
}

// assignableReference decides assignability by reference conversion only.
// allowUnchecked permits a raw view of a generic ancestor to satisfy a
// parameterized target.
func assignableReference(to, from Type, allowUnchecked bool) bool {
	if to == nil || from == nil {
		panic(errors.NewUnexpectedError("missing type"))
	}

	if to.Equal(from) {
		return true
	}

	if isTopType(to) {
		return !IsPrimitiveType(from)
	}

	// A variable or wildcard source is known only through its upper
	// bounds: it is assignable wherever one of its bounds is.
	switch from := from.(type) {
	case *VariableType:
		return boundsAssignableTo(to, from.Parameter.effectiveUpperBounds(), allowUnchecked)

	case *WildcardType:
		return boundsAssignableTo(to, from.UpperBounds, allowUnchecked)
	}

	switch to := to.(type) {
	case *RawType:
		return assignableToRaw(to.Entity, from)

	case *ParameterizedType:
		return assignableToParameterized(to, from, allowUnchecked)

	case *ArrayType:
		return assignableToArray(to, from, allowUnchecked)

	case *WildcardType:
		// A wildcard target arises from substituted bounds.
		// With a lower bound the unknown may be the bound itself:
		// the source must be within every lower bound.
		if len(to.LowerBounds) > 0 {
			for _, bound := range to.LowerBounds {
				if !assignableReference(bound, from, allowUnchecked) {
					return false
				}
			}
			return true
		}
		// Without one — the shape substitution synthesizes for
		// unresolved variables — the upper bounds must admit the source.
		for _, bound := range to.UpperBounds {
			if !assignableReference(bound, from, allowUnchecked) {
				return false
			}
		}
		return true

	case *VariableType:
		// Nothing but the variable itself (handled by Equal above)
		// is known to be within an unknown type.
		return false

	case nil:
		panic(errors.NewUnexpectedError("missing type"))

	default:
		panic(errors.NewUnreachableError())
	}
}

func boundsAssignableTo(to Type, bounds []Type, allowUnchecked bool) bool {
	for _, bound := range bounds {
		if assignableReference(to, bound, allowUnchecked) {
			return true
		}
	}
	return false
}

func assignableToRaw(toEntity *Entity, from Type) bool {
	if toEntity.IsPrimitive() {
		// Widening is a value conversion; see IsAssignable.
		return false
	}

	switch from := from.(type) {
	case *RawType:
		return toEntity.AssignableFrom(from.Entity)

	case *ParameterizedType:
		// Discarding argument information is always sound.
		return toEntity.AssignableFrom(from.Entity)

	case *ArrayType:
		return toEntity.AssignableFrom(Erase(from))

	default:
		panic(errors.NewUnreachableError())
	}
}

func assignableToParameterized(to *ParameterizedType, from Type, allowUnchecked bool) bool {
	resolved, ok := ResolveSuperType(from, to.Entity)
	if !ok {
		return false
	}

	switch resolved := resolved.(type) {
	case *RawType:
		// The source only reaches the target entity as a raw view:
		// an unchecked conversion.
		return allowUnchecked

	case *ParameterizedType:
		if (to.Owner == nil) != (resolved.Owner == nil) {
			return false
		}
		if to.Owner != nil &&
			!argumentContains(to.Owner, resolved.Owner, allowUnchecked) {

			return false
		}
		if len(to.TypeArguments) != len(resolved.TypeArguments) {
			return false
		}
		for i, formal := range to.TypeArguments {
			if !argumentContains(formal, resolved.TypeArguments[i], allowUnchecked) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

func assignableToArray(to *ArrayType, from Type, allowUnchecked bool) bool {
	switch from := from.(type) {
	case *ArrayType:
		// Arrays are covariant in their reference component.
		return assignableReference(to.Component, from.Component, allowUnchecked)

	case *RawType:
		fromEntity := from.Entity
		if !fromEntity.IsArray() {
			return false
		}
		component := fromEntity.componentEntity
		if component.IsPrimitive() {
			return false
		}
		return assignableReference(to.Component, component.raw, allowUnchecked)

	default:
		return false
	}
}

// argumentContains decides type-argument containment:
// whether every type denoted by the actual argument is also denoted by
// the formal one. Non-wildcard formals are invariant — the actual must
// be the same type, not merely assignable.
func argumentContains(formal, actual Type, allowUnchecked bool) bool {
	wildcard, ok := formal.(*WildcardType)
	if !ok {
		return IsSameType(formal, actual)
	}

	for _, upper := range wildcard.UpperBounds {
		if !assignableReference(upper, actual, allowUnchecked) {
			return false
		}
	}

	// Multiple lower bounds read as an intersection: the formal contains
	// the actual if the intersection is within it, for which a single
	// lower bound within the actual suffices.
	if len(wildcard.LowerBounds) > 0 {
		if actualWildcard, ok := actual.(*WildcardType); ok {
			// `? super L` contains `? super M` only if L is within M.
			if len(actualWildcard.LowerBounds) == 0 {
				return false
			}
			for _, actualLower := range actualWildcard.LowerBounds {
				if !anyWithin(actualLower, wildcard.LowerBounds, allowUnchecked) {
					return false
				}
			}
		} else if !anyWithin(actual, wildcard.LowerBounds, allowUnchecked) {
			return false
		}
	}

	return true
}

func anyWithin(to Type, froms []Type, allowUnchecked bool) bool {
	for _, from := range froms {
		if assignableReference(to, from, allowUnchecked) {
			return true
		}
	}
	return false
}

// IsSameType reports whether two descriptors denote the same type.
//
// This is stricter than Equal: a wildcard never denotes the same type as
// anything, including a structurally equal wildcard, because each
// wildcard stands for its own unknown. Consequently List<?> and List<?>
// are Equal but not the same type.
func IsSameType(a, b Type) bool {
	if a == nil || b == nil {
		panic(errors.NewUnexpectedError("missing type"))
	}

	switch a := a.(type) {
	case *WildcardType:
		return false

	case *RawType:
		return a.Equal(b)

	case *VariableType:
		return a.Equal(b)

	case *ArrayType:
		bArray, ok := b.(*ArrayType)
		return ok && IsSameType(a.Component, bArray.Component)

	case *ParameterizedType:
		bParameterized, ok := b.(*ParameterizedType)
		if !ok || a.Entity != bParameterized.Entity {
			return false
		}
		if (a.Owner == nil) != (bParameterized.Owner == nil) {
			return false
		}
		if a.Owner != nil && !IsSameType(a.Owner, bParameterized.Owner) {
			return false
		}
		if len(a.TypeArguments) != len(bParameterized.TypeArguments) {
			return false
		}
		for i, argument := range a.TypeArguments {
			if !IsSameType(argument, bParameterized.TypeArguments[i]) {
				return false
			}
		}
		return true

	default:
		panic(errors.NewUnreachableError())
	}
}

func assignableBoxed(to, from Type) bool {
	if fromRaw, ok := from.(*RawType); ok && fromRaw.Entity.IsPrimitive() {
		cat := fromRaw.Entity.catalog

		if toRaw, ok := to.(*RawType); ok && toRaw.Entity.IsPrimitive() {
			return cat.widensTo(fromRaw.Entity, toRaw.Entity)
		}

		// Boxing, then reference conversion:
		// int is assignable to Integer, Comparable<Integer>, Number, …
		// but not to Long — boxing never widens first.
		box := cat.BoxEntity(fromRaw.Entity)
		return box != nil && assignableReference(to, box.raw, true)
	}

	if toRaw, ok := to.(*RawType); ok && toRaw.Entity.IsPrimitive() {
		// Unboxing, then widening: Integer is assignable to int and long.
		cat := toRaw.Entity.catalog
		primitive := cat.PrimitiveFor(Erase(from))
		if primitive == nil {
			return false
		}
		return primitive == toRaw.Entity || cat.widensTo(primitive, toRaw.Entity)
	}

	return false
}
