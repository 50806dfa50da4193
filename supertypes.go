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

// DirectSupertypes returns the direct supertypes of a descriptor:
//
//   - primitives: the direct widening successors
//   - raw arrays of primitive or top-type component: Object, Serializable,
//     and Cloneable
//   - other arrays: the array forms of the component's direct supertypes
//   - raw uses of generic entities: the erased declared supertypes
//     (raw-ness propagates upward)
//   - parameterized types: the declared supertype forms with the
//     instantiation's arguments substituted, plus the raw form of the
//     same entity (an unchecked view is one step looser)
//   - variables and wildcards: their upper bounds
//
// The top type has no supertypes.
func DirectSupertypes(t Type) []Type {
	switch t := t.(type) {
	case *RawType:
		entity := t.Entity
		cat := entity.catalog
		switch {
		case entity == cat.object:
			return nil

		case entity.IsPrimitive():
			successors := cat.wideningSuccessors(entity)
			result := make([]Type, 0, len(successors))
			for _, successor := range successors {
				result = append(result, successor.raw)
			}
			return result

		case entity.IsArray():
			return arrayEntitySupertypes(entity)

		default:
			return declaredSupertypesForRaw(entity)
		}

	case *ParameterizedType:
		supers := declaredSupertypesForParameterized(t)
		return append(supers, t.Entity.raw)

	case *ArrayType:
		return arraySupertypes(t.Component)

	case *VariableType:
		bounds := t.Parameter.effectiveUpperBounds()
		return append([]Type(nil), bounds...)

	case *WildcardType:
		return append([]Type(nil), t.UpperBounds...)

	case nil:
		panic(errors.NewUnexpectedError("missing type"))

	default:
		panic(errors.NewUnreachableError())
	}
}

func arrayEntitySupertypes(entity *Entity) []Type {
	cat := entity.catalog
	component := entity.componentEntity
	if component.IsPrimitive() || component == cat.object {
		return universalArraySupertypes(cat)
	}
	return arraySupertypes(component.raw)
}

// arraySupertypes lifts the component's direct supertypes to array forms:
// arrays are covariant in their reference component.
func arraySupertypes(component Type) []Type {
	cat := catalogOf(component)
	if isTopType(component) {
		return universalArraySupertypes(cat)
	}
	supers := DirectSupertypes(component)
	result := make([]Type, 0, len(supers))
	for _, super := range supers {
		if raw, ok := super.(*RawType); ok {
			result = append(result, cat.ArrayEntity(raw.Entity).raw)
		} else {
			result = append(result, &ArrayType{Component: super})
		}
	}
	return result
}

func universalArraySupertypes(cat *Catalog) []Type {
	return []Type{
		cat.object.raw,
		cat.serializable.raw,
		cat.cloneable.raw,
	}
}

// declaredSupertypesForRaw returns the direct supertypes of a raw use of
// a class-like or interface entity. For a generic entity the declared
// forms are erased: the supertypes of a raw type are raw.
func declaredSupertypesForRaw(entity *Entity) []Type {
	cat := entity.catalog

	form := func(declared Type) Type {
		if entity.IsGeneric() {
			return Erase(declared).raw
		}
		return declared
	}

	var result []Type
	if entity.IsClassLike() {
		if entity.superclass != nil {
			result = append(result, form(entity.superclass))
		} else {
			result = append(result, cat.object.raw)
		}
	} else if len(entity.interfaces) == 0 {
		result = append(result, cat.object.raw)
	}
	for _, iface := range entity.interfaces {
		result = append(result, form(iface))
	}
	return result
}

// declaredSupertypesForParameterized returns the declared supertype forms
// of the instantiated entity, with the entity's type parameters (and the
// parameters of generic owners) replaced by the instantiation's arguments.
func declaredSupertypesForParameterized(t *ParameterizedType) []Type {
	entity := t.Entity
	cat := entity.catalog

	bindings := NewBindings()
	collectParameterizedBindings(t, bindings)

	var result []Type
	if entity.IsClassLike() {
		if entity.superclass != nil {
			result = append(result, Substitute(entity.superclass, bindings))
		} else {
			result = append(result, cat.object.raw)
		}
	} else if len(entity.interfaces) == 0 {
		result = append(result, cat.object.raw)
	}
	for _, iface := range entity.interfaces {
		result = append(result, Substitute(iface, bindings))
	}
	return result
}

func collectParameterizedBindings(t *ParameterizedType, bindings *Bindings) {
	for i, parameter := range t.Entity.typeParameters {
		if i < len(t.TypeArguments) {
			bindings.Set(parameter, t.TypeArguments[i])
		}
	}
	if owner, ok := t.Owner.(*ParameterizedType); ok {
		collectParameterizedBindings(owner, bindings)
	}
}

// AllSupertypes returns the transitive supertype closure of a descriptor,
// deduplicated by structural equality, in breadth-first order:
// direct supertypes first, more distant ancestors later.
// The descriptor itself is not included.
func AllSupertypes(t Type) []Type {
	return supertypeClosure(t, false)
}

func supertypeClosure(t Type, includeSelf bool) []Type {
	var result []Type
	if includeSelf {
		result = append(result, t)
	}

	queue := DirectSupertypes(t)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		if next.Equal(t) || containsType(result, next) {
			continue
		}
		result = append(result, next)
		queue = append(queue, DirectSupertypes(next)...)
	}
	return result
}

// ResolveSuperType resolves a descriptor to its (possibly indirect)
// supertype form with the given target entity as erasure.
//
// For a parameterized type the result carries the accumulated argument
// substitutions: resolving `ArrayList<String>` to the List entity yields
// `List<String>`. Resolving a raw use of a generic entity yields raw
// forms all the way up. Variables and wildcards are resolved through
// their upper bounds; primitives through widening; arrays through their
// component, or directly to Object, Serializable, or Cloneable.
//
// The second result is false if the target is not an ancestor.
func ResolveSuperType(t Type, target *Entity) (Type, bool) {
	if target == nil {
		panic(errors.NewUnexpectedError("missing target entity"))
	}

	switch t := t.(type) {
	case *VariableType:
		return resolveBoundsSuperType(t.Parameter.effectiveUpperBounds(), target)

	case *WildcardType:
		return resolveBoundsSuperType(t.UpperBounds, target)

	case *ArrayType:
		return resolveArraySuperType(t.Component, target)

	case *RawType:
		entity := t.Entity
		if entity == target {
			return t, true
		}
		if entity.IsPrimitive() {
			if target.IsPrimitive() && entity.catalog.widensTo(entity, target) {
				return target.raw, true
			}
			return nil, false
		}
		if entity.IsArray() {
			component := entity.componentEntity
			if component.IsPrimitive() {
				if isUniversalArraySupertype(target, entity.catalog) {
					return target.raw, true
				}
				return nil, false
			}
			return resolveArraySuperType(component.raw, target)
		}
		return resolveAncestor(t, target, map[*Entity]struct{}{})

	case *ParameterizedType:
		return resolveAncestor(t, target, map[*Entity]struct{}{})

	case nil:
		panic(errors.NewUnexpectedError("missing type"))

	default:
		panic(errors.NewUnreachableError())
	}
}

func resolveBoundsSuperType(bounds []Type, target *Entity) (Type, bool) {
	for _, bound := range bounds {
		if resolved, ok := ResolveSuperType(bound, target); ok {
			return resolved, true
		}
	}
	return nil, false
}

func isUniversalArraySupertype(target *Entity, cat *Catalog) bool {
	return target == cat.object ||
		target == cat.serializable ||
		target == cat.cloneable
}

func resolveArraySuperType(component Type, target *Entity) (Type, bool) {
	cat := catalogOf(component)
	if isUniversalArraySupertype(target, cat) {
		return target.raw, true
	}
	if !target.IsArray() {
		return nil, false
	}
	resolvedComponent, ok := ResolveSuperType(component, target.componentEntity)
	if !ok {
		return nil, false
	}
	if raw, isRaw := resolvedComponent.(*RawType); isRaw {
		return cat.ArrayEntity(raw.Entity).raw, true
	}
	return &ArrayType{Component: resolvedComponent}, true
}

// resolveAncestor walks the declared supertype graph of a raw or
// parameterized class-like or interface use, superclass chain first,
// substituting arguments along the way. The visited set only prunes
// repeat visits in diamond hierarchies; the first path to the target
// entity wins.
func resolveAncestor(
	current Type,
	target *Entity,
	visited map[*Entity]struct{},
) (Type, bool) {
	entity := Erase(current)
	if entity == target {
		return current, true
	}
	if _, seen := visited[entity]; seen {
		return nil, false
	}
	visited[entity] = struct{}{}

	for _, super := range declaredDirectSupertypes(current) {
		if resolved, ok := resolveAncestor(super, target, visited); ok {
			return resolved, true
		}
	}
	return nil, false
}

// declaredDirectSupertypes is DirectSupertypes without the raw escape
// edge of parameterized types: the ancestor walk must not forget
// arguments unless a raw use forces it to.
func declaredDirectSupertypes(t Type) []Type {
	switch t := t.(type) {
	case *RawType:
		if t.Entity == t.Entity.catalog.object {
			return nil
		}
		return declaredSupertypesForRaw(t.Entity)

	case *ParameterizedType:
		return declaredSupertypesForParameterized(t)

	default:
		return DirectSupertypes(t)
	}
}
