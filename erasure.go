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

// Erase returns the raw-entity projection of a descriptor,
// discarding all generic argument information:
// a raw type erases to its own entity,
// a parameterized type to its generic entity,
// an array to the array entity of its erased component,
// a variable to the erasure of its first bound (or the top type),
// and a wildcard to the erasure of its first upper bound.
//
// Erasure is idempotent: erase(erase(T)) == erase(T).
func Erase(t Type) *Entity {
	switch t := t.(type) {
	case *RawType:
		return t.Entity

	case *ParameterizedType:
		return t.Entity

	case *ArrayType:
		component := Erase(t.Component)
		return component.catalog.ArrayEntity(component)

	case *VariableType:
		bounds := t.Parameter.Bounds()
		if len(bounds) == 0 {
			return t.Parameter.Site.declarationCatalog().object
		}
		return Erase(bounds[0])

	case *WildcardType:
		return Erase(t.UpperBounds[0])

	case nil:
		panic(errors.NewUnexpectedError("missing type"))

	default:
		panic(errors.NewUnreachableError())
	}
}

func catalogOf(t Type) *Catalog {
	return Erase(t).catalog
}

// IsInterfaceType reports whether the descriptor's erasure is an interface.
func IsInterfaceType(t Type) bool {
	return Erase(t).IsInterface()
}

// IsPrimitiveType reports whether the descriptor's erasure is a primitive.
func IsPrimitiveType(t Type) bool {
	return Erase(t).IsPrimitive()
}

// IsEnumType reports whether the descriptor's erasure is an enum.
func IsEnumType(t Type) bool {
	return Erase(t).IsEnum()
}

// IsArrayType reports whether the descriptor denotes an array type.
//
// Unlike the other classification predicates, variables and wildcards
// are not erased: they are examined through their first bound,
// so that `T extends Number[]` is an array type.
func IsArrayType(t Type) bool {
	switch t := t.(type) {
	case *ArrayType:
		return true

	case *RawType:
		return t.Entity.IsArray()

	case *ParameterizedType:
		return false

	case *VariableType:
		bounds := t.Parameter.Bounds()
		if len(bounds) == 0 {
			return false
		}
		return IsArrayType(bounds[0])

	case *WildcardType:
		return IsArrayType(t.UpperBounds[0])

	case nil:
		panic(errors.NewUnexpectedError("missing type"))

	default:
		panic(errors.NewUnreachableError())
	}
}

// ComponentType returns the component type of an array descriptor.
//
// For variables and wildcards whose first bound is an array type,
// the result is a fresh upper-bounded wildcard over the bound's
// component: the component of `T extends Number[]` is `? extends Number`,
// not `Number` — the variable stands for an unknown array type whose
// component is only known to be within the bound.
func ComponentType(t Type) (Type, bool) {
	switch t := t.(type) {
	case *ArrayType:
		return t.Component, true

	case *RawType:
		if !t.Entity.IsArray() {
			return nil, false
		}
		return t.Entity.componentEntity.raw, true

	case *ParameterizedType:
		return nil, false

	case *VariableType:
		bounds := t.Parameter.Bounds()
		if len(bounds) == 0 {
			return nil, false
		}
		return wildcardComponentType(bounds[0])

	case *WildcardType:
		return wildcardComponentType(t.UpperBounds[0])

	case nil:
		panic(errors.NewUnexpectedError("missing type"))

	default:
		panic(errors.NewUnreachableError())
	}
}

func wildcardComponentType(bound Type) (Type, bool) {
	component, ok := ComponentType(bound)
	if !ok {
		return nil, false
	}
	return &WildcardType{UpperBounds: []Type{component}}, true
}
