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

// NewParameterizedType constructs a validated instantiation of a
// generic entity.
//
// The owner must be given exactly when the entity is nested non-static
// in a generic entity, and must then erase to the enclosing entity.
// Type arguments must match the declared parameter count, must not be
// primitives, and must satisfy the declared bounds under the
// instantiation's own substitution (so F-bounds check against the new
// arguments). Variables the substitution cannot resolve are read as
// wildcards over their declared bounds.
func NewParameterizedType(
	owner Type,
	entity *Entity,
	typeArguments ...Type,
) (*ParameterizedType, error) {
	if entity == nil {
		return nil, &NilTypeError{Description: "entity"}
	}
	if !entity.IsGeneric() {
		return nil, &NonGenericEntityError{Entity: entity}
	}
	if len(typeArguments) != len(entity.typeParameters) {
		return nil, &InvalidTypeArgumentCountError{
			Entity:             entity,
			TypeParameterCount: len(entity.typeParameters),
			TypeArgumentCount:  len(typeArguments),
		}
	}
	for i, argument := range typeArguments {
		if argument == nil {
			return nil, &NilTypeError{Description: "type argument"}
		}
		if raw, ok := argument.(*RawType); ok && raw.Entity.IsPrimitive() {
			return nil, &PrimitiveTypeArgumentError{
				Entity:       entity,
				Index:        i,
				TypeArgument: argument,
			}
		}
	}

	if err := checkOwner(owner, entity); err != nil {
		return nil, err
	}

	result := &ParameterizedType{
		Owner:         owner,
		Entity:        entity,
		TypeArguments: append([]Type(nil), typeArguments...),
	}

	bindings := NewBindings()
	collectParameterizedBindings(result, bindings)

	for i, parameter := range entity.typeParameters {
		argument := result.TypeArguments[i]
		for _, bound := range parameter.Bounds() {
			substituted := substitute(bound, bindings, true)
			if !IsAssignableStrict(substituted, argument) {
				return nil, &TypeBoundViolationError{
					TypeParameter: parameter,
					Bound:         substituted,
					TypeArgument:  argument,
				}
			}
		}
	}

	return result, nil
}

func checkOwner(owner Type, entity *Entity) error {
	enclosing := entity.enclosing

	if owner == nil {
		if enclosing != nil && !entity.static && enclosing.IsGeneric() {
			return &InvalidOwnerError{
				Entity: entity,
				Reason: "an owner type is required for a non-static member of a generic entity",
			}
		}
		return nil
	}

	if enclosing == nil {
		return &InvalidOwnerError{
			Entity: entity,
			Owner:  owner,
			Reason: "the entity is not nested",
		}
	}
	if entity.static {
		return &InvalidOwnerError{
			Entity: entity,
			Owner:  owner,
			Reason: "a static member does not capture an owner type",
		}
	}
	if Erase(owner) != enclosing {
		return &InvalidOwnerError{
			Entity: entity,
			Owner:  owner,
			Reason: "the owner type does not erase to the enclosing entity",
		}
	}
	return nil
}

// NewUpperBoundedWildcard constructs a wildcard bounded from above,
// e.g. `? extends Number`. Bounds must be class, interface, array,
// or variable descriptors.
func NewUpperBoundedWildcard(bounds ...Type) (*WildcardType, error) {
	if len(bounds) == 0 {
		return nil, &NilTypeError{Description: "wildcard bound"}
	}
	if err := validateWildcardBounds(bounds); err != nil {
		return nil, err
	}
	return &WildcardType{
		UpperBounds: append([]Type(nil), bounds...),
	}, nil
}

// NewLowerBoundedWildcard constructs a wildcard bounded from below,
// e.g. `? super Integer`. Its upper bound is fixed to the top type.
func NewLowerBoundedWildcard(bounds ...Type) (*WildcardType, error) {
	if len(bounds) == 0 {
		return nil, &NilTypeError{Description: "wildcard bound"}
	}
	if err := validateWildcardBounds(bounds); err != nil {
		return nil, err
	}
	return &WildcardType{
		UpperBounds: []Type{catalogOf(bounds[0]).TopType()},
		LowerBounds: append([]Type(nil), bounds...),
	}, nil
}

// NewUnboundedWildcard constructs the unrestricted wildcard `?`,
// whose sole upper bound is the catalog's top type.
func NewUnboundedWildcard(cat *Catalog) *WildcardType {
	return unboundedWildcard(cat)
}

func validateWildcardBounds(bounds []Type) error {
	for _, bound := range bounds {
		if bound == nil {
			return &NilTypeError{Description: "wildcard bound"}
		}
		switch bound := bound.(type) {
		case *WildcardType:
			return &InvalidBoundError{
				Bound:  bound,
				Reason: "a wildcard cannot be used as a wildcard bound",
			}
		case *RawType:
			if bound.Entity.IsPrimitive() {
				return &InvalidBoundError{
					Bound:  bound,
					Reason: "a primitive type cannot be used as a wildcard bound",
				}
			}
		}
	}
	return nil
}

// NewArrayType constructs an array descriptor over the component.
//
// A raw component yields the raw type of the catalog's array entity, so
// arrays of raw (and primitive) components stay in raw form. A wildcard
// component is rejected: `(? extends A)[]` is not a denotable type.
func NewArrayType(component Type) (Type, error) {
	switch component := component.(type) {
	case nil:
		return nil, &NilTypeError{Description: "array component"}

	case *RawType:
		return component.Entity.catalog.ArrayEntity(component.Entity).raw, nil

	case *WildcardType:
		return nil, &InvalidComponentTypeError{
			Component: component,
			Reason:    "a wildcard cannot be used as an array component",
		}

	default:
		return &ArrayType{Component: component}, nil
	}
}
