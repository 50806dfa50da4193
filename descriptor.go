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
	"strings"
)

// Type is a generic type descriptor.
//
// The set of descriptor kinds is closed:
// RawType, ParameterizedType, ArrayType, VariableType, and WildcardType.
// Every structural recursion in this package switches exhaustively over
// these kinds and treats any other implementation as unreachable.
//
// Descriptors are immutable value objects. Derived descriptors share
// unchanged sub-structure with their inputs.
type Type interface {
	isType()
	String() string
	// Equal returns true if the given descriptor is structurally equal.
	//
	// NOTE: two wildcards with identical bounds are Equal,
	// but are never the same type: a wildcard denotes an unknown type,
	// and two unknowns cannot be assumed identical. See IsSameType.
	Equal(other Type) bool
}

// RawType is a concrete, non-generic reference to an entity:
// a class, interface, primitive, or array-of-raw token.
//
// A raw use of a generic entity deliberately carries no argument
// information (an unchecked view).
type RawType struct {
	Entity *Entity
}

var _ Type = &RawType{}

func (*RawType) isType() {}

func (t *RawType) String() string {
	return t.Entity.Name
}

func (t *RawType) Equal(other Type) bool {
	otherRaw, ok := other.(*RawType)
	if !ok {
		return false
	}
	return t.Entity == otherRaw.Entity
}

// ParameterizedType is an instantiation of a generic entity
// with type-argument descriptors.
//
// Owner is non-nil exactly when the entity is a non-static nested
// entity whose enclosing entity is itself generic.
type ParameterizedType struct {
	Owner         Type
	Entity        *Entity
	TypeArguments []Type
}

var _ Type = &ParameterizedType{}

func (*ParameterizedType) isType() {}

func (t *ParameterizedType) String() string {
	var b strings.Builder
	if t.Owner != nil {
		b.WriteString(t.Owner.String())
		b.WriteByte('.')
	}
	b.WriteString(t.Entity.Name)
	b.WriteByte('<')
	for i, argument := range t.TypeArguments {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(argument.String())
	}
	b.WriteByte('>')
	return b.String()
}

func (t *ParameterizedType) Equal(other Type) bool {
	otherParameterized, ok := other.(*ParameterizedType)
	if !ok {
		return false
	}
	if t.Entity != otherParameterized.Entity {
		return false
	}
	if (t.Owner == nil) != (otherParameterized.Owner == nil) {
		return false
	}
	if t.Owner != nil && !t.Owner.Equal(otherParameterized.Owner) {
		return false
	}
	return typesEqual(t.TypeArguments, otherParameterized.TypeArguments)
}

// ArrayType is an array over a generic component descriptor.
//
// The component is never a RawType — raw arrays are represented as the
// RawType of an array entity — and never a WildcardType.
type ArrayType struct {
	Component Type
}

var _ Type = &ArrayType{}

func (*ArrayType) isType() {}

func (t *ArrayType) String() string {
	return t.Component.String() + "[]"
}

func (t *ArrayType) Equal(other Type) bool {
	otherArray, ok := other.(*ArrayType)
	if !ok {
		return false
	}
	return t.Component.Equal(otherArray.Component)
}

// VariableType refers to a type parameter declared
// by a generic entity or operation.
//
// The descriptor never carries bounds inline: bounds are looked up from
// the declaration, which is what makes recursive (F-bounded) bounds
// representable.
type VariableType struct {
	Parameter *TypeParameter
}

var _ Type = &VariableType{}

func (*VariableType) isType() {}

func (t *VariableType) String() string {
	return t.Parameter.Name
}

func (t *VariableType) Equal(other Type) bool {
	otherVariable, ok := other.(*VariableType)
	if !ok {
		return false
	}
	// Identity is the declaration: same site, same name.
	// Bounds are never compared.
	return t.Parameter == otherVariable.Parameter
}

// WildcardType is a bounded placeholder for an unknown type.
//
// The upper-bound list is never empty: an unbounded wildcard has the
// top type as its sole upper bound. A wildcard with a non-trivial lower
// bound has its upper bound fixed to the top type.
type WildcardType struct {
	UpperBounds []Type
	LowerBounds []Type
}

var _ Type = &WildcardType{}

func (*WildcardType) isType() {}

func (t *WildcardType) String() string {
	if len(t.LowerBounds) > 0 {
		return "? super " + joinTypes(t.LowerBounds, " & ")
	}
	if len(t.UpperBounds) == 1 && isTopType(t.UpperBounds[0]) {
		return "?"
	}
	return "? extends " + joinTypes(t.UpperBounds, " & ")
}

func (t *WildcardType) Equal(other Type) bool {
	otherWildcard, ok := other.(*WildcardType)
	if !ok {
		return false
	}
	return typesEqual(t.UpperBounds, otherWildcard.UpperBounds) &&
		typesEqual(t.LowerBounds, otherWildcard.LowerBounds)
}

func typesEqual(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i, t := range a {
		if !t.Equal(b[i]) {
			return false
		}
	}
	return true
}

func joinTypes(types []Type, separator string) string {
	var b strings.Builder
	for i, t := range types {
		if i > 0 {
			b.WriteString(separator)
		}
		b.WriteString(t.String())
	}
	return b.String()
}

func containsType(types []Type, t Type) bool {
	for _, existing := range types {
		if existing.Equal(t) {
			return true
		}
	}
	return false
}

// isTopType returns true if the descriptor is the raw top type
// of its catalog.
func isTopType(t Type) bool {
	raw, ok := t.(*RawType)
	return ok && raw.Entity == raw.Entity.catalog.object
}
