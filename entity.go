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
	"fmt"

	"github.com/gentype/gentype/errors"
)

// EntityKind classifies the raw identity of a type.
type EntityKind uint8

const (
	EntityKindUnknown EntityKind = iota
	EntityKindClass
	EntityKindInterface
	EntityKindEnum
	EntityKindPrimitive
	EntityKindArray
)

func (k EntityKind) String() string {
	switch k {
	case EntityKindClass:
		return "class"
	case EntityKindInterface:
		return "interface"
	case EntityKindEnum:
		return "enum"
	case EntityKindPrimitive:
		return "primitive"
	case EntityKindArray:
		return "array"
	case EntityKindUnknown:
		return "unknown"
	default:
		panic(errors.NewUnreachableError())
	}
}

// DeclarationSite identifies the generic entity or operation
// that declares a type parameter.
//
// Two variables are the same identity if and only if they refer to the
// same declaration site and name. Bounds are never part of the identity:
// they may be mutually recursive, so comparing them structurally
// would not terminate.
type DeclarationSite interface {
	isDeclarationSite()
	DeclarationName() string
	DeclaredTypeParameters() []*TypeParameter
	declarationCatalog() *Catalog
}

// TypeParameter is the declaration of a type parameter
// on a generic entity or operation.
//
// Declaration is two-phase: parameters are first declared by name,
// then their bounds are set. This allows a bound to refer to the
// parameter itself, or to a sibling parameter of the same site
// (F-bounded polymorphism).
type TypeParameter struct {
	Site    DeclarationSite
	Name    string
	Ordinal int

	bounds []Type
}

func (p *TypeParameter) String() string {
	return p.Name
}

// SetBounds sets the declared upper bounds of the parameter.
// Bounds must be class, interface, array, or variable descriptors.
func (p *TypeParameter) SetBounds(bounds ...Type) error {
	for _, bound := range bounds {
		if bound == nil {
			return &NilTypeError{Description: "type parameter bound"}
		}
		switch bound := bound.(type) {
		case *WildcardType:
			return &InvalidBoundError{
				Bound:  bound,
				Reason: "a wildcard cannot be used as a type parameter bound",
			}
		case *RawType:
			if bound.Entity.IsPrimitive() {
				return &InvalidBoundError{
					Bound:  bound,
					Reason: "a primitive type cannot be used as a type parameter bound",
				}
			}
		case *ParameterizedType, *ArrayType, *VariableType:
			break
		default:
			panic(errors.NewUnreachableError())
		}
	}
	p.bounds = bounds
	return nil
}

// Bounds returns the declared upper bounds of the parameter.
// The result is empty for an unbounded parameter;
// use effectiveUpperBounds for the defaulted form.
func (p *TypeParameter) Bounds() []Type {
	return p.bounds
}

// effectiveUpperBounds returns the declared bounds,
// or the top type if the parameter is unbounded.
func (p *TypeParameter) effectiveUpperBounds() []Type {
	if len(p.bounds) > 0 {
		return p.bounds
	}
	return []Type{p.Site.declarationCatalog().TopType()}
}

// Entity is the raw, erased identity of a type:
// a class, interface, enum, primitive, or array token.
//
// Entities are identified by pointer. A Catalog owns all entities
// and guarantees at most one entity per name.
type Entity struct {
	Name string
	Kind EntityKind

	typeParameters []*TypeParameter
	superclass     Type
	interfaces     []Type
	enclosing      *Entity
	static         bool

	// componentEntity is set only for array entities.
	componentEntity *Entity

	catalog *Catalog
	raw     *RawType
}

var _ DeclarationSite = &Entity{}

func (e *Entity) isDeclarationSite() {}

func (e *Entity) DeclarationName() string {
	return e.Name
}

func (e *Entity) DeclaredTypeParameters() []*TypeParameter {
	return e.typeParameters
}

func (e *Entity) declarationCatalog() *Catalog {
	return e.catalog
}

func (e *Entity) String() string {
	return e.Name
}

// RawType returns the canonical raw descriptor for this entity.
// The result is a singleton: repeated calls return the same pointer.
func (e *Entity) RawType() *RawType {
	return e.raw
}

// Catalog returns the catalog that owns this entity.
func (e *Entity) Catalog() *Catalog {
	return e.catalog
}

func (e *Entity) IsGeneric() bool {
	return len(e.typeParameters) > 0
}

func (e *Entity) IsInterface() bool {
	return e.Kind == EntityKindInterface
}

func (e *Entity) IsPrimitive() bool {
	return e.Kind == EntityKindPrimitive
}

func (e *Entity) IsArray() bool {
	return e.Kind == EntityKindArray
}

func (e *Entity) IsEnum() bool {
	return e.Kind == EntityKindEnum
}

// IsClassLike returns true for classes and enums,
// the entity kinds that participate in the single-superclass chain.
func (e *Entity) IsClassLike() bool {
	return e.Kind == EntityKindClass || e.Kind == EntityKindEnum
}

// ComponentEntity returns the component entity of an array entity,
// and nil for all other kinds.
func (e *Entity) ComponentEntity() *Entity {
	return e.componentEntity
}

// Enclosing returns the enclosing entity of a nested entity, if any.
func (e *Entity) Enclosing() *Entity {
	return e.enclosing
}

// IsStatic reports whether a nested entity is static,
// i.e. does not capture the type parameters of its enclosing entity.
func (e *Entity) IsStatic() bool {
	return e.static
}

// Superclass returns the generic superclass form of the entity, if declared.
// Classes without a declared superclass implicitly extend the top type;
// see DirectSupertypes.
func (e *Entity) Superclass() Type {
	return e.superclass
}

// SetSuperclass declares the generic superclass form of the entity.
func (e *Entity) SetSuperclass(superclass Type) error {
	if superclass == nil {
		return &NilTypeError{Description: "superclass"}
	}
	if !e.IsClassLike() {
		return errors.NewDefaultUserError(
			"cannot declare a superclass for %s %s",
			e.Kind,
			e.Name,
		)
	}
	superEntity := Erase(superclass)
	if superEntity == e {
		return errors.NewDefaultUserError(
			"entity %s cannot be its own superclass",
			e.Name,
		)
	}
	if !superEntity.IsClassLike() {
		return errors.NewDefaultUserError(
			"superclass of %s must be a class, got %s %s",
			e.Name,
			superEntity.Kind,
			superEntity.Name,
		)
	}
	e.superclass = superclass
	return nil
}

// Interfaces returns the generic forms of the directly implemented
// (or, for interfaces, directly extended) interfaces.
func (e *Entity) Interfaces() []Type {
	return e.interfaces
}

// AddInterface declares a directly implemented interface in generic form.
func (e *Entity) AddInterface(iface Type) error {
	if iface == nil {
		return &NilTypeError{Description: "interface"}
	}
	ifaceEntity := Erase(iface)
	if !ifaceEntity.IsInterface() {
		return errors.NewDefaultUserError(
			"%s is not an interface",
			ifaceEntity.Name,
		)
	}
	e.interfaces = append(e.interfaces, iface)
	return nil
}

// TypeParameter returns the declared type parameter with the given name,
// or nil if the entity declares no such parameter.
func (e *Entity) TypeParameter(name string) *TypeParameter {
	for _, parameter := range e.typeParameters {
		if parameter.Name == name {
			return parameter
		}
	}
	return nil
}

// Variable returns a variable descriptor referring to the entity's
// type parameter with the given name.
func (e *Entity) Variable(name string) *VariableType {
	parameter := e.TypeParameter(name)
	if parameter == nil {
		panic(errors.NewUnexpectedError(
			"entity %s declares no type parameter %s",
			e.Name,
			name,
		))
	}
	return &VariableType{Parameter: parameter}
}

// DefineOperation declares a generic operation (e.g. a generic method)
// owned by this entity. Operations are declaration sites for type
// parameters but are not registered in the catalog's namespace.
func (e *Entity) DefineOperation(name string, typeParameterNames ...string) *Operation {
	operation := &Operation{
		Owner: e,
		Name:  name,
	}
	declareTypeParameters(operation, &operation.typeParameters, typeParameterNames)
	return operation
}

// AssignableFrom reports whether a reference of this raw entity can hold
// a value of the other raw entity, i.e. whether the other entity is this
// entity or a subclass/implementation of it.
//
// Arrays of reference components are covariant;
// arrays of primitive components are invariant.
// Primitives are only assignable from themselves
// (widening is a value conversion, not a reference conversion).
func (e *Entity) AssignableFrom(other *Entity) bool {
	if other == nil {
		return false
	}
	if e == other {
		return true
	}
	if e.IsPrimitive() || other.IsPrimitive() {
		return false
	}

	cat := e.catalog

	if other.IsArray() {
		if e == cat.object || e == cat.serializable || e == cat.cloneable {
			return true
		}
		if !e.IsArray() {
			return false
		}
		component := e.componentEntity
		otherComponent := other.componentEntity
		if component.IsPrimitive() || otherComponent.IsPrimitive() {
			return component == otherComponent
		}
		return component.AssignableFrom(otherComponent)
	}

	if e.IsArray() {
		return false
	}

	if e == cat.object {
		return true
	}

	// Walk the erased supertype graph of the other entity,
	// superclass chain first, then interfaces.

	visited := map[*Entity]struct{}{}
	return e.assignableFromWalk(other, visited)
}

func (e *Entity) assignableFromWalk(other *Entity, visited map[*Entity]struct{}) bool {
	if _, seen := visited[other]; seen {
		return false
	}
	visited[other] = struct{}{}

	for _, super := range other.erasedDirectSuperEntities() {
		if super == e {
			return true
		}
		if e.assignableFromWalk(super, visited) {
			return true
		}
	}
	return false
}

// erasedDirectSuperEntities returns the erased direct supertypes of a
// class-like or interface entity: the superclass (defaulted to the top
// type) followed by the directly implemented interfaces.
func (e *Entity) erasedDirectSuperEntities() []*Entity {
	cat := e.catalog
	if e == cat.object || e.IsPrimitive() || e.IsArray() {
		return nil
	}

	var supers []*Entity
	if e.IsClassLike() {
		if e.superclass != nil {
			supers = append(supers, Erase(e.superclass))
		} else {
			supers = append(supers, cat.object)
		}
	} else if len(e.interfaces) == 0 {
		// An interface without super-interfaces
		// has the top type as its sole direct supertype.
		supers = append(supers, cat.object)
	}
	for _, iface := range e.interfaces {
		supers = append(supers, Erase(iface))
	}
	return supers
}

// Operation is a generic operation declaration, e.g. a generic method.
// It only exists as a declaration site for type parameters.
type Operation struct {
	Owner *Entity
	Name  string

	typeParameters []*TypeParameter
}

var _ DeclarationSite = &Operation{}

func (o *Operation) isDeclarationSite() {}

func (o *Operation) DeclarationName() string {
	return fmt.Sprintf("%s.%s", o.Owner.Name, o.Name)
}

func (o *Operation) DeclaredTypeParameters() []*TypeParameter {
	return o.typeParameters
}

func (o *Operation) declarationCatalog() *Catalog {
	return o.Owner.catalog
}

// TypeParameter returns the operation's declared type parameter
// with the given name, or nil.
func (o *Operation) TypeParameter(name string) *TypeParameter {
	for _, parameter := range o.typeParameters {
		if parameter.Name == name {
			return parameter
		}
	}
	return nil
}

// Variable returns a variable descriptor referring to the operation's
// type parameter with the given name.
func (o *Operation) Variable(name string) *VariableType {
	parameter := o.TypeParameter(name)
	if parameter == nil {
		panic(errors.NewUnexpectedError(
			"operation %s declares no type parameter %s",
			o.DeclarationName(),
			name,
		))
	}
	return &VariableType{Parameter: parameter}
}

func declareTypeParameters(
	site DeclarationSite,
	target *[]*TypeParameter,
	names []string,
) {
	for i, name := range names {
		*target = append(
			*target,
			&TypeParameter{
				Site:    site,
				Name:    name,
				Ordinal: i,
			},
		)
	}
}
