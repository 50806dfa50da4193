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
	"sync"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/gentype/gentype/errors"
)

// Catalog owns the entities of a type universe.
//
// It answers the questions the algebra asks about raw entities —
// superclass, implemented interfaces, declared type parameters,
// classification — and loads array entities for component entities.
//
// Registration (the Define* methods) is not safe for concurrent use.
// All query methods, including the array-entity loader, are.
type Catalog struct {
	entities map[string]*Entity
	names    []string

	// arrayEntities caches array entities by component entity.
	// Concurrent loads racing on the same component may build duplicate
	// value-equal entities; LoadOrStore keeps exactly one.
	arrayEntities sync.Map

	object       *Entity
	serializable *Entity
	cloneable    *Entity
	comparable   *Entity
	number       *Entity
	stringEntity *Entity
	enum         *Entity

	primitiveToBox map[*Entity]*Entity
	boxToPrimitive map[*Entity]*Entity
	wideningDirect map[*Entity][]*Entity
}

// NewCatalog returns a catalog pre-registered with the built-in
// entities: the top type Object, the marker interfaces Serializable and
// Cloneable, the generic interface Comparable<T>, Number, String,
// the F-bounded Enum<E extends Enum<E>> base class,
// the eight primitives, and their box entities.
func NewCatalog() *Catalog {
	c := &Catalog{
		entities:       map[string]*Entity{},
		primitiveToBox: map[*Entity]*Entity{},
		boxToPrimitive: map[*Entity]*Entity{},
		wideningDirect: map[*Entity][]*Entity{},
	}

	c.object = c.newEntity("Object", EntityKindClass)
	c.serializable = c.newEntity("Serializable", EntityKindInterface)
	c.cloneable = c.newEntity("Cloneable", EntityKindInterface)

	c.comparable = c.newEntity("Comparable", EntityKindInterface)
	declareTypeParameters(c.comparable, &c.comparable.typeParameters, []string{"T"})

	c.number = c.newEntity("Number", EntityKindClass)
	c.number.interfaces = []Type{c.serializable.raw}

	c.stringEntity = c.newEntity("String", EntityKindClass)
	c.stringEntity.interfaces = []Type{
		c.serializable.raw,
		c.comparableOf(c.stringEntity.raw),
	}

	c.enum = c.newEntity("Enum", EntityKindClass)
	declareTypeParameters(c.enum, &c.enum.typeParameters, []string{"E"})
	enumVariable := c.enum.Variable("E")
	enumSelf := &ParameterizedType{
		Entity:        c.enum,
		TypeArguments: []Type{enumVariable},
	}
	c.enum.typeParameters[0].bounds = []Type{enumSelf}
	c.enum.interfaces = []Type{
		c.comparableOf(enumVariable),
		c.serializable.raw,
	}

	c.registerPrimitives()

	return c
}

func (c *Catalog) comparableOf(argument Type) Type {
	return &ParameterizedType{
		Entity:        c.comparable,
		TypeArguments: []Type{argument},
	}
}

func (c *Catalog) newEntity(name string, kind EntityKind) *Entity {
	entity := &Entity{
		Name:    name,
		Kind:    kind,
		catalog: c,
	}
	entity.raw = &RawType{Entity: entity}
	c.entities[name] = entity
	c.names = append(c.names, name)
	return entity
}

func (c *Catalog) registerPrimitives() {
	primitive := func(name string) *Entity {
		return c.newEntity(name, EntityKindPrimitive)
	}

	boolean := primitive("boolean")
	byteE := primitive("byte")
	shortE := primitive("short")
	charE := primitive("char")
	intE := primitive("int")
	longE := primitive("long")
	floatE := primitive("float")
	doubleE := primitive("double")

	// Widening order: byte → short → int → long → float → double,
	// with char → int as a second root.
	c.wideningDirect[byteE] = []*Entity{shortE}
	c.wideningDirect[shortE] = []*Entity{intE}
	c.wideningDirect[charE] = []*Entity{intE}
	c.wideningDirect[intE] = []*Entity{longE}
	c.wideningDirect[longE] = []*Entity{floatE}
	c.wideningDirect[floatE] = []*Entity{doubleE}

	box := func(name string, primitive *Entity, numeric bool) *Entity {
		entity := c.newEntity(name, EntityKindClass)
		if numeric {
			entity.superclass = c.number.raw
		} else {
			entity.interfaces = append(entity.interfaces, c.serializable.raw)
		}
		entity.interfaces = append(
			entity.interfaces,
			c.comparableOf(entity.raw),
		)
		c.primitiveToBox[primitive] = entity
		c.boxToPrimitive[entity] = primitive
		return entity
	}

	box("Boolean", boolean, false)
	box("Byte", byteE, true)
	box("Short", shortE, true)
	box("Character", charE, false)
	box("Integer", intE, true)
	box("Long", longE, true)
	box("Float", floatE, true)
	box("Double", doubleE, true)
}

// Object returns the top type's entity.
func (c *Catalog) Object() *Entity {
	return c.object
}

// TopType returns the raw top type descriptor.
func (c *Catalog) TopType() Type {
	return c.object.raw
}

// Serializable returns the built-in Serializable marker interface entity.
func (c *Catalog) Serializable() *Entity {
	return c.serializable
}

// Cloneable returns the built-in Cloneable marker interface entity.
func (c *Catalog) Cloneable() *Entity {
	return c.cloneable
}

// Comparable returns the built-in Comparable<T> interface entity.
func (c *Catalog) Comparable() *Entity {
	return c.comparable
}

// Number returns the built-in Number class entity.
func (c *Catalog) Number() *Entity {
	return c.number
}

// StringEntity returns the built-in String class entity.
func (c *Catalog) StringEntity() *Entity {
	return c.stringEntity
}

// EnumBase returns the built-in F-bounded Enum<E extends Enum<E>>
// base class entity.
func (c *Catalog) EnumBase() *Entity {
	return c.enum
}

// DefineClass registers a class entity with the given
// ordered type parameter names.
func (c *Catalog) DefineClass(name string, typeParameterNames ...string) (*Entity, error) {
	return c.define(name, EntityKindClass, typeParameterNames)
}

// DefineInterface registers an interface entity with the given
// ordered type parameter names.
func (c *Catalog) DefineInterface(name string, typeParameterNames ...string) (*Entity, error) {
	return c.define(name, EntityKindInterface, typeParameterNames)
}

// DefineEnum registers an enum entity.
// Its superclass is the instantiation Enum<Self> of the built-in
// F-bounded enum base class.
func (c *Catalog) DefineEnum(name string) (*Entity, error) {
	entity, err := c.define(name, EntityKindEnum, nil)
	if err != nil {
		return nil, err
	}
	entity.superclass = &ParameterizedType{
		Entity:        c.enum,
		TypeArguments: []Type{entity.raw},
	}
	return entity, nil
}

// DefineMemberClass registers a class entity nested in the given
// enclosing entity.
func (c *Catalog) DefineMemberClass(
	enclosing *Entity,
	name string,
	static bool,
	typeParameterNames ...string,
) (*Entity, error) {
	if enclosing == nil {
		return nil, &NilTypeError{Description: "enclosing entity"}
	}
	entity, err := c.define(name, EntityKindClass, typeParameterNames)
	if err != nil {
		return nil, err
	}
	entity.enclosing = enclosing
	entity.static = static
	return entity, nil
}

func (c *Catalog) define(
	name string,
	kind EntityKind,
	typeParameterNames []string,
) (*Entity, error) {
	if name == "" {
		return nil, errors.NewDefaultUserError("entity name must not be empty")
	}
	if _, exists := c.entities[name]; exists {
		return nil, &AlreadyDefinedError{Name: name}
	}
	entity := c.newEntity(name, kind)
	declareTypeParameters(entity, &entity.typeParameters, typeParameterNames)
	return entity, nil
}

// Entity returns the registered entity with the given name.
// For unknown names the returned NotDefinedError carries the closest
// registered name as a suggestion.
func (c *Catalog) Entity(name string) (*Entity, error) {
	if entity, ok := c.entities[name]; ok {
		return entity, nil
	}
	return nil, &NotDefinedError{
		Name:       name,
		Suggestion: c.closestDefinedName(name),
	}
}

// MustEntity returns the registered entity with the given name,
// and panics if it is not defined.
func (c *Catalog) MustEntity(name string) *Entity {
	entity, err := c.Entity(name)
	if err != nil {
		panic(errors.NewUnexpectedErrorFromCause(err))
	}
	return entity
}

// EntityNames returns the names of all registered entities, sorted.
// Array entities are not registered by name.
func (c *Catalog) EntityNames() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	sort.Strings(names)
	return names
}

// closestDefinedName finds the registered name with the smallest edit
// distance from the requested name. In cases of typos,
// this should provide a helpful hint.
func (c *Catalog) closestDefinedName(name string) (closestName string) {
	nameRunes := []rune(name)

	closestDistance := len(name)

	sortedNames := c.EntityNames()

	for _, definedName := range sortedNames {
		distance := levenshtein.DistanceForStrings(
			nameRunes,
			[]rune(definedName),
			levenshtein.DefaultOptions,
		)

		// Don't update the closest name if the distance is greater than
		// one already found, or if the edits required would involve
		// a complete replacement of the name's text
		if distance < closestDistance && distance < len(definedName) {
			closestName = definedName
			closestDistance = distance
		}
	}

	return
}

// ArrayEntity returns the array entity for the given component entity,
// loading and caching it on first use.
//
// Concurrent callers racing on the same component may construct
// duplicate entities; they are value-equal,
// and LoadOrStore publishes exactly one.
func (c *Catalog) ArrayEntity(component *Entity) *Entity {
	if component == nil {
		panic(errors.NewUnexpectedError("missing component entity"))
	}
	if existing, ok := c.arrayEntities.Load(component); ok {
		return existing.(*Entity)
	}

	entity := &Entity{
		Name:            component.Name + "[]",
		Kind:            EntityKindArray,
		componentEntity: component,
		catalog:         c,
	}
	entity.raw = &RawType{Entity: entity}

	actual, _ := c.arrayEntities.LoadOrStore(component, entity)
	return actual.(*Entity)
}

// BoxEntity returns the box entity for a primitive entity
// (e.g. Integer for int), or nil.
func (c *Catalog) BoxEntity(primitive *Entity) *Entity {
	return c.primitiveToBox[primitive]
}

// PrimitiveFor returns the primitive entity for a box entity
// (e.g. int for Integer), or nil.
func (c *Catalog) PrimitiveFor(box *Entity) *Entity {
	return c.boxToPrimitive[box]
}

// widensTo reports whether a primitive widening conversion exists
// from one primitive entity to another.
func (c *Catalog) widensTo(from, to *Entity) bool {
	if from == to {
		return false
	}
	for _, next := range c.wideningDirect[from] {
		if next == to || c.widensTo(next, to) {
			return true
		}
	}
	return false
}

// wideningSuccessors returns the direct widening successors
// of a primitive entity.
func (c *Catalog) wideningSuccessors(primitive *Entity) []*Entity {
	return c.wideningDirect[primitive]
}
