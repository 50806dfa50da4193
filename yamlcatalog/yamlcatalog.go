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

// Package yamlcatalog loads entity catalogs from YAML documents.
//
// A document declares entities with their kinds, type parameters,
// and supertype relations:
//
//	entities:
//	  - name: Collection
//	    kind: interface
//	    typeParameters:
//	      - name: E
//	  - name: List
//	    kind: interface
//	    typeParameters:
//	      - name: E
//	    interfaces:
//	      - Collection<E>
//	  - name: ArrayList
//	    kind: class
//	    typeParameters:
//	      - name: E
//	    interfaces:
//	      - List<E>
//	  - name: Color
//	    kind: enum
//
// Loading is two-phase: all entities are defined first, then bounds and
// supertype relations are parsed, so declarations may refer to entities
// that appear later in the document. An enclosing entity is the one
// exception: it must be declared before its members.
package yamlcatalog

import (
	"github.com/goccy/go-yaml"
	"golang.org/x/xerrors"

	"github.com/gentype/gentype"
	"github.com/gentype/gentype/typeexpr"
)

// Document is the top-level structure of a catalog YAML document.
type Document struct {
	Entities []EntityDefinition `yaml:"entities"`
}

// EntityDefinition declares one entity.
type EntityDefinition struct {
	Name           string                    `yaml:"name"`
	Kind           string                    `yaml:"kind"`
	Enclosing      string                    `yaml:"enclosing,omitempty"`
	Static         bool                      `yaml:"static,omitempty"`
	TypeParameters []TypeParameterDefinition `yaml:"typeParameters,omitempty"`
	Superclass     string                    `yaml:"superclass,omitempty"`
	Interfaces     []string                  `yaml:"interfaces,omitempty"`
}

// TypeParameterDefinition declares one type parameter of an entity.
type TypeParameterDefinition struct {
	Name   string   `yaml:"name"`
	Bounds []string `yaml:"bounds,omitempty"`
}

// Load parses a catalog document into a fresh catalog
// pre-registered with the built-in entities.
func Load(data []byte) (*gentype.Catalog, error) {
	cat := gentype.NewCatalog()
	if err := Populate(cat, data); err != nil {
		return nil, err
	}
	return cat, nil
}

// Populate parses a catalog document and registers its entities
// in the given catalog.
func Populate(cat *gentype.Catalog, data []byte) error {
	var document Document
	if err := yaml.Unmarshal(data, &document); err != nil {
		return xerrors.Errorf("invalid catalog document: %w", err)
	}

	for _, definition := range document.Entities {
		if err := defineEntity(cat, definition); err != nil {
			return xerrors.Errorf("entity %q: %w", definition.Name, err)
		}
	}

	for _, definition := range document.Entities {
		if err := relateEntity(cat, definition); err != nil {
			return xerrors.Errorf("entity %q: %w", definition.Name, err)
		}
	}

	return nil
}

func defineEntity(cat *gentype.Catalog, definition EntityDefinition) error {
	parameterNames := make([]string, len(definition.TypeParameters))
	for i, parameter := range definition.TypeParameters {
		parameterNames[i] = parameter.Name
	}

	switch definition.Kind {
	case "class":
		if definition.Enclosing != "" {
			enclosing, err := cat.Entity(definition.Enclosing)
			if err != nil {
				return xerrors.Errorf("enclosing entity: %w", err)
			}
			_, err = cat.DefineMemberClass(
				enclosing,
				definition.Name,
				definition.Static,
				parameterNames...,
			)
			return err
		}
		_, err := cat.DefineClass(definition.Name, parameterNames...)
		return err

	case "interface":
		if definition.Enclosing != "" {
			return xerrors.New("only classes may be nested")
		}
		_, err := cat.DefineInterface(definition.Name, parameterNames...)
		return err

	case "enum":
		if definition.Enclosing != "" {
			return xerrors.New("only classes may be nested")
		}
		if len(definition.TypeParameters) > 0 {
			return xerrors.New("an enum cannot declare type parameters")
		}
		_, err := cat.DefineEnum(definition.Name)
		return err

	default:
		return xerrors.Errorf(
			"unsupported kind %q, expected class, interface, or enum",
			definition.Kind,
		)
	}
}

func relateEntity(cat *gentype.Catalog, definition EntityDefinition) error {
	entity := cat.MustEntity(definition.Name)

	for _, parameterDefinition := range definition.TypeParameters {
		if len(parameterDefinition.Bounds) == 0 {
			continue
		}
		parameter := entity.TypeParameter(parameterDefinition.Name)
		bounds := make([]gentype.Type, len(parameterDefinition.Bounds))
		for i, expression := range parameterDefinition.Bounds {
			bound, err := typeexpr.ParseInScope(cat, entity, expression)
			if err != nil {
				return xerrors.Errorf(
					"bound of type parameter %s: %w",
					parameterDefinition.Name,
					err,
				)
			}
			bounds[i] = bound
		}
		if err := parameter.SetBounds(bounds...); err != nil {
			return xerrors.Errorf(
				"bound of type parameter %s: %w",
				parameterDefinition.Name,
				err,
			)
		}
	}

	if definition.Superclass != "" {
		if entity.IsEnum() {
			return xerrors.New("an enum's superclass is implicit")
		}
		superclass, err := typeexpr.ParseInScope(cat, entity, definition.Superclass)
		if err != nil {
			return xerrors.Errorf("superclass: %w", err)
		}
		if err := entity.SetSuperclass(superclass); err != nil {
			return xerrors.Errorf("superclass: %w", err)
		}
	}

	for _, expression := range definition.Interfaces {
		iface, err := typeexpr.ParseInScope(cat, entity, expression)
		if err != nil {
			return xerrors.Errorf("interface %s: %w", expression, err)
		}
		if err := entity.AddInterface(iface); err != nil {
			return xerrors.Errorf("interface %s: %w", expression, err)
		}
	}

	return nil
}
