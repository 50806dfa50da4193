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

// NilTypeError

// NilTypeError is reported when a required type or entity is missing.
type NilTypeError struct {
	Description string
}

var _ errors.UserError = &NilTypeError{}

func (*NilTypeError) IsUserError() {}

func (e *NilTypeError) Error() string {
	return fmt.Sprintf("missing %s", e.Description)
}

// NotDefinedError

// NotDefinedError is reported when a catalog lookup names an entity
// that was never defined.
type NotDefinedError struct {
	Name       string
	Suggestion string
}

var _ errors.UserError = &NotDefinedError{}
var _ errors.SecondaryError = &NotDefinedError{}

func (*NotDefinedError) IsUserError() {}

func (e *NotDefinedError) Error() string {
	return fmt.Sprintf("entity `%s` is not defined", e.Name)
}

func (e *NotDefinedError) SecondaryError() string {
	if e.Suggestion == "" {
		return ""
	}
	return fmt.Sprintf("did you mean `%s`?", e.Suggestion)
}

// AlreadyDefinedError

// AlreadyDefinedError is reported when a definition re-uses
// a registered name.
type AlreadyDefinedError struct {
	Name string
}

var _ errors.UserError = &AlreadyDefinedError{}

func (*AlreadyDefinedError) IsUserError() {}

func (e *AlreadyDefinedError) Error() string {
	return fmt.Sprintf("entity `%s` is already defined", e.Name)
}

// NonGenericEntityError

// NonGenericEntityError is reported when a non-generic entity
// is instantiated with type arguments.
type NonGenericEntityError struct {
	Entity *Entity
}

var _ errors.UserError = &NonGenericEntityError{}

func (*NonGenericEntityError) IsUserError() {}

func (e *NonGenericEntityError) Error() string {
	return fmt.Sprintf(
		"%s `%s` declares no type parameters",
		e.Entity.Kind,
		e.Entity.Name,
	)
}

// InvalidTypeArgumentCountError

// InvalidTypeArgumentCountError is reported when an instantiation's
// argument count does not match the declared parameter count.
type InvalidTypeArgumentCountError struct {
	Entity             *Entity
	TypeParameterCount int
	TypeArgumentCount  int
}

var _ errors.UserError = &InvalidTypeArgumentCountError{}

func (*InvalidTypeArgumentCountError) IsUserError() {}

func (e *InvalidTypeArgumentCountError) Error() string {
	return fmt.Sprintf(
		"`%s` declares %d type parameter(s), got %d type argument(s)",
		e.Entity.Name,
		e.TypeParameterCount,
		e.TypeArgumentCount,
	)
}

// PrimitiveTypeArgumentError

// PrimitiveTypeArgumentError is reported when a primitive type is used
// as a type argument.
type PrimitiveTypeArgumentError struct {
	Entity       *Entity
	Index        int
	TypeArgument Type
}

var _ errors.UserError = &PrimitiveTypeArgumentError{}

func (*PrimitiveTypeArgumentError) IsUserError() {}

func (e *PrimitiveTypeArgumentError) Error() string {
	return fmt.Sprintf(
		"primitive type `%s` cannot be a type argument of `%s`",
		e.TypeArgument,
		e.Entity.Name,
	)
}

// InvalidOwnerError

// InvalidOwnerError is reported when an instantiation's owner type is
// missing, superfluous, or does not match the enclosing entity.
type InvalidOwnerError struct {
	Entity *Entity
	Owner  Type
	Reason string
}

var _ errors.UserError = &InvalidOwnerError{}

func (*InvalidOwnerError) IsUserError() {}

func (e *InvalidOwnerError) Error() string {
	return fmt.Sprintf(
		"invalid owner type for `%s`: %s",
		e.Entity.Name,
		e.Reason,
	)
}

// InvalidBoundError

// InvalidBoundError is reported when a type parameter or wildcard bound
// is not a class, interface, array, or variable descriptor.
type InvalidBoundError struct {
	Bound  Type
	Reason string
}

var _ errors.UserError = &InvalidBoundError{}

func (*InvalidBoundError) IsUserError() {}

func (e *InvalidBoundError) Error() string {
	return fmt.Sprintf("invalid bound `%s`: %s", e.Bound, e.Reason)
}

// InvalidComponentTypeError

// InvalidComponentTypeError is reported when an array is constructed
// over a component that cannot form an array type.
type InvalidComponentTypeError struct {
	Component Type
	Reason    string
}

var _ errors.UserError = &InvalidComponentTypeError{}

func (*InvalidComponentTypeError) IsUserError() {}

func (e *InvalidComponentTypeError) Error() string {
	return fmt.Sprintf(
		"invalid array component `%s`: %s",
		e.Component,
		e.Reason,
	)
}

// TypeBoundViolationError

// TypeBoundViolationError is reported when a type argument does not
// satisfy a declared bound of its parameter
// (after substituting the instantiation's own arguments).
type TypeBoundViolationError struct {
	TypeParameter *TypeParameter
	Bound         Type
	TypeArgument  Type
}

var _ errors.UserError = &TypeBoundViolationError{}
var _ errors.SecondaryError = &TypeBoundViolationError{}

func (*TypeBoundViolationError) IsUserError() {}

func (e *TypeBoundViolationError) Error() string {
	return fmt.Sprintf(
		"type argument `%s` is not within the bound of type parameter `%s`",
		e.TypeArgument,
		e.TypeParameter.Name,
	)
}

func (e *TypeBoundViolationError) SecondaryError() string {
	return fmt.Sprintf(
		"`%s` must be assignable to `%s`",
		e.TypeArgument,
		e.Bound,
	)
}

// IncompatibleJoinInputsError

// IncompatibleJoinInputsError is reported when a join mixes primitive
// and reference types: no common supertype relates them.
type IncompatibleJoinInputsError struct {
	Types []Type
}

var _ errors.UserError = &IncompatibleJoinInputsError{}

func (*IncompatibleJoinInputsError) IsUserError() {}

func (e *IncompatibleJoinInputsError) Error() string {
	return fmt.Sprintf(
		"cannot join primitive and reference types: %s",
		joinTypes(e.Types, ", "),
	)
}
