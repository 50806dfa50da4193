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

// Package gentype implements a structural algebra over generic type
// descriptors: raw, parameterized, array, variable, and wildcard types
// over a registration-based catalog of entities.
//
// The algebra provides erasure and classification (Erase, IsArrayType,
// ComponentType, …), supertype enumeration and resolution
// (DirectSupertypes, AllSupertypes, ResolveSuperType), substitution
// (Substitute, ResolveInContext), assignability and subtyping
// (IsAssignable, IsAssignableStrict, IsSubtype, IsSameType),
// and least-upper-bound joins (LeastUpperBounds).
//
// Descriptors are built with validated constructors
// (NewParameterizedType, NewArrayType, the wildcard constructors) over
// entities defined in a Catalog.
package gentype
