package ast

import (
	"github.com/shyptr/splitcache/gqlerr"
	"github.com/shyptr/splitcache/internal/kinds"
)

// Type is a variable's declared type: a named type, a list of some type, or
// a non-null wrapper around some type. The partitioner does not validate
// types against a schema (spec Non-goals); it keeps them only to re-print
// each SubQuery's VariableDefinitions verbatim.
type Type interface {
	Node
	isType()
}

// NamedType is a bare type name, e.g. `String` or `ID`.
type NamedType struct {
	Name Name
	Loc  gqlerr.Location
}

func (t *NamedType) Kind() string              { return kinds.Named }
func (t *NamedType) Location() gqlerr.Location { return t.Loc }
func (t *NamedType) isType()                   {}

// ListType is `[T]` for some inner type T.
type ListType struct {
	Type Type
	Loc  gqlerr.Location
}

func (t *ListType) Kind() string              { return kinds.List }
func (t *ListType) Location() gqlerr.Location { return t.Loc }
func (t *ListType) isType()                   {}

// NonNullType is `T!` for some inner type T (NamedType or ListType; GraphQL
// disallows `T!!`).
type NonNullType struct {
	Type Type
	Loc  gqlerr.Location
}

func (t *NonNullType) Kind() string              { return kinds.NonNull }
func (t *NonNullType) Location() gqlerr.Location { return t.Loc }
func (t *NonNullType) isType()                   {}
