package ast

import (
	"github.com/shyptr/splitcache/gqlerr"
	"github.com/shyptr/splitcache/internal/kinds"
)

// Name is a GraphQL identifier: a field/argument/fragment/variable/type name.
type Name struct {
	Value string
	Loc   gqlerr.Location
}

func (n Name) Kind() string              { return kinds.Name }
func (n Name) Location() gqlerr.Location { return n.Loc }
