package ast

import (
	"github.com/shyptr/splitcache/gqlerr"
	"github.com/shyptr/splitcache/internal/kinds"
)

// Argument is a single `name: value` pair attached to a Field or Directive.
type Argument struct {
	Name  Name
	Value Value
	Loc   gqlerr.Location
}

func (a *Argument) Kind() string              { return kinds.Argument }
func (a *Argument) Location() gqlerr.Location { return a.Loc }

// Directive is an `@name(args...)` annotation on a field, fragment spread or
// inline fragment. splitcache copies directives verbatim into each emitted
// SubQuery; it does not interpret @skip/@include itself (spec §4.3 tie-break
// rule 3 treats them as opaque for grouping purposes).
type Directive struct {
	Name      Name
	Arguments []*Argument
	Loc       gqlerr.Location
}

func (d *Directive) Kind() string              { return kinds.Directive }
func (d *Directive) Location() gqlerr.Location { return d.Loc }

// VariableDefinition declares one `$name: Type = default` entry in an
// operation's parenthesized variable list.
type VariableDefinition struct {
	Variable     *Variable
	Type         Type
	DefaultValue Value
	Loc          gqlerr.Location
}

func (v *VariableDefinition) Kind() string              { return kinds.VariableDefinition }
func (v *VariableDefinition) Location() gqlerr.Location { return v.Loc }
