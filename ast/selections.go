package ast

import (
	"github.com/shyptr/splitcache/gqlerr"
	"github.com/shyptr/splitcache/internal/kinds"
)

// SelectionSet is a `{ ... }` block: an ordered list of selections. Order is
// significant — it determines the key order the merger writes into the
// final "data" object (spec §4.6).
type SelectionSet struct {
	Selections []Selection
	Loc        gqlerr.Location
}

func (s *SelectionSet) Kind() string              { return kinds.SelectionSet }
func (s *SelectionSet) Location() gqlerr.Location { return s.Loc }

// Selection is one entry of a SelectionSet: a Field, FragmentSpread or
// InlineFragment. It is a closed sum type (isSelection is unexported), so an
// exhaustive type switch on Selection never needs a default panic branch for
// an external implementation.
type Selection interface {
	Node
	isSelection()
}

// Field is a single field selection, e.g. `alias: name(args) { ... }`.
type Field struct {
	Alias        *Name
	Name         Name
	Arguments    []*Argument
	Directives   []*Directive
	SelectionSet *SelectionSet
	Loc          gqlerr.Location
}

func (f *Field) Kind() string              { return kinds.Field }
func (f *Field) Location() gqlerr.Location { return f.Loc }
func (f *Field) isSelection()              {}

// ResponseKey is the key this field occupies in the response object: its
// alias if present, otherwise its name (GraphQL spec CollectFields rule).
func (f *Field) ResponseKey() string {
	if f.Alias != nil {
		return f.Alias.Value
	}
	return f.Name.Value
}

// FragmentSpread is a `...Name` reference to a named fragment definition.
// The partitioner inlines spreads that sit at the top level of the operation;
// spreads further down a field's subtree are kept as spreads, printed as
// `...Name`, and their definitions travel in the SubQuery's fragment set.
type FragmentSpread struct {
	Name       Name
	Directives []*Directive
	Loc        gqlerr.Location
}

func (s *FragmentSpread) Kind() string              { return kinds.FragmentSpread }
func (s *FragmentSpread) Location() gqlerr.Location { return s.Loc }
func (s *FragmentSpread) isSelection()              {}

// InlineFragment is a `... on Type { ... }` or bare `... { ... }` selection.
type InlineFragment struct {
	TypeCondition *Name
	Directives    []*Directive
	SelectionSet  *SelectionSet
	Loc           gqlerr.Location
}

func (s *InlineFragment) Kind() string              { return kinds.InlineFragment }
func (s *InlineFragment) Location() gqlerr.Location { return s.Loc }
func (s *InlineFragment) isSelection()              {}
