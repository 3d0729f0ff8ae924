package ast

import (
	"github.com/shyptr/splitcache/gqlerr"
	"github.com/shyptr/splitcache/internal/kinds"
)

// OperationType distinguishes query/mutation/subscription. splitcache's
// classifier routes any document containing a non-Query operation to
// pass-through before the partitioner ever runs (spec Non-goals: mutations
// and subscriptions are not partitioned).
type OperationType string

const (
	Query        OperationType = "query"
	Mutation     OperationType = "mutation"
	Subscription OperationType = "subscription"
)

// OperationDefinition is one `query Name(...) { ... }` (or the shorthand
// anonymous query form) in a Document.
type OperationDefinition struct {
	Operation           OperationType
	Name                *Name
	VariableDefinitions []*VariableDefinition
	Directives          []*Directive
	SelectionSet        *SelectionSet
	Loc                 gqlerr.Location
}

func (o *OperationDefinition) Kind() string              { return kinds.OperationDefinition }
func (o *OperationDefinition) Location() gqlerr.Location { return o.Loc }

// FragmentDefinition is a top-level `fragment Name on Type { ... }`.
type FragmentDefinition struct {
	Name          Name
	TypeCondition Name
	Directives    []*Directive
	SelectionSet  *SelectionSet
	Loc           gqlerr.Location
}

func (f *FragmentDefinition) Kind() string              { return kinds.FragmentDefinition }
func (f *FragmentDefinition) Location() gqlerr.Location { return f.Loc }

// Document is the parsed form of a single POSTed GraphQL query: the full set
// of operation and fragment definitions found in the request body.
type Document struct {
	Operations []*OperationDefinition
	Fragments  []*FragmentDefinition
	Loc        gqlerr.Location
}

func (d *Document) Kind() string              { return kinds.Document }
func (d *Document) Location() gqlerr.Location { return d.Loc }

// FragmentByName returns the fragment definition with the given name, or nil
// if the document defines no such fragment.
func (d *Document) FragmentByName(name string) *FragmentDefinition {
	for _, f := range d.Fragments {
		if f.Name.Value == name {
			return f
		}
	}
	return nil
}
