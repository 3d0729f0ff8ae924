// Package partition implements the central algorithm of splitcache: taking
// one query OperationDefinition plus its fragment table and producing a set
// of single-root-field SubQueries, each independently cacheable, plus a
// RecompositionPlan describing how to reassemble their responses.
//
// The fragment-closure walk is grounded in the teacher's
// federation/normalize.go flattener, which recurses through a selection set
// inlining and tracking fragment references with a visiting set to guard
// against cycles; this package reuses that shape but stops short of fully
// inlining every fragment — only the top-level selections of the operation
// itself are expanded, per the partitioning rule, while fragments used
// further down a field's subtree are left as spreads and merely recorded in
// the SubQuery's fragment closure.
package partition

import (
	"fmt"

	"github.com/shyptr/splitcache/ast"
	"github.com/shyptr/splitcache/gqlerr"
)

// SubQuery is a synthetic single-root-field query operation carved out of a
// larger one, together with the minimal fragment and variable declarations
// its subtree references.
type SubQuery struct {
	// ID is the original operation name suffixed with a deterministic
	// discriminator, used as the synthetic operationName sent to origin and
	// to correlate log lines across sibling SubQueries.
	ID string
	// ResponseKey is the key this SubQuery's result occupies in the final
	// merged data object: the root field's alias if present, else its name.
	ResponseKey string
	// RootSelection is the (possibly InlineFragment-wrapped) Field that
	// forms this SubQuery's sole root selection.
	RootSelection ast.Selection
	// VariableDefinitions is the minimal subset of the original operation's
	// variable declarations referenced anywhere in RootSelection's closure.
	VariableDefinitions []*ast.VariableDefinition
	// Directives carries the original operation's own directives, which are
	// propagated to every emitted SubQuery (spec decision, see DESIGN.md).
	Directives []*ast.Directive
	// Fragments is the minimal set of FragmentDefinitions transitively
	// reachable from RootSelection, keyed by name.
	Fragments map[string]*ast.FragmentDefinition
}

// PlanEntry records how one SubQuery's result projects back into the
// original response shape.
type PlanEntry struct {
	ResponseKey string
	SubQueryID  string
}

// RecompositionPlan lists, in the original query's top-level selection
// order, how each SubQuery's result should be placed back into `data`.
type RecompositionPlan []PlanEntry

// Partition splits op into SubQueries and builds the RecompositionPlan.
// fragments is the full fragment table parsed alongside op; only the subset
// each SubQuery actually needs is retained on the SubQuery itself.
func Partition(op *ast.OperationDefinition, fragments map[string]*ast.FragmentDefinition) ([]*SubQuery, RecompositionPlan, *gqlerr.GraphQLError) {
	if op.SelectionSet == nil || len(op.SelectionSet.Selections) == 0 {
		return nil, nil, gqlerr.New(gqlerr.EmptyOperation, "operation %s has no root selections", operationLabel(op))
	}

	var units []rootUnit
	for _, sel := range op.SelectionSet.Selections {
		u, err := expand(sel, fragments, identityWrap, map[string]bool{})
		if err != nil {
			return nil, nil, err
		}
		units = append(units, u...)
	}
	if len(units) == 0 {
		return nil, nil, gqlerr.New(gqlerr.EmptyOperation, "operation %s has no root selections", operationLabel(op))
	}

	seenKeys := make(map[string]bool, len(units))
	base := operationLabel(op)
	varByName := make(map[string]*ast.VariableDefinition, len(op.VariableDefinitions))
	for _, v := range op.VariableDefinitions {
		varByName[v.Variable.Name.Value] = v
	}

	subQueries := make([]*SubQuery, 0, len(units))
	plan := make(RecompositionPlan, 0, len(units))
	for i, u := range units {
		if seenKeys[u.responseKey] {
			return nil, nil, gqlerr.New(gqlerr.DuplicateResponseKey, "response key %q emitted by more than one sub-query", u.responseKey)
		}
		seenKeys[u.responseKey] = true

		frags, err := fragmentClosure(u.selection, fragments)
		if err != nil {
			return nil, nil, err
		}
		varNames := variableClosure(u.selection, frags)

		var vars []*ast.VariableDefinition
		for _, def := range op.VariableDefinitions {
			if varNames[def.Variable.Name.Value] {
				vars = append(vars, def)
			}
		}

		id := fmt.Sprintf("%s_%d", base, i)
		sq := &SubQuery{
			ID:                  id,
			ResponseKey:         u.responseKey,
			RootSelection:       u.selection,
			VariableDefinitions: vars,
			Directives:          op.Directives,
			Fragments:           frags,
		}
		subQueries = append(subQueries, sq)
		plan = append(plan, PlanEntry{ResponseKey: u.responseKey, SubQueryID: id})
	}

	return subQueries, plan, nil
}

func operationLabel(op *ast.OperationDefinition) string {
	if op.Name != nil {
		return op.Name.Value
	}
	return "anonymous"
}

// rootUnit is one fully-expanded top-level selection: the eventual sole
// root selection of a SubQuery, and the response key it occupies.
type rootUnit struct {
	selection   ast.Selection
	responseKey string
}

// wrapFunc composes InlineFragment envelopes as expand descends through
// nested inline fragments, so a Field found three InlineFragments deep ends
// up wrapped in the same three layers, outermost first.
type wrapFunc func(inner ast.Selection) ast.Selection

func identityWrap(inner ast.Selection) ast.Selection { return inner }

// expand implements partitioner rules 2-4: a Field becomes one rootUnit; a
// FragmentSpread is replaced by one rootUnit per top-level selection of the
// fragment it names; an InlineFragment recurses into its own selection set,
// wrapping each produced unit in an equivalent InlineFragment.
func expand(sel ast.Selection, fragments map[string]*ast.FragmentDefinition, wrap wrapFunc, visiting map[string]bool) ([]rootUnit, *gqlerr.GraphQLError) {
	switch s := sel.(type) {
	case *ast.Field:
		return []rootUnit{{selection: wrap(s), responseKey: s.ResponseKey()}}, nil

	case *ast.FragmentSpread:
		name := s.Name.Value
		if visiting[name] {
			return nil, gqlerr.New(gqlerr.InvalidFragmentReference, "fragment %q forms a cycle", name)
		}
		def, ok := fragments[name]
		if !ok {
			return nil, gqlerr.New(gqlerr.InvalidFragmentReference, "fragment %q is not defined", name)
		}
		visiting[name] = true
		defer delete(visiting, name)

		var units []rootUnit
		for _, child := range def.SelectionSet.Selections {
			u, err := expand(child, fragments, wrap, visiting)
			if err != nil {
				return nil, err
			}
			units = append(units, u...)
		}
		return units, nil

	case *ast.InlineFragment:
		inner := wrapInline(s)
		nextWrap := func(sel ast.Selection) ast.Selection { return wrap(inner(sel)) }
		var units []rootUnit
		for _, child := range s.SelectionSet.Selections {
			u, err := expand(child, fragments, nextWrap, visiting)
			if err != nil {
				return nil, err
			}
			units = append(units, u...)
		}
		return units, nil

	default:
		return nil, gqlerr.New(gqlerr.Syntax, "unrecognized selection kind %T", sel)
	}
}

// wrapInline returns a function that wraps a single selection in a fresh
// InlineFragment carrying outer's type condition and directives.
func wrapInline(outer *ast.InlineFragment) func(ast.Selection) ast.Selection {
	return func(inner ast.Selection) ast.Selection {
		return &ast.InlineFragment{
			TypeCondition: outer.TypeCondition,
			Directives:    outer.Directives,
			SelectionSet:  &ast.SelectionSet{Selections: []ast.Selection{inner}},
			Loc:           outer.Loc,
		}
	}
}

// fragmentClosure walks root's full subtree (unlike expand, it descends
// into Field child selection sets too) collecting every FragmentDefinition
// transitively reachable via FragmentSpread, detecting cycles the same way
// expand does.
func fragmentClosure(root ast.Selection, table map[string]*ast.FragmentDefinition) (map[string]*ast.FragmentDefinition, *gqlerr.GraphQLError) {
	found := make(map[string]*ast.FragmentDefinition)
	visiting := make(map[string]bool)
	var walkSet func(set *ast.SelectionSet) *gqlerr.GraphQLError
	var walkSel func(sel ast.Selection) *gqlerr.GraphQLError

	walkSel = func(sel ast.Selection) *gqlerr.GraphQLError {
		switch s := sel.(type) {
		case *ast.Field:
			return walkSet(s.SelectionSet)
		case *ast.InlineFragment:
			return walkSet(s.SelectionSet)
		case *ast.FragmentSpread:
			name := s.Name.Value
			if visiting[name] {
				return gqlerr.New(gqlerr.InvalidFragmentReference, "fragment %q forms a cycle", name)
			}
			if _, ok := found[name]; ok {
				return nil
			}
			def, ok := table[name]
			if !ok {
				return gqlerr.New(gqlerr.InvalidFragmentReference, "fragment %q is not defined", name)
			}
			found[name] = def
			visiting[name] = true
			defer delete(visiting, name)
			return walkSet(def.SelectionSet)
		}
		return nil
	}
	walkSet = func(set *ast.SelectionSet) *gqlerr.GraphQLError {
		if set == nil {
			return nil
		}
		for _, sel := range set.Selections {
			if err := walkSel(sel); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walkSel(root); err != nil {
		return nil, err
	}
	return found, nil
}

// variableClosure walks root and the already-resolved fragment closure,
// collecting the name of every variable referenced by an argument value or
// a directive argument value anywhere in either.
func variableClosure(root ast.Selection, fragments map[string]*ast.FragmentDefinition) map[string]bool {
	names := make(map[string]bool)

	var walkValue func(v ast.Value)
	walkValue = func(v ast.Value) {
		switch val := v.(type) {
		case *ast.Variable:
			names[val.Name.Value] = true
		case *ast.ListValue:
			for _, elem := range val.Values {
				walkValue(elem)
			}
		case *ast.ObjectValue:
			for _, f := range val.Fields {
				walkValue(f.Value)
			}
		}
	}
	walkArgs := func(args []*ast.Argument) {
		for _, a := range args {
			walkValue(a.Value)
		}
	}
	walkDirectives := func(directives []*ast.Directive) {
		for _, d := range directives {
			walkArgs(d.Arguments)
		}
	}

	var walkSet func(set *ast.SelectionSet)
	var walkSel func(sel ast.Selection)

	walkSel = func(sel ast.Selection) {
		switch s := sel.(type) {
		case *ast.Field:
			walkArgs(s.Arguments)
			walkDirectives(s.Directives)
			walkSet(s.SelectionSet)
		case *ast.InlineFragment:
			walkDirectives(s.Directives)
			walkSet(s.SelectionSet)
		case *ast.FragmentSpread:
			walkDirectives(s.Directives)
			if def, ok := fragments[s.Name.Value]; ok {
				walkSet(def.SelectionSet)
			}
		}
	}
	walkSet = func(set *ast.SelectionSet) {
		if set == nil {
			return
		}
		for _, sel := range set.Selections {
			walkSel(sel)
		}
	}

	walkSel(root)
	return names
}
