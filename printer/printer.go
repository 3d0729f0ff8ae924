// Package printer serializes a partition.SubQuery back to canonical GraphQL
// text and projects the caller's variables map down to the declarations the
// SubQuery actually carries. The teacher has no single-purpose canonical
// printer; the traversal style here is adapted from federation/planner.go's
// recursive printPlan/printSelections walk, simplified to a flat
// string-builder pass since a SubQuery has exactly one root selection.
package printer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/shyptr/splitcache/ast"
	"github.com/shyptr/splitcache/partition"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Print renders sq as canonical GraphQL query text and filters vars down to
// the variables sq actually declares, JSON-encoded.
func Print(sq *partition.SubQuery, vars map[string]interface{}) (text string, variablesJSON []byte, err error) {
	var b strings.Builder
	b.WriteString("query ")
	b.WriteString(sq.ID)
	writeVariableDefinitions(&b, sq.VariableDefinitions)
	writeDirectives(&b, sq.Directives)
	b.WriteString(" { ")
	writeSelection(&b, sq.RootSelection)
	b.WriteString(" }")

	for _, name := range sortedFragmentNames(sq.Fragments) {
		b.WriteString(" ")
		writeFragmentDefinition(&b, sq.Fragments[name])
	}

	filtered := make(map[string]interface{}, len(sq.VariableDefinitions))
	for _, def := range sq.VariableDefinitions {
		name := def.Variable.Name.Value
		if v, ok := vars[name]; ok {
			filtered[name] = v
		}
	}
	variablesJSON, err = json.Marshal(filtered)
	if err != nil {
		return "", nil, err
	}
	return b.String(), variablesJSON, nil
}

func sortedFragmentNames(fragments map[string]*ast.FragmentDefinition) []string {
	names := make([]string, 0, len(fragments))
	for name := range fragments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func writeVariableDefinitions(b *strings.Builder, defs []*ast.VariableDefinition) {
	if len(defs) == 0 {
		return
	}
	b.WriteString("(")
	for i, def := range defs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("$")
		b.WriteString(def.Variable.Name.Value)
		b.WriteString(": ")
		writeType(b, def.Type)
		if def.DefaultValue != nil {
			b.WriteString(" = ")
			writeValue(b, def.DefaultValue)
		}
	}
	b.WriteString(")")
}

func writeType(b *strings.Builder, t ast.Type) {
	switch ty := t.(type) {
	case *ast.NamedType:
		b.WriteString(ty.Name.Value)
	case *ast.ListType:
		b.WriteString("[")
		writeType(b, ty.Type)
		b.WriteString("]")
	case *ast.NonNullType:
		writeType(b, ty.Type)
		b.WriteString("!")
	}
}

func writeDirectives(b *strings.Builder, directives []*ast.Directive) {
	for _, d := range directives {
		b.WriteString(" @")
		b.WriteString(d.Name.Value)
		writeArguments(b, d.Arguments)
	}
}

func writeArguments(b *strings.Builder, args []*ast.Argument) {
	if len(args) == 0 {
		return
	}
	b.WriteString("(")
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Name.Value)
		b.WriteString(": ")
		writeValue(b, a.Value)
	}
	b.WriteString(")")
}

func writeValue(b *strings.Builder, v ast.Value) {
	switch val := v.(type) {
	case *ast.IntValue:
		b.WriteString(val.Value)
	case *ast.FloatValue:
		b.WriteString(val.Value)
	case *ast.StringValue:
		b.WriteString(strconv.Quote(val.Value))
	case *ast.BooleanValue:
		if val.Value {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case *ast.NullValue:
		b.WriteString("null")
	case *ast.EnumValue:
		b.WriteString(val.Value)
	case *ast.Variable:
		b.WriteString("$")
		b.WriteString(val.Name.Value)
	case *ast.ListValue:
		b.WriteString("[")
		for i, elem := range val.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, elem)
		}
		b.WriteString("]")
	case *ast.ObjectValue:
		b.WriteString("{")
		for i, f := range val.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name.Value)
			b.WriteString(": ")
			writeValue(b, f.Value)
		}
		b.WriteString("}")
	default:
		panic(fmt.Sprintf("printer: unhandled value kind %T", v))
	}
}

func writeSelection(b *strings.Builder, sel ast.Selection) {
	switch s := sel.(type) {
	case *ast.Field:
		if s.Alias != nil {
			b.WriteString(s.Alias.Value)
			b.WriteString(": ")
		}
		b.WriteString(s.Name.Value)
		writeArguments(b, s.Arguments)
		writeDirectives(b, s.Directives)
		if s.SelectionSet != nil {
			b.WriteString(" { ")
			writeSelectionSet(b, s.SelectionSet)
			b.WriteString(" }")
		}
	case *ast.InlineFragment:
		b.WriteString("...")
		if s.TypeCondition != nil {
			b.WriteString(" on ")
			b.WriteString(s.TypeCondition.Value)
		}
		writeDirectives(b, s.Directives)
		b.WriteString(" { ")
		writeSelectionSet(b, s.SelectionSet)
		b.WriteString(" }")
	case *ast.FragmentSpread:
		b.WriteString("...")
		b.WriteString(s.Name.Value)
		writeDirectives(b, s.Directives)
	}
}

func writeSelectionSet(b *strings.Builder, set *ast.SelectionSet) {
	for i, sel := range set.Selections {
		if i > 0 {
			b.WriteString(" ")
		}
		writeSelection(b, sel)
	}
}

func writeFragmentDefinition(b *strings.Builder, f *ast.FragmentDefinition) {
	b.WriteString("fragment ")
	b.WriteString(f.Name.Value)
	b.WriteString(" on ")
	b.WriteString(f.TypeCondition.Value)
	writeDirectives(b, f.Directives)
	b.WriteString(" { ")
	writeSelectionSet(b, f.SelectionSet)
	b.WriteString(" }")
}
