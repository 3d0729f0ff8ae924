package ast

import (
	"github.com/shyptr/splitcache/gqlerr"
	"github.com/shyptr/splitcache/internal/kinds"
)

// Value is any GraphQL input value: a literal, a list/object of literals, or
// a variable reference. The partitioner treats Variable specially when it
// computes each SubQuery's variable closure; every other kind is copied
// verbatim into the emitted sub-query text (spec §4.3).
type Value interface {
	Node
	isValue()
}

// IntValue is an integer literal, kept as its original text so that
// re-printing never changes precision.
type IntValue struct {
	Value string
	Loc   gqlerr.Location
}

func (v *IntValue) Kind() string              { return kinds.IntValue }
func (v *IntValue) Location() gqlerr.Location { return v.Loc }
func (v *IntValue) isValue()                  {}

// FloatValue is a float literal, kept as original text.
type FloatValue struct {
	Value string
	Loc   gqlerr.Location
}

func (v *FloatValue) Kind() string              { return kinds.FloatValue }
func (v *FloatValue) Location() gqlerr.Location { return v.Loc }
func (v *FloatValue) isValue()                  {}

// StringValue is a string literal with escapes already decoded.
type StringValue struct {
	Value string
	Loc   gqlerr.Location
}

func (v *StringValue) Kind() string              { return kinds.StringValue }
func (v *StringValue) Location() gqlerr.Location { return v.Loc }
func (v *StringValue) isValue()                  {}

// BooleanValue is a true/false literal.
type BooleanValue struct {
	Value bool
	Loc   gqlerr.Location
}

func (v *BooleanValue) Kind() string              { return kinds.BooleanValue }
func (v *BooleanValue) Location() gqlerr.Location { return v.Loc }
func (v *BooleanValue) isValue()                  {}

// NullValue is the `null` literal. The teacher's parser never actually
// produced this node (it fell through to a syntax error on the "null"
// keyword); splitcache's parser constructs it directly.
type NullValue struct {
	Loc gqlerr.Location
}

func (v *NullValue) Kind() string              { return kinds.NullValue }
func (v *NullValue) Location() gqlerr.Location { return v.Loc }
func (v *NullValue) isValue()                  {}

// EnumValue is a bare identifier in value position, e.g. `status: ACTIVE`.
type EnumValue struct {
	Value string
	Loc   gqlerr.Location
}

func (v *EnumValue) Kind() string              { return kinds.EnumValue }
func (v *EnumValue) Location() gqlerr.Location { return v.Loc }
func (v *EnumValue) isValue()                  {}

// ListValue is a `[...]` literal. Elements may themselves contain variables.
type ListValue struct {
	Values []Value
	Loc    gqlerr.Location
}

func (v *ListValue) Kind() string              { return kinds.ListValue }
func (v *ListValue) Location() gqlerr.Location { return v.Loc }
func (v *ListValue) isValue()                  {}

// ObjectValue is a `{...}` literal.
type ObjectValue struct {
	Fields []*ObjectField
	Loc    gqlerr.Location
}

func (v *ObjectValue) Kind() string              { return kinds.ObjectValue }
func (v *ObjectValue) Location() gqlerr.Location { return v.Loc }
func (v *ObjectValue) isValue()                  {}

// ObjectField is a single `name: value` pair inside an ObjectValue.
type ObjectField struct {
	Name  Name
	Value Value
	Loc   gqlerr.Location
}

func (f *ObjectField) Kind() string              { return kinds.ObjectField }
func (f *ObjectField) Location() gqlerr.Location { return f.Loc }

// Variable is a `$name` reference. The partitioner records which variables
// each SubQuery references so it can project the original variables map down
// to the minimal set each fetch needs (spec §4.3, VariableDefinitions).
type Variable struct {
	Name Name
	Loc  gqlerr.Location
}

func (v *Variable) Kind() string              { return kinds.Variable }
func (v *Variable) Location() gqlerr.Location { return v.Loc }
func (v *Variable) isValue()                  {}
