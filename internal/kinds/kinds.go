// Package kinds enumerates the Kind() tags returned by every ast.Node, used
// by callers that need to type-switch on a string instead of a Go type.
package kinds

const (
	Name                = "Name"
	Document            = "Document"
	OperationDefinition = "OperationDefinition"
	FragmentDefinition  = "FragmentDefinition"
	SelectionSet        = "SelectionSet"
	Field               = "Field"
	FragmentSpread      = "FragmentSpread"
	InlineFragment      = "InlineFragment"
	Directive           = "Directive"
	Argument            = "Argument"
	Variable            = "Variable"
	VariableDefinition  = "VariableDefinition"
	Named               = "NamedType"
	List                = "ListType"
	NonNull             = "NonNullType"
	IntValue            = "IntValue"
	FloatValue          = "FloatValue"
	StringValue         = "StringValue"
	BooleanValue        = "BooleanValue"
	NullValue           = "NullValue"
	EnumValue           = "EnumValue"
	ListValue           = "ListValue"
	ObjectValue         = "ObjectValue"
	ObjectField         = "ObjectField"
)
