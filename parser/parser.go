package parser

import (
	"strconv"
	"text/scanner"

	"github.com/shyptr/splitcache/ast"
	"github.com/shyptr/splitcache/gqlerr"
	"github.com/shyptr/splitcache/internal/token"
)

// Parse parses a raw GraphQL request document (one or more operations plus
// any fragment definitions) into an *ast.Document.
func Parse(source string) (*ast.Document, *gqlerr.GraphQLError) {
	l := newLexer(source)
	var doc *ast.Document
	if err := l.catchSyntaxError(func() {
		doc = parseDocument(l)
	}); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseDocument(l *lexer) *ast.Document {
	doc := &ast.Document{Loc: l.location()}
	l.skipWhitespace()
	for l.peek() != token.EOF {
		if l.peek() == token.BRACE_L {
			loc := l.location()
			op := &ast.OperationDefinition{Operation: ast.Query, Loc: loc}
			op.SelectionSet = parseSelectionSet(l)
			doc.Operations = append(doc.Operations, op)
			continue
		}

		loc := l.location()
		name := parseRawName(l)
		switch name {
		case token.QUERY:
			op := parseOperationDefinition(l, ast.Query)
			op.Loc = loc
			doc.Operations = append(doc.Operations, op)
		case token.MUTATION:
			op := parseOperationDefinition(l, ast.Mutation)
			op.Loc = loc
			doc.Operations = append(doc.Operations, op)
		case token.SUBSCRIPTION:
			op := parseOperationDefinition(l, ast.Subscription)
			op.Loc = loc
			doc.Operations = append(doc.Operations, op)
		case token.FRAGMENT:
			frag := parseFragmentDefinition(l)
			frag.Loc = loc
			doc.Fragments = append(doc.Fragments, frag)
		default:
			l.syntaxErrorf("unexpected %q, expecting one of query, mutation, subscription, fragment", name)
		}
	}
	return doc
}

// parseRawName consumes a NAME token and returns its text without wrapping
// it in an ast.Name — used for the keyword dispatch at the top of a
// document, where the identifier itself (query/mutation/...) is not part of
// the resulting AST.
func parseRawName(l *lexer) string {
	text := l.scan.TokenText()
	l.advance(token.NAME)
	return text
}

// FragmentDefinition : fragment FragmentName on TypeCondition Directives? SelectionSet
func parseFragmentDefinition(l *lexer) *ast.FragmentDefinition {
	name := parseName(l)
	l.advanceKeyword(token.ON)
	typeCondition := parseName(l)
	directives := parseDirectives(l)
	selectionSet := parseSelectionSet(l)
	return &ast.FragmentDefinition{
		Name:          name,
		TypeCondition: typeCondition,
		Directives:    directives,
		SelectionSet:  selectionSet,
	}
}

func parseOperationDefinition(l *lexer, opType ast.OperationType) *ast.OperationDefinition {
	op := &ast.OperationDefinition{Operation: opType}
	if l.peek() == token.NAME {
		name := parseName(l)
		op.Name = &name
	}
	op.VariableDefinitions = parseVariableDefinitions(l)
	op.Directives = parseDirectives(l)
	op.SelectionSet = parseSelectionSet(l)
	return op
}

// VariableDefinitions : ( VariableDefinition+ )
func parseVariableDefinitions(l *lexer) []*ast.VariableDefinition {
	var vars []*ast.VariableDefinition
	if l.peek() != token.PAREN_L {
		return vars
	}
	l.advance(token.PAREN_L)
	for l.peek() != token.PAREN_R {
		vars = append(vars, parseVariableDefinition(l))
	}
	l.advance(token.PAREN_R)
	return vars
}

// VariableDefinition : Variable : Type DefaultValue?
func parseVariableDefinition(l *lexer) *ast.VariableDefinition {
	loc := l.location()
	v := parseVariable(l)
	l.advance(token.COLON)
	t := parseType(l)
	var defaultValue ast.Value
	if l.peek() == token.EQUALS {
		l.advance(token.EQUALS)
		defaultValue = parseValueLiteral(l, true)
	}
	return &ast.VariableDefinition{
		Variable:     v,
		Type:         t,
		DefaultValue: defaultValue,
		Loc:          loc,
	}
}

// Type : NamedType | ListType | NonNullType
//
// The teacher's equivalent recursed into itself on `[` without ever
// consuming the bracket, which loops forever; this version advances past
// both delimiters.
func parseType(l *lexer) ast.Type {
	loc := l.location()
	var t ast.Type
	if l.peek() == token.BRACKET_L {
		l.advance(token.BRACKET_L)
		inner := parseType(l)
		l.advance(token.BRACKET_R)
		t = &ast.ListType{Type: inner, Loc: loc}
	} else {
		t = parseNamedType(l)
	}
	if l.peek() == token.BANG {
		l.advance(token.BANG)
		return &ast.NonNullType{Type: t, Loc: loc}
	}
	return t
}

// parseName converts a NAME token into an ast.Name.
func parseName(l *lexer) ast.Name {
	loc := l.location()
	text := l.scan.TokenText()
	l.advance(token.NAME)
	return ast.Name{Value: text, Loc: loc}
}

// NamedType : Name
func parseNamedType(l *lexer) *ast.NamedType {
	loc := l.location()
	return &ast.NamedType{Name: parseName(l), Loc: loc}
}

// SelectionSet : { Selection+ }
func parseSelectionSet(l *lexer) *ast.SelectionSet {
	loc := l.location()
	var selections []ast.Selection
	l.advance(token.BRACE_L)
	for l.peek() != token.BRACE_R {
		selections = append(selections, parseSelection(l))
	}
	l.advance(token.BRACE_R)
	return &ast.SelectionSet{Selections: selections, Loc: loc}
}

// Selection : Field | FragmentSpread | InlineFragment
func parseSelection(l *lexer) ast.Selection {
	if l.peek() == token.SPREAD {
		return parseFragment(l)
	}
	return parseField(l)
}

// Arguments : ( Argument+ )
func parseArguments(l *lexer) []*ast.Argument {
	var args []*ast.Argument
	l.advance(token.PAREN_L)
	for l.peek() != token.PAREN_R {
		loc := l.location()
		name := parseName(l)
		l.advance(token.COLON)
		value := parseValueLiteral(l, false)
		args = append(args, &ast.Argument{Name: name, Value: value, Loc: loc})
	}
	l.advance(token.PAREN_R)
	return args
}

// Value[Const] : [~Const] Variable | IntValue | FloatValue | StringValue |
// BooleanValue | NullValue | EnumValue | ListValue[?Const] | ObjectValue[?Const]
//
// The teacher's version matched the "null" keyword but fell through to the
// bottom panic instead of returning a value; this returns ast.NullValue.
func parseValueLiteral(l *lexer, constOnly bool) ast.Value {
	loc := l.location()
	switch l.peek() {
	case token.BRACKET_L:
		return parseList(l, constOnly)
	case token.BRACE_L:
		return parseObject(l, constOnly)
	case token.DOLLAR:
		if !constOnly {
			return parseVariable(l)
		}
	case token.INT:
		v := l.scan.TokenText()
		l.advance(token.INT)
		return &ast.IntValue{Value: v, Loc: loc}
	case token.FLOAT:
		v := l.scan.TokenText()
		l.advance(token.FLOAT)
		return &ast.FloatValue{Value: v, Loc: loc}
	case token.STRING:
		v, err := strconv.Unquote(l.scan.TokenText())
		if err != nil {
			l.syntaxErrorf("invalid string literal %s", l.scan.TokenText())
		}
		l.advance(token.STRING)
		return &ast.StringValue{Value: v, Loc: loc}
	case token.NAME:
		text := l.scan.TokenText()
		switch text {
		case "true":
			l.advance(token.NAME)
			return &ast.BooleanValue{Value: true, Loc: loc}
		case "false":
			l.advance(token.NAME)
			return &ast.BooleanValue{Value: false, Loc: loc}
		case "null":
			l.advance(token.NAME)
			return &ast.NullValue{Loc: loc}
		default:
			l.advance(token.NAME)
			return &ast.EnumValue{Value: text, Loc: loc}
		}
	}
	l.syntaxErrorf("unexpected %s", scanner.TokenString(l.peek()))
	panic("unreachable")
}

// ListValue[Const] : [ ] | [ Value[?Const]+ ]
func parseList(l *lexer, constOnly bool) *ast.ListValue {
	loc := l.location()
	l.advance(token.BRACKET_L)
	var values []ast.Value
	for l.peek() != token.BRACKET_R {
		values = append(values, parseValueLiteral(l, constOnly))
	}
	l.advance(token.BRACKET_R)
	return &ast.ListValue{Values: values, Loc: loc}
}

// ObjectValue[Const] : { } | { ObjectField[?Const]+ }
func parseObject(l *lexer, constOnly bool) *ast.ObjectValue {
	loc := l.location()
	l.advance(token.BRACE_L)
	var fields []*ast.ObjectField
	for l.peek() != token.BRACE_R {
		fields = append(fields, parseObjectField(l, constOnly))
	}
	l.advance(token.BRACE_R)
	return &ast.ObjectValue{Fields: fields, Loc: loc}
}

// ObjectField[Const] : Name : Value[?Const]
func parseObjectField(l *lexer, constOnly bool) *ast.ObjectField {
	loc := l.location()
	name := parseName(l)
	l.advance(token.COLON)
	value := parseValueLiteral(l, constOnly)
	return &ast.ObjectField{Name: name, Value: value, Loc: loc}
}

// Variable : $ Name
func parseVariable(l *lexer) *ast.Variable {
	loc := l.location()
	l.advance(token.DOLLAR)
	return &ast.Variable{Name: parseName(l), Loc: loc}
}

// Field : Alias? Name Arguments? Directives? SelectionSet?
// Alias : Name :
func parseField(l *lexer) *ast.Field {
	field := &ast.Field{Loc: l.location()}
	first := parseName(l)
	field.Name = first
	if l.peek() == token.COLON {
		l.advance(token.COLON)
		alias := first
		field.Alias = &alias
		field.Name = parseName(l)
	}
	if l.peek() == token.PAREN_L {
		field.Arguments = parseArguments(l)
	}
	field.Directives = parseDirectives(l)
	if l.peek() == token.BRACE_L {
		field.SelectionSet = parseSelectionSet(l)
	}
	return field
}

// Covers both FragmentSpread and InlineFragment.
// FragmentSpread : ... FragmentName Directives?
// InlineFragment : ... TypeCondition? Directives? SelectionSet
func parseFragment(l *lexer) ast.Selection {
	loc := l.location()
	l.advance(token.SPREAD)
	l.advance(token.SPREAD)
	l.advance(token.SPREAD)

	if l.peek() == token.NAME && l.scan.TokenText() != token.ON {
		name := parseName(l)
		spread := &ast.FragmentSpread{Name: name, Loc: loc}
		spread.Directives = parseDirectives(l)
		return spread
	}

	inline := &ast.InlineFragment{Loc: loc}
	if l.peek() == token.NAME {
		l.advanceKeyword(token.ON)
		typeCondition := parseName(l)
		inline.TypeCondition = &typeCondition
	}
	inline.Directives = parseDirectives(l)
	inline.SelectionSet = parseSelectionSet(l)
	return inline
}

// Directives : Directive+
func parseDirectives(l *lexer) []*ast.Directive {
	var directives []*ast.Directive
	for l.peek() == token.AT {
		directives = append(directives, parseDirective(l))
	}
	return directives
}

// Directive : @ Name Arguments?
func parseDirective(l *lexer) *ast.Directive {
	loc := l.location()
	l.advance(token.AT)
	directive := &ast.Directive{Name: parseName(l), Loc: loc}
	if l.peek() == token.PAREN_L {
		directive.Arguments = parseArguments(l)
	}
	return directive
}
