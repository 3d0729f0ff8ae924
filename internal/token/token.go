// Package token holds the lexical token constants shared by the lexer and
// the parser.
package token

import "text/scanner"

const (
	EOF       = scanner.EOF
	BANG      = '!'
	DOLLAR    = '$'
	PAREN_L   = '('
	PAREN_R   = ')'
	SPREAD    = '.'
	COLON     = ':'
	EQUALS    = '='
	AT        = '@'
	BRACKET_L = '['
	BRACKET_R = ']'
	BRACE_L   = '{'
	BRACE_R   = '}'
	NAME      = scanner.Ident
	INT       = scanner.Int
	FLOAT     = scanner.Float
	STRING    = scanner.String
)

// Keywords recognized at the top level of a document.
const (
	FRAGMENT     = "fragment"
	QUERY        = "query"
	MUTATION     = "mutation"
	SUBSCRIPTION = "subscription"
	ON           = "on"
)
