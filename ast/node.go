// Package ast defines the GraphQL document entities the partitioner
// manipulates: operations, fragments, selection sets, fields, arguments and
// input values. It is the parser's output and the partitioner/printer's
// input.
package ast

import "github.com/shyptr/splitcache/gqlerr"

// Node is implemented by every AST entity.
type Node interface {
	Kind() string
	Location() gqlerr.Location
}
