// Package classify decides the pipeline path for a parsed Document: whether
// it can be partitioned, must pass straight through to the origin, or is
// malformed outright. It is grounded on the teacher's ApplySelectionSet
// operation-selection logic (selections.go / graphql.go), generalized from
// "find the operation to execute" to "find the operation to partition".
package classify

import (
	"github.com/shyptr/splitcache/ast"
	"github.com/shyptr/splitcache/gqlerr"
)

// Verdict is the outcome of classifying a Document.
type Verdict int

const (
	// Partition means Operation is a query ready for the partitioner.
	Partition Verdict = iota
	// PassThrough means the document contains a mutation or subscription
	// and must be forwarded to the origin unmodified (spec §4.2).
	PassThrough
)

// Result is the outcome of Classify.
type Result struct {
	Verdict   Verdict
	Operation *ast.OperationDefinition // set iff Verdict == Partition
	Fragments map[string]*ast.FragmentDefinition
}

// Classify selects which operation in doc should be executed. operationName
// disambiguates when doc defines more than one operation; it may be empty
// when doc defines exactly one.
func Classify(doc *ast.Document, operationName string) (*Result, *gqlerr.GraphQLError) {
	if len(doc.Operations) == 0 {
		return nil, gqlerr.New(gqlerr.EmptyDocument, "document defines no operations")
	}

	for _, op := range doc.Operations {
		if op.Operation != ast.Query {
			return &Result{Verdict: PassThrough}, nil
		}
	}

	op, err := selectOperation(doc.Operations, operationName)
	if err != nil {
		return nil, err
	}

	fragments := make(map[string]*ast.FragmentDefinition, len(doc.Fragments))
	for _, f := range doc.Fragments {
		fragments[f.Name.Value] = f
	}

	return &Result{Verdict: Partition, Operation: op, Fragments: fragments}, nil
}

// selectOperation implements the operationName disambiguation rule: with a
// single operation it is selected regardless of operationName; with more
// than one, operationName must name exactly one of them.
func selectOperation(ops []*ast.OperationDefinition, operationName string) (*ast.OperationDefinition, *gqlerr.GraphQLError) {
	if len(ops) == 1 {
		return ops[0], nil
	}
	if operationName == "" {
		return nil, gqlerr.New(gqlerr.AmbiguousOperation, "document defines %d operations; operationName is required", len(ops))
	}
	for _, op := range ops {
		if op.Name != nil && op.Name.Value == operationName {
			return op, nil
		}
	}
	return nil, gqlerr.New(gqlerr.AmbiguousOperation, "no operation named %q", operationName)
}
