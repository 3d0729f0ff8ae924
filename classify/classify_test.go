package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/splitcache/ast"
	"github.com/shyptr/splitcache/classify"
	"github.com/shyptr/splitcache/gqlerr"
	"github.com/shyptr/splitcache/parser"
)

func mustParse(t *testing.T, source string) *ast.Document {
	t.Helper()
	doc, err := parser.Parse(source)
	require.Nil(t, err)
	return doc
}

func TestSingleQueryOperationNeedsNoName(t *testing.T) {
	doc := mustParse(t, `{ a { id } }`)
	result, err := classify.Classify(doc, "")
	require.Nil(t, err)
	assert.Equal(t, classify.Partition, result.Verdict)
	require.NotNil(t, result.Operation)
}

func TestMutationIsPassThrough(t *testing.T) {
	doc := mustParse(t, `mutation M { submitPick(id: 1) { id } }`)
	result, err := classify.Classify(doc, "")
	require.Nil(t, err)
	assert.Equal(t, classify.PassThrough, result.Verdict)
}

func TestSubscriptionIsPassThrough(t *testing.T) {
	doc := mustParse(t, `subscription S { events { id } }`)
	result, err := classify.Classify(doc, "")
	require.Nil(t, err)
	assert.Equal(t, classify.PassThrough, result.Verdict)
}

func TestEmptyDocumentFails(t *testing.T) {
	doc := &ast.Document{}
	_, err := classify.Classify(doc, "")
	require.NotNil(t, err)
	assert.Equal(t, gqlerr.EmptyDocument, err.Kind)
}

func TestAmbiguousOperationWithoutName(t *testing.T) {
	doc := mustParse(t, `query A { a { id } } query B { b { id } }`)
	_, err := classify.Classify(doc, "")
	require.NotNil(t, err)
	assert.Equal(t, gqlerr.AmbiguousOperation, err.Kind)
}

func TestOperationNameSelectsAmongMany(t *testing.T) {
	doc := mustParse(t, `query A { a { id } } query B { b { id } }`)
	result, err := classify.Classify(doc, "B")
	require.Nil(t, err)
	assert.Equal(t, classify.Partition, result.Verdict)
	require.NotNil(t, result.Operation.Name)
	assert.Equal(t, "B", result.Operation.Name.Value)
}

func TestUnknownOperationNameFails(t *testing.T) {
	doc := mustParse(t, `query A { a { id } } query B { b { id } }`)
	_, err := classify.Classify(doc, "C")
	require.NotNil(t, err)
	assert.Equal(t, gqlerr.AmbiguousOperation, err.Kind)
}
