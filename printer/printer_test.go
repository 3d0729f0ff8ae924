package printer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/splitcache/ast"
	"github.com/shyptr/splitcache/parser"
	"github.com/shyptr/splitcache/partition"
	"github.com/shyptr/splitcache/printer"
)

func mustParse(t *testing.T, source string) *ast.Document {
	t.Helper()
	doc, err := parser.Parse(source)
	require.Nil(t, err)
	return doc
}

func fragmentTable(doc *ast.Document) map[string]*ast.FragmentDefinition {
	table := make(map[string]*ast.FragmentDefinition, len(doc.Fragments))
	for _, f := range doc.Fragments {
		table[f.Name.Value] = f
	}
	return table
}

func TestPrintIncludesRootFieldAndVariables(t *testing.T) {
	doc := mustParse(t, `query Q($id: Int) { schedule(week: $id) { id } other { id } }`)
	subs, _, err := partition.Partition(doc.Operations[0], fragmentTable(doc))
	require.Nil(t, err)

	text, variables, err := printer.Print(subs[0], map[string]interface{}{"id": float64(3)})
	require.Nil(t, err)
	assert.Contains(t, text, "schedule(week: $id)")
	assert.JSONEq(t, `{"id":3}`, string(variables))
}

// TestPrintSharedFragmentIsByteIdentical covers S3's "both printed texts
// identical modulo the root selection" expectation.
func TestPrintSharedFragmentIsByteIdentical(t *testing.T) {
	doc := mustParse(t, `
		query Q {
			home: matchupAnalysis(id: 1) { ...Info }
			away: matchupAnalysis(id: 2) { ...Info }
		}
		fragment Info on T { id name }
	`)
	subs, _, err := partition.Partition(doc.Operations[0], fragmentTable(doc))
	require.Nil(t, err)
	require.Len(t, subs, 2)

	homeText, _, err := printer.Print(subs[0], nil)
	require.Nil(t, err)
	awayText, _, err := printer.Print(subs[1], nil)
	require.Nil(t, err)

	assert.Contains(t, homeText, "fragment Info on T { id name }")
	assert.Contains(t, awayText, "fragment Info on T { id name }")
}

func TestPrintOmitsUndeclaredVariables(t *testing.T) {
	doc := mustParse(t, `query Q($a: Int, $b: Int) { x(v: $a) { id } y(v: $b) { id } }`)
	subs, plan, err := partition.Partition(doc.Operations[0], fragmentTable(doc))
	require.Nil(t, err)

	vars := map[string]interface{}{"a": float64(1), "b": float64(2)}
	for i, sq := range subs {
		_, variablesJSON, err := printer.Print(sq, vars)
		require.Nil(t, err)
		if plan[i].ResponseKey == "x" {
			assert.JSONEq(t, `{"a":1}`, string(variablesJSON))
		} else {
			assert.JSONEq(t, `{"b":2}`, string(variablesJSON))
		}
	}
}
