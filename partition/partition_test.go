package partition_test

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/splitcache/ast"
	"github.com/shyptr/splitcache/gqlerr"
	"github.com/shyptr/splitcache/parser"
	"github.com/shyptr/splitcache/partition"
)

func mustParse(t *testing.T, source string) *ast.Document {
	t.Helper()
	doc, err := parser.Parse(source)
	require.Nil(t, err, "unexpected parse error: %v", err)
	return doc
}

func fragmentTable(doc *ast.Document) map[string]*ast.FragmentDefinition {
	table := make(map[string]*ast.FragmentDefinition, len(doc.Fragments))
	for _, f := range doc.Fragments {
		table[f.Name.Value] = f
	}
	return table
}

// TestSingleFieldQuery covers S1: one top-level field yields one SubQuery.
func TestSingleFieldQuery(t *testing.T) {
	doc := mustParse(t, `{ matchupAnalysis(homeTeamAbbrev:"A",awayTeamAbbrev:"B",sportType:NFL){ somePrediction { id confidencePercent } } }`)
	subs, plan, err := partition.Partition(doc.Operations[0], fragmentTable(doc))
	require.Nil(t, err)
	require.Len(t, subs, 1)
	require.Len(t, plan, 1)
	assert.Equal(t, "matchupAnalysis", plan[0].ResponseKey)
	assert.Equal(t, subs[0].ID, plan[0].SubQueryID)
}

// TestAliasedSiblings covers S2: two aliased top-level fields produce two
// SubQueries, plan order preserved.
func TestAliasedSiblings(t *testing.T) {
	doc := mustParse(t, `{
		home: matchupAnalysis(homeTeamAbbrev:"A") { id }
		away: matchupAnalysis(homeTeamAbbrev:"B") { id }
	}`)
	subs, plan, err := partition.Partition(doc.Operations[0], fragmentTable(doc))
	require.Nil(t, err)
	require.Len(t, subs, 2)
	if diff := pretty.Compare([]string{"home", "away"}, []string{plan[0].ResponseKey, plan[1].ResponseKey}); diff != "" {
		t.Errorf("response key order mismatch (-want +got):\n%s", diff)
	}
}

// TestSharedFragmentExpandsPerSubQuery covers S3: a fragment spread at the
// top level of two fields each carries its own closure copy.
func TestSharedFragmentExpandsPerSubQuery(t *testing.T) {
	doc := mustParse(t, `
		query Q {
			home: matchupAnalysis(id: 1) { ...MaTeamInfo }
			away: matchupAnalysis(id: 2) { ...MaTeamInfo }
		}
		fragment MaTeamInfo on MatchupAnalysisTeamAnalysis { id name }
	`)
	subs, plan, err := partition.Partition(doc.Operations[0], fragmentTable(doc))
	require.Nil(t, err)
	require.Len(t, subs, 2)
	require.Len(t, plan, 2)
	for _, sq := range subs {
		require.Contains(t, sq.Fragments, "MaTeamInfo")
		assert.Len(t, sq.Fragments, 1)
	}
}

// TestTopLevelFragmentSpreadExpandsToMultipleSubQueries covers partitioner
// rule 3: a top-level FragmentSpread whose fragment root has N selections
// produces N SubQueries.
func TestTopLevelFragmentSpreadExpandsToMultipleSubQueries(t *testing.T) {
	doc := mustParse(t, `
		query Q { ...RootFields }
		fragment RootFields on Query { a { id } b { id } }
	`)
	subs, plan, err := partition.Partition(doc.Operations[0], fragmentTable(doc))
	require.Nil(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, []string{"a", "b"}, []string{plan[0].ResponseKey, plan[1].ResponseKey})
}

// TestInlineFragmentPreservesTypeCondition covers partitioner rule 4.
func TestInlineFragmentPreservesTypeCondition(t *testing.T) {
	doc := mustParse(t, `query Q { ... on Query @skip(if: false) { a { id } b { id } } }`)
	subs, _, err := partition.Partition(doc.Operations[0], fragmentTable(doc))
	require.Nil(t, err)
	require.Len(t, subs, 2)
	for _, sq := range subs {
		inline, ok := sq.RootSelection.(*ast.InlineFragment)
		require.True(t, ok, "expected root selection wrapped in an inline fragment")
		require.NotNil(t, inline.TypeCondition)
		assert.Equal(t, "Query", inline.TypeCondition.Value)
		require.Len(t, inline.Directives, 1)
	}
}

// TestVariableMinimality covers invariant 3 / S6.
func TestVariableMinimality(t *testing.T) {
	doc := mustParse(t, `
		query Q($weekNumber: Int, $season: Int) {
			schedule(week: $weekNumber) { id }
			standings(season: $season) { id }
		}
	`)
	subs, plan, err := partition.Partition(doc.Operations[0], fragmentTable(doc))
	require.Nil(t, err)
	byKey := make(map[string]*partition.SubQuery, len(subs))
	for i, sq := range subs {
		byKey[plan[i].ResponseKey] = sq
	}

	scheduleVars := varNames(byKey["schedule"].VariableDefinitions)
	assert.Equal(t, []string{"weekNumber"}, scheduleVars)

	standingsVars := varNames(byKey["standings"].VariableDefinitions)
	assert.Equal(t, []string{"season"}, standingsVars)
}

func varNames(defs []*ast.VariableDefinition) []string {
	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.Variable.Name.Value)
	}
	return names
}

func TestFragmentCycleFails(t *testing.T) {
	doc := mustParse(t, `
		query Q { a { ...Cycle } }
		fragment Cycle on T { ...Cycle }
	`)
	_, _, err := partition.Partition(doc.Operations[0], fragmentTable(doc))
	require.NotNil(t, err)
	assert.Equal(t, gqlerr.InvalidFragmentReference, err.Kind)
}

func TestDanglingFragmentFails(t *testing.T) {
	doc := mustParse(t, `query Q { a { ...Missing } }`)
	_, _, err := partition.Partition(doc.Operations[0], fragmentTable(doc))
	require.NotNil(t, err)
	assert.Equal(t, gqlerr.InvalidFragmentReference, err.Kind)
}

func TestDuplicateResponseKeyFails(t *testing.T) {
	doc := mustParse(t, `
		query Q { ...Dup1 ...Dup2 }
		fragment Dup1 on Query { a { id } }
		fragment Dup2 on Query { a { name } }
	`)
	_, _, err := partition.Partition(doc.Operations[0], fragmentTable(doc))
	require.NotNil(t, err)
	assert.Equal(t, gqlerr.DuplicateResponseKey, err.Kind)
}

func TestEmptyOperationFails(t *testing.T) {
	doc := mustParse(t, `query Q { ...Empty }
		fragment Empty on Query { }`)
	_, _, err := partition.Partition(doc.Operations[0], fragmentTable(doc))
	require.NotNil(t, err)
	assert.Equal(t, gqlerr.EmptyOperation, err.Kind)
}

func TestOperationDirectivesPropagateToEverySubQuery(t *testing.T) {
	doc := mustParse(t, `query Q @cacheControl(maxAge: 60) { a { id } b { id } }`)
	subs, _, err := partition.Partition(doc.Operations[0], fragmentTable(doc))
	require.Nil(t, err)
	for _, sq := range subs {
		require.Len(t, sq.Directives, 1)
		assert.Equal(t, "cacheControl", sq.Directives[0].Name.Value)
	}
}
