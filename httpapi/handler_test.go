package httpapi_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/splitcache/backend"
	"github.com/shyptr/splitcache/executor"
	"github.com/shyptr/splitcache/httpapi"
)

// TestSingleFieldEndToEnd covers S1 through the full HTTP handler, against a
// mock origin that answers each sub-request with its response-key fixture.
func TestSingleFieldEndToEnd(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"matchupAnalysis":{"somePrediction":{"id":"1","confidencePercent":90}}}}`))
	}))
	defer origin.Close()

	exec := executor.New(origin.Client())
	handler := httpapi.NewHandler(backend.Table{"qa": origin.URL}, exec, 0)

	body := `{"query":"{ matchupAnalysis(homeTeamAbbrev:\"A\",awayTeamAbbrev:\"B\",sportType:NFL){ somePrediction { id confidencePercent } } }"}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"matchupAnalysis"`)
	assert.Contains(t, rec.Body.String(), `"confidencePercent":90`)
}

// TestMutationPassThroughFidelity covers S4 / invariant 5: the body reaching
// origin equals the body the client sent, byte-for-byte.
func TestMutationPassThroughFidelity(t *testing.T) {
	var receivedBody string
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		receivedBody = string(buf)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"submitPick":{"id":"1"}}}`))
	}))
	defer origin.Close()

	exec := executor.New(origin.Client())
	handler := httpapi.NewHandler(backend.Table{"qa": origin.URL}, exec, 0)

	body := `{"query":"mutation M { submitPick(id: 1) { id } }"}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, body, receivedBody)
	assert.Contains(t, rec.Body.String(), `"submitPick"`)
}

func TestOptionsReturnsNoContent(t *testing.T) {
	handler := httpapi.NewHandler(backend.Table{}, executor.New(nil), 0)
	req := httptest.NewRequest(http.MethodOptions, "/graphql", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetReturns405(t *testing.T) {
	handler := httpapi.NewHandler(backend.Table{}, executor.New(nil), 0)
	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
