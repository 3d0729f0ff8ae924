package httpapi

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/shyptr/splitcache/ast"
	"github.com/shyptr/splitcache/backend"
	"github.com/shyptr/splitcache/classify"
	"github.com/shyptr/splitcache/executor"
	"github.com/shyptr/splitcache/gqlerr"
	"github.com/shyptr/splitcache/merger"
	"github.com/shyptr/splitcache/parser"
	"github.com/shyptr/splitcache/partition"
	"github.com/shyptr/splitcache/printer"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary
var validate = validator.New()

// RequestBody is the decoded shape of a POST /graphql body (spec §6).
type RequestBody struct {
	Query         string                 `json:"query" validate:"required"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Handler wires the full splitcache pipeline: parse, classify, partition,
// print, fan out, merge.
type Handler struct {
	Backends       backend.Table
	Executor       *executor.Executor
	RequestTimeout time.Duration
	Logger         *log.Logger
}

// NewHandler builds a Handler ready to serve /graphql.
func NewHandler(backends backend.Table, exec *executor.Executor, overallTimeout time.Duration) *Handler {
	logger := defaultLogger()
	return &Handler{Backends: backends, Executor: exec, RequestTimeout: overallTimeout, Logger: logger}
}

// withOverallTimeout bounds the sub-request fan-out with h.RequestTimeout
// (spec §5's suggested 10s wall clock), unless it is unset, in which case
// the request's own context is used unmodified.
func (h *Handler) withOverallTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if h.RequestTimeout <= 0 {
		return parent, func() {}
	}
	return context.WithTimeout(parent, h.RequestTimeout)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := newContext(w, r, h.Logger)
	ctx.HandlersChain = []HandlerFunc{h.execute}
	ctx.Next()
}

func (h *Handler) execute(c *Context) {
	if c.Request.Method == http.MethodOptions {
		c.Writer.WriteHeader(http.StatusNoContent)
		return
	}
	if c.Request.Method != http.MethodPost {
		c.Fail(http.StatusMethodNotAllowed, gqlerr.New(gqlerr.Syntax, "method %s not allowed, only POST", c.Request.Method))
		return
	}

	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Fail(http.StatusBadRequest, gqlerr.New(gqlerr.Syntax, "reading request body: %s", err))
		return
	}

	var body RequestBody
	if err := json.Unmarshal(rawBody, &body); err != nil {
		c.Fail(http.StatusBadRequest, gqlerr.New(gqlerr.Syntax, "decoding request body: %s", err))
		return
	}
	if err := validate.Struct(&body); err != nil {
		c.Fail(http.StatusBadRequest, gqlerr.New(gqlerr.Syntax, "invalid request body: %s", err))
		return
	}
	c.OperationName = body.OperationName

	doc, parseErr := parser.Parse(body.Query)
	if parseErr != nil {
		c.Fail(http.StatusBadRequest, parseErr)
		return
	}

	result, classifyErr := classify.Classify(doc, body.OperationName)
	if classifyErr != nil {
		c.Fail(http.StatusBadRequest, classifyErr)
		return
	}

	backendURL := h.Backends.Lookup(c.Request.Header.Get("X-Backend-Env"))

	if result.Verdict == classify.PassThrough {
		h.passThrough(c, backendURL, rawBody)
		return
	}

	h.partitionAndFetch(c, backendURL, result.Operation, result.Fragments, body.Variables)
}

// passThrough forwards the original POST body verbatim to origin and
// mirrors its response byte-for-byte (spec §4.2, testable property 5).
func (h *Handler) passThrough(c *Context, backendURL string, rawBody []byte) {
	ctx, cancel := h.withOverallTimeout(c.Request.Context())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(backendURL, "/")+"/graphql", bytes.NewReader(rawBody))
	if err != nil {
		c.Fail(http.StatusBadGateway, gqlerr.New(gqlerr.Network, "building pass-through request: %s", err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if auth := c.Request.Header.Get("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := h.Executor.Client.Do(req)
	if err != nil {
		c.Fail(http.StatusBadGateway, gqlerr.New(gqlerr.Network, "pass-through request failed: %s", err))
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Fail(http.StatusBadGateway, gqlerr.New(gqlerr.Network, "reading pass-through response: %s", err))
		return
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		c.Writer.Header().Set("Content-Type", ct)
	}
	c.Writer.WriteHeader(resp.StatusCode)
	c.Writer.Write(body)
}

func (h *Handler) partitionAndFetch(c *Context, backendURL string, op *ast.OperationDefinition, fragments map[string]*ast.FragmentDefinition, vars map[string]interface{}) {
	subQueries, plan, partitionErr := partition.Partition(op, fragments)
	if partitionErr != nil {
		c.Fail(http.StatusBadRequest, partitionErr)
		return
	}

	reqs := make([]executor.Request, 0, len(subQueries))
	for _, sq := range subQueries {
		text, variablesJSON, err := printer.Print(sq, vars)
		if err != nil {
			c.Fail(http.StatusInternalServerError, gqlerr.New(gqlerr.Syntax, "printing sub-query %s: %s", sq.ID, err))
			return
		}
		reqs = append(reqs, executor.Request{
			SubQueryID:    sq.ID,
			ResponseKey:   sq.ResponseKey,
			Query:         text,
			VariablesJSON: variablesJSON,
		})
	}

	ctx, cancel := h.withOverallTimeout(c.Request.Context())
	defer cancel()
	outcomes := h.Executor.Fetch(ctx, backendURL, c.Request.Header, reqs)

	response, status := merger.Merge(plan, outcomes)
	body, err := json.Marshal(response)
	if err != nil {
		c.Fail(http.StatusInternalServerError, gqlerr.New(gqlerr.InvalidJson, "encoding merged response: %s", err))
		return
	}
	c.Writer.Header().Set("Content-Type", "application/json")
	c.Writer.WriteHeader(status)
	c.Writer.Write(body)
}

func writeErrors(w *ResponseWriter, status int, errs gqlerr.MultiError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body, _ := json.Marshal(struct {
		Errors gqlerr.MultiError `json:"errors"`
	}{Errors: errs})
	w.Write(body)
}
