// Package httpapi is splitcache's HTTP ingress: it decodes the POSTed
// GraphQL request, drives it through classify/partition/printer/executor/
// merger, and writes the merged response. The gin-style Context and
// HandlersChain here are adapted from the teacher's context.go — same
// single-slice middleware chain and Next() cursor — generalized from a
// schema-executing handler to a partitioning one.
package httpapi

import (
	"log"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/shyptr/splitcache/gqlerr"
)

// HandlerFunc is one link of the middleware chain.
type HandlerFunc func(*Context)

// Context carries per-request state through the HandlersChain, mirroring
// the teacher's design: a single mutable value threaded through Next().
type Context struct {
	Request       *http.Request
	Writer        *ResponseWriter
	Logger        *log.Logger
	HandlersChain []HandlerFunc
	Errors        gqlerr.MultiError
	OperationName string
	index         int
	keys          map[interface{}]interface{}
}

func newContext(w http.ResponseWriter, r *http.Request, logger *log.Logger) *Context {
	return &Context{
		Request: r,
		Writer:  &ResponseWriter{ResponseWriter: w},
		Logger:  logger,
		index:   -1,
		keys:    make(map[interface{}]interface{}),
	}
}

// Next invokes the next handler in the chain, if any.
func (c *Context) Next() {
	c.index++
	for c.index < len(c.HandlersChain) {
		c.HandlersChain[c.index](c)
		c.index++
	}
}

func (c *Context) Set(key, value interface{}) { c.keys[key] = value }
func (c *Context) Get(key interface{}) interface{} { return c.keys[key] }

// ClientIP mirrors the teacher's best-effort reverse-proxy IP resolution.
func (c *Context) ClientIP() string {
	ip := strings.TrimSpace(strings.Split(c.Request.Header.Get("X-Forwarded-For"), ",")[0])
	if ip == "" {
		ip = strings.TrimSpace(c.Request.Header.Get("X-Real-Ip"))
	}
	if ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(strings.TrimSpace(c.Request.RemoteAddr)); err == nil {
		return host
	}
	return ""
}

// Fail writes a GraphQL-shaped error envelope with the given HTTP status.
func (c *Context) Fail(status int, err *gqlerr.GraphQLError) {
	c.Errors = append(c.Errors, err)
	writeErrors(c.Writer, status, c.Errors)
}

// ResponseWriter wraps http.ResponseWriter to remember the status code
// actually written, the way the teacher's Resp does.
type ResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *ResponseWriter) Status() int { return w.status }

func (w *ResponseWriter) WriteHeader(statusCode int) {
	w.status = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func defaultLogger() *log.Logger {
	return log.New(os.Stderr, "splitcache: ", log.LstdFlags)
}
