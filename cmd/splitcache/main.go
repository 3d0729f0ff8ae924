// Command splitcache runs the partition-cache edge intermediary's HTTP
// server: POST /graphql is partitioned and fanned out (or passed through for
// mutations and subscriptions); other methods on /graphql get 405 (OPTIONS
// gets 204), and any other path is 404. Wiring uses gocloud.dev/server for NCSA-style request logging, the
// same server package the teacher depends on.
package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"gocloud.dev/server"
	"gocloud.dev/server/requestlog"

	"github.com/shyptr/splitcache/config"
	"github.com/shyptr/splitcache/executor"
	"github.com/shyptr/splitcache/httpapi"
)

func main() {
	configPath := flag.String("config", os.Getenv("SPLITCACHE_CONFIG"), "path to a splitcache YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		os.Stderr.WriteString("splitcache: loading config: " + err.Error() + "\n")
		os.Exit(1)
	}

	exec := executor.New(&http.Client{Timeout: cfg.RequestTimeout + time.Second})
	exec.RequestTimeout = cfg.RequestTimeout
	if len(cfg.HeaderAllow) > 0 {
		exec.HeaderAllow = cfg.HeaderAllow
	}

	handler := httpapi.NewHandler(cfg.Backends, exec, cfg.OverallTimeout)

	mux := http.NewServeMux()
	mux.Handle("/graphql", handler)

	logger := requestlog.NewNCSALogger(os.Stdout, func(err error) {
		os.Stderr.WriteString("splitcache: request log: " + err.Error() + "\n")
	})
	srv := server.New(mux, &server.Options{RequestLogger: logger})

	if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
		os.Stderr.WriteString("splitcache: server exited: " + err.Error() + "\n")
		os.Exit(1)
	}
}
