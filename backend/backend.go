// Package backend holds the immutable dev/qa/prod origin table selected by
// the X-Backend-Env header (spec §6). It is process-wide, read-only after
// load, and injected into the HTTP handler rather than read globally, so the
// partitioner and merger stay pure (spec §5's design note, §9 global
// configuration).
package backend

// Table maps a backend environment name to its origin base URL (scheme +
// host, no trailing slash, no path).
type Table map[string]string

// DefaultEnv is used when X-Backend-Env is absent or not a key of Table.
const DefaultEnv = "qa"

// Lookup resolves env to an origin base URL, falling back to DefaultEnv when
// env is empty or unrecognized.
func (t Table) Lookup(env string) string {
	if url, ok := t[env]; ok {
		return url
	}
	return t[DefaultEnv]
}
