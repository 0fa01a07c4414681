package types

import (
	"github.com/tliron/glsp"
)

// RequestContext carries the data of one LSP method call
type RequestContext struct {
	Server ServerContext // Server-wide context (documents, config, sorter)
	GLSP   *glsp.Context // GLSP protocol context (Notify, Call methods)
	Method string        // LSP method name, e.g. "textDocument/formatting"

	warnings []string
}

// NewRequestContext creates a new request context
func NewRequestContext(server ServerContext, glsp *glsp.Context, method string) *RequestContext {
	return &RequestContext{
		Server: server,
		GLSP:   glsp,
		Method: method,
	}
}

// AddWarning records a non-fatal problem. The middleware forwards warnings to
// the client after the handler returns.
func (r *RequestContext) AddWarning(message string) {
	if message != "" {
		r.warnings = append(r.warnings, message)
	}
}

// Warnings returns the messages recorded during this request
func (r *RequestContext) Warnings() []string {
	return r.warnings
}
