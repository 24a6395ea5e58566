package types

import (
	"github.com/tliron/glsp"
)

// RequestContext contains all request-scoped data for an LSP method call.
// It wraps both the server-wide context and the GLSP protocol context,
// and collects non-fatal warnings raised while handling the request.
type RequestContext struct {
	Server   ServerContext // Server-wide context (documents, scan cache, config)
	GLSP     *glsp.Context // GLSP protocol context (Notify, Call methods)
	warnings []error
}

// NewRequestContext creates a new request context
func NewRequestContext(server ServerContext, glsp *glsp.Context) *RequestContext {
	return &RequestContext{
		Server: server,
		GLSP:   glsp,
	}
}

// AddWarning adds a non-fatal warning to this request.
// Warnings are logged by middleware after successful handler completion.
func (r *RequestContext) AddWarning(err error) {
	if err != nil {
		r.warnings = append(r.warnings, err)
	}
}

// Warnings returns all warnings collected during this request.
func (r *RequestContext) Warnings() []error {
	return r.warnings
}

// HasWarnings returns true if any warnings were collected
func (r *RequestContext) HasWarnings() bool {
	return len(r.warnings) > 0
}

// CanCall reports whether the client connection can take server-initiated
// requests. Contexts built in tests have no connection.
func (r *RequestContext) CanCall() bool {
	return r.GLSP != nil && r.GLSP.Call != nil
}
