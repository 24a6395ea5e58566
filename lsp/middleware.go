package lsp

import (
	"fmt"
	"runtime/debug"

	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/lsp/methods/workspace"
	"bennypowers.dev/svls/lsp/types"
	"github.com/tliron/glsp"
)

// method wraps an LSP request handler with panic recovery, logging and
// error wrapping. It returns the function type protocol.Handler fields expect.
func method[P, R any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) (R, error),
) func(*glsp.Context, P) (R, error) {
	return func(ctx *glsp.Context, params P) (result R, err error) {
		defer recoverPanic(ctx, methodName, &err)

		log.Debug("%s started", methodName)
		req := types.NewRequestContext(s, ctx)
		result, err = handler(req, params)
		if err != nil {
			var zero R
			return zero, fail(ctx, methodName, err)
		}
		complete(req, methodName)
		return result, nil
	}
}

// notify wraps an LSP notification handler that returns only error
func notify[P any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) error,
) func(*glsp.Context, P) error {
	return func(ctx *glsp.Context, params P) (err error) {
		defer recoverPanic(ctx, methodName, &err)

		log.Debug("%s started", methodName)
		req := types.NewRequestContext(s, ctx)
		if err = handler(req, params); err != nil {
			return fail(ctx, methodName, err)
		}
		complete(req, methodName)
		return nil
	}
}

// noParam wraps an LSP handler that takes no params (like Shutdown)
func noParam(
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext) error,
) func(*glsp.Context) error {
	return func(ctx *glsp.Context) (err error) {
		defer recoverPanic(ctx, methodName, &err)

		log.Debug("%s started", methodName)
		req := types.NewRequestContext(s, ctx)
		if err = handler(req); err != nil {
			return fail(ctx, methodName, err)
		}
		complete(req, methodName)
		return nil
	}
}

// recoverPanic turns a handler panic into an error so one bad request
// cannot take the server down. It must be deferred directly.
func recoverPanic(ctx *glsp.Context, methodName string, err *error) {
	if r := recover(); r != nil {
		log.Error("PANIC in %s: %v\nStack trace:\n%s", methodName, r, debug.Stack())
		workspace.LogError(ctx, "Internal error in %s: %v", methodName, r)
		*err = fmt.Errorf("internal error in %s", methodName)
	}
}

func fail(ctx *glsp.Context, methodName string, err error) error {
	workspace.LogError(ctx, "%s error: %v", methodName, err)
	return fmt.Errorf("%s: %w", methodName, err)
}

func complete(req *types.RequestContext, methodName string) {
	for _, w := range req.Warnings() {
		workspace.LogWarning(req.GLSP, "%s: %v", methodName, w)
	}
	log.Debug("%s completed", methodName)
}
