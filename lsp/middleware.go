package lsp

import (
	"fmt"
	"runtime/debug"

	"bennypowers.dev/cpsort/internal/log"
	"bennypowers.dev/cpsort/lsp/methods/workspace"
	"bennypowers.dev/cpsort/lsp/types"
	"github.com/tliron/glsp"
)

// method wraps an LSP request handler with panic recovery, logging and
// warning forwarding. The returned function matches the protocol.Handler field types.
func method[P, R any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) (R, error),
) func(*glsp.Context, P) (R, error) {
	return func(ctx *glsp.Context, params P) (result R, err error) {
		req := types.NewRequestContext(s, ctx, methodName)
		defer recoverPanic(ctx, methodName, &err)
		defer forwardWarnings(req)

		log.Debug("%s started", methodName)
		result, err = handler(req, params)
		if err != nil {
			var zero R
			return zero, failed(ctx, methodName, err)
		}
		log.Debug("%s completed", methodName)
		return result, nil
	}
}

// notify wraps an LSP notification handler
func notify[P any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) error,
) func(*glsp.Context, P) error {
	return func(ctx *glsp.Context, params P) (err error) {
		req := types.NewRequestContext(s, ctx, methodName)
		defer recoverPanic(ctx, methodName, &err)
		defer forwardWarnings(req)

		log.Debug("%s started", methodName)
		if err = handler(req, params); err != nil {
			return failed(ctx, methodName, err)
		}
		log.Debug("%s completed", methodName)
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
		req := types.NewRequestContext(s, ctx, methodName)
		defer recoverPanic(ctx, methodName, &err)
		defer forwardWarnings(req)

		log.Debug("%s started", methodName)
		if err = handler(req); err != nil {
			return failed(ctx, methodName, err)
		}
		log.Debug("%s completed", methodName)
		return nil
	}
}

func recoverPanic(ctx *glsp.Context, methodName string, err *error) {
	if r := recover(); r != nil {
		log.Error("PANIC in %s: %v\nStack trace:\n%s", methodName, r, debug.Stack())
		workspace.LogError(ctx, "Internal error in %s: %v", methodName, r)
		*err = fmt.Errorf("internal error in %s", methodName)
	}
}

func failed(ctx *glsp.Context, methodName string, err error) error {
	workspace.LogError(ctx, "%s: %v", methodName, err)
	return fmt.Errorf("%s: %w", methodName, err)
}

func forwardWarnings(req *types.RequestContext) {
	for _, w := range req.Warnings() {
		workspace.LogWarning(req.GLSP, "%s: %s", req.Method, w)
	}
}
