package lifecycle

import (
	"bennypowers.dev/cpsort/internal/log"
	"bennypowers.dev/cpsort/internal/parser/css"
	"bennypowers.dev/cpsort/internal/parser/html"
	"bennypowers.dev/cpsort/internal/parser/js"
	"bennypowers.dev/cpsort/lsp/types"
)

// Shutdown handles the LSP shutdown request
func Shutdown(req *types.RequestContext) error {
	log.Info("Server shutting down")

	css.ClosePool()
	html.ClosePool()
	js.ClosePool()
	return nil
}
