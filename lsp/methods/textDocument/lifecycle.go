package textDocument

import (
	"bennypowers.dev/cpsort/internal/log"
	"bennypowers.dev/cpsort/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidOpen handles the textDocument/didOpen notification
func DidOpen(req *types.RequestContext, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	log.Debug("Document opened: %s (language: %s, version: %d)", item.URI, item.LanguageID, item.Version)

	req.Server.DocumentManager().DidOpen(item.URI, item.LanguageID, item.Version, item.Text)
	publish(req, item.URI)
	return nil
}

// DidChange handles the textDocument/didChange notification
func DidChange(req *types.RequestContext, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debug("Document changed: %s (version: %d, changes: %d)", uri, params.TextDocument.Version, len(params.ContentChanges))

	if _, err := req.Server.DocumentManager().DidChange(uri, params.TextDocument.Version, params.ContentChanges); err != nil {
		return err
	}
	publish(req, uri)
	return nil
}

// DidClose handles the textDocument/didClose notification and clears the
// document's diagnostics
func DidClose(req *types.RequestContext, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debug("Document closed: %s", uri)

	if err := req.Server.DocumentManager().DidClose(uri); err != nil {
		return err
	}
	if req.GLSP != nil && req.GLSP.Notify != nil {
		req.GLSP.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: []protocol.Diagnostic{},
		})
	}
	return nil
}

func publish(req *types.RequestContext, uri string) {
	if err := req.Server.PublishDiagnostics(req.GLSP, uri); err != nil {
		req.AddWarning("failed to publish diagnostics for " + uri + ": " + err.Error())
	}
}
