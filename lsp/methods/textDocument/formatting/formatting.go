package formatting

import (
	"fmt"

	"bennypowers.dev/cpsort/internal/documents"
	"bennypowers.dev/cpsort/internal/log"
	"bennypowers.dev/cpsort/lsp/helpers"
	"bennypowers.dev/cpsort/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Formatting handles textDocument/formatting by replacing the whole document
// when sorting changes it
func Formatting(req *types.RequestContext, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	uri := params.TextDocument.URI
	doc := req.Server.Document(uri)
	if doc == nil {
		return nil, fmt.Errorf("%w: %s", documents.ErrNotFound, uri)
	}

	edit, err := SortEdit(req.Server, doc)
	if err != nil {
		return nil, err
	}
	if edit == nil {
		return []protocol.TextEdit{}, nil
	}
	return []protocol.TextEdit{*edit}, nil
}

// SortEdit returns the edit that sorts doc, or nil when it is already sorted
func SortEdit(server types.ServerContext, doc *documents.Document) (*protocol.TextEdit, error) {
	result, err := helpers.FormatDocument(server, doc)
	if err != nil {
		return nil, err
	}
	if result == nil || !result.Changed {
		return nil, nil
	}

	log.Debug("sorted custom properties in %s", doc.URI())
	return &protocol.TextEdit{
		Range:   helpers.DocumentRange(doc.Content()),
		NewText: result.Output,
	}, nil
}
