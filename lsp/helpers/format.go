package helpers

import (
	"path/filepath"

	"bennypowers.dev/cpsort/internal/documents"
	"bennypowers.dev/cpsort/internal/format"
	"bennypowers.dev/cpsort/internal/log"
	"bennypowers.dev/cpsort/internal/uriutil"
	"bennypowers.dev/cpsort/lsp/types"
)

// FormatDocument sorts the custom properties of an open document.
// Returns nil without an error for documents the configuration excludes and
// for languages that cannot carry CSS.
func FormatDocument(server types.ServerContext, doc *documents.Document) (*format.Result, error) {
	lang := doc.Language()
	if lang == format.Unknown {
		return nil, nil
	}
	if !Included(server, doc.URI()) {
		log.Debug("skipping excluded document %s", doc.URI())
		return nil, nil
	}
	return format.Format(doc.Content(), lang, server.Sorter())
}

// Included applies the include and exclude globs to a document, relative to
// the workspace root when the document lies inside it
func Included(server types.ServerContext, uri string) bool {
	path := uriutil.URIToPath(uri)
	if root := server.RootPath(); root != "" {
		if rel, err := filepath.Rel(root, path); err == nil && filepath.IsLocal(rel) {
			path = rel
		}
	}
	return server.Config().Matches(path)
}
