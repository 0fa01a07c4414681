package codeaction

import (
	"errors"
	"slices"
	"strings"

	"bennypowers.dev/cpsort/internal/log"
	"bennypowers.dev/cpsort/internal/parser/css"
	"bennypowers.dev/cpsort/lsp/helpers"
	"bennypowers.dev/cpsort/lsp/methods/textDocument/diagnostic"
	"bennypowers.dev/cpsort/lsp/methods/textDocument/formatting"
	"bennypowers.dev/cpsort/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// KindSortCustomProperties is the code action kind offered by this server
const KindSortCustomProperties protocol.CodeActionKind = protocol.CodeActionKindSource + ".sortCustomProperties"

// Title is shown in the editor's code action menu
const Title = "Sort custom properties"

// CodeAction handles textDocument/codeAction
func CodeAction(req *types.RequestContext, params *protocol.CodeActionParams) (any, error) {
	if !requested(params.Context.Only) {
		return nil, nil
	}

	doc := req.Server.Document(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}

	edit, err := formatting.SortEdit(req.Server, doc)
	if errors.Is(err, css.ErrSyntax) {
		log.Debug("no code actions for %s: %v", doc.URI(), err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if edit == nil {
		return nil, nil
	}

	var related []protocol.Diagnostic
	for _, d := range params.Context.Diagnostics {
		if d.Source != nil && *d.Source == diagnostic.Source && helpers.RangesIntersect(d.Range, params.Range) {
			related = append(related, d)
		}
	}

	kind := KindSortCustomProperties
	preferred := len(related) > 0
	return []protocol.CodeAction{{
		Title:       Title,
		Kind:        &kind,
		Diagnostics: related,
		IsPreferred: &preferred,
		Edit: &protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentUri][]protocol.TextEdit{
				doc.URI(): {*edit},
			},
		},
	}}, nil
}

// requested reports whether the client's kind filter admits our action.
// A filter entry matches its own kind and every kind nested under it.
func requested(only []protocol.CodeActionKind) bool {
	if len(only) == 0 {
		return true
	}
	return slices.ContainsFunc(only, func(k protocol.CodeActionKind) bool {
		return k == KindSortCustomProperties || strings.HasPrefix(KindSortCustomProperties, k+".")
	})
}
