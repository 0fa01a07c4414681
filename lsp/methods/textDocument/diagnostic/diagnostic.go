package diagnostic

import (
	"errors"

	"bennypowers.dev/cpsort/internal/customprops"
	"bennypowers.dev/cpsort/internal/log"
	"bennypowers.dev/cpsort/internal/parser/css"
	"bennypowers.dev/cpsort/lsp/helpers"
	"bennypowers.dev/cpsort/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Source identifies diagnostics published by this server
const Source = "cpsort"

// GetDiagnostics returns the duplicate custom property warnings of an open document
func GetDiagnostics(server types.ServerContext, uri string) ([]protocol.Diagnostic, error) {
	doc := server.Document(uri)
	if doc == nil {
		return nil, nil
	}

	result, err := helpers.FormatDocument(server, doc)
	if errors.Is(err, css.ErrSyntax) {
		// incomplete input while typing; the editor's CSS support reports it
		log.Debug("no diagnostics for %s: %v", uri, err)
		return []protocol.Diagnostic{}, nil
	}
	if err != nil {
		return nil, err
	}

	diagnostics := []protocol.Diagnostic{}
	if result == nil {
		return diagnostics, nil
	}

	for _, w := range result.Warnings {
		if !w.HasPosition {
			continue
		}
		diagnostics = append(diagnostics, FromWarning(doc.Content(), w))
	}
	return diagnostics, nil
}

// FromWarning converts a sorter warning into an LSP diagnostic
func FromWarning(content string, w customprops.Warning) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityWarning
	source := Source
	code := protocol.IntegerOrString{Value: w.Kind.String()}
	return protocol.Diagnostic{
		Range:    helpers.WarningRange(content, w),
		Severity: &severity,
		Code:     &code,
		Source:   &source,
		Message:  w.Message,
	}
}
