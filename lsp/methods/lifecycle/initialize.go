package lifecycle

import (
	"bennypowers.dev/cpsort/internal/config"
	"bennypowers.dev/cpsort/internal/log"
	"bennypowers.dev/cpsort/internal/uriutil"
	"bennypowers.dev/cpsort/internal/version"
	codeaction "bennypowers.dev/cpsort/lsp/methods/textDocument/codeAction"
	"bennypowers.dev/cpsort/lsp/methods/workspace"
	"bennypowers.dev/cpsort/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ServerName is reported to clients in the initialize result
const ServerName = "cpsort"

// Initialize handles the LSP initialize request
func Initialize(req *types.RequestContext, params *protocol.InitializeParams) (any, error) {
	clientName := "unknown"
	if params.ClientInfo != nil {
		clientName = params.ClientInfo.Name
	}
	log.Info("Initializing for client: %s", clientName)

	if params.RootURI != nil {
		req.Server.SetRootURI(*params.RootURI)
		req.Server.SetRootPath(uriutil.URIToPath(*params.RootURI))
	} else if params.RootPath != nil {
		req.Server.SetRootPath(*params.RootPath)
		req.Server.SetRootURI(uriutil.PathToURI(*params.RootPath))
	}
	if root := req.Server.RootPath(); root != "" {
		log.Info("Workspace root: %s", root)
	}

	if options := initializationOptions(params.InitializationOptions); options != nil {
		cfg, err := config.FromSettings(options)
		if err != nil {
			req.AddWarning(err.Error())
		} else {
			workspace.Apply(req, cfg)
		}
	}

	syncKind := protocol.TextDocumentSyncKindFull
	return protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: boolPtr(true),
				Change:    &syncKind,
			},
			DocumentFormattingProvider: true,
			CodeActionProvider: protocol.CodeActionOptions{
				CodeActionKinds: []protocol.CodeActionKind{codeaction.KindSortCustomProperties},
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ServerName,
			Version: strPtr(version.GetVersion()),
		},
	}, nil
}

// initializationOptions accepts either the customPropSorting section or the
// bare options object
func initializationOptions(raw any) map[string]any {
	options, ok := raw.(map[string]any)
	if !ok || len(options) == 0 {
		return nil
	}
	if section, ok := options[config.PackageJSONKey].(map[string]any); ok {
		return section
	}
	return options
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}
