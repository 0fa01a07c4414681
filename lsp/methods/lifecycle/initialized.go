package lifecycle

import (
	"bennypowers.dev/cpsort/internal/config"
	"bennypowers.dev/cpsort/internal/log"
	"bennypowers.dev/cpsort/lsp/methods/workspace"
	"bennypowers.dev/cpsort/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialized handles the LSP initialized notification.
// A configuration file in the workspace root takes precedence over
// initialization options.
func Initialized(req *types.RequestContext, params *protocol.InitializedParams) error {
	log.Info("Server initialized")

	req.Server.SetGLSPContext(req.GLSP)

	root := req.Server.RootPath()
	if root == "" {
		return nil
	}

	cfg, err := config.Discover(root)
	if err != nil {
		// Don't fail initialization over a broken config file
		req.AddWarning(err.Error())
		return nil
	}
	if cfg.Path == "" {
		return nil
	}
	log.Info("Loaded configuration from %s", cfg.Path)
	workspace.Apply(req, cfg)
	return nil
}
