package workspace

import (
	"fmt"

	"bennypowers.dev/cpsort/internal/config"
	"bennypowers.dev/cpsort/internal/log"
	"bennypowers.dev/cpsort/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeConfiguration handles the workspace/didChangeConfiguration
// notification. Settings live under the customPropSorting section; without
// it the server keeps its current configuration.
func DidChangeConfiguration(req *types.RequestContext, params *protocol.DidChangeConfigurationParams) error {
	log.Info("Configuration changed")

	settings, err := section(params.Settings)
	if err != nil {
		req.AddWarning(err.Error())
		return nil
	}
	if settings == nil {
		return nil
	}

	cfg, err := config.FromSettings(settings)
	if err != nil {
		req.AddWarning(err.Error())
		return nil
	}
	Apply(req, cfg)

	for _, uri := range req.Server.DocumentManager().URIs() {
		if err := req.Server.PublishDiagnostics(req.GLSP, uri); err != nil {
			req.AddWarning(fmt.Sprintf("failed to publish diagnostics for %s: %v", uri, err))
		}
	}
	return nil
}

// Apply installs cfg on the server, adjusting the log level and reporting
// sort order warnings
func Apply(req *types.RequestContext, cfg *config.Config) {
	if cfg.LogLevel != "" {
		if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
			log.SetLevel(level)
		}
	}
	for _, w := range req.Server.SetConfig(cfg) {
		req.AddWarning(w.Message)
	}
}

func section(settings any) (map[string]any, error) {
	if settings == nil {
		return nil, nil
	}
	all, ok := settings.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("settings is not an object")
	}
	raw, ok := all[config.PackageJSONKey]
	if !ok {
		return nil, nil
	}
	ours, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s settings must be an object", config.PackageJSONKey)
	}
	return ours, nil
}
