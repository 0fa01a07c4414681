package lifecycle

import (
	"bennypowers.dev/cpsort/internal/log"
	"bennypowers.dev/cpsort/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SetTrace handles the $/setTrace notification
func SetTrace(req *types.RequestContext, params *protocol.SetTraceParams) error {
	log.Debug("Trace level set to: %s", params.Value)
	protocol.SetTraceValue(params.Value)
	return nil
}
