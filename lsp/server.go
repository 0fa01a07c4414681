package lsp

import (
	"fmt"
	"sync"

	"bennypowers.dev/cpsort/internal/config"
	"bennypowers.dev/cpsort/internal/customprops"
	"bennypowers.dev/cpsort/internal/documents"
	"bennypowers.dev/cpsort/internal/log"
	"bennypowers.dev/cpsort/internal/parser/css"
	"bennypowers.dev/cpsort/internal/parser/html"
	"bennypowers.dev/cpsort/internal/parser/js"
	"bennypowers.dev/cpsort/lsp/methods/lifecycle"
	"bennypowers.dev/cpsort/lsp/methods/textDocument"
	codeaction "bennypowers.dev/cpsort/lsp/methods/textDocument/codeAction"
	"bennypowers.dev/cpsort/lsp/methods/textDocument/diagnostic"
	"bennypowers.dev/cpsort/lsp/methods/textDocument/formatting"
	"bennypowers.dev/cpsort/lsp/methods/workspace"
	"bennypowers.dev/cpsort/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

// Verify that Server implements ServerContext interface
var _ types.ServerContext = (*Server)(nil)

// Server is the custom property sorting language server
type Server struct {
	documents  *documents.Manager
	glspServer *server.Server

	mu       sync.RWMutex // Protects the fields below
	context  *glsp.Context
	rootURI  string
	rootPath string
	config   *config.Config
	sorter   *customprops.Sorter
}

// NewServer creates a language server with the default configuration
func NewServer() (*Server, error) {
	s := &Server{documents: documents.NewManager()}
	s.SetConfig(config.Default())

	handler := protocol.Handler{
		Initialize:                      method(s, "initialize", lifecycle.Initialize),
		Initialized:                     notify(s, "initialized", lifecycle.Initialized),
		Shutdown:                        noParam(s, "shutdown", lifecycle.Shutdown),
		SetTrace:                        notify(s, "$/setTrace", lifecycle.SetTrace),
		WorkspaceDidChangeConfiguration: notify(s, "workspace/didChangeConfiguration", workspace.DidChangeConfiguration),
		TextDocumentDidOpen:             notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange:           notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidClose:            notify(s, "textDocument/didClose", textDocument.DidClose),
		TextDocumentFormatting:          method(s, "textDocument/formatting", formatting.Formatting),
		TextDocumentCodeAction:          method(s, "textDocument/codeAction", codeaction.CodeAction),
	}

	s.glspServer = server.NewServer(&handler, lifecycle.ServerName, false)
	return s, nil
}

// RunStdio starts the LSP server using stdio transport
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

// Close releases the parser pools. It is safe to call Close multiple times.
func (s *Server) Close() error {
	css.ClosePool()
	html.ClosePool()
	js.ClosePool()
	return nil
}

// Document returns the document with the given URI
func (s *Server) Document(uri string) *documents.Document {
	return s.documents.Get(uri)
}

// DocumentManager returns the document manager
func (s *Server) DocumentManager() *documents.Manager {
	return s.documents
}

// RootURI returns the workspace root URI
func (s *Server) RootURI() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rootURI
}

// RootPath returns the workspace root path
func (s *Server) RootPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rootPath
}

// SetRootURI sets the workspace root URI
func (s *Server) SetRootURI(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rootURI = uri
}

// SetRootPath sets the workspace root path
func (s *Server) SetRootPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rootPath = path
}

// Config returns the active configuration
func (s *Server) Config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SetConfig installs cfg and rebuilds the sorter from it
func (s *Server) SetConfig(cfg *config.Config) []customprops.Warning {
	sorter, warnings := cfg.Sorter()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	s.sorter = sorter
	return warnings
}

// Sorter returns the sorter built from the active configuration
func (s *Server) Sorter() *customprops.Sorter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorter
}

// GLSPContext returns the client context stored at initialization
func (s *Server) GLSPContext() *glsp.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.context
}

// SetGLSPContext stores the client context
func (s *Server) SetGLSPContext(ctx *glsp.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.context = ctx
}

// PublishDiagnostics pushes the diagnostics of a document to the client.
// context falls back to the one stored at initialization.
func (s *Server) PublishDiagnostics(context *glsp.Context, uri string) error {
	if context == nil || context.Notify == nil {
		context = s.GLSPContext()
	}
	if context == nil || context.Notify == nil {
		return fmt.Errorf("cannot publish diagnostics: no client context available")
	}

	diagnostics, err := diagnostic.GetDiagnostics(s, uri)
	if err != nil {
		return err
	}

	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	params := protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	}
	if doc := s.Document(uri); doc != nil && doc.Version() >= 0 {
		version := protocol.UInteger(doc.Version())
		params.Version = &version
	}

	log.Debug("Publishing %d diagnostics for %s", len(diagnostics), uri)
	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, params)
	return nil
}
