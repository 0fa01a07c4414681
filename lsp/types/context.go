package types

import (
	"bennypowers.dev/cpsort/internal/config"
	"bennypowers.dev/cpsort/internal/customprops"
	"bennypowers.dev/cpsort/internal/documents"
	"github.com/tliron/glsp"
)

// ServerContext provides the dependencies of LSP handlers, so handlers can be
// tested against a mock server.
type ServerContext interface {
	// Document operations
	Document(uri string) *documents.Document
	DocumentManager() *documents.Manager

	// Workspace operations
	RootURI() string
	RootPath() string
	SetRootURI(uri string)
	SetRootPath(path string)

	// Configuration. SetConfig rebuilds the sorter and returns its option warnings.
	Config() *config.Config
	SetConfig(cfg *config.Config) []customprops.Warning
	Sorter() *customprops.Sorter

	// LSP context (for publishing diagnostics, etc.)
	GLSPContext() *glsp.Context
	SetGLSPContext(ctx *glsp.Context)

	// Diagnostics publishing
	PublishDiagnostics(context *glsp.Context, uri string) error
}
