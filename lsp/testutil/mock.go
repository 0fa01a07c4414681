package testutil

import (
	"bennypowers.dev/cpsort/internal/config"
	"bennypowers.dev/cpsort/internal/customprops"
	"bennypowers.dev/cpsort/internal/documents"
	"bennypowers.dev/cpsort/lsp/types"
	"github.com/tliron/glsp"
)

var _ types.ServerContext = (*MockServerContext)(nil)

// MockServerContext implements types.ServerContext for testing
type MockServerContext struct {
	docs        *documents.Manager
	rootURI     string
	rootPath    string
	config      *config.Config
	sorter      *customprops.Sorter
	glspContext *glsp.Context

	// PublishDiagnosticsFunc overrides PublishDiagnostics when set
	PublishDiagnosticsFunc func(*glsp.Context, string) error

	// PublishedURIs records every URI passed to PublishDiagnostics
	PublishedURIs []string
}

// NewMockServerContext creates a mock with the default configuration
func NewMockServerContext() *MockServerContext {
	m := &MockServerContext{docs: documents.NewManager()}
	m.SetConfig(config.Default())
	return m
}

func (m *MockServerContext) Document(uri string) *documents.Document {
	return m.docs.Get(uri)
}

func (m *MockServerContext) DocumentManager() *documents.Manager {
	return m.docs
}

func (m *MockServerContext) RootURI() string {
	return m.rootURI
}

func (m *MockServerContext) RootPath() string {
	return m.rootPath
}

func (m *MockServerContext) SetRootURI(uri string) {
	m.rootURI = uri
}

func (m *MockServerContext) SetRootPath(path string) {
	m.rootPath = path
}

func (m *MockServerContext) Config() *config.Config {
	return m.config
}

func (m *MockServerContext) SetConfig(cfg *config.Config) []customprops.Warning {
	var warnings []customprops.Warning
	m.config = cfg
	m.sorter, warnings = cfg.Sorter()
	return warnings
}

func (m *MockServerContext) Sorter() *customprops.Sorter {
	return m.sorter
}

func (m *MockServerContext) GLSPContext() *glsp.Context {
	return m.glspContext
}

func (m *MockServerContext) SetGLSPContext(ctx *glsp.Context) {
	m.glspContext = ctx
}

func (m *MockServerContext) PublishDiagnostics(ctx *glsp.Context, uri string) error {
	m.PublishedURIs = append(m.PublishedURIs, uri)
	if m.PublishDiagnosticsFunc != nil {
		return m.PublishDiagnosticsFunc(ctx, uri)
	}
	return nil
}
