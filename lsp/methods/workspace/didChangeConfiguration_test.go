package workspace

import (
	"testing"

	"bennypowers.dev/cpsort/internal/config"
	"bennypowers.dev/cpsort/internal/log"
	"bennypowers.dev/cpsort/lsp/testutil"
	"bennypowers.dev/cpsort/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func didChangeConfiguration(t *testing.T, server types.ServerContext, settings any) *types.RequestContext {
	t.Helper()
	req := types.NewRequestContext(server, &glsp.Context{}, "workspace/didChangeConfiguration")
	require.NoError(t, DidChangeConfiguration(req, &protocol.DidChangeConfigurationParams{Settings: settings}))
	return req
}

func TestDidChangeConfiguration(t *testing.T) {
	level := log.GetLevel()
	t.Cleanup(func() { log.SetLevel(level) })

	t.Run("applies settings and republishes open documents", func(t *testing.T) {
		server := testutil.NewMockServerContext()
		server.DocumentManager().DidOpen("file:///b.css", "css", 1, "")
		server.DocumentManager().DidOpen("file:///a.css", "css", 1, "")

		req := didChangeConfiguration(t, server, map[string]any{
			"customPropSorting": map[string]any{
				"sortBy":   "value",
				"exclude":  []any{"dist/**"},
				"logLevel": "debug",
			},
		})

		assert.Empty(t, req.Warnings())
		assert.Equal(t, "value", server.Config().SortBy)
		assert.Equal(t, []string{"dist/**"}, server.Config().Exclude)
		assert.False(t, server.Sorter().Order().IsDefault())
		assert.Equal(t, log.LevelDebug, log.GetLevel())
		assert.Equal(t, []string{"file:///a.css", "file:///b.css"}, server.PublishedURIs)
	})

	t.Run("ignores settings for other tools", func(t *testing.T) {
		server := testutil.NewMockServerContext()
		before := server.Config()

		req := didChangeConfiguration(t, server, map[string]any{"css": map[string]any{"validate": true}})

		assert.Same(t, before, server.Config())
		assert.Empty(t, req.Warnings())
		assert.Empty(t, server.PublishedURIs)
	})

	t.Run("ignores nil settings", func(t *testing.T) {
		server := testutil.NewMockServerContext()
		before := server.Config()

		didChangeConfiguration(t, server, nil)
		assert.Same(t, before, server.Config())
	})

	tests := []struct {
		name     string
		settings any
		contains string
	}{
		{"non-object settings", "sortBy=value", "not an object"},
		{"non-object section", map[string]any{"customPropSorting": true}, "must be an object"},
		{"bad glob", map[string]any{"customPropSorting": map[string]any{"include": []any{"[x"}}}, "[x"},
		{"bad log level", map[string]any{"customPropSorting": map[string]any{"logLevel": "loud"}}, "logLevel"},
	}
	for _, tt := range tests {
		t.Run("warns about "+tt.name, func(t *testing.T) {
			server := testutil.NewMockServerContext()
			before := server.Config()

			req := didChangeConfiguration(t, server, tt.settings)

			assert.Same(t, before, server.Config())
			require.Len(t, req.Warnings(), 1)
			assert.Contains(t, req.Warnings()[0], tt.contains)
		})
	}
}

func TestApply(t *testing.T) {
	server := testutil.NewMockServerContext()
	req := types.NewRequestContext(server, nil, "test")

	Apply(req, &config.Config{SortBy: "nonsense"})

	assert.Equal(t, "nonsense", server.Config().SortBy)
	assert.True(t, server.Sorter().Order().IsDefault())
	require.Len(t, req.Warnings(), 1)
}
