package codeaction

import (
	"strings"
	"testing"

	"bennypowers.dev/cpsort/lsp/methods/textDocument/diagnostic"
	"bennypowers.dev/cpsort/lsp/testutil"
	"bennypowers.dev/cpsort/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const uri = "file:///workspace/a.css"

func codeActions(t *testing.T, server types.ServerContext, params *protocol.CodeActionParams) []protocol.CodeAction {
	t.Helper()
	params.TextDocument.URI = uri
	req := types.NewRequestContext(server, &glsp.Context{}, "textDocument/codeAction")
	result, err := CodeAction(req, params)
	require.NoError(t, err)
	if result == nil {
		return nil
	}
	actions, ok := result.([]protocol.CodeAction)
	require.True(t, ok)
	return actions
}

func serverWith(content string) *testutil.MockServerContext {
	server := testutil.NewMockServerContext()
	server.DocumentManager().DidOpen(uri, "css", 1, content)
	return server
}

func rng(line, start, end uint32) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: start},
		End:   protocol.Position{Line: line, Character: end},
	}
}

func TestCodeAction(t *testing.T) {
	t.Run("offers a sort action with a whole document edit", func(t *testing.T) {
		actions := codeActions(t, serverWith(testutil.UnsortedCSS), &protocol.CodeActionParams{})

		require.Len(t, actions, 1)
		action := actions[0]
		assert.Equal(t, Title, action.Title)
		require.NotNil(t, action.Kind)
		assert.Equal(t, KindSortCustomProperties, *action.Kind)
		require.NotNil(t, action.IsPreferred)
		assert.False(t, *action.IsPreferred)
		assert.Empty(t, action.Diagnostics)

		require.NotNil(t, action.Edit)
		edits := action.Edit.Changes[uri]
		require.Len(t, edits, 1)
		assert.Equal(t, testutil.SortedCSS, edits[0].NewText)
	})

	t.Run("attaches intersecting diagnostics of its own", func(t *testing.T) {
		source := diagnostic.Source
		other := "css"
		ours := protocol.Diagnostic{Range: rng(4, 2, 5), Source: &source, Message: "duplicate"}
		theirs := protocol.Diagnostic{Range: rng(4, 2, 5), Source: &other, Message: "unknown"}
		elsewhere := protocol.Diagnostic{Range: rng(1, 2, 7), Source: &source, Message: "far"}

		actions := codeActions(t, serverWith(testutil.UnsortedCSS), &protocol.CodeActionParams{
			Range: rng(4, 3, 3),
			Context: protocol.CodeActionContext{
				Diagnostics: []protocol.Diagnostic{ours, theirs, elsewhere},
			},
		})

		require.Len(t, actions, 1)
		assert.Equal(t, []protocol.Diagnostic{ours}, actions[0].Diagnostics)
		require.NotNil(t, actions[0].IsPreferred)
		assert.True(t, *actions[0].IsPreferred)
	})

	t.Run("nothing when already sorted", func(t *testing.T) {
		assert.Nil(t, codeActions(t, serverWith(testutil.SortedCSS), &protocol.CodeActionParams{}))
	})

	t.Run("nothing on syntax errors", func(t *testing.T) {
		assert.Nil(t, codeActions(t, serverWith(".a { --b: 1; --a: "), &protocol.CodeActionParams{}))
	})

	t.Run("nothing for unknown documents", func(t *testing.T) {
		assert.Nil(t, codeActions(t, testutil.NewMockServerContext(), &protocol.CodeActionParams{}))
	})
}

func TestCodeActionOnlyFilter(t *testing.T) {
	tests := []struct {
		only []protocol.CodeActionKind
		want bool
	}{
		{nil, true},
		{[]protocol.CodeActionKind{protocol.CodeActionKindSource}, true},
		{[]protocol.CodeActionKind{KindSortCustomProperties}, true},
		{[]protocol.CodeActionKind{protocol.CodeActionKindQuickFix, protocol.CodeActionKindSource}, true},
		{[]protocol.CodeActionKind{protocol.CodeActionKindQuickFix}, false},
		{[]protocol.CodeActionKind{protocol.CodeActionKindSourceOrganizeImports}, false},
		{[]protocol.CodeActionKind{"sour"}, false},
	}
	for _, tt := range tests {
		t.Run("["+strings.Join(tt.only, ",")+"]", func(t *testing.T) {
			actions := codeActions(t, serverWith(testutil.UnsortedCSS), &protocol.CodeActionParams{
				Context: protocol.CodeActionContext{Only: tt.only},
			})
			assert.Equal(t, tt.want, len(actions) == 1)
		})
	}
}
