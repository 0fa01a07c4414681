package js

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"bennypowers.dev/cpsort/internal/log"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// Parser finds css tagged template literals in JS/TS
type Parser struct {
	parser        *sitter.Parser
	templateQuery *sitter.Query
	genericQuery  *sitter.Query // matches css<Type>`...` (generic form parsed by JS grammar as binary_expression)
}

var jsLang = sitter.NewLanguage(tree_sitter_javascript.Language())

// parserPool is a pool of reusable JS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(jsLang); err != nil {
			panic(fmt.Sprintf("failed to set JS language: %v", err))
		}

		templateQuery, qerr := sitter.NewQuery(jsLang, `
			(call_expression
				function: (identifier) @tag
				arguments: (template_string) @template)
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile template query: %v", qerr))
		}

		// css<Type>`...` is valid TypeScript, but the JS grammar reads it as
		// (css < Type) > `...`
		genericQuery, qerr := sitter.NewQuery(jsLang, `
			(binary_expression
				left: (binary_expression
					left: (identifier) @tag)
				right: (template_string) @template)
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile generic query: %v", qerr))
		}

		return &Parser{
			parser:        parser,
			templateQuery: templateQuery,
			genericQuery:  genericQuery,
		}
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
	if p.templateQuery != nil {
		p.templateQuery.Close()
	}
	if p.genericQuery != nil {
		p.genericQuery.Close()
	}
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// CSSTemplates finds css`...` and css<Type>`...` literals, ordered by position.
// Templates with ${...} substitutions are skipped: moving declarations across
// an interpolation could change what the interpolation produces.
func (p *Parser) CSSTemplates(source string) []Template {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	var templates []Template
	for _, query := range []*sitter.Query{p.templateQuery, p.genericQuery} {
		templates = runTemplateQuery(query, root, sourceBytes, templates)
	}

	slices.SortFunc(templates, func(a, b Template) int {
		return cmp.Compare(a.StartByte, b.StartByte)
	})
	return templates
}

func runTemplateQuery(query *sitter.Query, root *sitter.Node, sourceBytes []byte, templates []Template) []Template {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Matches(query, root, sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		var tagName string
		var templateNode *sitter.Node

		for _, capture := range match.Captures {
			switch query.CaptureNames()[capture.Index] {
			case "tag":
				tagName = capture.Node.Utf8Text(sourceBytes)
			case "template":
				node := capture.Node
				templateNode = &node
			}
		}

		if tagName != "css" || templateNode == nil {
			continue
		}

		if hasSubstitution(templateNode) {
			log.Debug("skipping css template with substitutions at %d:%d",
				templateNode.StartPosition().Row+1, templateNode.StartPosition().Column+1)
			continue
		}

		// strip the backticks
		start, end := templateNode.StartByte()+1, templateNode.EndByte()-1
		if end <= start {
			continue
		}
		pos := templateNode.StartPosition()
		templates = append(templates, Template{
			Content:   string(sourceBytes[start:end]),
			StartByte: start,
			EndByte:   end,
			StartLine: pos.Row,
			StartCol:  pos.Column + 1,
		})
	}

	return templates
}

func hasSubstitution(templateNode *sitter.Node) bool {
	for i := uint(0); i < templateNode.ChildCount(); i++ {
		if templateNode.Child(i).Kind() == "template_substitution" {
			return true
		}
	}
	return false
}
