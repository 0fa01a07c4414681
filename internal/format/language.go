package format

import (
	"path/filepath"
	"strings"
)

// Language is a document language that can carry CSS
type Language int

const (
	// Unknown is the zero value
	Unknown Language = iota
	// CSS is a plain stylesheet
	CSS
	// HTML documents carry CSS in <style> elements
	HTML
	// JS covers JavaScript, TypeScript and their JSX forms, which carry CSS in css`` templates
	JS
)

func (l Language) String() string {
	switch l {
	case CSS:
		return "css"
	case HTML:
		return "html"
	case JS:
		return "js"
	}
	return "unknown"
}

var extensions = map[string]Language{
	".css":  CSS,
	".html": HTML,
	".htm":  HTML,
	".js":   JS,
	".mjs":  JS,
	".cjs":  JS,
	".jsx":  JS,
	".ts":   JS,
	".mts":  JS,
	".cts":  JS,
	".tsx":  JS,
}

var languageIDs = map[string]Language{
	"css":             CSS,
	"html":            HTML,
	"javascript":      JS,
	"javascriptreact": JS,
	"typescript":      JS,
	"typescriptreact": JS,
}

// LanguageFromPath picks a language by file extension
func LanguageFromPath(path string) Language {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// LanguageFromID maps an LSP language identifier to a Language
func LanguageFromID(languageID string) Language {
	return languageIDs[languageID]
}
