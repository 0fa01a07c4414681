package documents

import (
	"fmt"

	"bennypowers.dev/cpsort/internal/format"
	"bennypowers.dev/cpsort/internal/uriutil"
)

// Document is an open text document
type Document struct {
	uri        string
	languageID string
	content    string
	version    int32
}

// NewDocument creates a new document
func NewDocument(uri, languageID string, version int32, content string) *Document {
	return &Document{
		uri:        uri,
		languageID: languageID,
		version:    version,
		content:    content,
	}
}

// URI returns the document's URI
func (d *Document) URI() string {
	return d.uri
}

// LanguageID returns the client's language identifier for the document
func (d *Document) LanguageID() string {
	return d.languageID
}

// Language resolves the document language from its language id, then its file extension
func (d *Document) Language() format.Language {
	if lang := format.LanguageFromID(d.languageID); lang != format.Unknown {
		return lang
	}
	return format.LanguageFromPath(uriutil.URIToPath(d.uri))
}

// Version returns the document's version
func (d *Document) Version() int32 {
	return d.version
}

// Content returns the document's current content
func (d *Document) Content() string {
	return d.content
}

// setContent rejects versions older than the current one
func (d *Document) setContent(content string, version int32) error {
	if version < d.version {
		return fmt.Errorf("rejected stale update: document version is %d but update version is %d", d.version, version)
	}
	d.content = content
	d.version = version
	return nil
}
