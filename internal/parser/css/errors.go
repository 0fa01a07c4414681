package css

import (
	"errors"
	"fmt"
)

// ErrSyntax indicates the source could not be parsed without errors
var ErrSyntax = errors.New("css syntax error")

// SyntaxError reports the first erroneous node found in a source
type SyntaxError struct {
	Position Position
	Snippet  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("css syntax error at %d:%d near %q\nSuggestion: Fix the stylesheet before sorting custom properties",
		e.Position.Line+1, e.Position.Character+1, e.Snippet)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// NewSyntaxError creates a new syntax error
func NewSyntaxError(pos Position, snippet string) error {
	return &SyntaxError{Position: pos, Snippet: snippet}
}
