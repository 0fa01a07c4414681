// Package position converts between the byte offsets used by the parsers and
// the UTF-16 line/character positions used by LSP clients.
package position

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Line returns the 0-indexed line of content without its line terminator
func Line(content string, line int) (string, bool) {
	if line < 0 {
		return "", false
	}
	for i := 0; i < line; i++ {
		nl := strings.IndexByte(content, '\n')
		if nl == -1 {
			return "", false
		}
		content = content[nl+1:]
	}
	if nl := strings.IndexByte(content, '\n'); nl != -1 {
		content = content[:nl]
	}
	return strings.TrimSuffix(content, "\r"), true
}

// ByteColumn converts a UTF-16 column on a line to a byte column.
// A column inside a surrogate pair is clamped to the start of the character.
func ByteColumn(line string, utf16Col int) int {
	units, offset := 0, 0
	for offset < len(line) && units < utf16Col {
		r, size := utf8.DecodeRuneInString(line[offset:])
		n := 1
		if r != utf8.RuneError || size != 1 {
			n = utf16.RuneLen(r)
		}
		if units+n > utf16Col {
			break
		}
		units += n
		offset += size
	}
	return offset
}

// UTF16Column converts a byte column on a line to a UTF-16 column
func UTF16Column(line string, byteCol int) uint32 {
	if byteCol > len(line) {
		byteCol = len(line)
	}
	units := 0
	for offset := 0; offset < byteCol; {
		r, size := utf8.DecodeRuneInString(line[offset:])
		if offset+size > byteCol {
			break
		}
		if r == utf8.RuneError && size == 1 {
			units++
		} else {
			units += utf16.RuneLen(r)
		}
		offset += size
	}
	return clamp(units)
}

// Length returns the length of s in UTF-16 code units
func Length(s string) uint32 {
	units := 0
	for _, r := range s {
		units += utf16.RuneLen(r)
	}
	return clamp(units)
}

// Offset converts an LSP line and UTF-16 character to a byte offset in content.
// A position one line past the end addresses the end of the document.
func Offset(content string, line, character uint32) (int, error) {
	start := 0
	for i := uint32(0); i < line; i++ {
		nl := strings.IndexByte(content[start:], '\n')
		if nl == -1 {
			if i+1 == line && character == 0 {
				return len(content), nil
			}
			return 0, fmt.Errorf("line %d out of bounds", line)
		}
		start += nl + 1
	}

	text := content[start:]
	if nl := strings.IndexByte(text, '\n'); nl != -1 {
		text = text[:nl]
	}
	if character > Length(text) {
		return 0, fmt.Errorf("character %d out of bounds for line %d", character, line)
	}
	return start + ByteColumn(text, int(character)), nil
}

// End returns the LSP position just past the last character of content
func End(content string) (line, character uint32) {
	lines := strings.Count(content, "\n")
	last := content[strings.LastIndexByte(content, '\n')+1:]
	return clamp(lines), Length(last)
}

func clamp(n int) uint32 {
	if n < 0 {
		return 0
	}
	if n > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(n)
}
