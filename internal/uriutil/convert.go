// Package uriutil converts between file paths and file:// URIs
package uriutil

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

// PathToURI converts a file system path to a file:// URI with
// percent-encoded segments. Relative paths are made absolute first.
//
//	/home/user/a b.css -> file:///home/user/a%20b.css
//	C:\proj\a.css      -> file:///C:/proj/a.css
//	\\server\share\x   -> file://server/share/x
func PathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	if runtime.GOOS == "windows" && strings.HasPrefix(path, `\\`) {
		return "file://" + escapeSegments(filepath.ToSlash(strings.TrimPrefix(path, `\\`)))
	}

	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "file://" + escapeSegments(path)
}

func escapeSegments(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

// URIToPath converts a file:// URI to a file system path.
// Strings that are not file URIs are treated leniently as paths.
func URIToPath(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "file" {
		path := strings.TrimPrefix(uri, "file://")
		return filepath.FromSlash(trimDriveSlash(path))
	}

	if parsed.Host != "" && parsed.Host != "localhost" {
		if runtime.GOOS == "windows" {
			return `\\` + parsed.Host + filepath.FromSlash(parsed.Path)
		}
		return parsed.Host + parsed.Path
	}

	// url.Parse already percent-decodes Path
	return filepath.FromSlash(trimDriveSlash(parsed.Path))
}

// trimDriveSlash turns /C:/proj into C:/proj
func trimDriveSlash(path string) string {
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		return path[1:]
	}
	return path
}
