// Package uriutil converts between file system paths and file:// URIs.
package uriutil

import (
	"net/url"
	"path/filepath"
	"strings"
)

// PathToURI converts a file system path to a file:// URI. Relative paths
// are made absolute first; path segments are percent-encoded.
func PathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	p := filepath.ToSlash(path)
	// C:/proj -> /C:/proj
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}

// URIToPath converts a file:// URI to a file system path. Anything that is
// not a file URI is returned with a leading "file://" stripped, so callers
// can still use it as a map key.
func URIToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return filepath.FromSlash(strings.TrimPrefix(uri, "file://"))
	}
	p := u.Path
	if u.Host != "" && u.Host != "localhost" {
		p = "//" + u.Host + p
	}
	// /C:/proj -> C:/proj
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p)
}

// IsFile reports whether uri uses the file scheme.
func IsFile(uri string) bool {
	u, err := url.Parse(uri)
	return err == nil && u.Scheme == "file"
}
