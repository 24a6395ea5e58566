package html

import "bennypowers.dev/svls/internal/patterns"

// RegionType identifies the kind of CSS region found in HTML
type RegionType int

const (
	// UnknownRegion is the zero value, indicating an uninitialized region type
	UnknownRegion RegionType = iota
	// StyleTag represents CSS inside a <style> element
	StyleTag
	// StyleAttribute represents a declaration list inside a style="..." attribute
	StyleAttribute
)

// CSSRegion represents a region of CSS content found in an HTML document
type CSSRegion struct {
	Content string
	// Start is the byte offset of Content in the HTML source.
	Start int
	Type  RegionType
}

// Span returns the region's byte range in the HTML source.
func (r CSSRegion) Span() patterns.Span {
	return patterns.Span{Start: r.Start, End: r.Start + len(r.Content)}
}
