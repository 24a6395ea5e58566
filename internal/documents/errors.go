package documents

import "errors"

var (
	// ErrInvalidRange is returned when a replacement range does not fit the
	// current text.
	ErrInvalidRange = errors.New("invalid range")
	// ErrNotFound is returned for operations on a document that is not open.
	ErrNotFound = errors.New("document not found")
	// ErrStaleVersion is returned when an update or command targets an older
	// version of the document.
	ErrStaleVersion = errors.New("stale document version")
)
