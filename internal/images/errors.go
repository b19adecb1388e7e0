package images

import "errors"

var (
	// ErrMalformedDocument indicates a database row or document violated the
	// expected shape (missing fileName, broken row pairing, missing value).
	ErrMalformedDocument = errors.New("malformed document")

	// ErrMissingPart indicates a required multipart upload part is absent.
	ErrMissingPart = errors.New("missing upload part")

	// ErrInvalidEncoding indicates the JSON upload part could not be decoded.
	ErrInvalidEncoding = errors.New("invalid part encoding")

	// ErrUnsupportedBody indicates the request carried no parseable multipart body.
	ErrUnsupportedBody = errors.New("unsupported request body")

	// ErrStorage indicates the object store refused the binary.
	ErrStorage = errors.New("storage failure")

	// ErrNotFound indicates no image matched.
	ErrNotFound = errors.New("image not found")

	// ErrInvalidInput indicates the client-submitted JSON is unusable.
	ErrInvalidInput = errors.New("invalid input")
)
