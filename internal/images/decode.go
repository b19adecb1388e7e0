package images

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"unicode/utf8"
)

const (
	jsonPartName   = "imageJson"
	binaryPartName = "imageBinary"
)

// DecodeUpload extracts the JSON part and the binary part from a multipart
// upload request. Parts other than imageJson and imageBinary are ignored.
// The decode has no side effects beyond consuming the request body.
func DecodeUpload(r *http.Request) (map[string]any, []byte, error) {
	if r.Body == nil {
		return nil, nil, ErrUnsupportedBody
	}

	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return nil, nil, ErrUnsupportedBody
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil, nil, ErrUnsupportedBody
	}

	reader := multipart.NewReader(r.Body, boundary)

	var (
		jsonDoc   map[string]any
		binary    []byte
		sawJSON   bool
		sawBinary bool
	)

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedBody, err)
		}

		switch part.FormName() {
		case jsonPartName:
			data, err := io.ReadAll(part)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedBody, err)
			}
			if !utf8.Valid(data) {
				return nil, nil, fmt.Errorf("%w: imageJson is not valid text", ErrInvalidEncoding)
			}
			if err := json.Unmarshal(data, &jsonDoc); err != nil {
				return nil, nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
			}
			sawJSON = true
		case binaryPartName:
			data, err := io.ReadAll(part)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedBody, err)
			}
			binary = data
			sawBinary = true
		}
		_ = part.Close()
	}

	if !sawJSON {
		return nil, nil, fmt.Errorf("%w: %s", ErrMissingPart, jsonPartName)
	}
	if !sawBinary {
		return nil, nil, fmt.Errorf("%w: %s", ErrMissingPart, binaryPartName)
	}
	return jsonDoc, binary, nil
}
