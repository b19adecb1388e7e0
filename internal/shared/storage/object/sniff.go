package object

import "net/http"

// sniffContentType detects the MIME type from the first 512 bytes.
func sniffContentType(binary []byte) string {
	sample := binary
	if len(sample) > 512 {
		sample = sample[:512]
	}
	return http.DetectContentType(sample)
}
