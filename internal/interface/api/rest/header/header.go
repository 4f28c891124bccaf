package header

import (
	"mime"
	"net/http"
)

// IsApplicationJSONContentType reports whether the request declares a
// JSON body.
func IsApplicationJSONContentType(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
