package vision

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
)

// ImageData is a decoded image payload ready for upload or model calls.
type ImageData struct {
	MIMEType string // e.g. "image/png"
	Ext      string // e.g. "png"
	Bytes    []byte
}

var extPattern = regexp.MustCompile(`^data:image/([a-zA-Z0-9]+);`)

// ErrInvalidImagePayload marks payloads that are not base64 image data URLs.
var ErrInvalidImagePayload = errors.New("invalid image payload")

// ParseDataURL decodes a "data:image/<ext>;base64,<payload>" string. Payloads
// without the image data-URL prefix are rejected; an unrecognizable subtype
// falls back to jpeg, matching how uploads were handled historically.
func ParseDataURL(s string) (*ImageData, error) {
	if s == "" || !strings.HasPrefix(s, "data:image/") {
		return nil, ErrInvalidImagePayload
	}

	ext := "jpeg"
	if m := extPattern.FindStringSubmatch(s); m != nil {
		ext = m[1]
	}

	_, b64, found := strings.Cut(s, ",")
	if !found {
		return nil, ErrInvalidImagePayload
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, ErrInvalidImagePayload
	}

	return &ImageData{
		MIMEType: "image/" + ext,
		Ext:      ext,
		Bytes:    raw,
	}, nil
}
