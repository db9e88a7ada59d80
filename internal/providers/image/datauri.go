package image

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidDataURI is returned for malformed data: URIs
var ErrInvalidDataURI = errors.New("invalid data URI")

// IsDataURI reports whether src is a data: URI
func IsDataURI(src string) bool {
	return len(src) >= 5 && strings.EqualFold(src[:5], "data:")
}

// EncodeDataURI returns data as a base64 data URI of the given media type
func EncodeDataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI splits a data URI into its media type and payload
func DecodeDataURI(src string) (string, []byte, error) {
	if !IsDataURI(src) {
		return "", nil, ErrInvalidDataURI
	}

	header, payload, ok := strings.Cut(src[5:], ",")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}

	params := strings.Split(header, ";")
	mediaType := params[0]
	if mediaType == "" {
		mediaType = "text/plain"
	}

	if params[len(params)-1] == "base64" {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, errors.Join(ErrInvalidDataURI, err)
		}
		return mediaType, data, nil
	}

	text, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, errors.Join(ErrInvalidDataURI, err)
	}
	return mediaType, []byte(text), nil
}
