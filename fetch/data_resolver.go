package fetch

import (
	"bytes"
	"encoding/base64"
	"io"
	"net/url"
	"strings"
)

// defaultDataMediaType is used when a data: URI announces no media type,
// per RFC 2397.
const defaultDataMediaType = "text/plain;charset=US-ASCII"

// ResolveData decodes an inline "data:[<mime>][;base64],<payload>" URI
// into a synthetic response. Parsing happens directly over the raw URI
// string rather than through a generic URL parser, since the payload is
// not a legal authority/path. There is no retry: a malformed URI fails
// immediately.
func ResolveData(uri string) (*Response, error) {
	rest := strings.TrimPrefix(uri, "data:")
	if rest == uri {
		return nil, &Error{Kind: DataUriMalformed, URI: uri}
	}
	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return nil, &Error{Kind: DataUriMalformed, URI: uri}
	}
	meta, payload := rest[:comma], rest[comma+1:]

	mediaType, isBase64 := parseDataMeta(meta)

	var decoded []byte
	if isBase64 {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, &Error{Kind: DataUriMalformed, URI: uri, Cause: err}
		}
		decoded = b
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, &Error{Kind: DataUriMalformed, URI: uri, Cause: err}
		}
		decoded = []byte(s)
	}

	header := map[string][]string{"Content-Type": {mediaType}}
	return syntheticResponse(io.NopCloser(bytes.NewReader(decoded)), header), nil
}

// parseDataMeta splits the portion of a data: URI before the comma into
// its announced media type and whether a base64 marker was present.
func parseDataMeta(meta string) (mediaType string, isBase64 bool) {
	if meta == "" {
		return defaultDataMediaType, false
	}
	var kept []string
	for _, part := range strings.Split(meta, ";") {
		if part == "base64" {
			isBase64 = true
			continue
		}
		kept = append(kept, part)
	}
	joined := strings.Join(kept, ";")
	if joined == "" {
		return defaultDataMediaType, isBase64
	}
	return joined, isBase64
}
