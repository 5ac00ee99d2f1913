package fetch

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
)

// ResolveFile loads uri through cfg's lookup chain and wraps the result
// in a synthetic response. Content-Length always carries the loaded byte
// count; Content-Type is set to a probed media type only if cfg.Locate
// resolves a concrete filesystem path — see DESIGN.md for the source's
// inverted naming (a MIME probe under the Content-Length key) that this
// corrects rather than reproduces. Failures from cfg surface unchanged,
// wrapped as ConfigFileLoadFailed.
func ResolveFile(cfg Configuration, uri string) (*Response, error) {
	data, err := cfg.Load(uri)
	if err != nil {
		return nil, &Error{Kind: ConfigFileLoadFailed, URI: uri, Cause: err}
	}

	header := map[string][]string{
		"Content-Length": {fmt.Sprintf("%d", len(data))},
	}
	if path, ok := cfg.Locate(uri); ok {
		header["Content-Type"] = []string{probeMediaType(path, data)}
	}
	return syntheticResponse(io.NopCloser(bytes.NewReader(data)), header), nil
}

func probeMediaType(path string, data []byte) string {
	if ext := filepath.Ext(path); ext != "" {
		if typ := mime.TypeByExtension(ext); typ != "" {
			return typ
		}
	}
	return http.DetectContentType(data)
}
