package fetch

import (
	"context"
	"strings"
)

// Dispatcher routes a Request to one of the data/file/http resolvers
// based on its URI scheme (C6). Dispatch is exhaustive: data -> the
// inline data: decoder; file/classpath/servlet/empty scheme -> the
// configuration-backed file resolver; every other scheme -> the
// retrying HTTP resolver, which delegates to the transport.
type Dispatcher struct {
	Configuration Configuration
	HTTP          *RetryingResolver
}

// NewDispatcher builds a Dispatcher over a Configuration for local
// resources and a RetryingResolver for everything else.
func NewDispatcher(cfg Configuration, http *RetryingResolver) *Dispatcher {
	return &Dispatcher{Configuration: cfg, HTTP: http}
}

// Resolve dispatches req to the resolver appropriate for its URI scheme.
func (d *Dispatcher) Resolve(ctx context.Context, req *Request) (*Response, error) {
	switch scheme(req.URI()) {
	case "data":
		return ResolveData(req.URI())
	case "file", "classpath", "servlet", "":
		return ResolveFile(d.Configuration, req.URI())
	default:
		return d.HTTP.Do(ctx, req)
	}
}

// scheme extracts the URI scheme — the substring before the first colon
// — or "" if the URI carries no scheme at all.
func scheme(uri string) string {
	if idx := strings.IndexByte(uri, ':'); idx > 0 {
		return uri[:idx]
	}
	return ""
}
