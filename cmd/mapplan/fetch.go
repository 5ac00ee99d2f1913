package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zoobzio/mapplan/fetch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <uri>",
	Short: "Resolve a data:, file:, or http(s): URI through the dispatcher",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetch,
}

var fetchMaxAttempts int

func init() {
	fetchCmd.Flags().IntVar(&fetchMaxAttempts, "max-attempts", 3, "attempt budget for http(s) URIs")
}

// runFetch dispatches the given URI through the same three-way routing a
// real print job would use: an embedded data: payload, a local file-backed
// resource, or a retried network request.
func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := osConfiguration{}
	transport := &httpTransportFactory{client: http.DefaultClient}
	resolver := fetch.NewRetryingResolver(transport, fetchMaxAttempts, 200*time.Millisecond)
	defer resolver.Close() //nolint:errcheck

	dispatcher := fetch.NewDispatcher(cfg, resolver)

	req := fetch.NewRequest(args[0])
	resp, err := dispatcher.Resolve(ctx, req)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", args[0], err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "status: %d %s\ncontent-type: %s\n\n%s\n",
		resp.StatusCode, resp.Reason, resp.Get("Content-Type"), body)
	return nil
}

// osConfiguration implements fetch.Configuration over the local filesystem,
// treating a file:// URI's path component as a plain path and everything
// else as a relative path rooted at the current working directory.
type osConfiguration struct{}

func (osConfiguration) Load(uri string) ([]byte, error) {
	path, _ := osConfiguration{}.Locate(uri)
	return os.ReadFile(path)
}

func (osConfiguration) Locate(uri string) (string, bool) {
	const filePrefix = "file://"
	switch {
	case len(uri) >= len(filePrefix) && uri[:len(filePrefix)] == filePrefix:
		return uri[len(filePrefix):], true
	case uri == "":
		return "", false
	default:
		return uri, true
	}
}

// httpTransportFactory adapts net/http into fetch.TransportFactory.
type httpTransportFactory struct {
	client *http.Client
}

func (f *httpTransportFactory) Create(ctx context.Context, uri, method string) (fetch.PreparedRequest, error) {
	req, err := http.NewRequestWithContext(ctx, method, uri, nil)
	if err != nil {
		return nil, err
	}
	return &httpPreparedRequest{client: f.client, req: req}, nil
}

type httpPreparedRequest struct {
	client *http.Client
	req    *http.Request
}

func (p *httpPreparedRequest) Header() map[string][]string {
	return p.req.Header
}

func (p *httpPreparedRequest) Body() (io.ReadCloser, error) {
	if p.req.Body == nil {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	return p.req.Body, nil
}

func (p *httpPreparedRequest) Execute(ctx context.Context) (*fetch.Response, error) {
	resp, err := p.client.Do(p.req.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return &fetch.Response{
		StatusCode: resp.StatusCode,
		Reason:     resp.Status,
		Header:     map[string][]string(resp.Header),
		Body:       resp.Body,
	}, nil
}
