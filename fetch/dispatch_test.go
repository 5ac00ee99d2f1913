package fetch_test

import (
	"context"
	"testing"
	"time"

	"github.com/zoobzio/mapplan/fetch"
)

func TestDispatcherResolve(t *testing.T) {
	t.Run("Data Scheme Routes To Data Resolver", func(t *testing.T) {
		d := fetch.NewDispatcher(fakeConfiguration{}, fetch.NewRetryingResolver(&fakeTransport{}, 1, time.Millisecond))
		resp, err := d.Resolve(context.Background(), fetch.NewRequest("data:,hi"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertBody(t, resp, "hi")
	})

	for _, scheme := range []string{"file:///x", "classpath:/x", "servlet:/x", "justapath"} {
		scheme := scheme
		t.Run("Local Scheme Routes To File Resolver/"+scheme, func(t *testing.T) {
			cfg := fakeConfiguration{data: []byte("local")}
			d := fetch.NewDispatcher(cfg, fetch.NewRetryingResolver(&fakeTransport{}, 1, time.Millisecond))
			resp, err := d.Resolve(context.Background(), fetch.NewRequest(scheme))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertBody(t, resp, "local")
		})
	}

	t.Run("Unknown Scheme Routes To HTTP Resolver", func(t *testing.T) {
		transport := &fakeTransport{statuses: []int{200}}
		d := fetch.NewDispatcher(fakeConfiguration{}, fetch.NewRetryingResolver(transport, 1, time.Millisecond))
		resp, err := d.Resolve(context.Background(), fetch.NewRequest("https://example.test/report"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != 200 {
			t.Errorf("expected status 200, got %d", resp.StatusCode)
		}
	})
}
