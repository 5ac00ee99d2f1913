package fetch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/zoobzio/mapplan/fetch"
)

func TestRequest(t *testing.T) {
	t.Run("Defaults To GET", func(t *testing.T) {
		req := fetch.NewRequest("https://example.test")
		if req.Method() != "GET" {
			t.Errorf("expected GET, got %q", req.Method())
		}
	})

	t.Run("WithMethod Overrides", func(t *testing.T) {
		req := fetch.NewRequest("https://example.test").WithMethod("POST")
		if req.Method() != "POST" {
			t.Errorf("expected POST, got %q", req.Method())
		}
	})

	t.Run("Body Can Be Requested At Most Once", func(t *testing.T) {
		transport := &fakeTransport{statuses: []int{200}}
		req := fetch.NewRequest("https://example.test")

		if _, err := req.Body(context.Background(), transport); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := req.Body(context.Background(), transport); !errors.Is(err, fetch.ErrBodyAlreadyRequested) {
			t.Fatalf("expected ErrBodyAlreadyRequested, got %v", err)
		}
	})

	t.Run("Header Returns A Copy", func(t *testing.T) {
		req := fetch.NewRequest("https://example.test")
		req.SetHeader("X-Test", "1")
		h := req.Header()
		h["X-Test"][0] = "mutated"
		if got := req.Header()["X-Test"][0]; got != "1" {
			t.Errorf("expected internal header unaffected by caller mutation, got %q", got)
		}
	})
}
