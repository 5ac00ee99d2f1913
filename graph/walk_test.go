package graph_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/mapplan/graph"
	"github.com/zoobzio/mapplan/internal/ptest"
	"github.com/zoobzio/mapplan/processor"
)

func TestGraphWalk(t *testing.T) {
	t.Run("Visits Every Node Respecting Edge Order", func(t *testing.T) {
		p1 := ptest.New("p1").WithOutputSample(mapOutput{}).Build()
		p2 := ptest.New("p2").WithInputs(legendInput{}).WithOutputSample(legendOutput{}).Build()

		g, err := graph.Build(context.Background(), []processor.Processor{p1, p2}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var mu sync.Mutex
		var order []string
		err = g.Walk(context.Background(), func(_ context.Context, n *graph.Node) error {
			time.Sleep(5 * time.Millisecond) // make an out-of-order visit observable if edges aren't honored
			mu.Lock()
			order = append(order, n.Key)
			mu.Unlock()
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(order) != 2 || order[0] != "p1" || order[1] != "p2" {
			t.Fatalf("expected p1 before p2, got %v", order)
		}
	})

	t.Run("First Error Wins", func(t *testing.T) {
		p1 := ptest.New("p1").Build()
		p2 := ptest.New("p2").Build()
		boom := errors.New("boom")

		g, err := graph.Build(context.Background(), []processor.Processor{p1, p2}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		err = g.Walk(context.Background(), func(_ context.Context, n *graph.Node) error {
			if n.Key == "p1" {
				return boom
			}
			return nil
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom error, got %v", err)
		}
	})

	t.Run("Cancellation Short Circuits Unstarted Nodes", func(t *testing.T) {
		p1 := ptest.New("p1").WithOutputSample(mapOutput{}).Build()
		p2 := ptest.New("p2").WithInputs(legendInput{}).WithOutputSample(legendOutput{}).Build()

		g, err := graph.Build(context.Background(), []processor.Processor{p1, p2}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err = g.Walk(ctx, func(context.Context, *graph.Node) error {
			t.Fatal("exec should not be invoked on an already-canceled context")
			return nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}
