package graph

import (
	"context"
	"sync"
)

// Walk performs a level-respecting concurrent walk of g: one goroutine per
// node, each waiting only on the done-channels of its own producers before
// invoking exec. It exists to prove the graph produced by Build is
// consumable by something resembling the real execution layer — it is not
// a scheduler policy engine (real scheduling, retries, and backpressure
// are external, per the graph package's non-goals).
//
// Grounded in the goroutine-per-item + sync.WaitGroup + cancellable-context
// pattern the teacher library's Concurrent/WorkerPool connectors use: every
// node gets its own goroutine, a shared done channel per node signals
// completion to its dependents, and context cancellation short-circuits
// any node that hasn't started yet.
func (g *Graph) Walk(ctx context.Context, exec func(context.Context, *Node) error) error {
	done := make(map[int]chan struct{}, len(g.nodes))
	for _, n := range g.nodes {
		done[n.index] = make(chan struct{})
	}

	waitsOn := make(map[int][]int, len(g.nodes))
	for _, n := range g.nodes {
		for _, depIdx := range n.edgesTo {
			waitsOn[depIdx] = append(waitsOn[depIdx], n.index)
		}
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	wg.Add(len(g.nodes))

	for _, n := range g.nodes {
		go func(n *Node) {
			defer close(done[n.index])
			defer wg.Done()

			for _, producerIdx := range waitsOn[n.index] {
				select {
				case <-done[producerIdx]:
				case <-ctx.Done():
					recordErr(&mu, &firstErr, ctx.Err())
					return
				}
			}

			select {
			case <-ctx.Done():
				recordErr(&mu, &firstErr, ctx.Err())
				return
			default:
			}

			if err := exec(ctx, n); err != nil {
				recordErr(&mu, &firstErr, err)
			}
		}(n)
	}

	wg.Wait()
	return firstErr
}

func recordErr(mu *sync.Mutex, dst *error, err error) {
	mu.Lock()
	defer mu.Unlock()
	if *dst == nil {
		*dst = err
	}
}
