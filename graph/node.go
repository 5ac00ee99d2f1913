package graph

import (
	"github.com/zoobzio/mapplan/processor"
)

// Node wraps one processor instance with its resolved dependency edges.
// Nodes are created one per processor during Build and are never mutated
// afterward — the returned Graph is immutable, matching the concurrency
// model: construction is single-threaded and pure, the result is shared
// read-only across however many workers later walk it.
type Node struct {
	// Processor is the wrapped transformation stage.
	Processor processor.Processor

	// Key is this node's observability key: the processor's own Name() if
	// it implements processor.Named, otherwise an index-derived key.
	Key string

	index   int
	edgesTo []int // indices, in the owning Graph's node slice, of dependents

	inputs  []processor.InputDescriptor
	outputs []processor.OutputDescriptor
	isRoot  bool
}

// Inputs returns the node's resolved input descriptors.
func (n *Node) Inputs() []processor.InputDescriptor { return n.inputs }

// Outputs returns the node's resolved output descriptors (after any
// collision-driven renaming).
func (n *Node) Outputs() []processor.OutputDescriptor { return n.outputs }

// IsRoot reports whether this node had no satisfied dependency on any
// other node in the graph (its inputs, if any, were all resolved against
// attributes or defaults).
func (n *Node) IsRoot() bool { return n.isRoot }

// Graph is the immutable result of Build: a root set and the full node
// set, related by producer -> consumer edges.
type Graph struct {
	nodes []*Node
	roots []*Node
}

// Nodes returns every node in the graph, in the order their processors
// were supplied to Build.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Roots returns the nodes with no upstream dependency in the graph.
func (g *Graph) Roots() []*Node { return g.roots }

// Dependents returns the nodes that directly depend on n's output.
func (g *Graph) Dependents(n *Node) []*Node {
	out := make([]*Node, 0, len(n.edgesTo))
	for _, idx := range n.edgesTo {
		out = append(out, g.nodes[idx])
	}
	return out
}

type reachabilityView struct{ nodes []*Node }

func (r reachabilityView) Count() int { return len(r.nodes) }

func (r reachabilityView) EdgesFrom(i int) []int { return r.nodes[i].edgesTo }
