package graph

import (
	"github.com/vmihailenco/msgpack/v5"
)

// NodeSnapshot is the msgpack-encodable debug view of one node: just
// enough to inspect the wiring decisions Build made without retaining a
// live processor reference.
type NodeSnapshot struct {
	Key         string   `msgpack:"key"`
	IsRoot      bool     `msgpack:"is_root"`
	Inputs      []string `msgpack:"inputs"`
	Outputs     []string `msgpack:"outputs"`
	Dependents  []string `msgpack:"dependents"`
}

// Snapshot is a portable, encodable dump of a built Graph, intended for
// debug tooling (dumping a graph to disk or over the wire to inspect why
// a particular wiring decision was made) rather than for re-driving
// execution — a decoded Snapshot carries no live processor references.
type Snapshot struct {
	Nodes []NodeSnapshot `msgpack:"nodes"`
	Roots []string       `msgpack:"roots"`
}

// Snapshot captures g's current wiring as an encodable value.
func (g *Graph) Snapshot() Snapshot {
	nodes := make([]NodeSnapshot, len(g.nodes))
	for i, n := range g.nodes {
		inputs := make([]string, len(n.inputs))
		for j, in := range n.inputs {
			inputs[j] = in.ExternalName
		}
		outputs := make([]string, len(n.outputs))
		for j, out := range n.outputs {
			outputs[j] = out.ExternalName
		}
		dependents := make([]string, 0, len(n.edgesTo))
		for _, idx := range n.edgesTo {
			dependents = append(dependents, g.nodes[idx].Key)
		}
		nodes[i] = NodeSnapshot{
			Key:        n.Key,
			IsRoot:     n.isRoot,
			Inputs:     inputs,
			Outputs:    outputs,
			Dependents: dependents,
		}
	}
	roots := make([]string, len(g.roots))
	for i, r := range g.roots {
		roots[i] = r.Key
	}
	return Snapshot{Nodes: nodes, Roots: roots}
}

// EncodeSnapshot msgpack-encodes g's current wiring.
func (g *Graph) EncodeSnapshot() ([]byte, error) {
	return msgpack.Marshal(g.Snapshot())
}

// DecodeSnapshot decodes a msgpack-encoded Snapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	err := msgpack.Unmarshal(data, &snap)
	return snap, err
}
