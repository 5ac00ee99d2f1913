package graph

import "github.com/zoobzio/capitan"

// Signal constants for graph construction and attribute-fill events.
// Signals follow the pattern: <subsystem>.<event>, same convention the
// teacher library uses for its own connector signals.
const (
	SignalNodeWired         capitan.Signal = "graph.node_wired"
	SignalGraphBuilt        capitan.Signal = "graph.built"
	SignalGraphUnreachable  capitan.Signal = "graph.unreachable"
	SignalAttributePushed   capitan.Signal = "graph.attribute_pushed"
	SignalAttributeRejected capitan.Signal = "graph.attribute_rejected"
)

// Field keys, all primitive-typed to avoid custom struct serialization.
var (
	FieldProcessor     = capitan.NewStringKey("processor")
	FieldProcessorList = capitan.NewStringKey("processors")
	FieldInputCount    = capitan.NewIntKey("input_count")
	FieldOutputCount   = capitan.NewIntKey("output_count")
	FieldNodeCount     = capitan.NewIntKey("node_count")
	FieldRootCount     = capitan.NewIntKey("root_count")
	FieldAttribute     = capitan.NewStringKey("attribute")
	FieldInternalField = capitan.NewStringKey("internal_field")
)
