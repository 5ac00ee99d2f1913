package graph

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/mapplan/graph/internal/reachability"
	"github.com/zoobzio/mapplan/processor"
)

// WellKnownAttribute names one slot of the fixed ambient catalogue every
// Build call seeds before wiring any processor, independent of whatever
// the caller's own attribute map supplies.
type WellKnownAttribute string

const (
	AttributeValues        WellKnownAttribute = "values"
	AttributeTaskDirectory  WellKnownAttribute = "taskDirectory"
	AttributeRequestFactory WellKnownAttribute = "clientHttpRequestFactory"
	AttributeTemplate       WellKnownAttribute = "template"
	AttributeOutputFormat   WellKnownAttribute = "outputFormat"
	AttributePDFConfig      WellKnownAttribute = "pdfConfig"
	AttributeSubReportDir   WellKnownAttribute = "subReportDir"
	AttributeRequestHeaders WellKnownAttribute = "requestHeaders"
)

var anyType = reflect.TypeOf((*any)(nil)).Elem()

func defaultAmbientCatalogue() map[WellKnownAttribute]reflect.Type {
	return map[WellKnownAttribute]reflect.Type{
		AttributeValues:         reflect.TypeOf(map[string]any{}),
		AttributeTaskDirectory:  reflect.TypeOf(""),
		AttributeRequestFactory: anyType,
		AttributeTemplate:       anyType,
		AttributeOutputFormat:   reflect.TypeOf(""),
		AttributePDFConfig:      anyType,
		AttributeSubReportDir:   reflect.TypeOf(""),
		AttributeRequestHeaders: reflect.TypeOf(http.Header{}),
	}
}

// Option configures a Build call.
type Option func(*buildConfig)

type buildConfig struct {
	ambient map[WellKnownAttribute]reflect.Type
}

// WithAmbientType overrides the type recorded for a well-known attribute
// name, for callers whose concrete ambient types differ from the defaults.
func WithAmbientType(name WellKnownAttribute, typ reflect.Type) Option {
	return func(c *buildConfig) { c.ambient[name] = typ }
}

// Build constructs the dependency graph for an ordered processor list
// against an initial attribute catalogue (external name -> sample value,
// used only for its type). Construction is a single left-to-right pass:
// each processor's inputs are resolved against everything produced so
// far plus the attribute catalogue, then its outputs extend what later
// processors may depend on.
func Build(ctx context.Context, processors []processor.Processor, attributes map[string]any, opts ...Option) (*Graph, error) {
	cfg := &buildConfig{ambient: defaultAmbientCatalogue()}
	for _, opt := range opts {
		opt(cfg)
	}

	producerByName := make(map[string]*Node, len(processors))
	typeByName := make(map[string]reflect.Type, len(processors)+len(attributes)+len(cfg.ambient))

	for name, val := range attributes {
		typeByName[name] = reflect.TypeOf(val)
	}
	for name, typ := range cfg.ambient {
		if _, exists := typeByName[string(name)]; !exists {
			typeByName[string(name)] = typ
		}
	}

	nodes := make([]*Node, 0, len(processors))
	renameSeq := 0

	for idx, p := range processors {
		node := &Node{Processor: p, index: idx}
		if named, ok := p.(processor.Named); ok && named.Name() != "" {
			node.Key = named.Name()
		} else {
			node.Key = fmt.Sprintf("processor#%d", idx)
		}

		inputs, err := processor.ExtractInputs(p)
		if err != nil {
			return nil, wrapAliasError(node.Key, UnmappedInputAlias, err)
		}
		outputs, err := processor.ExtractOutputs(p)
		if err != nil {
			return nil, wrapAliasError(node.Key, UnmappedOutputAlias, err)
		}

		seenProducers := make(map[int]bool)
		addEdge := func(producer *Node) {
			if producer == nil || seenProducers[producer.index] {
				return
			}
			seenProducers[producer.index] = true
			producer.edgesTo = append(producer.edgesTo, node.index)
		}

		isRoot := true
		for _, in := range inputs {
			if in.IsWildcard() {
				if cd, ok := p.(processor.CustomDependencies); ok {
					for _, dep := range cd.CustomDependencies() {
						if producer, found := producerByName[dep]; found {
							addEdge(producer)
							isRoot = false
						}
					}
				} else {
					for _, producer := range producerByName {
						addEdge(producer)
						isRoot = false
					}
				}
				continue
			}

			typ, found := typeByName[in.ExternalName]
			if !found {
				if in.HasDefault {
					continue
				}
				return nil, &BuildError{Kind: MissingInput, Processor: node.Key, Name: in.ExternalName}
			}
			if !typ.AssignableTo(in.Type) {
				if _, isProducerBacked := producerByName[in.ExternalName]; isProducerBacked {
					return nil, &BuildError{Kind: TypeConflictWithProducer, Processor: node.Key, Name: in.ExternalName}
				}
				return nil, &BuildError{Kind: TypeConflictWithAttribute, Processor: node.Key, Name: in.ExternalName}
			}
			if producer, found := producerByName[in.ExternalName]; found {
				addEdge(producer)
				isRoot = false
			}
		}
		node.isRoot = isRoot
		node.inputs = inputs

		resolvedOutputs := make([]processor.OutputDescriptor, len(outputs))
		for i, out := range outputs {
			name := out.ExternalName
			if _, taken := typeByName[name]; taken {
				if out.Renameable {
					name = freshName(name, typeByName, &renameSeq)
					out.ExternalName = name
				} else if _, hasProducer := producerByName[name]; hasProducer {
					return nil, &BuildError{Kind: DuplicateOutput, Processor: node.Key, Name: name}
				} else {
					return nil, &BuildError{Kind: OutputClashesWithAttribute, Processor: node.Key, Name: name}
				}
			}
			typeByName[name] = out.Type
			producerByName[name] = node
			resolvedOutputs[i] = out
		}
		node.outputs = resolvedOutputs

		for _, in := range inputs {
			if in.PassThrough {
				producerByName[in.ExternalName] = node
			}
		}

		nodes = append(nodes, node)
		capitan.Info(ctx, SignalNodeWired,
			FieldProcessor.Field(node.Key),
			FieldInputCount.Field(len(inputs)),
			FieldOutputCount.Field(len(resolvedOutputs)),
		)
	}

	var roots []*Node
	rootIdx := make([]int, 0)
	for _, n := range nodes {
		if n.isRoot {
			roots = append(roots, n)
			rootIdx = append(rootIdx, n.index)
		}
	}

	view := reachabilityView{nodes: nodes}
	missing := reachability.Missing(view, rootIdx)
	if len(missing) > 0 {
		names := make([]string, len(missing))
		for i, idx := range missing {
			names[i] = nodes[idx].Key
		}
		capitan.Error(ctx, SignalGraphUnreachable, FieldProcessorList.Field(strings.Join(names, ",")))
		return nil, &BuildError{Kind: UnreachableProcessors, Names: names}
	}

	capitan.Info(ctx, SignalGraphBuilt, FieldNodeCount.Field(len(nodes)), FieldRootCount.Field(len(roots)))
	return &Graph{nodes: nodes, roots: roots}, nil
}

func freshName(base string, taken map[string]reflect.Type, seq *int) string {
	for {
		*seq++
		candidate := fmt.Sprintf("%s~%d", base, *seq)
		if _, exists := taken[candidate]; !exists {
			return candidate
		}
	}
}

func wrapAliasError(processorKey string, kind ErrorKind, err error) *BuildError {
	return &BuildError{Kind: kind, Processor: processorKey, Err: err}
}
