// Package ptest provides a configurable mock processor.Processor for
// exercising the graph builder and attribute filler without standing up a
// real transformation stage, mirroring the MockProcessor helper the
// teacher library ships in its own testing package.
package ptest

import (
	"reflect"
	"sync"

	"github.com/zoobzio/mapplan/processor"
)

// Processor is a configurable stand-in for processor.Processor. Optional
// capabilities (processor.CustomDependencies, processor.AttributeRequirer,
// processor.AttributeProvider) are NOT methods on Processor itself — a type
// assertion against a bare *Processor must fail for all three, exactly as
// it would for a real processor that doesn't implement them. Call Build to
// get a processor.Processor value whose concrete type carries the
// capabilities configured via the builder methods (see Build for how
// CustomDependencies combines with the others).
type Processor struct {
	mu sync.Mutex

	name string

	inputSample any
	hasInputs   bool

	outputType reflect.Type

	inputPrefix  string
	outputPrefix string
	inputMapper  processor.Mapper
	outputMapper processor.Mapper

	customDeps    []string
	hasCustomDeps bool

	attrErr      error
	setAttrCalls []SetAttributeCall
	isRequirer   bool

	provided    map[string]any
	isProvider  bool
}

// SetAttributeCall records one invocation of SetAttribute for assertions.
type SetAttributeCall struct {
	InternalName string
	Value        any
}

// New creates a bare mock processor with no inputs, outputs, or optional
// capabilities.
func New(name string) *Processor {
	return &Processor{name: name}
}

// Name implements processor.Named.
func (p *Processor) Name() string { return p.name }

// WithInputs sets the sample value whose exported fields become this
// processor's input descriptors. Pass a struct value (or pointer), not a
// type.
func (p *Processor) WithInputs(sample any) *Processor {
	p.inputSample = sample
	p.hasInputs = true
	return p
}

// WithOutputSample sets the sample value whose type's exported fields
// become this processor's output descriptors.
func (p *Processor) WithOutputSample(sample any) *Processor {
	p.outputType = reflect.TypeOf(sample)
	return p
}

// WithInputPrefix sets the prefix applied to every input's external name.
func (p *Processor) WithInputPrefix(prefix string) *Processor {
	p.inputPrefix = prefix
	return p
}

// WithOutputPrefix sets the prefix applied to every output's external name.
func (p *Processor) WithOutputPrefix(prefix string) *Processor {
	p.outputPrefix = prefix
	return p
}

// WithInputMapper sets an external-name -> internal-field-name rename map.
func (p *Processor) WithInputMapper(externalToInternal map[string]string) *Processor {
	p.inputMapper = processor.NewInputMapper(externalToInternal)
	return p
}

// WithOutputMapper sets an internal-field-name -> external-name rename map.
func (p *Processor) WithOutputMapper(internalToExternal map[string]string) *Processor {
	p.outputMapper = processor.NewOutputMapper(internalToExternal)
	return p
}

// WithCustomDependencies marks the built processor as implementing
// processor.CustomDependencies, returning the given names.
func (p *Processor) WithCustomDependencies(names ...string) *Processor {
	p.customDeps = names
	p.hasCustomDeps = true
	return p
}

// WithAttributeError makes SetAttribute fail with the given error.
func (p *Processor) WithAttributeError(err error) *Processor {
	p.attrErr = err
	return p
}

// RequiringAttributes marks the built processor as implementing
// processor.AttributeRequirer.
func (p *Processor) RequiringAttributes() *Processor {
	p.isRequirer = true
	return p
}

// ProvidingAttributes marks the built processor as implementing
// processor.AttributeProvider, returning the given internal-name-keyed map.
func (p *Processor) ProvidingAttributes(attrs map[string]any) *Processor {
	p.provided = attrs
	p.isProvider = true
	return p
}

// CreateInputParameter implements processor.Processor.
func (p *Processor) CreateInputParameter() (any, bool) {
	if !p.hasInputs {
		return nil, false
	}
	return p.inputSample, true
}

// OutputType implements processor.Processor.
func (p *Processor) OutputType() reflect.Type { return p.outputType }

// InputPrefix implements processor.Processor.
func (p *Processor) InputPrefix() string { return p.inputPrefix }

// OutputPrefix implements processor.Processor.
func (p *Processor) OutputPrefix() string { return p.outputPrefix }

// InputMapper implements processor.Processor.
func (p *Processor) InputMapper() processor.Mapper { return p.inputMapper }

// OutputMapper implements processor.Processor.
func (p *Processor) OutputMapper() processor.Mapper { return p.outputMapper }

func (p *Processor) setAttribute(internalName string, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.attrErr != nil {
		return p.attrErr
	}
	p.setAttrCalls = append(p.setAttrCalls, SetAttributeCall{InternalName: internalName, Value: value})
	return nil
}

// SetAttributeCalls returns every recorded SetAttribute invocation.
func (p *Processor) SetAttributeCalls() []SetAttributeCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]SetAttributeCall, len(p.setAttrCalls))
	copy(out, p.setAttrCalls)
	return out
}

// Build returns a processor.Processor whose concrete type implements the
// optional capabilities configured above. CustomDependencies takes
// precedence: a processor configured with it implements neither
// AttributeRequirer nor AttributeProvider, whatever else was configured.
func (p *Processor) Build() processor.Processor {
	switch {
	case p.hasCustomDeps:
		return customDeps{p}
	case p.isRequirer && p.isProvider:
		return requirerProvider{p}
	case p.isRequirer:
		return requirer{p}
	case p.isProvider:
		return provider{p}
	default:
		return p
	}
}

type customDeps struct{ *Processor }

func (c customDeps) CustomDependencies() []string { return c.Processor.customDeps }

type requirer struct{ *Processor }

func (r requirer) SetAttribute(name string, v any) error { return r.Processor.setAttribute(name, v) }

type provider struct{ *Processor }

func (pr provider) Attributes() map[string]any { return pr.Processor.provided }

type requirerProvider struct{ *Processor }

func (r requirerProvider) SetAttribute(name string, v any) error {
	return r.Processor.setAttribute(name, v)
}
func (r requirerProvider) Attributes() map[string]any { return r.Processor.provided }
