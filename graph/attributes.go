package graph

import (
	"context"
	"fmt"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/mapplan/processor"
)

// FillAttributes walks the processor list in order, maintaining a live
// attribute map that starts as a copy of initial. Before each processor
// runs, any input it declares is resolved against the live map and
// pushed into the processor by internal field name; the wildcard VALUES
// input instead receives every currently-live attribute, pushed under its
// external name. After a processor runs, anything it provides is
// re-published into the live map under its external output names, so
// later processors in the list can see it.
//
// FillAttributes is independent of Build: Build wires the static
// dependency graph from types alone, FillAttributes later drives the
// actual runtime values through the same processor list.
func FillAttributes(ctx context.Context, processors []processor.Processor, initial map[string]any) (map[string]any, error) {
	live := make(map[string]any, len(initial))
	for k, v := range initial {
		live[k] = v
	}

	for idx, p := range processors {
		key := nodeKey(p, idx)

		if requirer, ok := p.(processor.AttributeRequirer); ok {
			inputs, err := processor.ExtractInputs(p)
			if err != nil {
				return nil, err
			}
			for _, in := range inputs {
				if in.IsWildcard() {
					for external, val := range live {
						if err := requirer.SetAttribute(external, val); err != nil {
							capitan.Error(ctx, SignalAttributeRejected, FieldProcessor.Field(key), FieldAttribute.Field(external))
							return nil, &AttributeError{Processor: key, External: external, Internal: external, Err: err}
						}
					}
					continue
				}
				val, found := live[in.ExternalName]
				if !found {
					continue
				}
				if err := requirer.SetAttribute(in.InternalName, val); err != nil {
					capitan.Error(ctx, SignalAttributeRejected, FieldProcessor.Field(key), FieldAttribute.Field(in.ExternalName), FieldInternalField.Field(in.InternalName))
					return nil, &AttributeError{Processor: key, External: in.ExternalName, Internal: in.InternalName, Err: err}
				}
				capitan.Info(ctx, SignalAttributePushed, FieldProcessor.Field(key), FieldAttribute.Field(in.ExternalName), FieldInternalField.Field(in.InternalName))
			}
		}

		if provider, ok := p.(processor.AttributeProvider); ok {
			outputs, err := processor.ExtractOutputs(p)
			if err != nil {
				return nil, err
			}
			provided := provider.Attributes()
			for _, out := range outputs {
				if val, ok := provided[out.InternalName]; ok {
					live[out.ExternalName] = val
				}
			}
		}
	}

	return live, nil
}

func nodeKey(p processor.Processor, idx int) string {
	if named, ok := p.(processor.Named); ok && named.Name() != "" {
		return named.Name()
	}
	return fmt.Sprintf("processor#%d", idx)
}
