package graph

import (
	"fmt"
	"strings"
)

// ErrorKind classifies why Build refused to proceed. FillAttributes
// reports a rejected value as *AttributeError, which carries no ErrorKind.
type ErrorKind string

const (
	// MissingInput: a processor declares a required input that names
	// neither a producer nor an attribute, and has no declared default.
	MissingInput ErrorKind = "missing_input"

	// TypeConflictWithAttribute: an input resolves against an attribute
	// whose type is not assignable to the input's declared type.
	TypeConflictWithAttribute ErrorKind = "type_conflict_with_attribute"

	// TypeConflictWithProducer: an input resolves against another
	// processor's output whose type is not assignable to the input's
	// declared type.
	TypeConflictWithProducer ErrorKind = "type_conflict_with_producer"

	// DuplicateOutput: two processors produce the same non-renameable
	// output name.
	DuplicateOutput ErrorKind = "duplicate_output"

	// OutputClashesWithAttribute: a non-renameable output name collides
	// with a name already seeded by the attribute catalogue.
	OutputClashesWithAttribute ErrorKind = "output_clashes_with_attribute"

	// UnmappedInputAlias: a processor's input mapper names a value that
	// does not match any of its input struct's exported fields.
	UnmappedInputAlias ErrorKind = "unmapped_input_alias"

	// UnmappedOutputAlias: a processor's output mapper names a key that
	// does not match any of its output struct's exported fields.
	UnmappedOutputAlias ErrorKind = "unmapped_output_alias"

	// UnreachableProcessors: after construction, one or more nodes are not
	// reachable by following edges forward from the root set.
	UnreachableProcessors ErrorKind = "unreachable_processors"

	// AttributeTypeMismatch: a value pushed into a processor's
	// SetAttribute was rejected by the processor itself. Neither Build nor
	// FillAttributes returns a BuildError of this kind; FillAttributes
	// returns *AttributeError for this condition.
	AttributeTypeMismatch ErrorKind = "attribute_type_mismatch"
)

// BuildError is the error type returned by Build. Kind identifies which
// invariant failed; the remaining fields carry whatever detail is
// available for that kind.
type BuildError struct {
	Kind ErrorKind

	// Processor is the key of the node under construction when the error
	// was raised, where applicable.
	Processor string

	// Name is the external name involved, where applicable.
	Name string

	// Names lists every offending entry, for kinds that report more than
	// one at once (currently only UnreachableProcessors).
	Names []string

	// Err is the underlying cause, set for UnmappedInputAlias and
	// UnmappedOutputAlias.
	Err error
}

func (e *BuildError) Error() string {
	switch e.Kind {
	case MissingInput:
		return fmt.Sprintf("processor %q: no producer or attribute satisfies required input %q", e.Processor, e.Name)
	case TypeConflictWithAttribute:
		return fmt.Sprintf("processor %q: input %q is not assignable from the attribute catalogue's type for that name", e.Processor, e.Name)
	case TypeConflictWithProducer:
		return fmt.Sprintf("processor %q: input %q is not assignable from the producing node's output type", e.Processor, e.Name)
	case DuplicateOutput:
		return fmt.Sprintf("processor %q: output %q is already produced by another processor", e.Processor, e.Name)
	case OutputClashesWithAttribute:
		return fmt.Sprintf("processor %q: output %q collides with an attribute catalogue name", e.Processor, e.Name)
	case UnmappedInputAlias, UnmappedOutputAlias:
		return fmt.Sprintf("processor %q: %v", e.Processor, e.Err)
	case UnreachableProcessors:
		return fmt.Sprintf("unreachable from roots: %s", strings.Join(e.Names, ", "))
	case AttributeTypeMismatch:
		return fmt.Sprintf("processor %q: %v", e.Processor, e.Err)
	default:
		return fmt.Sprintf("graph build error (%s)", e.Kind)
	}
}

func (e *BuildError) Unwrap() error { return e.Err }

// AttributeError reports that a processor rejected a value pushed into it
// by FillAttributes, naming both the external attribute name and the
// internal field name the processor saw.
type AttributeError struct {
	Processor string
	External  string
	Internal  string
	Err       error
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("processor %q: attribute %q (field %q): %v", e.Processor, e.External, e.Internal, e.Err)
}

func (e *AttributeError) Unwrap() error { return e.Err }
