package processor_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/zoobzio/mapplan/processor"
)

type layoutInput struct {
	Center string
	Extent string `descriptor:"default"`
}

type layoutOutput struct {
	Layout string
	Scratch string `descriptor:"renameable"`
}

type stubProcessor struct {
	input        any
	hasInput     bool
	outputType   reflect.Type
	inputPrefix  string
	outputPrefix string
	inputMapper  processor.Mapper
	outputMapper processor.Mapper
}

func (s stubProcessor) CreateInputParameter() (any, bool) { return s.input, s.hasInput }
func (s stubProcessor) OutputType() reflect.Type           { return s.outputType }
func (s stubProcessor) InputPrefix() string                { return s.inputPrefix }
func (s stubProcessor) OutputPrefix() string               { return s.outputPrefix }
func (s stubProcessor) InputMapper() processor.Mapper       { return s.inputMapper }
func (s stubProcessor) OutputMapper() processor.Mapper      { return s.outputMapper }

func TestExtractInputs(t *testing.T) {
	t.Run("No Inputs", func(t *testing.T) {
		p := stubProcessor{}
		inputs, err := processor.ExtractInputs(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inputs != nil {
			t.Fatalf("expected nil inputs, got %v", inputs)
		}
	})

	t.Run("Fields Become Descriptors", func(t *testing.T) {
		p := stubProcessor{input: layoutInput{}, hasInput: true}
		inputs, err := processor.ExtractInputs(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(inputs) != 2 {
			t.Fatalf("expected 2 inputs, got %d", len(inputs))
		}
		byName := make(map[string]processor.InputDescriptor, len(inputs))
		for _, in := range inputs {
			byName[in.ExternalName] = in
		}
		center, ok := byName["Center"]
		if !ok {
			t.Fatalf("expected Center input, got %v", byName)
		}
		if center.HasDefault {
			t.Errorf("Center should not carry a default")
		}
		extent, ok := byName["Extent"]
		if !ok || !extent.HasDefault {
			t.Errorf("Extent should carry a default, got %+v ok=%v", extent, ok)
		}
	})

	t.Run("Prefix Applied", func(t *testing.T) {
		p := stubProcessor{input: layoutInput{}, hasInput: true, inputPrefix: "layout."}
		inputs, err := processor.ExtractInputs(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, in := range inputs {
			if in.ExternalName != "layout."+in.InternalName {
				t.Errorf("expected prefixed name, got %q for field %q", in.ExternalName, in.InternalName)
			}
		}
	})

	t.Run("Mapper Renames", func(t *testing.T) {
		p := stubProcessor{
			input:    layoutInput{},
			hasInput: true,
			inputMapper: processor.NewInputMapper(map[string]string{
				"center": "Center",
			}),
		}
		inputs, err := processor.ExtractInputs(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var found bool
		for _, in := range inputs {
			if in.InternalName == "Center" {
				found = true
				if in.ExternalName != "center" {
					t.Errorf("expected renamed external name 'center', got %q", in.ExternalName)
				}
			}
		}
		if !found {
			t.Fatal("expected to find Center field")
		}
	})

	t.Run("Unmapped Alias Reports All Offenders", func(t *testing.T) {
		p := stubProcessor{
			input:    layoutInput{},
			hasInput: true,
			inputMapper: processor.NewInputMapper(map[string]string{
				"a": "Bogus1",
				"b": "Bogus2",
			}),
		}
		_, err := processor.ExtractInputs(p)
		if err == nil {
			t.Fatal("expected error")
		}
		var aliasErr *processor.UnmappedAliasError
		if !errors.As(err, &aliasErr) {
			t.Fatalf("expected UnmappedAliasError, got %T: %v", err, err)
		}
		if aliasErr.Side != "input" {
			t.Errorf("expected side 'input', got %q", aliasErr.Side)
		}
		if len(aliasErr.Offending) != 2 {
			t.Errorf("expected both offending entries reported together, got %v", aliasErr.Offending)
		}
	})

	t.Run("Pointer Input Value Unwrapped", func(t *testing.T) {
		p := stubProcessor{input: &layoutInput{}, hasInput: true}
		inputs, err := processor.ExtractInputs(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(inputs) != 2 {
			t.Fatalf("expected 2 inputs from pointer value, got %d", len(inputs))
		}
	})
}

func TestExtractOutputs(t *testing.T) {
	t.Run("Nil Output Type", func(t *testing.T) {
		p := stubProcessor{}
		outputs, err := processor.ExtractOutputs(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outputs != nil {
			t.Fatalf("expected nil outputs, got %v", outputs)
		}
	})

	t.Run("Renameable Marker Carried Through", func(t *testing.T) {
		p := stubProcessor{outputType: reflect.TypeOf(layoutOutput{})}
		outputs, err := processor.ExtractOutputs(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		byName := make(map[string]processor.OutputDescriptor, len(outputs))
		for _, out := range outputs {
			byName[out.ExternalName] = out
		}
		if byName["Layout"].Renameable {
			t.Errorf("Layout should not be renameable")
		}
		if !byName["Scratch"].Renameable {
			t.Errorf("Scratch should be renameable")
		}
	})

	t.Run("Mapper Validity Checked Against Keys", func(t *testing.T) {
		p := stubProcessor{
			outputType: reflect.TypeOf(layoutOutput{}),
			outputMapper: processor.NewOutputMapper(map[string]string{
				"NotAField": "external",
			}),
		}
		_, err := processor.ExtractOutputs(p)
		var aliasErr *processor.UnmappedAliasError
		if !errors.As(err, &aliasErr) {
			t.Fatalf("expected UnmappedAliasError, got %v", err)
		}
		if aliasErr.Side != "output" {
			t.Errorf("expected side 'output', got %q", aliasErr.Side)
		}
	})
}
