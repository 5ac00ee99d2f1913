package processor

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

const tagKey = "descriptor"

// InputDescriptor describes one named, typed input a processor declares.
// Equality between two input descriptors for the same processor is by
// ExternalName only. ExtractInputs does not check that the external names
// it produces are distinct: the struct it walks has at most one field per
// Go identifier, but an input mapper that renames one field onto another
// field's name yields two descriptors with the same ExternalName.
type InputDescriptor struct {
	ExternalName string
	InternalName string
	Type         reflect.Type
	HasDefault   bool
	PassThrough  bool // input-is-also-output: also registers its producer as this name's producer.
}

// IsWildcard reports whether this is the reserved VALUES bag input.
func (d InputDescriptor) IsWildcard() bool {
	return d.ExternalName == ValuesInput
}

// OutputDescriptor describes one named, typed output a processor produces.
type OutputDescriptor struct {
	ExternalName string
	InternalName string
	Type         reflect.Type
	Renameable   bool
}

// UnmappedAliasError reports that a mapper's renamed side does not name an
// actual struct field. It collects every offending entry from one mapper
// together, per the "report all offending mappings together" policy.
type UnmappedAliasError struct {
	Side        string // "input" or "output"
	Offending   []string
	LegalFields []string
}

func (e *UnmappedAliasError) Error() string {
	sort.Strings(e.Offending)
	legal := make([]string, len(e.LegalFields))
	copy(legal, e.LegalFields)
	sort.Strings(legal)
	return fmt.Sprintf("%s mapper names unknown field(s) %s; legal fields are %s",
		e.Side, strings.Join(e.Offending, ", "), strings.Join(legal, ", "))
}

// ExtractInputs derives a processor's input descriptors from the structural
// shape of the value its CreateInputParameter returns. A processor that
// returns ok=false has no inputs.
func ExtractInputs(p Processor) ([]InputDescriptor, error) {
	value, ok := p.CreateInputParameter()
	if !ok {
		return nil, nil
	}

	t := reflect.TypeOf(value)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	fields := exportedFields(t)
	mapper := p.InputMapper()
	if err := validateMapper("input", mapper, fields); err != nil {
		return nil, err
	}

	prefix := p.InputPrefix()
	descriptors := make([]InputDescriptor, 0, len(fields))
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := parseTag(f.Tag.Get(tagKey))
		external, _ := mapper.ExternalFor(f.Name)
		descriptors = append(descriptors, InputDescriptor{
			ExternalName: ApplyPrefix(prefix, external),
			InternalName: f.Name,
			Type:         f.Type,
			HasDefault:   tag.hasDefault,
			PassThrough:  tag.passThrough,
		})
	}
	return descriptors, nil
}

// ExtractOutputs derives a processor's output descriptors from the
// structural shape of its OutputType. A processor with OutputType() == nil
// has no outputs.
func ExtractOutputs(p Processor) ([]OutputDescriptor, error) {
	t := p.OutputType()
	if t == nil {
		return nil, nil
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	fields := exportedFields(t)
	mapper := p.OutputMapper()
	if err := validateMapper("output", mapper, fields); err != nil {
		return nil, err
	}

	prefix := p.OutputPrefix()
	descriptors := make([]OutputDescriptor, 0, len(fields))
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := parseTag(f.Tag.Get(tagKey))
		external, _ := mapper.ExternalFor(f.Name)
		descriptors = append(descriptors, OutputDescriptor{
			ExternalName: ApplyPrefix(prefix, external),
			InternalName: f.Name,
			Type:         f.Type,
			Renameable:   tag.renameable,
		})
	}
	return descriptors, nil
}

func exportedFields(t reflect.Type) []string {
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.IsExported() {
			names = append(names, f.Name)
		}
	}
	return names
}

func validateMapper(side string, m Mapper, legalFields []string) error {
	legal := make(map[string]bool, len(legalFields))
	for _, f := range legalFields {
		legal[f] = true
	}
	var bad []string
	for _, entry := range m.entriesToValidate() {
		if !legal[entry] {
			bad = append(bad, entry)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	return &UnmappedAliasError{Side: side, Offending: bad, LegalFields: legalFields}
}

type fieldTag struct {
	hasDefault  bool
	passThrough bool
	renameable  bool
}

func parseTag(raw string) fieldTag {
	var tag fieldTag
	for _, part := range strings.Split(raw, ",") {
		switch strings.TrimSpace(part) {
		case "default":
			tag.hasDefault = true
		case "passthrough":
			tag.passThrough = true
		case "renameable":
			tag.renameable = true
		}
	}
	return tag
}
