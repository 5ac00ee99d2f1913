package processor

// Mapper is a bijective rename map between a processor's internal field
// names and the external names its descriptors advertise.
//
// Input mappers are declared external-to-internal (the caller names the
// external alias and points it at a field); output mappers are declared
// internal-to-external (the caller names the field and points it at an
// alias). ExternalFor always answers "what's the external name for this
// field", but the two kinds resolve that question by walking their
// underlying table in opposite directions — a forward lookup for output
// mappers, a reverse lookup for input mappers. This mirrors the asymmetry
// in how each mapper's legality is checked (see entriesToValidate).
type Mapper struct {
	table map[string]string
	kind  mapperKind
}

type mapperKind int

const (
	inputMapperKind mapperKind = iota
	outputMapperKind
)

// NewInputMapper builds a Mapper from an external-name -> internal-field-name
// table, as used by Processor.InputMapper.
func NewInputMapper(externalToInternal map[string]string) Mapper {
	return Mapper{kind: inputMapperKind, table: cloneTable(externalToInternal)}
}

// NewOutputMapper builds a Mapper from an internal-field-name -> external-name
// table, as used by Processor.OutputMapper.
func NewOutputMapper(internalToExternal map[string]string) Mapper {
	return Mapper{kind: outputMapperKind, table: cloneTable(internalToExternal)}
}

func cloneTable(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ExternalFor returns the external name for the given internal field name.
// If the mapper carries no rename for that field, it returns the field name
// unchanged (forward_or_identity) with ok=false.
func (m Mapper) ExternalFor(fieldName string) (external string, ok bool) {
	if m.table == nil {
		return fieldName, false
	}
	switch m.kind {
	case outputMapperKind:
		if ext, found := m.table[fieldName]; found {
			return ext, true
		}
	default:
		for ext, internal := range m.table {
			if internal == fieldName {
				return ext, true
			}
		}
	}
	return fieldName, false
}

// entriesToValidate returns the side of the mapper's table that must name
// legal fields: an input mapper's values (internal field names it points
// at), an output mapper's keys (internal field names it renames).
func (m Mapper) entriesToValidate() []string {
	if m.table == nil {
		return nil
	}
	entries := make([]string, 0, len(m.table))
	if m.kind == outputMapperKind {
		for k := range m.table {
			entries = append(entries, k)
		}
		return entries
	}
	for _, v := range m.table {
		entries = append(entries, v)
	}
	return entries
}
