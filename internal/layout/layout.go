// =============================================================================
// Monarch Importer - Record Layouts
// =============================================================================
//
// This package owns the fixed-width record layouts consumed by the Monarch
// ERP import facility, the mapping logic that binds normalized input rows to
// those layouts, and the positional encoder that renders byte-exact lines.
//
// THE LAYOUTS ARE A WIRE CONTRACT:
//   Every field's byte position and length below is versioned against the
//   Monarch import column definitions. Changing an offset silently corrupts
//   every downstream import. Do not reorder, renumber or resize fields
//   without a corresponding change on the Monarch side.
//
// =============================================================================

package layout

// Field describes one positional output slot: its name, its 1-based byte
// position in the line, and its byte length. Values longer than Len are
// truncated (leading bytes kept); shorter values are space-padded by virtue
// of the encoder's space-filled buffer.
type Field struct {
	Name string
	Pos  int
	Len  int
}

// Instance is one bound output record: field name -> value for a single
// fixed-width line. An Instance is built by a mapping function, consumed
// once by the encoder, and not retained afterward.
type Instance map[string]string

// Layout is an ordered field table plus the total line length for one record
// type.
type Layout struct {
	Fields  []Field
	LineLen int
}

// FieldByName returns the field definition with the given name, for tests
// and diagnostics. The bool result reports whether the field exists.
func (l Layout) FieldByName(name string) (Field, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
