// =============================================================================
// Monarch Importer - Positional Encoder
// =============================================================================
//
// This module renders one fixed-length line from a bound record instance.
//
// ENCODING RULES:
//   - The output buffer starts as LineLen space characters.
//   - Each field's value is written at Pos-1 (0-based) for at most Len bytes.
//     Overflow past Len, or past the end of the buffer, is dropped silently.
//   - The customer encoder writes any value present in the instance, so an
//     explicit empty string is a no-op write. The job encoder skips empty
//     values entirely. The two record types have always behaved this way in
//     the Monarch import and the asymmetry is preserved; see the encoder
//     tests before unifying.
//
// =============================================================================

package layout

import "strings"

// WriteMode selects how the encoder treats values that are present but empty.
type WriteMode int

const (
	// WriteDefined writes every value present in the instance, including
	// empty strings (which leave the field's spaces untouched). Used for
	// customer records.
	WriteDefined WriteMode = iota

	// WriteNonEmpty skips empty-string values. Used for job and WIP
	// records. Note that the string "0" is written: only the empty string
	// is skipped.
	WriteNonEmpty
)

// Encode renders one fixed-width line for the instance against the layout.
// The result is always exactly layout.LineLen characters; encoding the same
// instance twice yields identical output.
func Encode(inst Instance, l Layout, mode WriteMode) string {
	buf := make([]byte, l.LineLen)
	for i := range buf {
		buf[i] = ' '
	}

	for _, f := range l.Fields {
		value, ok := inst[f.Name]
		if !ok {
			continue
		}
		if mode == WriteNonEmpty && value == "" {
			continue
		}

		start := f.Pos - 1
		if start < 0 || start >= len(buf) {
			continue
		}
		n := f.Len
		if len(value) < n {
			n = len(value)
		}
		if start+n > len(buf) {
			n = len(buf) - start
		}
		copy(buf[start:start+n], value[:n])
	}

	return string(buf)
}

// EncodeBatch concatenates one encoded line plus "\n" per instance, in the
// given (stable input) order.
func EncodeBatch(instances []Instance, l Layout, mode WriteMode) string {
	var b strings.Builder
	b.Grow(len(instances) * (l.LineLen + 1))
	for _, inst := range instances {
		b.WriteString(Encode(inst, l, mode))
		b.WriteByte('\n')
	}
	return b.String()
}
