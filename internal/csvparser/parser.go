// =============================================================================
// Monarch Importer - CSV Parser Module
// =============================================================================
//
// This module decodes delimited input files into RawRows for the importers.
// It handles:
//   - Different delimiters (comma, pipe, tab, semicolon)
//   - A configurable header row
//   - UTF-8, ISO-8859-1 and Windows-1252 encodings (via golang.org/x/text)
//   - Quoted fields with lazy quoting, inconsistent column counts
//
// The parser is deliberately forgiving about shape: rows shorter than the
// header are padded with empty values, extra cells are dropped. Structural
// failures (empty file, no headers) are batch-fatal and reported as errors.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/monarch-importer/internal/config"
	"github.com/ginjaninja78/monarch-importer/internal/types"
)

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// CSVData represents one parsed delimited file.
type CSVData struct {
	// Headers contains the column headers, trimmed.
	Headers []string

	// Rows contains the data rows as header -> value maps.
	Rows []types.RawRow

	// SourceName identifies the source (file path or archive member name),
	// for error reporting.
	SourceName string
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a delimited file from disk.
func Parse(filePath string, settings config.CSVSettings) (*CSVData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := ParseReader(bufio.NewReader(file), settings)
	if err != nil {
		return nil, err
	}
	data.SourceName = filePath
	return data, nil
}

// ParseReader reads a delimited stream. Used directly when the source is a
// member of a container archive rather than a file on disk.
func ParseReader(r io.Reader, settings config.CSVSettings) (*CSVData, error) {
	decoded, err := decode(r, settings.Encoding)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(decoded)
	configureReader(csvReader, settings)

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(allRows) < settings.HeaderRow {
		return nil, fmt.Errorf("CSV file is empty")
	}

	headers := cleanHeaders(allRows[settings.HeaderRow-1])

	rows := make([]types.RawRow, 0, len(allRows)-settings.HeaderRow)
	for _, raw := range allRows[settings.HeaderRow:] {
		if isBlank(raw) {
			continue
		}
		row := make(types.RawRow, len(headers))
		for i, header := range headers {
			if i < len(raw) {
				row[header] = strings.TrimSpace(raw[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return &CSVData{Headers: headers, Rows: rows}, nil
}

// decode wraps the reader with a character-set decoder when the input is not
// UTF-8.
func decode(r io.Reader, encoding string) (io.Reader, error) {
	switch encoding {
	case "", "UTF-8", "utf-8":
		return r, nil
	case "ISO-8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "Windows-1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", encoding)
	}
}

// configureReader applies the delimiter and quoting settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	switch settings.Delimiter {
	case "\\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Legacy exports have ragged rows and loosely quoted fields; accept both.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// cleanHeaders trims headers and names any empty ones by position so that
// every cell remains addressable.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(strings.TrimPrefix(header, "\uFEFF"))
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}
	return cleaned
}

// isBlank reports whether every cell in the raw row is empty.
func isBlank(raw []string) bool {
	for _, cell := range raw {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
