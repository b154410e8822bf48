// =============================================================================
// Monarch Importer - XLSX Parser Module
// =============================================================================
//
// This module decodes spreadsheet workbooks (the WIP job sheets) into
// RawRows. The first row of the first sheet supplies the headers; every
// following non-blank row becomes one RawRow.
//
// Excelize returns formatted cell values as strings, so date cells arrive
// either as display text or as raw 1900-epoch serials depending on how the
// sheet was authored. Both forms are accepted downstream by the rowparser
// date handling.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/monarch-importer/internal/types"
)

// SheetData represents one decoded worksheet.
type SheetData struct {
	// SheetName is the worksheet the rows came from.
	SheetName string

	// Headers contains the column headers from the first row.
	Headers []string

	// Rows contains the data rows as header -> value maps.
	Rows []types.RawRow

	// SourceName identifies the workbook, for error reporting.
	SourceName string
}

// Parse opens a workbook from disk and decodes its first sheet.
func Parse(filePath string) (*SheetData, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	data, err := decodeFirstSheet(f)
	if err != nil {
		return nil, err
	}
	data.SourceName = filePath
	return data, nil
}

// ParseReader decodes a workbook from a stream, e.g. a container-archive
// member.
func ParseReader(r io.Reader) (*SheetData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return decodeFirstSheet(f)
}

// decodeFirstSheet converts the first worksheet into header-keyed rows.
func decodeFirstSheet(f *excelize.File) (*SheetData, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheetName := sheets[0]

	raw, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheetName)
	}

	headers := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		headers[i] = h
	}

	rows := make([]types.RawRow, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		blank := true
		row := make(types.RawRow, len(headers))
		for i, header := range headers {
			value := ""
			if i < len(cells) {
				value = strings.TrimSpace(cells[i])
			}
			if value != "" {
				blank = false
			}
			row[header] = value
		}
		if !blank {
			rows = append(rows, row)
		}
	}

	return &SheetData{
		SheetName: sheetName,
		Headers:   headers,
		Rows:      rows,
	}, nil
}
