package csvparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/monarch-importer/internal/config"
)

func defaultSettings() config.CSVSettings {
	return config.CSVSettings{Delimiter: ",", HeaderRow: 1, Encoding: "UTF-8"}
}

func TestParseReaderBasic(t *testing.T) {
	input := "Account Name,City\nAcme,Reno\nBodine,Sparks\n"

	data, err := ParseReader(strings.NewReader(input), defaultSettings())

	require.NoError(t, err)
	assert.Equal(t, []string{"Account Name", "City"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "Acme", data.Rows[0]["Account Name"])
	assert.Equal(t, "Sparks", data.Rows[1]["City"])
}

func TestParseReaderSkipsBlankRows(t *testing.T) {
	input := "Name,City\nAcme,Reno\n,\n   ,\nBodine,Sparks\n"

	data, err := ParseReader(strings.NewReader(input), defaultSettings())

	require.NoError(t, err)
	assert.Len(t, data.Rows, 2)
}

func TestParseReaderPadsRaggedRows(t *testing.T) {
	input := "Name,City,State\nAcme,Reno\nBodine,Sparks,NV,extra\n"

	data, err := ParseReader(strings.NewReader(input), defaultSettings())

	require.NoError(t, err)
	require.Len(t, data.Rows, 2)
	// Short rows are padded with empty values, extra cells are dropped.
	assert.Equal(t, "", data.Rows[0]["State"])
	assert.Equal(t, "NV", data.Rows[1]["State"])
	assert.Len(t, data.Rows[1], 3)
}

func TestParseReaderPipeDelimiter(t *testing.T) {
	settings := defaultSettings()
	settings.Delimiter = "|"

	data, err := ParseReader(strings.NewReader("Name|City\nAcme|Reno\n"), settings)

	require.NoError(t, err)
	assert.Equal(t, "Reno", data.Rows[0]["City"])
}

func TestParseReaderTabDelimiter(t *testing.T) {
	settings := defaultSettings()
	settings.Delimiter = "\\t"

	data, err := ParseReader(strings.NewReader("Name\tCity\nAcme\tReno\n"), settings)

	require.NoError(t, err)
	assert.Equal(t, "Reno", data.Rows[0]["City"])
}

func TestParseReaderHeaderRowOffset(t *testing.T) {
	settings := defaultSettings()
	settings.HeaderRow = 2

	input := "Export generated 2024-01-05,\nName,City\nAcme,Reno\n"

	data, err := ParseReader(strings.NewReader(input), settings)

	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "City"}, data.Headers)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, "Acme", data.Rows[0]["Name"])
}

func TestParseReaderStripsBOMAndNamesEmptyHeaders(t *testing.T) {
	input := "\uFEFFName,,City\nAcme,x,Reno\n"

	data, err := ParseReader(strings.NewReader(input), defaultSettings())

	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Column_2", "City"}, data.Headers)
	assert.Equal(t, "x", data.Rows[0]["Column_2"])
}

func TestParseReaderLatin1(t *testing.T) {
	settings := defaultSettings()
	settings.Encoding = "ISO-8859-1"

	// 0xE9 is e-acute in Latin-1.
	input := "Name,City\nCaf\xe9 Press,Reno\n"

	data, err := ParseReader(strings.NewReader(input), settings)

	require.NoError(t, err)
	assert.Equal(t, "Café Press", data.Rows[0]["Name"])
}

func TestParseReaderUnsupportedEncoding(t *testing.T) {
	settings := defaultSettings()
	settings.Encoding = "EBCDIC"

	_, err := ParseReader(strings.NewReader("a,b\n"), settings)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported encoding")
}

func TestParseReaderEmptyFile(t *testing.T) {
	_, err := ParseReader(strings.NewReader(""), defaultSettings())
	assert.Error(t, err)
}

func TestParseFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,City\nAcme,Reno\n"), 0644))

	data, err := Parse(path, defaultSettings())

	require.NoError(t, err)
	assert.Equal(t, path, data.SourceName)
	assert.Len(t, data.Rows, 1)
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.csv"), defaultSettings())
	assert.Error(t, err)
}
