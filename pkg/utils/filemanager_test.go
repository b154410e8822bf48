package utils

import (
	"archive/zip"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileManager(t *testing.T) *FileManager {
	t.Helper()
	base := t.TempDir()
	fm := NewFileManager(
		filepath.Join(base, "input"),
		filepath.Join(base, "output"),
		filepath.Join(base, "archive"),
	)
	require.NoError(t, fm.EnsureDirectories())
	return fm
}

func TestDiscoverInputFiles(t *testing.T) {
	fm := newTestFileManager(t)

	for _, name := range []string{"customers.csv", "orders.ZIP", "wip.xlsx", "notes.txt", "readme.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(fm.InputDir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(fm.InputDir, "nested.csv"), 0755))

	files, err := fm.DiscoverInputFiles()

	require.NoError(t, err)
	require.Len(t, files, 3)
	for _, f := range files {
		assert.NotContains(t, f, "notes.txt")
		assert.NotContains(t, f, "readme.md")
	}
}

func TestExtractArchiveClassifiesMembers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload.zip")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range map[string]string{
		"Customer_Export_2024.csv": "a,b\n1,2\n",
		"users_and_emails.csv":     "c,d\n3,4\n",
		"payment_history.csv":      "e,f\n5,6\n",
		"Order_Lines.csv":          "g,h\n7,8\n",
		"mystery.csv":              "i,j\n9,0\n",
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	members, err := ExtractArchive(path)

	require.NoError(t, err)
	require.Len(t, members, 5)

	kinds := make(map[string]string)
	for _, m := range members {
		kinds[m.Name] = m.Kind
		assert.NotEmpty(t, m.Data)
	}
	assert.Equal(t, "customer", kinds["Customer_Export_2024.csv"])
	assert.Equal(t, "user", kinds["users_and_emails.csv"])
	assert.Equal(t, "payment", kinds["payment_history.csv"])
	assert.Equal(t, "order", kinds["Order_Lines.csv"])
	assert.Equal(t, "", kinds["mystery.csv"])
}

func TestExtractArchiveNotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))

	_, err := ExtractArchive(path)
	assert.Error(t, err)
}

func TestWriteOutput(t *testing.T) {
	fm := newTestFileManager(t)

	path, err := fm.WriteOutput("{type}_output.txt", "customer", "line one\n")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fm.OutputDir, "customer_output.txt"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line one\n", string(content))
}

func TestGenerateOutputFileName(t *testing.T) {
	name := GenerateOutputFileName("{type}_{date}", map[string]string{"type": "wip"})

	// Missing extension defaults to .txt.
	assert.Regexp(t, regexp.MustCompile(`^wip_\d{8}\.txt$`), name)
}

func TestGenerateOutputFileNameUUIDIsUnique(t *testing.T) {
	first := GenerateOutputFileName("{uuid}.txt", nil)
	second := GenerateOutputFileName("{uuid}.txt", nil)

	assert.NotEqual(t, first, second)
}

func TestArchiveInputFileMoves(t *testing.T) {
	fm := newTestFileManager(t)

	src := filepath.Join(fm.InputDir, "customers.csv")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))

	dest, err := fm.ArchiveInputFile(src)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fm.ArchiveDir, "customers.csv"), dest)
	assert.True(t, FileExists(dest))
	assert.False(t, FileExists(src))
}

func TestArchiveInputFileDisabled(t *testing.T) {
	fm := newTestFileManager(t)
	fm.ArchiveOnSuccess = false

	src := filepath.Join(fm.InputDir, "customers.csv")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))

	dest, err := fm.ArchiveInputFile(src)

	require.NoError(t, err)
	assert.Equal(t, src, dest)
	assert.True(t, FileExists(src))
}
