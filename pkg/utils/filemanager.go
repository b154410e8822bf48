// =============================================================================
// Monarch Importer - File Manager Utility
// =============================================================================
//
// This module provides file plumbing for the importers:
//   - Input file discovery
//   - Container archive (ZIP) member classification
//   - Output file writing and naming
//   - Archival of processed inputs
//
// ARCHIVAL STRATEGY:
//   - Input files are moved to the archive directory after successful
//     processing; failed files stay where they were.
//   - Rejection reports are written next to the fixed-width output.
//
// =============================================================================

package utils

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the importer.
type FileManager struct {
	// InputDir is the directory where input files are placed.
	InputDir string

	// OutputDir is the directory where output files are placed.
	OutputDir string

	// ArchiveDir is the directory for archived input files.
	ArchiveDir string

	// ArchiveOnSuccess determines whether inputs are moved after processing.
	ArchiveOnSuccess bool
}

// NewFileManager creates a FileManager with the specified directories.
func NewFileManager(inputDir, outputDir, archiveDir string) *FileManager {
	return &FileManager{
		InputDir:         inputDir,
		OutputDir:        outputDir,
		ArchiveDir:       archiveDir,
		ArchiveOnSuccess: true,
	}
}

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.InputDir, fm.OutputDir, fm.ArchiveDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// importableExtensions are the input formats the importer accepts.
var importableExtensions = map[string]bool{
	".csv":  true,
	".zip":  true,
	".xlsx": true,
	".xls":  true,
}

// DiscoverInputFiles scans the input directory for importable files.
func (fm *FileManager) DiscoverInputFiles() ([]string, error) {
	entries, err := os.ReadDir(fm.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if importableExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(fm.InputDir, entry.Name()))
		}
	}

	return files, nil
}

// =============================================================================
// CONTAINER ARCHIVE HANDLING
// =============================================================================

// ArchiveMember is one extracted member of a container archive.
type ArchiveMember struct {
	// Name is the member's file name inside the archive.
	Name string

	// Kind is the classified role: "customer", "user", "order", "payment"
	// or "" when the member matched no known substring.
	Kind string

	// Data is the member's full contents.
	Data []byte
}

// memberKinds maps filename substrings to member roles, checked in order.
// The substring heuristic mirrors how the upload batches have always been
// assembled: one file per role, role named in the file name.
var memberKinds = []struct {
	substring string
	kind      string
}{
	{"customer", "customer"},
	{"user", "user"},
	{"email", "user"},
	{"payment", "payment"},
	{"order", "order"},
}

// ExtractArchive opens a ZIP container and classifies its members by
// filename substring. Unclassifiable members are returned with an empty
// Kind so the caller can log them.
func ExtractArchive(path string) ([]ArchiveMember, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer reader.Close()

	var members []ArchiveMember
	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open archive member %s: %w", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read archive member %s: %w", file.Name, err)
		}

		members = append(members, ArchiveMember{
			Name: file.Name,
			Kind: classifyMember(file.Name),
			Data: data,
		})
	}

	return members, nil
}

// classifyMember assigns a role to an archive member by filename substring.
func classifyMember(name string) string {
	lower := strings.ToLower(filepath.Base(name))
	for _, mk := range memberKinds {
		if strings.Contains(lower, mk.substring) {
			return mk.kind
		}
	}
	return ""
}

// =============================================================================
// OUTPUT FILE WRITING
// =============================================================================

// WriteOutput writes generated content to the output directory using the
// configured name format and returns the full path.
func (fm *FileManager) WriteOutput(nameFormat, recordType, content string) (string, error) {
	fileName := GenerateOutputFileName(nameFormat, map[string]string{"type": recordType})
	outputPath := filepath.Join(fm.OutputDir, fileName)

	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}

	return outputPath, nil
}

// GenerateOutputFileName generates a unique output file name.
//
// PARAMETERS:
//   - format: The format string for the file name. Placeholders:
//     {uuid}      - A random UUID
//     {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//     {date}      - Current date (YYYYMMDD)
//     {time}      - Current time (HHMMSS)
//     plus any custom placeholders supplied via params.
//   - params: A map of custom placeholder values (e.g. "type").
//
// EXAMPLE:
//
//	format: "{type}_{timestamp}_{uuid}.txt"
//	params: {"type": "wip"}
//	output: "wip_20240115_143022_a1b2c3d4-e5f6-7890-abcd-ef1234567890.txt"
func GenerateOutputFileName(format string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if filepath.Ext(result) == "" {
		result += ".txt"
	}

	return result
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveInputFile moves a processed input file to the archive directory.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if !fm.ArchiveOnSuccess {
		return filePath, nil
	}

	archivePath := filepath.Join(fm.ArchiveDir, filepath.Base(filePath))
	if err := os.MkdirAll(fm.ArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.Rename(filePath, archivePath); err != nil {
		// Rename fails across devices; fall back to copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
