// =============================================================================
// Cartorio Audit - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the auditor:
//   - Input discovery and scanning
//   - JSON report writing with collision-free names
//   - Corrected-document writing
//   - Archival of successfully processed inputs
//   - Directory management
//
// ARCHIVAL STRATEGY:
//   - Input files are moved to the archive directory after successful
//     processing (archival disabled when no directory is configured)
//   - Failed files remain in their original location
//   - Reports are never archived; they live in the output directory
//
// =============================================================================

package utils

import (
	"encoding/json"
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

// FileManager handles file operations for the auditor.
type FileManager struct {
	// InputDir is scanned for filings to process.
	InputDir string

	// OutputDir receives reports and corrected documents.
	OutputDir string

	// ArchiveDir receives successfully processed inputs. Empty disables
	// archival.
	ArchiveDir string
}

// NewFileManager creates a FileManager over the configured directories.
func NewFileManager(inputDir, outputDir, archiveDir string) *FileManager {
	return &FileManager{
		InputDir:   inputDir,
		OutputDir:  outputDir,
		ArchiveDir: archiveDir,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates the configured directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{fm.InputDir, fm.OutputDir}
	if fm.ArchiveDir != "" {
		dirs = append(dirs, fm.ArchiveDir)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles scans the input directory for files matching the
// glob pattern. Directories are filtered out.
func (fm *FileManager) DiscoverInputFiles(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}

	files, err := filepath.Glob(filepath.Join(fm.InputDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	var result []string
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			result = append(result, file)
		}
	}

	return result, nil
}

// =============================================================================
// REPORT WRITING
// =============================================================================

// WriteReport marshals a report to indented JSON under the output
// directory. The name combines the prefix, a timestamp and a short unique
// suffix so concurrent runs never collide. Returns the written path.
func (fm *FileManager) WriteReport(prefix string, report interface{}) (string, error) {
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%s.json",
		prefix,
		time.Now().Format("20060102_150405"),
		strings.Split(uuid.New().String(), "-")[0],
	)
	path := filepath.Join(fm.OutputDir, name)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}

// WriteOutput writes a corrected document next to the reports, deriving
// the name from the source file. Returns the written path.
func (fm *FileManager) WriteOutput(sourcePath string, data []byte) (string, error) {
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	base := filepath.Base(sourcePath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext) + "_corrigido" + ext
	path := filepath.Join(fm.OutputDir, name)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write corrected document: %w", err)
	}

	return path, nil
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// ArchiveInput moves a processed input into the archive directory. A
// no-op when archival is disabled. Cross-device moves fall back to
// copy-and-remove.
func (fm *FileManager) ArchiveInput(path string) error {
	if fm.ArchiveDir == "" {
		return nil
	}
	if err := os.MkdirAll(fm.ArchiveDir, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	dest := filepath.Join(fm.ArchiveDir, filepath.Base(path))
	if err := os.Rename(path, dest); err == nil {
		return nil
	}

	if err := copyFile(path, dest); err != nil {
		return fmt.Errorf("failed to archive %s: %w", path, err)
	}
	return os.Remove(path)
}

// copyFile copies src to dst, preserving content only.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
