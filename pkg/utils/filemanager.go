// =============================================================================
// BI Update - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the pipeline:
//   - Resolving input and output paths inside the data directory
//   - Removing the source exports once both outputs exist
//   - Run identifiers for log correlation
//
// The report exports and the generated workbooks share one directory, by
// default the parent of the working directory.
//
// =============================================================================

package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for one run.
type FileManager struct {
	// DataDir holds the exports and receives the outputs.
	DataDir string
}

// NewFileManager creates a new FileManager rooted at dataDir.
func NewFileManager(dataDir string) *FileManager {
	return &FileManager{DataDir: dataDir}
}

// InputPath returns the path of an export in the data directory.
// Absolute names are returned unchanged.
func (fm *FileManager) InputPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(fm.DataDir, name)
}

// OutputBase returns the output path without extension. A trailing
// ".xlsx" typed by the user is dropped so it is not doubled.
func (fm *FileManager) OutputBase(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(fm.DataDir, name)
}

// =============================================================================
// SOURCE REMOVAL
// =============================================================================

// RemoveSources deletes each of the given files.
//
// RETURNS:
//   - An error joining every failure. A file that is already gone counts as
//     removed.
func (fm *FileManager) RemoveSources(paths ...string) error {
	var errs []error
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}

// =============================================================================
// RUN IDENTIFIERS
// =============================================================================

// NewRunID returns a random identifier attached to every log entry of a run.
func NewRunID() string {
	return uuid.New().String()
}
