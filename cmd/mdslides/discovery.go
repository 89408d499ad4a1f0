package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdslides/internal/fileutil"
)

// FileToBuild represents a single source file to process.
type FileToBuild struct {
	InputPath string
	OutputDir string
	BaseName  string
}

// discoverFiles finds all markdown files to build.
//
// A file input yields exactly that file; a directory input is walked
// recursively. With no output directory, outputs land next to their source.
// With one, the source tree's relative layout is mirrored under it.
func discoverFiles(inputPath, outputDir string) ([]FileToBuild, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.IsMarkdown(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		return []FileToBuild{fileTarget(inputPath, outputDir, "")}, nil
	}

	var files []FileToBuild
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !fileutil.IsMarkdown(path) {
			return nil
		}
		files = append(files, fileTarget(path, outputDir, inputPath))
		return nil
	})

	return files, err
}

// fileTarget resolves the output directory and base name for one source.
func fileTarget(inputPath, outputDir, baseInputDir string) FileToBuild {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	dir := filepath.Dir(inputPath)
	if outputDir != "" {
		dir = outputDir
		if baseInputDir != "" {
			if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
				dir = filepath.Join(outputDir, filepath.Dir(rel))
			}
		}
	}

	return FileToBuild{InputPath: inputPath, OutputDir: dir, BaseName: base}
}
