package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-texmath/internal/config"
	"github.com/alnah/go-texmath/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrInvalidExtension   = errors.New("unsupported file extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// maxWorkers caps --workers.
const maxWorkers = 64

// fileJob is a single file to process. OutputPath is empty for read-only commands.
type fileJob struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds the files accepted by match under inputPath.
// When outputExt is non-empty, each job gets an output path with that
// extension, mirroring the input tree under outputDir.
func discoverFiles(inputPath, outputDir string, match func(string) bool, outputExt string) ([]fileJob, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !match(inputPath) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		job, err := newFileJob(inputPath, outputDir, "", outputExt)
		if err != nil {
			return nil, err
		}
		return []fileJob{job}, nil
	}

	var files []fileJob
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !match(path) {
			return nil
		}
		job, err := newFileJob(path, outputDir, inputPath, outputExt)
		if err != nil {
			return err
		}
		files = append(files, job)
		return nil
	})

	return files, err
}

func newFileJob(inputPath, outputDir, baseInputDir, outputExt string) (fileJob, error) {
	job := fileJob{InputPath: inputPath}
	if outputExt == "" {
		return job, nil
	}
	out, err := resolveOutputPath(inputPath, outputDir, baseInputDir, outputExt)
	if err != nil {
		return fileJob{}, err
	}
	job.OutputPath = out
	return job, nil
}

// resolveOutputPath determines the output path for an input file.
// An outputDir ending in the output extension names a single output file.
func resolveOutputPath(inputPath, outputDir, baseInputDir, outputExt string) (string, error) {
	name, err := fileutil.ReplaceExtension(filepath.Base(inputPath), outputExt)
	if err != nil {
		return "", err
	}

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name), nil
	}

	if baseInputDir == "" && strings.EqualFold(filepath.Ext(outputDir), "."+outputExt) {
		return outputDir, nil
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), name), nil
		}
	}

	return filepath.Join(outputDir, name), nil
}

// resolveInputPath picks the positional input or the configured default directory.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("%w: expected one input, got %d", ErrInvalidFlags, len(args))
	case len(args) == 1:
		return args[0], nil
	case cfg.Input.DefaultDir != "":
		return cfg.Input.DefaultDir, nil
	default:
		return "", ErrNoInput
	}
}

// resolveOutputDir prefers the flag over the configured default directory.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// resolveWorkers picks the first positive of flag and env counts, else
// GOMAXPROCS, capped by the number of files.
func resolveWorkers(flagWorkers, envWorkers, files int) int {
	n := flagWorkers
	if n == 0 {
		n = envWorkers
	}
	if n == 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return max(1, min(n, files))
}
