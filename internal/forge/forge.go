// Package forge turns folders of FASTA sequence collections and ligand
// tables into AlphaFold3 input documents, generating one unpaired MSA per
// collection through an external alignment capability.
package forge

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ConflictMode says how an already-existing output directory is resolved.
// The choice is made once, before any collection is processed.
type ConflictMode int

const (
	// ConflictUnset means no choice was made; an existing directory is an error
	ConflictUnset ConflictMode = iota

	// ConflictReplace deletes the existing directory and recreates it
	ConflictReplace

	// ConflictNew keeps the existing directory and allocates a
	// timestamp-suffixed sibling for this run
	ConflictNew
)

// CollectionStatus is the per-collection outcome of a run.
type CollectionStatus struct {
	// Collection is the source file name
	Collection string

	// Document is the path of the written document, empty on failure
	Document string

	// Degraded is true when the document was written without an MSA path
	Degraded bool

	// Err is set when the collection produced no document
	Err error
}

// RunOptions carries everything one run of the coordinator needs.
type RunOptions struct {
	// InputDir holds the FASTA collections and their ligand tables
	InputDir string

	// OutputDir is the already-prepared output root
	OutputDir string

	// Threads is passed through to the alignment stages
	Threads int

	Aligner Aligner
	Escaper Escaper
	Logger  *Logger
}

// PrepareOutputDir resolves the output location before a run starts. A
// nonexistent path is simply created. An existing path is replaced, kept
// alongside a fresh timestamped sibling, or rejected, per mode. The
// returned path is the directory the whole run writes to.
func PrepareOutputDir(path string, mode ConflictMode) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, os.MkdirAll(path, 0755)
	}

	switch mode {
	case ConflictReplace:
		if err := os.RemoveAll(path); err != nil {
			return "", fmt.Errorf("failed to delete output directory %s: %v", path, err)
		}
		return path, os.MkdirAll(path, 0755)
	case ConflictNew:
		fresh := strings.TrimRight(path, "/\\") + "_" + time.Now().Format("20060102_150405")
		return fresh, os.MkdirAll(fresh, 0755)
	default:
		return "", &OutputConflictError{Path: path}
	}
}

// Run processes every FASTA collection in opts.InputDir in name order.
// One collection's failure never stops the others: a batch of N inputs
// yields up to N documents.
func Run(opts RunOptions) ([]CollectionStatus, error) {
	collections, err := listCollections(opts.InputDir)
	if err != nil {
		return nil, err
	}
	if len(collections) == 0 {
		opts.Logger.Warnf("no FASTA files found in %s", opts.InputDir)
		return nil, nil
	}

	pipeline := NewPipeline(opts.Aligner, opts.OutputDir, opts.Threads, opts.Logger)

	var statuses []CollectionStatus
	for _, name := range collections {
		statuses = append(statuses, processCollection(opts, pipeline, name))
	}

	logSummary(opts.Logger, statuses)

	return statuses, nil
}

// processCollection runs one collection through load, align, assemble and
// write. A failed pipeline degrades the document instead of dropping it.
func processCollection(opts RunOptions, pipeline *Pipeline, name string) CollectionStatus {
	status := CollectionStatus{Collection: name}
	opts.Logger.Logf("processing %s", name)

	records, err := ReadCollection(filepath.Join(opts.InputDir, name))
	if err != nil {
		opts.Logger.Errorf("skipping %s: %v", name, err)
		status.Err = err
		return status
	}

	ligands, err := LoadLigands(opts.InputDir, name, opts.Escaper, opts.Logger)
	if err != nil {
		opts.Logger.Errorf("skipping %s: failed to read ligand table: %v", name, err)
		status.Err = err
		return status
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	artifact, err := pipeline.Generate(base, filepath.Join(opts.InputDir, name))
	if err != nil {
		// still emit the document, just without an alignment path
		opts.Logger.Errorf("MSA generation failed for %s, writing degraded document: %v", name, err)
		artifact = nil
		status.Degraded = true
	}

	doc := AssembleDocument(name, records, artifact, ligands, opts.Logger)

	path, err := WriteDocument(opts.OutputDir, doc)
	if err != nil {
		opts.Logger.Errorf("%v", err)
		status.Err = err
		return status
	}

	status.Document = path
	opts.Logger.Logf("completed %s -> %s", name, path)

	return status
}

// listCollections returns the FASTA file names in dir, sorted.
func listCollections(dir string) ([]string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var collections []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(f.Name()), ".fasta") {
			collections = append(collections, f.Name())
		}
	}
	sort.Strings(collections)

	return collections, nil
}

// logSummary writes the end-of-run success/degraded/failed counts.
func logSummary(logger *Logger, statuses []CollectionStatus) {
	succeeded, degraded, failed := 0, 0, 0
	for _, s := range statuses {
		switch {
		case s.Err != nil:
			failed++
		case s.Degraded:
			degraded++
		default:
			succeeded++
		}
	}

	logger.Logf("run complete: %d succeeded, %d degraded, %d failed", succeeded, degraded, failed)
}
