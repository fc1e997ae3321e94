package forge

import (
	"fmt"
	"os"
	"path/filepath"
)

// Stage names for the four alignment pipeline states.
const (
	StageIndex   = "createdb"
	StageSearch  = "search"
	StageAlign   = "align"
	StageConvert = "convertalis"
)

// ArtifactFormat is the fixed format of every pipeline artifact.
const ArtifactFormat = "A3M-with-backtrace"

// Aligner is the external alignment capability behind the pipeline. The
// real implementation shells out to MMseqs2; tests substitute a fake so
// pipeline sequencing can be checked without the binary.
type Aligner interface {
	// CreateDB builds a queryable database from a FASTA file.
	CreateDB(fasta, db string) error

	// Search queries db against the reference database, writing the hit
	// set to result. tmp is a scratch directory.
	Search(db, result, tmp string, threads int) error

	// Align recomputes alignments for the hit set with backtraces enabled.
	Align(db, result, align string, threads int) error

	// Convert writes the alignment set as a portable A3M file at out.
	Convert(db, align, out string) error
}

// AlignmentArtifact points at the unpaired alignment produced for one
// sequence collection. All sequences of the collection share it.
type AlignmentArtifact struct {
	// Collection is the base name of the source collection
	Collection string

	// FilePath is relative to the output root so documents stay portable
	// when the output directory is moved
	FilePath string

	// Format is always ArtifactFormat
	Format string
}

// Pipeline drives the four-stage MSA generation, one collection at a time:
// index, search, backtrace-enabled align, convert. Stages are strictly
// sequential and are not retried; external tool failures are usually
// deterministic.
type Pipeline struct {
	aligner Aligner
	outDir  string
	threads int
	logger  *Logger
}

// NewPipeline returns a pipeline writing artifacts under outDir.
func NewPipeline(aligner Aligner, outDir string, threads int, logger *Logger) *Pipeline {
	return &Pipeline{
		aligner: aligner,
		outDir:  outDir,
		threads: threads,
		logger:  logger,
	}
}

// Generate runs all four stages for the collection at fastaPath and returns
// its artifact, whose path is relative to the pipeline's output root. Any
// stage failure ends the pipeline for this collection.
func (p *Pipeline) Generate(base, fastaPath string) (*AlignmentArtifact, error) {
	db := filepath.Join(p.outDir, base+"_db")
	result := filepath.Join(p.outDir, base+"_result")
	aligned := filepath.Join(p.outDir, base+"_aligned")
	msaName := base + "_unpaired.a3m"
	msa := filepath.Join(p.outDir, msaName)
	tmp := filepath.Join(p.outDir, "tmp")

	if err := os.MkdirAll(tmp, 0755); err != nil {
		return nil, &PipelineStageError{Stage: StageIndex, Err: err}
	}

	p.logger.Logf("generating unpaired MSA for %s", base)

	if err := p.aligner.CreateDB(fastaPath, db); err != nil {
		return nil, &PipelineStageError{Stage: StageIndex, Err: err}
	}
	if err := p.aligner.Search(db, result, tmp, p.threads); err != nil {
		return nil, &PipelineStageError{Stage: StageSearch, Err: err}
	}
	if err := p.aligner.Align(db, result, aligned, p.threads); err != nil {
		return nil, &PipelineStageError{Stage: StageAlign, Err: err}
	}
	if err := p.aligner.Convert(db, aligned, msa); err != nil {
		return nil, &PipelineStageError{Stage: StageConvert, Err: err}
	}

	// a stage can exit zero and still not write the artifact
	if _, err := os.Stat(msa); err != nil {
		return nil, &PipelineStageError{
			Stage: StageConvert,
			Err:   fmt.Errorf("no alignment artifact at %s", msa),
		}
	}

	return &AlignmentArtifact{
		Collection: base,
		FilePath:   msaName,
		Format:     ArtifactFormat,
	}, nil
}
