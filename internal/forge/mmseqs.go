package forge

import (
	"fmt"
	"os/exec"
	"strconv"
)

// maxSearchHits caps the homologs kept per query during search.
const maxSearchHits = "1000"

// MMseqs is the Aligner backed by the MMseqs2 binary. Every method blocks
// until the subprocess exits.
type MMseqs struct {
	// Bin is the path to the mmseqs binary
	Bin string

	// RefDB is the pre-built reference database searched for homologs
	RefDB string
}

// CreateDB builds a local MMseqs2 database from a FASTA file.
func (m *MMseqs) CreateDB(fasta, db string) error {
	return m.run("createdb", fasta, db)
}

// Search runs the profile search against the reference database.
func (m *MMseqs) Search(db, result, tmp string, threads int) error {
	return m.run(
		"search", db, m.RefDB, result, tmp,
		"--threads", strconv.Itoa(threads),
		"--max-seqs", maxSearchHits,
	)
}

// Align recomputes the hit set with -a so the backtrace CIGAR the
// downstream consumer needs is retained.
func (m *MMseqs) Align(db, result, align string, threads int) error {
	return m.run(
		"align", db, m.RefDB, result, align,
		"--threads", strconv.Itoa(threads),
		"-a",
	)
}

// Convert writes the alignments in A3M (--format-mode 3).
func (m *MMseqs) Convert(db, align, out string) error {
	return m.run("convertalis", db, m.RefDB, align, out, "--format-mode", "3")
}

// run calls the external mmseqs binary and waits on it to finish.
func (m *MMseqs) run(args ...string) error {
	cmd := exec.Command(m.Bin, args...)

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to execute mmseqs %s: %v: %s", args[0], err, string(output))
	}

	return nil
}
