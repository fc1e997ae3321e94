package forge

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/biogo/seq/linear"
)

// SequenceRecord is one protein sequence parsed from a FASTA collection.
// Records keep the order they appear in the source file; that order is the
// canonical order of protein entries in the output document.
type SequenceRecord struct {
	// ID is the header token between '>' and the first whitespace
	ID string

	// Residues is the record's residue string
	Residues string
}

// residueAlphabet is the accepted residue set: the twenty standard amino
// acids, the common ambiguity codes, stop and gap.
const residueAlphabet = "ACDEFGHIKLMNPQRSTVWYXUOBZ*-"

// ReadCollection parses a FASTA sequence collection into ordered records.
// Residues outside the accepted alphabet and duplicate identifiers within
// the collection are hard errors: downstream ligand matching requires
// unique identifiers.
func ReadCollection(path string) ([]SequenceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	template := &linear.Seq{Annotation: seq.Annotation{Alpha: alphabet.Protein}}
	reader := fasta.NewReader(f, template)

	var records []SequenceRecord
	seen := make(map[string]bool)
	for {
		next, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MalformedInputError{Path: path, Reason: err.Error()}
		}

		id := next.Name()
		if i := strings.IndexAny(id, " \t"); i >= 0 {
			id = id[:i]
		}
		if id == "" {
			return nil, &MalformedInputError{Path: path, Reason: "record with an empty identifier"}
		}
		if seen[id] {
			return nil, &MalformedInputError{
				Path:   path,
				Reason: fmt.Sprintf("duplicate identifier %s", id),
			}
		}
		seen[id] = true

		residues := next.(*linear.Seq).Seq.String()
		if bad := invalidResidue(residues); bad != 0 {
			return nil, &MalformedInputError{
				Path:   path,
				Reason: fmt.Sprintf("invalid residue %q in record %s", bad, id),
			}
		}

		records = append(records, SequenceRecord{ID: id, Residues: residues})
	}

	if len(records) == 0 {
		return nil, &MalformedInputError{Path: path, Reason: "no sequence records"}
	}

	return records, nil
}

// invalidResidue returns the first residue outside the accepted alphabet,
// or 0 if the whole string is valid.
func invalidResidue(residues string) rune {
	for _, r := range residues {
		if !strings.ContainsRune(residueAlphabet, unicode.ToUpper(r)) {
			return r
		}
	}

	return 0
}
