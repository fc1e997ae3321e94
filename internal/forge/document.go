package forge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Dialect and DocVersion are the fixed schema markers the downstream
// structure-prediction tool keys on.
const (
	Dialect    = "alphafold3"
	DocVersion = 2
)

// ProteinEntry is one protein in a document's sequences array.
type ProteinEntry struct {
	ID       []string `json:"id"`
	Sequence string   `json:"sequence"`

	// UnpairedMSAPath is relative to the output root. Omitted when the
	// alignment pipeline failed for the collection.
	UnpairedMSAPath string `json:"unpairedMsaPath,omitempty"`
}

// LigandEntry is one ligand in a document's sequences array. Smiles holds
// the escaper's quoted JSON literal verbatim.
type LigandEntry struct {
	ID     []string        `json:"id"`
	Smiles json.RawMessage `json:"smiles"`
}

// Entry is one element of the sequences array. Exactly one field is set,
// producing the single-key objects the consumer expects.
type Entry struct {
	Protein *ProteinEntry `json:"protein,omitempty"`
	Ligand  *LigandEntry  `json:"ligand,omitempty"`
}

// Document is one structure-prediction input document, serialized once per
// collection and never mutated after that.
type Document struct {
	Name      string  `json:"name"`
	Sequences []Entry `json:"sequences"`
	Dialect   string  `json:"dialect"`
	Version   int     `json:"version"`
}

// AssembleDocument merges a collection's sequences, its alignment artifact
// (nil if the pipeline failed) and its ligand table into one document. All
// protein entries come first in source order, then ligand entries in table
// row order per protein, proteins in collection order. Ligand rows naming a
// protein absent from the collection are dropped with a warning; silently
// ignoring them would hide data-entry errors in the table.
func AssembleDocument(
	name string,
	records []SequenceRecord,
	artifact *AlignmentArtifact,
	ligands map[string][]LigandRecord,
	logger *Logger,
) *Document {
	entries := []Entry{}

	known := make(map[string]bool, len(records))
	for _, r := range records {
		known[r.ID] = true

		protein := &ProteinEntry{
			ID:       []string{r.ID},
			Sequence: r.Residues,
		}
		if artifact != nil {
			protein.UnpairedMSAPath = artifact.FilePath
		}

		entries = append(entries, Entry{Protein: protein})
	}

	for _, r := range records {
		for _, l := range ligands[r.ID] {
			entries = append(entries, Entry{Ligand: &LigandEntry{
				ID:     []string{l.LigandID},
				Smiles: json.RawMessage(l.Smiles),
			}})
		}
	}

	// report unmatched table rows in a stable order
	var unmatched []string
	for proteinID := range ligands {
		if !known[proteinID] {
			unmatched = append(unmatched, proteinID)
		}
	}
	sort.Strings(unmatched)
	for _, proteinID := range unmatched {
		for _, l := range ligands[proteinID] {
			logger.Warnf("dropping ligand %s: no protein %s in %s", l.LigandID, proteinID, name)
		}
	}

	return &Document{
		Name:      name,
		Sequences: entries,
		Dialect:   Dialect,
		Version:   DocVersion,
	}
}

// WriteDocument serializes doc and writes it under dir as <name>.json.
func WriteDocument(dir string, doc *Document) (string, error) {
	out, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize document %s: %v", doc.Name, err)
	}

	path := filepath.Join(dir, doc.Name+".json")
	if err := os.WriteFile(path, out, 0644); err != nil {
		return "", fmt.Errorf("failed to write the document: %v", err)
	}

	return path, nil
}
