package forge

import (
	"os"
	"path/filepath"
	"strings"
)

// uniformTable is the shared fallback table used when a collection has no
// companion table of its own.
const uniformTable = "Uniform.tsv"

// LigandRecord is one row of a ligand table.
type LigandRecord struct {
	// ProteinID is the protein the ligand is paired with
	ProteinID string

	// LigandID identifies the small molecule
	LigandID string

	// Smiles is the escaped SMILES string as a quoted JSON literal
	Smiles string
}

// ligandTablePath returns the companion table for a collection file name,
// falling back to the shared Uniform.tsv when no companion exists.
func ligandTablePath(dir, collection string) string {
	base := strings.TrimSuffix(collection, filepath.Ext(collection))
	companion := filepath.Join(dir, base+".tsv")
	if _, err := os.Stat(companion); err == nil {
		return companion
	}

	return filepath.Join(dir, uniformTable)
}

// LoadLigands reads the ligand table paired with a collection into a map
// from protein identifier to its rows, preserving row order per protein.
// A missing table (and a missing fallback) is not an error: the result is
// simply empty. Bad rows and SMILES strings the escaper rejects are dropped
// with a warning so one bad record cannot block the rest of the document.
func LoadLigands(dir, collection string, esc Escaper, logger *Logger) (map[string][]LigandRecord, error) {
	path := ligandTablePath(dir, collection)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string][]LigandRecord{}, nil
	}
	if err != nil {
		return nil, err
	}

	ligands := make(map[string][]LigandRecord)
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// tab-split directly: SMILES strings may contain quotes that a
		// CSV reader would misinterpret
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			logger.Warnf("skipping row: %v", &MalformedTableError{Path: path, Line: i + 1})
			continue
		}

		proteinID, ligandID, smiles := fields[0], fields[1], fields[2]
		escaped, err := esc.Escape(smiles)
		if err != nil {
			logger.Warnf("dropping ligand %s for protein %s: %v", ligandID, proteinID, err)
			continue
		}

		ligands[proteinID] = append(ligands[proteinID], LigandRecord{
			ProteinID: proteinID,
			LigandID:  ligandID,
			Smiles:    escaped,
		})
	}

	return ligands, nil
}
