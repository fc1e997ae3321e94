package forge

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// fakeEscaper quotes values without shelling out to jq.
type fakeEscaper struct {
	// fail lists values the escaper should reject
	fail map[string]bool
}

func (f *fakeEscaper) Escape(value string) (string, error) {
	if f.fail[value] {
		return "", &EscapeFailure{Value: value, Err: errors.New("exit status 2")}
	}

	literal, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(literal), nil
}

func TestLoadLigands(t *testing.T) {
	logger := newLogger(io.Discard, false)

	writeDir := func(t *testing.T, files map[string]string) string {
		dir := t.TempDir()
		for name, contents := range files {
			if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644); err != nil {
				t.Fatal(err)
			}
		}
		return dir
	}

	tests := []struct {
		name       string
		files      map[string]string
		collection string
		escaper    *fakeEscaper
		want       map[string][]LigandRecord
	}{
		{
			"companion table preferred over the fallback",
			map[string]string{
				"cyp1.tsv":    "sp|P1|X\tLIG1\tCCO\n",
				"Uniform.tsv": "sp|P1|X\tWRONG\tCCC\n",
			},
			"cyp1.fasta",
			&fakeEscaper{},
			map[string][]LigandRecord{
				"sp|P1|X": {{ProteinID: "sp|P1|X", LigandID: "LIG1", Smiles: `"CCO"`}},
			},
		},
		{
			"fallback used when no companion exists",
			map[string]string{
				"Uniform.tsv": "sp|P2|Y\tLIG2\tCCN\n",
			},
			"cyp2.fasta",
			&fakeEscaper{},
			map[string][]LigandRecord{
				"sp|P2|Y": {{ProteinID: "sp|P2|Y", LigandID: "LIG2", Smiles: `"CCN"`}},
			},
		},
		{
			"missing table and fallback yield an empty mapping",
			map[string]string{},
			"cyp3.fasta",
			&fakeEscaper{},
			map[string][]LigandRecord{},
		},
		{
			"short rows are skipped, later rows kept",
			map[string]string{
				"cyp4.tsv": "sp|P1|X\tLIG1\n\nsp|P1|X\tLIG2\tCCO\n",
			},
			"cyp4.fasta",
			&fakeEscaper{},
			map[string][]LigandRecord{
				"sp|P1|X": {{ProteinID: "sp|P1|X", LigandID: "LIG2", Smiles: `"CCO"`}},
			},
		},
		{
			"escape failure drops only the offending row",
			map[string]string{
				"cyp5.tsv": "sp|P1|X\tBAD\tC(C\nsp|P1|X\tGOOD\tCCO\n",
			},
			"cyp5.fasta",
			&fakeEscaper{fail: map[string]bool{"C(C": true}},
			map[string][]LigandRecord{
				"sp|P1|X": {{ProteinID: "sp|P1|X", LigandID: "GOOD", Smiles: `"CCO"`}},
			},
		},
		{
			"row order preserved and duplicates passed through",
			map[string]string{
				"cyp6.tsv": "sp|P1|X\tLIG1\tCCO\nsp|P1|X\tLIG1\tCCO\nsp|P1|X\tLIG2\tCCN\n",
			},
			"cyp6.fasta",
			&fakeEscaper{},
			map[string][]LigandRecord{
				"sp|P1|X": {
					{ProteinID: "sp|P1|X", LigandID: "LIG1", Smiles: `"CCO"`},
					{ProteinID: "sp|P1|X", LigandID: "LIG1", Smiles: `"CCO"`},
					{ProteinID: "sp|P1|X", LigandID: "LIG2", Smiles: `"CCN"`},
				},
			},
		},
		{
			"extra columns are ignored",
			map[string]string{
				"cyp7.tsv": "sp|P1|X\tLIG1\tCCO\tcomment column\n",
			},
			"cyp7.fasta",
			&fakeEscaper{},
			map[string][]LigandRecord{
				"sp|P1|X": {{ProteinID: "sp|P1|X", LigandID: "LIG1", Smiles: `"CCO"`}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeDir(t, tt.files)

			got, err := LoadLigands(dir, tt.collection, tt.escaper, logger)
			if err != nil {
				t.Fatalf("LoadLigands() error = %v, want nil", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LoadLigands() = %v, want %v", got, tt.want)
			}
		})
	}
}
