package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vivekabarath/AlphaInputForge/config"
	"github.com/vivekabarath/AlphaInputForge/internal/forge"
)

// generateCmd turns every FASTA collection in a folder into an AlphaFold3
// input JSON document.
var generateCmd = &cobra.Command{
	Use:                        "generate",
	Short:                      "Generate AlphaFold3 input JSON for every FASTA collection in a folder",
	Run:                        runGenerate,
	SuggestionsMinimumDistance: 3,
	Aliases:                    []string{"gen"},
	Long: `Generate AlphaFold3 input JSON documents from a folder of FASTA files.

For each collection an unpaired MSA is built with MMseqs2 (createdb, search,
align with backtraces, convertalis) against a pre-built reference database.
Ligands are read from a companion "<collection>.tsv" table, or "Uniform.tsv"
as a fallback, and their SMILES strings are JSON-escaped with jq. Each
document lists all protein entries first, then any ligand entries. A failed
MSA degrades that collection's document; it does not stop the run.`,
}

func runGenerate(cmd *cobra.Command, args []string) {
	c := config.New()
	if err := c.Validate(); err != nil {
		cmd.Help()
		stderr.Fatalf("%v", err)
	}

	mode, err := conflictMode(c)
	if err != nil {
		stderr.Fatalf("%v", err)
	}

	outDir, err := forge.PrepareOutputDir(c.Output, mode)
	if err != nil {
		stderr.Fatalf("failed to prepare the output directory: %v", err)
	}

	logger, err := forge.NewLogger(filepath.Join(outDir, "process.log"), c.Verbose)
	if err != nil {
		stderr.Fatalf("failed to open the run log: %v", err)
	}
	defer logger.Close()

	statuses, err := forge.Run(forge.RunOptions{
		InputDir:  c.Input,
		OutputDir: outDir,
		Threads:   c.CPU,
		Aligner:   &forge.MMseqs{Bin: c.MMseqsBin, RefDB: c.MMseqsDB},
		Escaper:   &forge.JQEscaper{},
		Logger:    logger,
	})
	if err != nil {
		stderr.Fatalf("%v", err)
	}

	failed := 0
	for _, s := range statuses {
		if s.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		stderr.Fatalf("%d of %d collections failed, see %s", failed, len(statuses), filepath.Join(outDir, "process.log"))
	}
}

// conflictMode maps the on-conflict flag to a mode, prompting the operator
// when the flag is unset and the output folder already exists. The answer
// holds for the entire run.
func conflictMode(c config.Config) (forge.ConflictMode, error) {
	switch c.OnConflict {
	case "replace":
		return forge.ConflictReplace, nil
	case "new":
		return forge.ConflictNew, nil
	}

	if _, err := os.Stat(c.Output); os.IsNotExist(err) {
		return forge.ConflictUnset, nil
	}

	fmt.Printf("Output folder '%s' already exists. Delete it and create a new one? (y/n): ", c.Output)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return forge.ConflictUnset, fmt.Errorf("failed to read the answer: %v", err)
	}

	if strings.EqualFold(strings.TrimSpace(answer), "y") {
		return forge.ConflictReplace, nil
	}
	return forge.ConflictNew, nil
}

// set flags
func init() {
	generateCmd.Flags().StringP("in", "i", "", "path to the folder of FASTA collections and ligand tables")
	generateCmd.Flags().StringP("out", "o", "", "path to the output folder")
	generateCmd.Flags().IntP("cpu", "c", 1, "worker count passed to the MMseqs2 stages")
	generateCmd.Flags().StringP("mmseqs", "m", "mmseqs", "path to the MMseqs2 binary")
	generateCmd.Flags().StringP("db", "d", "", "path to the pre-built MMseqs2 reference database")
	generateCmd.Flags().BoolP("verbose", "v", false, "whether to echo log entries to the console")
	generateCmd.Flags().String("on-conflict", "", `how to resolve an existing output folder: "replace" or "new"`)

	generateCmd.MarkFlagRequired("in")
	generateCmd.MarkFlagRequired("out")
	generateCmd.MarkFlagRequired("db")

	viper.BindPFlag("in", generateCmd.Flags().Lookup("in"))
	viper.BindPFlag("out", generateCmd.Flags().Lookup("out"))
	viper.BindPFlag("cpu", generateCmd.Flags().Lookup("cpu"))
	viper.BindPFlag("mmseqs", generateCmd.Flags().Lookup("mmseqs"))
	viper.BindPFlag("db", generateCmd.Flags().Lookup("db"))
	viper.BindPFlag("verbose", generateCmd.Flags().Lookup("verbose"))
	viper.BindPFlag("on-conflict", generateCmd.Flags().Lookup("on-conflict"))

	RootCmd.AddCommand(generateCmd)
}
