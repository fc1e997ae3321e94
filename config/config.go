// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config is the root-level settings struct, populated from the command
// line flags bound through Viper.
type Config struct {
	// path to the folder of FASTA collections and ligand tables
	Input string `mapstructure:"in"`

	// path to the output folder for documents and alignment artifacts
	Output string `mapstructure:"out"`

	// worker count passed through to the alignment stages
	CPU int `mapstructure:"cpu"`

	// path to the MMseqs2 binary
	MMseqsBin string `mapstructure:"mmseqs"`

	// path to the pre-built MMseqs2 reference database
	MMseqsDB string `mapstructure:"db"`

	// whether to echo log entries to the console
	Verbose bool `mapstructure:"verbose"`

	// how to resolve an existing output folder: "", "replace" or "new"
	OnConflict string `mapstructure:"on-conflict"`
}

// New returns a new Config struct populated by Viper settings.
func New() Config {
	var c Config

	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode into struct, %v", err)
	}

	return c
}

// Validate checks that the settings describe a runnable job.
func (c Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("no input path set")
	}
	if c.Output == "" {
		return fmt.Errorf("no output path set")
	}
	if c.CPU < 1 {
		return fmt.Errorf("cpu count must be positive, got %d", c.CPU)
	}
	if c.MMseqsBin == "" {
		return fmt.Errorf("no mmseqs binary set")
	}
	if c.MMseqsDB == "" {
		return fmt.Errorf("no mmseqs reference database set")
	}

	switch c.OnConflict {
	case "", "replace", "new":
	default:
		return fmt.Errorf("unknown on-conflict mode %q", c.OnConflict)
	}

	return nil
}
