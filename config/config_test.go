package config

import (
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Input:     "./in",
		Output:    "./out",
		CPU:       4,
		MMseqsBin: "mmseqs",
		MMseqsDB:  "./uniref90",
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			"valid settings",
			func(c *Config) {},
			false,
		},
		{
			"conflict mode replace",
			func(c *Config) { c.OnConflict = "replace" },
			false,
		},
		{
			"conflict mode new",
			func(c *Config) { c.OnConflict = "new" },
			false,
		},
		{
			"missing input",
			func(c *Config) { c.Input = "" },
			true,
		},
		{
			"missing output",
			func(c *Config) { c.Output = "" },
			true,
		},
		{
			"zero cpu count",
			func(c *Config) { c.CPU = 0 },
			true,
		},
		{
			"missing mmseqs binary",
			func(c *Config) { c.MMseqsBin = "" },
			true,
		},
		{
			"missing reference database",
			func(c *Config) { c.MMseqsDB = "" },
			true,
		},
		{
			"unknown conflict mode",
			func(c *Config) { c.OnConflict = "overwrite" },
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)

			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
