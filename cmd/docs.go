package cmd

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// header required by the just-the-docs theme
// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
const docHeader = `---
layout: default
title: %s
---
`

// docsCmd writes markdown documentation for the command tree.
var docsCmd = &cobra.Command{
	Use:    "docs",
	Short:  "Generate markdown documentation for the forge commands",
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		if err := doc.GenMarkdownTreeCustom(RootCmd, "./docs", filePrepender, linkHandler); err != nil {
			fmt.Println(err.Error())
		}
	},
}

// filePrepender adds the YAML heading to each command's page.
func filePrepender(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))

	return fmt.Sprintf(docHeader, strings.ReplaceAll(base, "_", " "))
}

// linkHandler returns the URL to a documentation page.
func linkHandler(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))

	if base == "forge" {
		return "/"
	}
	return base
}

func init() {
	RootCmd.AddCommand(docsCmd)
}
