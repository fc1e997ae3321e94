package main

import (
	"github.com/vivekabarath/AlphaInputForge/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
