// main is the entry point for the pmfstudio CLI.
package main

import (
	"github.com/handpartners/pmfstudio/cmd"
	"github.com/handpartners/pmfstudio/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
