package main

import (
	"os"

	gridscopecmder "github.com/gridscope/gridscope/cmd/gridscope"
)

func main() {
	cmd := gridscopecmder.NewGridscopeCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
