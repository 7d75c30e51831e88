package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/latte/cmd/latte"
	"github.com/arthur-debert/latte/internal/version"
)

func main() {
	rootCmd := latte.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "LATTE",
		Section: "1",
		Source:  "latte " + version.Version,
		Manual:  "latte manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
