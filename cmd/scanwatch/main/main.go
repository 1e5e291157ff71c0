package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/scanwatch/cmd/scanwatch"
	"github.com/arthur-debert/scanwatch/pkg/style"
)

func main() {
	rootCmd := scanwatch.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		errorStyle := style.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
