// OxLipidome - oxidized lipidome size estimation tool
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/ChrisMcGann/OxLipidome/cmd/oxlipidome/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
