// Retention engine decides how long case material must be kept after a court
// hearing, from the judicial results, verdicts and sentencing prompts recorded
// against each defendant.
//
// Usage:
//
//	# Serve the HTTP API
//	retention-engine serve --config config.yaml
//
//	# Evaluate one hearing result file
//	retention-engine evaluate --file hearing.json --pretty
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
