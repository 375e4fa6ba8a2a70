// Command formkit renders form documents as HTML, asks for them in the
// terminal, serves them over HTTP and converts OpenAPI operations into
// documents.
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
