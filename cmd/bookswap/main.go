// Command bookswap runs the book swapping marketplace: the HTTP API, the schema migration and a load generator.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
