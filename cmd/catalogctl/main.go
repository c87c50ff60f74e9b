// Command catalogctl inspects the storefront catalog: list records, show one,
// preview its related set and print the JSON-LD the web server would emit.
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
