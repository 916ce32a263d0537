// Command braidcrypt-cli runs the braid group protocols from the shell.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := CLI().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "braidcrypt-cli: %v\n", err)
		os.Exit(1)
	}
}
