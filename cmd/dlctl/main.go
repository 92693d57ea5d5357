// Command dlctl performs scalar and point arithmetic on the SM2 and
// secp256k1 groups.
package main

import (
	"fmt"
	"os"

	"github.com/smallyu/go-dislog/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
