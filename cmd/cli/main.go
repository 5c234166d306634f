// tally - totals for header-prefixed numeric text files
//
// tally reads files whose first line is a description, skips the '#' comment
// block that follows it, and adds up the integer on every remaining line.
package main

import (
	"os"

	"github.com/ccollicutt/tally/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
