// Command heartctl is a terminal client for the Heart API.
package main

import (
	"os"

	"github.com/oksasatya/heart-api/cmd/heartctl/cmd"
)

func main() {
	if err := cmd.NewRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
