// Command fpoctl loads a producer organization dataset and prints directory
// pages and dashboards as JSON.
package main

import (
	"fmt"
	"os"
)

var exitFunc = os.Exit

func main() {
	if err := newRootCmd(defaultEnv()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fpoctl:", err)
		exitFunc(1)
	}
}
