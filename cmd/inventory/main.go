package main

import (
	"fmt"
	"os"

	"smallbiz_inventory/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
