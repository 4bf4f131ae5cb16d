package main

import (
	"fmt"
	"os"

	"github.com/dianpeng/byoo/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR %s\n", err)
		os.Exit(-1)
	}
}
