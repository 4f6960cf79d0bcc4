package main

import (
	"fmt"
	"os"

	"github.com/Rana718/stockseed/cmd"
	"github.com/fatih/color"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !cmd.AlreadyReported(err) {
			fmt.Fprintln(os.Stderr, color.RedString("❌ Error: %v", err))
		}
		os.Exit(1)
	}
}
