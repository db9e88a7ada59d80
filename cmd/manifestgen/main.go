package main

import (
	"fmt"
	"os"

	"github.com/GriffinCanCode/manifestgen/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err.Error())
		os.Exit(1)
	}
}
