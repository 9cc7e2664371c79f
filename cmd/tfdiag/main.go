package main

import (
	"os"

	"github.com/nerdtronik/tfdiag/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
