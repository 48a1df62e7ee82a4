package main

import (
	"os"

	"github.com/shini4i/render-watcher/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
