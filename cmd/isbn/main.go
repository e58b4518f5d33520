package main

import (
	"os"

	"github.com/iziplay/isbn-api/cmd/isbn/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
