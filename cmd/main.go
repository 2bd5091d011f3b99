package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/penwyp/go-tally/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
