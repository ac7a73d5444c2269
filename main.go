package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/inferahq/infera/cmd"
)

func main() {
	// Local overrides for API keys and service endpoints. Missing file is
	// fine.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
