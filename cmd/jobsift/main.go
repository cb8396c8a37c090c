package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Optional; config values may reference env vars set in .env.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
