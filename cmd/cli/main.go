package main

import (
	"log"

	clicmd "github.com/allanboury/ao-trading-dasboard/cmd/cli/cmd"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := clicmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
