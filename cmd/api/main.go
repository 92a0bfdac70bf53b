package main

import (
	"log"

	"github.com/allanboury/ao-trading-dasboard/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// a missing .env just means the environment is already set
	_ = godotenv.Load()

	cfg, err := cmd.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	apiHandler, err := cmd.InitializeDependencies(cfg)
	if err != nil {
		log.Fatal(err)
	}

	err = apiHandler.StartApi(cfg.Port)
	if err != nil {
		log.Fatal(err)
	}
}
