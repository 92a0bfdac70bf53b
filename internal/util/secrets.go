package util

import (
	"encoding/json"
	"fmt"
	"os"
)

type Secrets struct {
	AccessCode      string                 `json:"accessCode"`
	Jwt             string                 `json:"jwt"`
	ExchangeRateApi ExchangeRateApiSecrets `json:"exchangeRateApi"`
}

type ExchangeRateApiSecrets struct {
	Key string `json:"key"`
}

func LoadSecrets() (*Secrets, error) {
	secretsFile := "secrets.json"
	if os.Getenv("AODASH_ENV") == "dev" {
		secretsFile = "secrets-dev.json"
	} else if os.Getenv("AODASH_ENV") == "test" {
		secretsFile = "secrets-test.json"
	}
	f, err := os.ReadFile(secretsFile)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", secretsFile, err)
	}

	secrets := Secrets{}
	err = json.Unmarshal(f, &secrets)
	if err != nil {
		return nil, err
	}

	return &secrets, nil
}
