package main

import (
	"log"

	"github.com/abolfazl-babaei01/love-code-learn-api/internal/app"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
