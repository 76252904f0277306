package main

import (
	"log"

	"github.com/Rullyeff/imo-mantap-sehat-app/internal/app"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/config"
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
