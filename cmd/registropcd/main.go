package main

import (
	"log"

	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/app"
	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/config"
)

func main() {
	cfg := config.MustLoad()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("app init: %v", err)
	}

	if err = application.Run(); err != nil {
		log.Fatalf("app run: %v", err)
	}
}
