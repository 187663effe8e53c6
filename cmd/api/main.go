package main

import (
	"log"

	"github.com/Kurller/Remote-job-Application-Manager/internal/bootstrap"
	"github.com/Kurller/Remote-job-Application-Manager/internal/server"
	"github.com/Kurller/Remote-job-Application-Manager/internal/shared/config"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
