package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/systemapi/bridge/internal/infrastructure/config"
	"github.com/systemapi/bridge/internal/server"
)

func main() {
	cfg := config.LoadOrDefault()

	// Flags override the environment for local runs.
	port := flag.String("port", cfg.Server.Port, "Server port")
	libDir := flag.String("lib", cfg.Library.Dir, "Directory containing the native library (probed first)")
	flag.Parse()
	cfg.Server.Port = *port
	cfg.Library.Dir = *libDir

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		if err := srv.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}
}
