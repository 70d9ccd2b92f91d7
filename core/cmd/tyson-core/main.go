package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	tyson "github.com/rphilander/tyson/core"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := tyson.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	core, err := tyson.NewCore(cfg)
	if err != nil {
		log.Fatalf("failed to start core: %v", err)
	}

	// Handle shutdown signals
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Println("shutting down...")
		core.Shutdown()
		os.Exit(0)
	}()

	transcript := cfg.Transcript
	if transcript == "" {
		transcript = "off"
	}
	log.Printf("tyson core %s listening on %s (transcript: %s)", tyson.Version, cfg.Socket, transcript)
	core.Run()
}
