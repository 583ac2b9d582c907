package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jtbits/baboogee/pkg/server"
)

func main() {
	address := flag.String("address", "0.0.0.0:42069", "address to listen on")
	configPath := flag.String("config", "", "optional YAML config file overriding the defaults")
	mapHeight := flag.Int("map-height", 0, "fixed map height, used only with a non-zero -map-width (0 = random in [20,50))")
	mapWidth := flag.Int("map-width", 0, "fixed map width, used only with a non-zero -map-height (0 = random in [20,50))")
	radius := flag.Int("radius", 5, "default player visibility radius")
	hp := flag.Int("hp", 10, "default player hit points")
	weaponRange := flag.Int("weapon-range", 5, "default weapon range in cells")
	weaponDamage := flag.Int("weapon-damage", 1, "default weapon damage per hit")
	spawnRetries := flag.Int("spawn-retries", 16, "random spawn placement attempts before falling back to a scan")
	flag.Parse()

	var config server.Config
	if *configPath != "" {
		var err error
		config, err = server.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", *configPath, err)
		}
	} else {
		config = server.DefaultConfig()
	}

	// Only apply flags the user actually passed, so a -config file's values
	// aren't silently clobbered by the flag package's zero-value defaults.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "address":
			config.Address = *address
		case "map-height":
			config.MapHeight = uint16(*mapHeight)
		case "map-width":
			config.MapWidth = uint16(*mapWidth)
		case "radius":
			config.Radius = uint8(*radius)
		case "hp":
			config.HP = uint8(*hp)
		case "weapon-range":
			config.WeaponRange = uint8(*weaponRange)
		case "weapon-damage":
			config.WeaponDamage = uint8(*weaponDamage)
		case "spawn-retries":
			config.SpawnRetries = *spawnRetries
		}
	})

	srv := server.New(config)
	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Printf("BABOOGEE server started")
	log.Printf("Address: %s", config.Address)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("Shutting down server (received signal: %v)...", sig)

	srv.Stop()
	log.Println("Server stopped.")
}
