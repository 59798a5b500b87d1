package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/jask/splashgate/internal/config"
)

func main() {
	output := flag.String("output", "", "output path for the config template (default $SPLASHGATE_CONFIG or ~/.config/splashgate/config.toml)")
	validate := flag.Bool("validate", false, "validate an existing config file instead of writing one")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	target := *output
	if target == "" {
		target = os.Getenv("SPLASHGATE_CONFIG")
	}
	if target == "" {
		target = filepath.Join(os.Getenv("HOME"), ".config", "splashgate", "config.toml")
	}

	if *validate {
		if err := os.Setenv("SPLASHGATE_CONFIG", target); err != nil {
			log.Fatal(err)
		}
		if _, err := config.Load(); err != nil {
			log.Fatal(err)
		}
		log.Printf("Validated config at %s", target)
		return
	}

	if err := config.WriteTemplate(target, config.Default(), *force); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote config template to %s", target)
}
