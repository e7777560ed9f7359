package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/nfvri/lora-telemetry-sim/cmd/telemetry-sim/app"
)

func main() {
	if err := app.NewRootCommand().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
