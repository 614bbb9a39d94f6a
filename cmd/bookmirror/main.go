package main

import (
	"log"

	"github.com/hversten/bookmirror/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ bookmirror failed to start: %v", err)
	}
}
