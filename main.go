// main.go
package main

import (
	"log"
	"os"

	"github.com/KevinRabun/TruePulse-sub002/config"
	"github.com/KevinRabun/TruePulse-sub002/routes"
	"github.com/KevinRabun/TruePulse-sub002/voting"
)

func main() {
	config.LoadConfig()
	config.ConnectDatabase()

	if config.TallyMode == config.TallyEventual {
		recounter := voting.NewRecounter(config.DB, config.RecountInterval)
		recounter.Start()
		defer recounter.Stop()
		log.Printf("Tally mode: eventual (recount every %s)", config.RecountInterval)
	} else {
		log.Println("Tally mode: sync")
	}

	router := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on http://localhost:%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
