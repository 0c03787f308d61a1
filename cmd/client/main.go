package main

import (
	"log"
	"os"

	"livin/internal/service/app"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: client <email> <password>")
	}

	host := os.Getenv("LIVIN_ADDR")
	if host == "" {
		host = "localhost:4000"
	}

	c := app.NewApp(host)
	defer c.Stop()

	c.Run(os.Args[1], os.Args[2])
}
