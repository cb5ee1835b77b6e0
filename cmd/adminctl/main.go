package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"flax/internal/adminctl"
)

func main() {

	_ = godotenv.Load()

	serverURL := flag.String("s", envOr("FLAX_SERVER", "http://localhost:8080"), "server base URL")
	flag.Parse()

	ctx := context.Background()
	app := adminctl.NewApp(*serverURL, os.Stdin, os.Stdout)

	if err := app.Run(ctx, flag.Args()); err != nil {
		log.Fatalf("%v", err)
	}

}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
