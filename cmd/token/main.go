// Command token issues a signed access token for local testing.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"carbon-shop/marketplace-backend/internal/auth"
	"carbon-shop/marketplace-backend/internal/config"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON config file")
	userID := flag.Int64("user", 0, "user id placed in the subject claim")
	role := flag.String("role", "MEDIATOR", "role claim")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if *userID <= 0 {
		fmt.Fprintln(os.Stderr, "-user is required")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.RequireJWTSecret(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	token, err := auth.NewTokenService(cfg.Security.JWTSecret, cfg.Security.JWTIssuer).Issue(*userID, *role, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
