package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lojinha/storefront/internal/config"
	"github.com/lojinha/storefront/internal/upstream"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: go run cmd/register-account/main.go <username> <password> <full-name>")
		fmt.Println("Example: go run cmd/register-account/main.go maria s3cret \"Maria Silva\"")
		os.Exit(1)
	}

	username := os.Args[1]
	password := os.Args[2]
	fullName := os.Args[3]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Create backend client
	client := upstream.NewClient(cfg.Upstream, logger)

	resp, err := client.Register(context.Background(), upstream.RegisterRequest{
		Username:   username,
		Password:   password,
		RePassword: password,
		FullName:   fullName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to register account: %v\n", err)
		os.Exit(1)
	}
	if resp.Status < 200 || resp.Status > 299 {
		apiErr := upstream.ParseError(resp.Status, resp.Body)
		fmt.Fprintf(os.Stderr, "Registration rejected (%d): %v\n", resp.Status, apiErr)
		os.Exit(1)
	}

	fmt.Printf("Account created for %s (%s).\n", username, fullName)
	fmt.Println("Sign in through the storefront to get a session.")
}
