package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/lojinha/storefront/internal/config"
	"github.com/lojinha/storefront/internal/upstream"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run cmd/find-product/main.go <bearer-token> <name>")
		fmt.Println("Example: go run cmd/find-product/main.go \"$TOKEN\" \"espresso\"")
		os.Exit(1)
	}

	token := os.Args[1]
	target := strings.ToLower(os.Args[2])

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

	fmt.Printf("Searching for product: %s\n\n", target)

	// Page through the catalog
	page := 0
	found := false
	for {
		products, last, err := client.ListProducts(context.Background(), token, page, 50, "", "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list products: %v\n", err)
			os.Exit(1)
		}

		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), target) {
				found = true
				fmt.Printf("  %s  %-30s  $%s  (stock %d, category %s)\n",
					p.ID, p.Name, p.Price.StringFixed(2), p.Stock, p.Category.Name)
			}
		}

		if last || len(products) == 0 {
			break
		}
		page++
	}

	if !found {
		fmt.Println("No matching products.")
		os.Exit(1)
	}
}
