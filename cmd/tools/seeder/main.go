package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/bluecup/backend-pos/internal/catalog"
	"github.com/bluecup/backend-pos/internal/customer"
)

// Writes starter catalog and customer data files that the API can load
// via CATALOG_PATH and CUSTOMERS_PATH.
func main() {
	outDir := flag.String("out", "data", "directory to write seed files into")
	force := flag.Bool("force", false, "overwrite existing files")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}

	writeSeed(filepath.Join(*outDir, "catalog.json"), catalog.DefaultProducts(), *force)
	writeSeed(filepath.Join(*outDir, "customers.json"), customer.DefaultCustomers(), *force)

	log.Println("Seeding completed successfully!")
}

func writeSeed(path string, payload any, force bool) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			log.Printf("%s already exists, skipping (use -force to overwrite)", path)
			return
		}
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Fatalf("encode %s: %v", path, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatalf("write %s: %v", path, err)
	}
	log.Printf("wrote %s", path)
}
