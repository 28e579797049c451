package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cognicore/topiq/internal/edgar"
)

func main() {
	var (
		userAgent = flag.String("user-agent", "", "User-Agent with contact details, e.g. \"Research Project name@example.com\" (required)")
		outDir    = flag.String("out", "filings", "Output directory for plain-text filings")
		delayMS   = flag.Int("delay-ms", 200, "Delay between requests in ms")
	)
	flag.Parse()

	if *userAgent == "" {
		log.Fatal("--user-agent required (SEC rejects anonymous requests)")
	}
	paths := flag.Args()
	if len(paths) == 0 {
		log.Fatal("usage: download-edgar --user-agent \"...\" /Archives/edgar/data/... [more paths]")
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}

	client := &edgar.Client{
		UserAgent: *userAgent,
		Delay:     time.Duration(*delayMS) * time.Millisecond,
	}

	ctx := context.Background()
	downloaded := 0
	for i, path := range paths {
		text, err := client.FetchDocument(ctx, path)
		if err != nil {
			log.Printf("Failed to fetch %s: %v", path, err)
			continue
		}

		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".txt"
		outPath := filepath.Join(*outDir, name)
		if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
			log.Printf("Failed to write %s: %v", outPath, err)
			continue
		}

		downloaded++
		log.Printf("[%d/%d] %s -> %s (%d chars)", i+1, len(paths), path, outPath, len(text))
	}

	log.Printf("✓ Downloaded %d of %d filings to %s", downloaded, len(paths), *outDir)
}
