package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/cognicore/topiq/internal/edgar"
	"github.com/cognicore/topiq/internal/translate"
)

func main() {
	var (
		infile     = flag.String("infile", "", "Input .txt or .html filing (required)")
		outfile    = flag.String("outfile", "", "Output English .txt (required)")
		assumeHTML = flag.Bool("assume-html", false, "Strip HTML tags before translating")
		provider   = flag.String("provider", "deepl", "Translation provider: deepl or google")
		source     = flag.String("source", "", "Source language code (empty = auto-detect)")
		target     = flag.String("target", "", "Target language code (default EN-US / en)")
		maxChars   = flag.Int("max-chars", translate.DefaultMaxChars, "Chunk size in characters")
		sleepMS    = flag.Int("sleep-ms", 150, "Delay between chunks in ms")
		usePaid    = flag.Bool("use-paid", false, "DeepL: use paid endpoint")
		projectID  = flag.String("project-id", "", "Google: Cloud project ID")
		location   = flag.String("location", "global", "Google: Translation API location")
	)
	flag.Parse()

	if *infile == "" || *outfile == "" {
		log.Fatal("--infile and --outfile required")
	}

	raw, err := os.ReadFile(*infile)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}
	text := string(raw)
	if *assumeHTML {
		text = edgar.HTMLToText(text)
	}

	delay := time.Duration(*sleepMS) * time.Millisecond

	var translator translate.Translator
	switch *provider {
	case "deepl":
		apiKey := os.Getenv("DEEPL_API_KEY")
		if apiKey == "" {
			log.Fatal("DEEPL_API_KEY environment variable required")
		}
		translator = &translate.DeepL{
			APIKey:     apiKey,
			TargetLang: *target,
			SourceLang: *source,
			UsePaid:    *usePaid,
			MaxChars:   *maxChars,
			Delay:      delay,
		}
	case "google":
		if *projectID == "" {
			log.Fatal("--project-id required for google provider")
		}
		token := os.Getenv("GOOGLE_ACCESS_TOKEN")
		if token == "" {
			log.Fatal("GOOGLE_ACCESS_TOKEN environment variable required (e.g. gcloud auth print-access-token)")
		}
		translator = &translate.Google{
			ProjectID:   *projectID,
			Location:    *location,
			AccessToken: token,
			TargetLang:  *target,
			SourceLang:  *source,
			MaxChars:    *maxChars,
			Delay:       delay,
		}
	default:
		log.Fatalf("unknown provider %q (want deepl or google)", *provider)
	}

	translated, err := translator.Translate(context.Background(), text)
	if err != nil {
		log.Fatalf("translate: %v", err)
	}

	if err := os.WriteFile(*outfile, []byte(translated), 0644); err != nil {
		log.Fatalf("write output: %v", err)
	}

	log.Printf("✓ Translated %s -> %s (%d chars)", *infile, *outfile, len(translated))
}
