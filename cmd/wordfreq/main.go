package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/topiq/pkg/topiq/config"
	"github.com/cognicore/topiq/pkg/topiq/wordfreq"
)

func main() {
	var (
		input    = flag.String("input", "", "Text file or directory of .txt files (required)")
		top      = flag.Int("top", 20, "Number of top terms to report")
		stoplist = flag.String("stoplist", "", "Optional stoplist YAML")
		groups   = flag.String("groups", "", "Optional keyword groups YAML")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}

	loader := config.Loader{
		StoplistPath: *stoplist,
		GroupsPath:   *groups,
	}
	components, err := loader.Load()
	if err != nil {
		log.Fatalf("load configs: %v", err)
	}

	files, err := collectFiles(*input)
	if err != nil {
		log.Fatalf("collect input: %v", err)
	}

	counter := wordfreq.NewCounter()
	docs := 0
	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", path, err)
			continue
		}
		counter.Process(components.Tokenizer.Tokenize(string(raw)))
		docs++
	}

	fmt.Printf("Analyzed %d document(s), %d tokens\n\n", docs, counter.Total())

	fmt.Printf("Top %d terms:\n", *top)
	for i, f := range counter.Top(*top) {
		fmt.Printf("%3d. %-24s %6d  (%.2f%%)\n", i+1, f.Term, f.Count, f.Percent)
	}

	fmt.Println("\nKeyword group distribution:")
	for _, share := range components.Groups.Distribution(counter) {
		fmt.Printf("  %-24s %6d  (%.2f%%)\n", share.Name, share.Count, share.Percent)
	}
}

func collectFiles(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{input}, nil
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		files = append(files, filepath.Join(input, e.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .txt files in %s", input)
	}
	return files, nil
}
