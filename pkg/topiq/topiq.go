// Package topiq runs the financial-disclosure topic pipeline: parse
// topic-model dumps, summarize each document's topics, classify the
// summary, and emit categorized and distribution rows.
package topiq

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/topiq/pkg/topiq/internalerr"
	"github.com/cognicore/topiq/pkg/topiq/report"
	"github.com/cognicore/topiq/pkg/topiq/store"
	"github.com/cognicore/topiq/pkg/topiq/topics"
)

// Classification is the classifier's structured verdict for one document.
type Classification struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// Classifier assigns a category to a rendered topic summary.
type Classifier interface {
	Categorize(ctx context.Context, topicSummary string) (Classification, error)
}

// Options configures a Pipeline.
type Options struct {
	Classifier Classifier
	Model      string        // recorded in the run archive
	TopTopics  int           // topics kept in the summary (default 8)
	TopTerms   int           // terms kept per summary topic (default 8)
	Delay      time.Duration // pause between classification calls
	Store      store.Store   // optional run archive
	Logf       func(format string, args ...interface{})
}

// Pipeline processes a directory of topic dumps, one document at a time,
// in sorted filename order. Strictly sequential; the only suspension is
// the configured delay between remote calls.
type Pipeline struct {
	classifier Classifier
	model      string
	topN, topM int
	delay      time.Duration
	archive    store.Store
	logf       func(format string, args ...interface{})
	entropy    *ulid.MonotonicEntropy
}

// New creates a Pipeline with the given dependencies.
func New(opts Options) *Pipeline {
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	return &Pipeline{
		classifier: opts.Classifier,
		model:      opts.Model,
		topN:       opts.TopTopics,
		topM:       opts.TopTerms,
		delay:      opts.Delay,
		archive:    opts.Store,
		logf:       logf,
		entropy:    ulid.Monotonic(rand.Reader, 0),
	}
}

// Result holds everything a run produced.
type Result struct {
	RunID  string
	Docs   []report.CategorizedDoc
	Topics []report.DistributionEntry
}

// Run processes every .txt file under dir. A missing directory or an
// empty file set aborts before any output. A document that parses to
// zero topics is NOT an error: it is emitted with ParsedTopicCount=0 and
// still classified from its empty summary. A classifier failure (after
// the client's own retries) aborts the run.
func (p *Pipeline) Run(ctx context.Context, dir string) (Result, error) {
	if p.classifier == nil {
		return Result{}, fmt.Errorf("pipeline: classifier required: %w", internalerr.ErrInvalidConfig)
	}

	files, err := listDumps(dir)
	if err != nil {
		return Result{}, err
	}

	started := time.Now()
	result := Result{
		RunID: ulid.MustNew(ulid.Timestamp(started), p.entropy).String(),
	}

	for idx, name := range files {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return Result{}, fmt.Errorf("pipeline: read %s: %w", name, err)
		}
		text := string(raw)

		date := topics.ExtractDate(text)
		parsed := topics.Parse(text)
		summary := report.BuildSummary(parsed, p.topN, p.topM)

		verdict, err := p.classifier.Categorize(ctx, summary)
		if err != nil {
			return Result{}, fmt.Errorf("pipeline: classify %s: %w", name, err)
		}

		result.Docs = append(result.Docs, report.CategorizedDoc{
			Document:         idx,
			FileName:         name,
			Date:             date,
			ParsedTopicCount: len(parsed),
			TopicSummary:     summary,
			Category:         verdict.Category,
			Confidence:       verdict.Confidence,
			Rationale:        verdict.Rationale,
		})
		for _, row := range report.Distribution(parsed) {
			result.Topics = append(result.Topics, report.DistributionEntry{
				Document: idx,
				FileName: name,
				Date:     date,
				Row:      row,
			})
		}

		p.logf("[%d/%d] %s -> %s (%.2f)", idx+1, len(files), name, verdict.Category, verdict.Confidence)

		// Stay under the API rate limit between documents.
		if p.delay > 0 && idx < len(files)-1 {
			select {
			case <-time.After(p.delay):
			case <-ctx.Done():
				return Result{}, ctx.Err()
			}
		}
	}

	if p.archive != nil {
		if err := p.archive.SaveRun(ctx, p.toRun(result, started)); err != nil {
			return Result{}, fmt.Errorf("pipeline: archive run: %w", err)
		}
	}

	return result, nil
}

// WriteCSV writes the two output files for a result.
func (r Result) WriteCSV(categorizedPath, distributionPath string) error {
	cf, err := os.Create(categorizedPath)
	if err != nil {
		return err
	}
	defer cf.Close()
	if err := report.WriteCategorizedCSV(cf, r.Docs); err != nil {
		return err
	}

	df, err := os.Create(distributionPath)
	if err != nil {
		return err
	}
	defer df.Close()
	return report.WriteDistributionCSV(df, r.Topics)
}

// listDumps returns the .txt files under dir in sorted name order.
// os.ReadDir already sorts by filename.
func listDumps(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("pipeline: input dir %s: %w", dir, internalerr.ErrNoInput)
		}
		return nil, fmt.Errorf("pipeline: read input dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		files = append(files, e.Name())
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("pipeline: no .txt files in %s: %w", dir, internalerr.ErrNoInput)
	}
	return files, nil
}

func (p *Pipeline) toRun(r Result, started time.Time) store.Run {
	run := store.Run{
		ID:        r.RunID,
		StartedAt: started,
		Model:     p.model,
	}
	for _, d := range r.Docs {
		run.Docs = append(run.Docs, store.DocRecord{
			DocIndex:   d.Document,
			FileName:   d.FileName,
			Date:       d.Date,
			TopicCount: d.ParsedTopicCount,
			Summary:    d.TopicSummary,
			Category:   d.Category,
			Confidence: d.Confidence,
			Rationale:  d.Rationale,
		})
	}
	for _, t := range r.Topics {
		run.Topics = append(run.Topics, store.TopicRecord{
			DocIndex:   t.Document,
			TopicID:    t.TopicID,
			Name:       t.Name,
			Proportion: t.Proportion,
		})
	}
	return run
}
