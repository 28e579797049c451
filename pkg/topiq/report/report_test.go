package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cognicore/topiq/pkg/topiq/topics"
)

func TestBuildSummaryTruncatesTopics(t *testing.T) {
	tp := topics.Topics{}
	for id := 0; id < 12; id++ {
		tp[id] = []topics.Term{{Text: "term", Weight: float64(id) / 100}}
	}

	summary := BuildSummary(tp, 8, 8)
	lines := strings.Split(summary, "\n")
	if len(lines) != 8 {
		t.Fatalf("expected 8 summary lines, got %d", len(lines))
	}
	// Topics 0..3 have the lowest weights and must be cut.
	for _, dropped := range []string{"Topic 0:", "Topic 1:", "Topic 2:", "Topic 3:"} {
		if strings.Contains(summary, dropped) {
			t.Errorf("summary should not include %q", dropped)
		}
	}
}

func TestBuildSummaryTruncatesTerms(t *testing.T) {
	terms := make([]topics.Term, 10)
	for i := range terms {
		terms[i] = topics.Term{Text: "t", Weight: 1 - float64(i)/10}
	}
	summary := BuildSummary(topics.Topics{0: terms}, 8, 3)
	if got := strings.Count(summary, "t:"); got != 3 {
		t.Errorf("expected 3 rendered terms, got %d in %q", got, summary)
	}
}

func TestBuildSummaryRanking(t *testing.T) {
	tp := topics.Topics{
		2: {{Text: "weak", Weight: 0.1}},
		7: {{Text: "strong", Weight: 0.9}},
		4: {{Text: "mid", Weight: 0.5}},
	}
	summary := BuildSummary(tp, 8, 8)
	want := "Topic 7: strong:0.900\nTopic 4: mid:0.500\nTopic 2: weak:0.100"
	if summary != want {
		t.Errorf("summary = %q, want %q", summary, want)
	}
}

func TestBuildSummaryTieBreaksOnID(t *testing.T) {
	tp := topics.Topics{
		5: {{Text: "b", Weight: 0.4}},
		1: {{Text: "a", Weight: 0.4}},
		9: {{Text: "c", Weight: 0.4}},
	}
	summary := BuildSummary(tp, 8, 8)
	lines := strings.Split(summary, "\n")
	if !strings.HasPrefix(lines[0], "Topic 1:") ||
		!strings.HasPrefix(lines[1], "Topic 5:") ||
		!strings.HasPrefix(lines[2], "Topic 9:") {
		t.Errorf("tied topics should order by id, got %q", summary)
	}
}

func TestBuildSummaryEmpty(t *testing.T) {
	if got := BuildSummary(topics.Topics{}, 8, 8); got != EmptySummary {
		t.Errorf("empty topics should produce %q, got %q", EmptySummary, got)
	}
}

func TestDistributionRow(t *testing.T) {
	tp := topics.Topics{
		0: {{Text: "agreement", Weight: 0.159}, {Text: "target", Weight: 0.113}},
	}
	rows := Distribution(tp)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Proportion != 0.159 {
		t.Errorf("proportion = %v, want 0.159", rows[0].Proportion)
	}
	if rows[0].Name != "agreement, target" {
		t.Errorf("name = %q, want %q", rows[0].Name, "agreement, target")
	}
}

func TestDistributionSortAndTies(t *testing.T) {
	tp := topics.Topics{
		3: {{Text: "x", Weight: 0.2}},
		1: {{Text: "y", Weight: 0.5}},
		8: {{Text: "z", Weight: 0.2}},
	}
	rows := Distribution(tp)
	got := []int{rows[0].TopicID, rows[1].TopicID, rows[2].TopicID}
	// Highest proportion first; the 0.2 tie resolves to ascending id.
	if got[0] != 1 || got[1] != 3 || got[2] != 8 {
		t.Errorf("unexpected row order: %v", got)
	}
}

func TestDistributionEmpty(t *testing.T) {
	if rows := Distribution(topics.Topics{}); len(rows) != 0 {
		t.Errorf("expected no rows, got %v", rows)
	}
}

func TestWriteCategorizedCSV(t *testing.T) {
	var buf bytes.Buffer
	docs := []CategorizedDoc{
		{
			Document: 0, FileName: "acme.txt", Date: "2024-03-15",
			ParsedTopicCount: 2, TopicSummary: "Topic 0: a:0.100",
			Category: "Compensation", Confidence: 0.92, Rationale: "award terms",
		},
	}
	if err := WriteCategorizedCSV(&buf, docs); err != nil {
		t.Fatalf("WriteCategorizedCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "Document,FileName,Date,ParsedTopicCount,TopicSummary,Category,Confidence,Rationale" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "acme.txt") || !strings.Contains(lines[1], "0.92") {
		t.Errorf("unexpected row: %q", lines[1])
	}
}

func TestWriteDistributionCSV(t *testing.T) {
	var buf bytes.Buffer
	entries := []DistributionEntry{
		{Document: 0, FileName: "acme.txt", Date: "", Row: Row{TopicID: 3, Name: "agreement, target", Proportion: 0.159}},
	}
	if err := WriteDistributionCSV(&buf, entries); err != nil {
		t.Fatalf("WriteDistributionCSV: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "Document,FileName,Date,Topic,TopicName,Proportion\n") {
		t.Errorf("unexpected header in %q", out)
	}
	if !strings.Contains(out, `"agreement, target"`) {
		t.Errorf("topic name should be quoted in %q", out)
	}
	if !strings.Contains(out, "0.159") {
		t.Errorf("proportion missing in %q", out)
	}
}
