package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

// CategorizedDoc is one row of the per-document output file.
type CategorizedDoc struct {
	Document         int
	FileName         string
	Date             string
	ParsedTopicCount int
	TopicSummary     string
	Category         string
	Confidence       float64
	Rationale        string
}

// DistributionEntry is one row of the long-format output file.
type DistributionEntry struct {
	Document int
	FileName string
	Date     string
	Row
}

var categorizedHeader = []string{
	"Document", "FileName", "Date", "ParsedTopicCount",
	"TopicSummary", "Category", "Confidence", "Rationale",
}

var distributionHeader = []string{
	"Document", "FileName", "Date", "Topic", "TopicName", "Proportion",
}

// WriteCategorizedCSV writes the per-document rows with a header line.
func WriteCategorizedCSV(w io.Writer, docs []CategorizedDoc) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(categorizedHeader); err != nil {
		return err
	}
	for _, d := range docs {
		record := []string{
			strconv.Itoa(d.Document),
			d.FileName,
			d.Date,
			strconv.Itoa(d.ParsedTopicCount),
			d.TopicSummary,
			d.Category,
			formatFloat(d.Confidence),
			d.Rationale,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDistributionCSV writes the long-format rows with a header line.
func WriteDistributionCSV(w io.Writer, entries []DistributionEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(distributionHeader); err != nil {
		return err
	}
	for _, e := range entries {
		record := []string{
			strconv.Itoa(e.Document),
			e.FileName,
			e.Date,
			strconv.Itoa(e.TopicID),
			e.Name,
			formatFloat(e.Proportion),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
