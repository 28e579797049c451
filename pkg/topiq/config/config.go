package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/topiq/pkg/topiq/internalerr"
)

// Pipeline represents the categorization pipeline configuration
type Pipeline struct {
	InputDir        string `yaml:"input_dir"`
	CategorizedCSV  string `yaml:"categorized_csv"`
	DistributionCSV string `yaml:"distribution_csv"`
	Model           string `yaml:"model"`
	TopTopics       int    `yaml:"top_topics"`
	TopTerms        int    `yaml:"top_terms"`
	DelayMS         int    `yaml:"delay_ms"`
	ArchiveDB       string `yaml:"archive_db"`
}

// LoadPipeline loads pipeline settings from a YAML file and applies
// defaults for unset fields
func LoadPipeline(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	p.applyDefaults()

	if err := p.validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// DefaultPipeline returns pipeline settings with all defaults applied
func DefaultPipeline() *Pipeline {
	p := &Pipeline{}
	p.applyDefaults()
	return p
}

func (p *Pipeline) applyDefaults() {
	if p.InputDir == "" {
		p.InputDir = "bert-summaries"
	}
	if p.CategorizedCSV == "" {
		p.CategorizedCSV = "categorized_documents.csv"
	}
	if p.DistributionCSV == "" {
		p.DistributionCSV = "topic_proportions.csv"
	}
	if p.Model == "" {
		p.Model = "gemini-2.5-flash"
	}
	if p.TopTopics == 0 {
		p.TopTopics = 8
	}
	if p.TopTerms == 0 {
		p.TopTerms = 8
	}
	if p.DelayMS == 0 {
		p.DelayMS = 150
	}
}

func (p *Pipeline) validate() error {
	if p.TopTopics < 0 {
		return fmt.Errorf("%w: top_topics must not be negative", internalerr.ErrInvalidConfig)
	}
	if p.TopTerms < 0 {
		return fmt.Errorf("%w: top_terms must not be negative", internalerr.ErrInvalidConfig)
	}
	if p.DelayMS < 0 {
		return fmt.Errorf("%w: delay_ms must not be negative", internalerr.ErrInvalidConfig)
	}
	return nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}

// KeywordGroups represents the keyword-group configuration for the
// word-frequency report
type KeywordGroups struct {
	Groups map[string][]string `yaml:"groups"`
}

// LoadKeywordGroups loads keyword groups from a YAML file
func LoadKeywordGroups(path string) (*KeywordGroups, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var kg KeywordGroups
	if err := yaml.Unmarshal(data, &kg); err != nil {
		return nil, err
	}

	return &kg, nil
}
