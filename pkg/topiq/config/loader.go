package config

import (
	"fmt"

	"github.com/cognicore/topiq/pkg/topiq/wordfreq"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	PipelinePath string
	StoplistPath string
	GroupsPath   string
}

// Components holds all loaded configuration components
type Components struct {
	Pipeline  *Pipeline
	Tokenizer *wordfreq.Tokenizer
	Groups    *wordfreq.Groups
}

// Load reads all configuration files and returns initialized components.
// Missing paths fall back to built-in defaults.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	if l.PipelinePath != "" {
		pipeline, err := LoadPipeline(l.PipelinePath)
		if err != nil {
			return nil, fmt.Errorf("load pipeline config: %w", err)
		}
		comp.Pipeline = pipeline
	} else {
		comp.Pipeline = DefaultPipeline()
	}

	if l.StoplistPath != "" {
		stoplist, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Tokenizer = wordfreq.NewTokenizer(stoplist.Terms)
	} else {
		comp.Tokenizer = wordfreq.NewTokenizer(wordfreq.DefaultStopwords)
	}

	if l.GroupsPath != "" {
		kg, err := LoadKeywordGroups(l.GroupsPath)
		if err != nil {
			return nil, fmt.Errorf("load keyword groups: %w", err)
		}
		comp.Groups = wordfreq.NewGroups()
		for name, keywords := range kg.Groups {
			comp.Groups.Add(name, keywords)
		}
	} else {
		comp.Groups = wordfreq.DefaultGroups()
	}

	return comp, nil
}
